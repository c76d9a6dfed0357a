package yamlcfg

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// toCtyValue converts the generic values produced by yaml.v3 into cty. Maps
// become objects and sequences become tuples, so mixed element types survive.
func toCtyValue(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(tv), nil
	case string:
		return cty.StringVal(tv), nil
	case int:
		return cty.NumberIntVal(int64(tv)), nil
	case int64:
		return cty.NumberIntVal(tv), nil
	case uint64:
		return cty.NumberUIntVal(tv), nil
	case float64:
		return cty.NumberFloatVal(tv), nil
	case *big.Int:
		return cty.NumberVal(new(big.Float).SetInt(tv)), nil
	case []any:
		if len(tv) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, len(tv))
		for i, e := range tv {
			cv, err := toCtyValue(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("[%d]: %w", i, err)
			}
			vals[i] = cv
		}
		return cty.TupleVal(vals), nil
	case map[string]any:
		if tv == nil {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vals := make(map[string]cty.Value, len(tv))
		for _, k := range keys {
			cv, err := toCtyValue(tv[k])
			if err != nil {
				return cty.NilVal, fmt.Errorf("%s: %w", k, err)
			}
			vals[k] = cv
		}
		return cty.ObjectVal(vals), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
}
