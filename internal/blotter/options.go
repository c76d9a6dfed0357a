package blotter

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Options carries the implementation-specific settings for a blotter as a
// cty object, independent of the file format they were read from.
type Options struct {
	value cty.Value
}

// NewOptions wraps v, which must be an object or map value or null.
func NewOptions(v cty.Value) (Options, error) {
	if v.IsNull() {
		return Options{}, nil
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return Options{}, fmt.Errorf("blotter options must be an object, got %s", ty.FriendlyName())
	}
	return Options{value: v}, nil
}

// MustOptions is like NewOptions built from plain Go attribute values. It is
// meant for tests and static defaults.
func MustOptions(attrs map[string]any) Options {
	vals := make(map[string]cty.Value, len(attrs))
	for k, v := range attrs {
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			panic(fmt.Sprintf("blotter option %q: %v", k, err))
		}
		cv, err := gocty.ToCtyValue(v, ty)
		if err != nil {
			panic(fmt.Sprintf("blotter option %q: %v", k, err))
		}
		vals[k] = cv
	}
	return Options{value: cty.ObjectVal(vals)}
}

// Empty reports whether no options were supplied.
func (o Options) Empty() bool {
	if o.value.IsNull() {
		return true
	}
	if o.value.Type().IsObjectType() {
		return len(o.value.Type().AttributeTypes()) == 0
	}
	return o.value.LengthInt() == 0
}

// Value returns the underlying cty value.
func (o Options) Value() cty.Value {
	if o.value.IsNull() {
		return cty.EmptyObjectVal
	}
	return o.value
}

// Decode copies options into target, a pointer to a struct whose fields carry
// `cty:"name"` tags. Fields without a matching attribute keep their current
// value, so callers pre-populate target with defaults. Attributes with no
// matching field are an error.
func (o Options) Decode(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a non-nil pointer to a struct, got %T", target)
	}
	if o.Empty() {
		return nil
	}

	fields := ctyFields(rv.Elem().Type())
	var unknown []string
	for it := o.value.ElementIterator(); it.Next(); {
		k, v := it.Element()
		name := k.AsString()
		idx, ok := fields[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if v.IsNull() {
			continue
		}
		field := rv.Elem().Field(idx)
		if err := decodeValue(v, field.Addr().Interface()); err != nil {
			return fmt.Errorf("option %q: %w", name, err)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unsupported options: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func decodeValue(v cty.Value, target any) error {
	ty, err := gocty.ImpliedType(reflect.ValueOf(target).Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(v, target)
	}
	converted, err := convert.Convert(v, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", v.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

// ctyFields maps cty tag names to struct field indexes.
func ctyFields(t reflect.Type) map[string]int {
	out := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.Split(f.Tag.Get("cty"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		out[tag] = i
	}
	return out
}
