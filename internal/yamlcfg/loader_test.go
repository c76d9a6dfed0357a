package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

func TestParse_FullRunFile(t *testing.T) {
	t.Parallel()
	src := `
blotter:
  name: simulation
  options:
    slippage_bps: 5
    commission_per_share: 0.01
orders:
  - name: buy_aapl
    asset: AAPL
    amount: 100
    limit: 191
  - asset: MSFT
    amount: -5
    cancel: true
prices:
  AAPL: 190.25
`
	model, err := NewLoader().Parse([]byte(src), "run.yaml")
	require.NoError(t, err)

	require.NotNil(t, model.Blotter)
	assert.Equal(t, "simulation", model.Blotter.Name)
	var slippage float64
	require.NoError(t, gocty.FromCtyValue(model.Blotter.Options.GetAttr("slippage_bps"), &slippage))
	assert.Equal(t, 5.0, slippage)

	require.Len(t, model.Orders, 2)
	assert.Equal(t, "buy_aapl", model.Orders[0].Name)
	require.NotNil(t, model.Orders[0].Limit)
	assert.Equal(t, 191.0, *model.Orders[0].Limit)
	assert.Equal(t, "order_1", model.Orders[1].Name)
	assert.True(t, model.Orders[1].Cancel)
	assert.Equal(t, 190.25, model.Prices["AAPL"])
}

func TestParse_NoOptions(t *testing.T) {
	t.Parallel()
	model, err := NewLoader().Parse([]byte("blotter:\n  name: rejecting\n"), "run.yaml")
	require.NoError(t, err)
	assert.True(t, model.Blotter.Options.Equals(cty.EmptyObjectVal).True())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "unknown key", src: "blotters: {}\n", wantErr: "field blotters not found"},
		{name: "missing asset", src: "orders:\n  - amount: 1\n", wantErr: "missing asset"},
		{name: "bad yaml", src: "blotter: [\n", wantErr: "failed to decode YAML file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewLoader().Parse([]byte(tc.src), "run.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yml")
	require.NoError(t, os.WriteFile(a, []byte("blotter:\n  name: simulation\n"), 0600))
	require.NoError(t, os.WriteFile(b, []byte("prices:\n  AAPL: 1\n"), 0600))

	model, err := NewLoader().Load(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, "simulation", model.Blotter.Name)
	assert.Equal(t, 1.0, model.Prices["AAPL"])

	_, err = NewLoader().Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read YAML file")
}

func TestToCtyValue(t *testing.T) {
	t.Parallel()
	v, err := toCtyValue(map[string]any{
		"n":    1,
		"f":    1.5,
		"s":    "x",
		"b":    true,
		"list": []any{1, "two"},
		"nil":  nil,
	})
	require.NoError(t, err)
	assert.True(t, v.Type().IsObjectType())
	assert.True(t, v.GetAttr("list").Type().IsTupleType())
	assert.True(t, v.GetAttr("nil").IsNull())

	_, err = toCtyValue(struct{}{})
	assert.Error(t, err)
}
