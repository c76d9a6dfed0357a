package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestModel_Merge(t *testing.T) {
	t.Parallel()
	m := NewModel()

	require.NoError(t, m.Merge(&Model{
		Blotter: &Blotter{Name: "simulation", Options: cty.EmptyObjectVal},
		Orders:  []*Order{{Name: "a", Asset: "AAPL", Amount: 1}},
	}))
	require.NoError(t, m.Merge(&Model{
		Orders: []*Order{{Name: "b", Asset: "MSFT", Amount: 2}},
		Prices: map[string]float64{"AAPL": 1},
	}))

	assert.Equal(t, "simulation", m.Blotter.Name)
	assert.Len(t, m.Orders, 2)
	assert.Equal(t, 1.0, m.Prices["AAPL"])
	require.NoError(t, m.Validate())
}

func TestModel_MergeConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		other   *Model
		wantErr string
	}{
		{
			name:    "second blotter",
			other:   &Model{Blotter: &Blotter{Name: "rejecting"}},
			wantErr: `blotter declared twice: "simulation" and "rejecting"`,
		},
		{
			name:    "duplicate order",
			other:   &Model{Orders: []*Order{{Name: "a"}}},
			wantErr: `order "a" declared twice`,
		},
		{
			name:    "duplicate price",
			other:   &Model{Prices: map[string]float64{"AAPL": 2}},
			wantErr: `price for "AAPL" declared twice`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := &Model{
				Blotter: &Blotter{Name: "simulation"},
				Orders:  []*Order{{Name: "a"}},
				Prices:  map[string]float64{"AAPL": 1},
			}
			assert.EqualError(t, m.Merge(tc.other), tc.wantErr)
		})
	}
}

func TestModel_Validate(t *testing.T) {
	t.Parallel()
	assert.EqualError(t, NewModel().Validate(), "no blotter block found")
	assert.Error(t, (&Model{Blotter: &Blotter{}}).Validate())
	assert.Error(t, (&Model{
		Blotter: &Blotter{Name: "x"},
		Prices:  map[string]float64{"AAPL": 0},
	}).Validate())
}
