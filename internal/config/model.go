package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of a run: which blotter to open, the
// orders to submit to it and the prices to fill them against.
type Model struct {
	Blotter *Blotter
	Orders  []*Order
	Prices  map[string]float64
}

// Blotter selects a registered blotter by name. Options is an object value
// holding the implementation-specific settings.
type Blotter struct {
	Name    string
	Options cty.Value
}

// Order is one order to submit.
type Order struct {
	Name   string
	Asset  string
	Amount int64
	Limit  *float64
	Stop   *float64
	// Cancel submits the order and cancels it before prices are applied.
	Cancel bool
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{Prices: make(map[string]float64)}
}

// Merge folds other into m. Only one blotter may be declared across all
// merged files, order names must be unique, and a price may be set once.
func (m *Model) Merge(other *Model) error {
	if other.Blotter != nil {
		if m.Blotter != nil {
			return fmt.Errorf("blotter declared twice: %q and %q", m.Blotter.Name, other.Blotter.Name)
		}
		m.Blotter = other.Blotter
	}
	seen := make(map[string]struct{}, len(m.Orders))
	for _, o := range m.Orders {
		seen[o.Name] = struct{}{}
	}
	for _, o := range other.Orders {
		if _, dup := seen[o.Name]; dup {
			return fmt.Errorf("order %q declared twice", o.Name)
		}
		seen[o.Name] = struct{}{}
		m.Orders = append(m.Orders, o)
	}
	if m.Prices == nil {
		m.Prices = make(map[string]float64, len(other.Prices))
	}
	for asset, p := range other.Prices {
		if _, dup := m.Prices[asset]; dup {
			return fmt.Errorf("price for %q declared twice", asset)
		}
		m.Prices[asset] = p
	}
	return nil
}

// Validate checks that the model describes a runnable session.
func (m *Model) Validate() error {
	if m.Blotter == nil {
		return fmt.Errorf("no blotter block found")
	}
	if m.Blotter.Name == "" {
		return fmt.Errorf("blotter name must not be empty")
	}
	for asset, p := range m.Prices {
		if p <= 0 {
			return fmt.Errorf("price for %q must be positive, got %v", asset, p)
		}
	}
	return nil
}
