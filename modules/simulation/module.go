// Package simulation provides an in-memory blotter that fills orders against
// supplied prices with configurable slippage and commission.
package simulation

import (
	"github.com/vk/blotterkit/internal/blotter"
)

// Name is the catalog name of the simulation blotter.
const Name = "simulation"

// Module implements the blotter.Module interface for this package.
type Module struct{}

// Register adds the simulation factory to the catalog.
func (m *Module) Register(c *blotter.Catalog) error {
	_, err := c.Register(Name, blotter.FactoryFunc(New))
	return err
}
