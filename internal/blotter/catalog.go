package blotter

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/vk/blotterkit/internal/registry"
)

// Factory builds a configured Blotter.
type Factory interface {
	New(ctx context.Context, opts Options) (Blotter, error)
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func(ctx context.Context, opts Options) (Blotter, error)

// New calls f.
func (f FactoryFunc) New(ctx context.Context, opts Options) (Blotter, error) {
	return f(ctx, opts)
}

// Catalog is the registry of blotter factories.
type Catalog = registry.Registry[Factory]

// Module is implemented by every package that provides blotters.
type Module interface {
	Register(c *Catalog) error
}

// Kind is the capability name used in catalog errors and metrics.
const Kind = "blotter"

// NewCatalog creates an empty blotter catalog that enforces Contract.
func NewCatalog(opts ...registry.Option) *Catalog {
	return registry.New[Factory](Kind, Contract, opts...)
}

// Contract rejects factories that cannot produce a blotter: a FactoryFunc or
// pointer receiver wrapping nil.
func Contract(f Factory) error {
	if f == nil {
		return errors.New("factory is nil")
	}
	if fn, ok := f.(FactoryFunc); ok && fn == nil {
		return errors.New("factory function is nil")
	}
	rv := reflect.ValueOf(f)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return fmt.Errorf("factory %T is a nil pointer", f)
	}
	return nil
}

// Open loads the factory registered as name and builds a blotter from it.
func Open(ctx context.Context, c *Catalog, name string, opts Options) (Blotter, error) {
	f, err := c.Load(name)
	if err != nil {
		return nil, err
	}
	b, err := f.New(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %q: %w", Kind, name, err)
	}
	if b == nil {
		return nil, fmt.Errorf("%s factory %q returned nil", Kind, name)
	}
	return b, nil
}
