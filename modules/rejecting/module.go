// Package rejecting provides a dry-run blotter: every order is recorded and
// immediately rejected, and nothing is ever filled.
package rejecting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/blotterkit/internal/blotter"
	"github.com/vk/blotterkit/internal/ctxlog"
)

// Name is the catalog name of the rejecting blotter.
const Name = "rejecting"

// Module implements the blotter.Module interface for this package.
type Module struct{}

// Register adds the rejecting factory to the catalog using the catalog's
// deferred registration form.
func (m *Module) Register(c *blotter.Catalog) error {
	_, err := c.Builder(Name)(blotter.FactoryFunc(New))
	return err
}

// Config holds the options accepted in a blotter "rejecting" block.
type Config struct {
	Reason string `cty:"reason"`
}

// Blotter rejects every order it is given.
type Blotter struct {
	reason string
	book   *blotter.Book
}

// New is the blotter.FactoryFunc for the rejecting blotter.
func New(ctx context.Context, opts blotter.Options) (blotter.Blotter, error) {
	cfg := Config{Reason: "order routing disabled"}
	if err := opts.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid rejecting options: %w", err)
	}
	return &Blotter{reason: cfg.Reason, book: blotter.NewBook()}, nil
}

func (b *Blotter) Order(ctx context.Context, order blotter.Order) (string, error) {
	if err := order.Validate(); err != nil {
		return "", err
	}
	order.ID = uuid.NewString()
	order.Status = blotter.StatusRejected
	order.Filled = 0
	order.Reason = b.reason
	if err := b.book.Add(order); err != nil {
		return "", err
	}
	ctxlog.FromContext(ctx).Warn("Order rejected.", "id", order.ID, "asset", order.Asset, "reason", b.reason)
	return order.ID, nil
}

func (b *Blotter) Cancel(_ context.Context, id string) error {
	return b.book.Cancel(id, "cancelled")
}

func (b *Blotter) CancelAll(_ context.Context, asset string) error {
	b.book.CancelAll(asset, "cancelled")
	return nil
}

func (b *Blotter) OpenOrders(asset string) []blotter.Order {
	return b.book.Open(asset)
}

func (b *Blotter) Orders() []blotter.Order {
	return b.book.All()
}

func (b *Blotter) Fill(context.Context, map[string]float64) ([]blotter.Transaction, error) {
	return nil, nil
}
