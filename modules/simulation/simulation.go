package simulation

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/vk/blotterkit/internal/blotter"
	"github.com/vk/blotterkit/internal/ctxlog"
)

// Config holds the options accepted in a blotter "simulation" block.
type Config struct {
	SlippageBps        float64 `cty:"slippage_bps"`
	CommissionPerShare float64 `cty:"commission_per_share"`
	MinCommission      float64 `cty:"min_commission"`
	// MaxVolume caps the absolute amount filled per order per Fill call.
	// Zero means unlimited.
	MaxVolume int64 `cty:"max_volume"`
}

// DefaultConfig returns the settings used for options that are not supplied.
func DefaultConfig() Config {
	return Config{
		SlippageBps:        5,
		CommissionPerShare: 0.001,
	}
}

func (c Config) validate() error {
	switch {
	case c.SlippageBps < 0:
		return fmt.Errorf("slippage_bps must not be negative, got %v", c.SlippageBps)
	case c.CommissionPerShare < 0:
		return fmt.Errorf("commission_per_share must not be negative, got %v", c.CommissionPerShare)
	case c.MinCommission < 0:
		return fmt.Errorf("min_commission must not be negative, got %v", c.MinCommission)
	case c.MaxVolume < 0:
		return fmt.Errorf("max_volume must not be negative, got %d", c.MaxVolume)
	}
	return nil
}

// Blotter is the simulation blotter.
type Blotter struct {
	cfg   Config
	book  *blotter.Book
	newID func() string
	// triggered records stop orders whose stop price has been crossed.
	triggered map[string]bool
}

// New is the blotter.FactoryFunc for the simulation blotter.
func New(ctx context.Context, opts blotter.Options) (blotter.Blotter, error) {
	cfg := DefaultConfig()
	if err := opts.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid simulation options: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation options: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Simulation blotter configured.",
		"slippage_bps", cfg.SlippageBps,
		"commission_per_share", cfg.CommissionPerShare,
		"min_commission", cfg.MinCommission,
		"max_volume", cfg.MaxVolume,
	)
	return NewWithConfig(cfg), nil
}

// NewWithConfig builds a simulation blotter directly from cfg.
func NewWithConfig(cfg Config) *Blotter {
	return &Blotter{
		cfg:       cfg,
		book:      blotter.NewBook(),
		newID:     uuid.NewString,
		triggered: make(map[string]bool),
	}
}

// Order implements blotter.Blotter.
func (b *Blotter) Order(ctx context.Context, order blotter.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := order.Validate(); err != nil {
		return "", err
	}
	order.ID = b.newID()
	order.Status = blotter.StatusOpen
	order.Filled = 0
	order.Reason = ""
	if err := b.book.Add(order); err != nil {
		return "", err
	}
	ctxlog.FromContext(ctx).Debug("Order accepted.", "id", order.ID, "asset", order.Asset, "amount", order.Amount)
	return order.ID, nil
}

// Cancel implements blotter.Blotter.
func (b *Blotter) Cancel(ctx context.Context, id string) error {
	return b.book.Cancel(id, "cancelled")
}

// CancelAll implements blotter.Blotter.
func (b *Blotter) CancelAll(ctx context.Context, asset string) error {
	n := b.book.CancelAll(asset, "cancelled")
	ctxlog.FromContext(ctx).Debug("Cancelled open orders.", "asset", asset, "count", n)
	return nil
}

// OpenOrders implements blotter.Blotter.
func (b *Blotter) OpenOrders(asset string) []blotter.Order {
	return b.book.Open(asset)
}

// Orders implements blotter.Blotter.
func (b *Blotter) Orders() []blotter.Order {
	return b.book.All()
}

// Fill implements blotter.Blotter. Orders for assets without a price are left
// untouched.
func (b *Blotter) Fill(ctx context.Context, prices map[string]float64) ([]blotter.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var txns []blotter.Transaction
	b.book.Update(func(o *blotter.Order) {
		price, ok := prices[o.Asset]
		if !ok || price <= 0 {
			return
		}
		if !b.triggeredAt(o, price) {
			return
		}
		if o.Limit != nil && !limitReached(o, price) {
			return
		}

		amount := o.Remaining()
		if b.cfg.MaxVolume > 0 && abs(amount) > b.cfg.MaxVolume {
			amount = b.cfg.MaxVolume * sign(amount)
		}

		txn := blotter.Transaction{
			OrderID:    o.ID,
			Asset:      o.Asset,
			Amount:     amount,
			Price:      b.execPrice(o, price),
			Commission: b.commission(amount),
		}
		o.Filled += amount
		if o.Remaining() == 0 {
			o.Status = blotter.StatusFilled
			delete(b.triggered, o.ID)
		}
		txns = append(txns, txn)
	})
	ctxlog.FromContext(ctx).Debug("Fill pass complete.", "transactions", len(txns))
	return txns, nil
}

// triggeredAt reports whether o may trade at price, latching stop orders
// once their stop has been crossed. Called with the book lock held.
func (b *Blotter) triggeredAt(o *blotter.Order, price float64) bool {
	if o.Stop == nil || b.triggered[o.ID] {
		return true
	}
	if (o.Amount > 0 && price >= *o.Stop) || (o.Amount < 0 && price <= *o.Stop) {
		b.triggered[o.ID] = true
		return true
	}
	return false
}

func limitReached(o *blotter.Order, price float64) bool {
	if o.Amount > 0 {
		return price <= *o.Limit
	}
	return price >= *o.Limit
}

// execPrice applies slippage against the trader and never crosses the limit.
func (b *Blotter) execPrice(o *blotter.Order, price float64) float64 {
	impact := price * b.cfg.SlippageBps / 10000
	if o.Amount > 0 {
		p := price + impact
		if o.Limit != nil {
			p = math.Min(p, *o.Limit)
		}
		return p
	}
	p := price - impact
	if o.Limit != nil {
		p = math.Max(p, *o.Limit)
	}
	return p
}

func (b *Blotter) commission(amount int64) float64 {
	return math.Max(float64(abs(amount))*b.cfg.CommissionPerShare, b.cfg.MinCommission)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int64) int64 {
	if n < 0 {
		return -1
	}
	return 1
}
