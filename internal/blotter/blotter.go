package blotter

import (
	"context"
	"errors"
	"fmt"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusOpen      Status = "open"
	StatusFilled    Status = "filled"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// ErrUnknownOrder is returned when an order id is not known to a blotter.
var ErrUnknownOrder = errors.New("unknown order")

// Order is a request to trade Amount units of Asset. A positive amount buys,
// a negative amount sells.
type Order struct {
	ID     string
	Asset  string
	Amount int64
	// Limit and Stop are optional trigger prices.
	Limit *float64
	Stop  *float64

	Status Status
	Filled int64
	Reason string
}

// Open reports whether the order can still be filled or cancelled.
func (o *Order) Open() bool {
	return o.Status == StatusOpen
}

// Remaining is the signed amount still to be filled.
func (o *Order) Remaining() int64 {
	return o.Amount - o.Filled
}

// Validate checks the fields a caller must supply before submitting.
func (o *Order) Validate() error {
	if o.Asset == "" {
		return errors.New("order asset must not be empty")
	}
	if o.Amount == 0 {
		return fmt.Errorf("order for %s has zero amount", o.Asset)
	}
	if o.Limit != nil && *o.Limit <= 0 {
		return fmt.Errorf("order for %s has non-positive limit price %v", o.Asset, *o.Limit)
	}
	if o.Stop != nil && *o.Stop <= 0 {
		return fmt.Errorf("order for %s has non-positive stop price %v", o.Asset, *o.Stop)
	}
	return nil
}

// Transaction records a (possibly partial) fill of an order.
type Transaction struct {
	OrderID    string
	Asset      string
	Amount     int64
	Price      float64
	Commission float64
}

// Blotter is the capability every registered implementation provides.
type Blotter interface {
	// Order submits a new order and returns its id.
	Order(ctx context.Context, order Order) (string, error)
	// Cancel cancels an open order. Cancelling an order that is no longer
	// open is a no-op.
	Cancel(ctx context.Context, id string) error
	// CancelAll cancels every open order for asset.
	CancelAll(ctx context.Context, asset string) error
	// OpenOrders returns the open orders for asset, or all open orders when
	// asset is empty.
	OpenOrders(asset string) []Order
	// Orders returns every order the blotter has seen, in submission order.
	Orders() []Order
	// Fill matches open orders against prices and returns the resulting
	// transactions.
	Fill(ctx context.Context, prices map[string]float64) ([]Transaction, error)
}
