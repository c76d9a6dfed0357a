package blotter

import (
	"fmt"
	"sync"
)

// Book is a concurrency-safe ledger of orders kept in submission order. It
// holds the bookkeeping every blotter needs so implementations only decide
// how orders are accepted and filled.
type Book struct {
	mu     sync.Mutex
	orders []*Order
	byID   map[string]*Order
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{byID: make(map[string]*Order)}
}

// Add stores order. The id must be unique within the book.
func (b *Book) Add(order Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.byID[order.ID]; exists {
		return fmt.Errorf("order id %q already in book", order.ID)
	}
	o := order
	b.orders = append(b.orders, &o)
	b.byID[o.ID] = &o
	return nil
}

// Cancel marks the order cancelled if it is still open.
func (b *Book) Cancel(id, reason string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.byID[id]
	if !ok {
		return fmt.Errorf("cancel %q: %w", id, ErrUnknownOrder)
	}
	if o.Open() {
		o.Status = StatusCancelled
		o.Reason = reason
	}
	return nil
}

// CancelAll cancels every open order for asset and returns how many changed.
func (b *Book) CancelAll(asset, reason string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, o := range b.orders {
		if o.Asset == asset && o.Open() {
			o.Status = StatusCancelled
			o.Reason = reason
			n++
		}
	}
	return n
}

// Open returns copies of the open orders for asset, or all open orders when
// asset is empty.
func (b *Book) Open(asset string) []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Order
	for _, o := range b.orders {
		if o.Open() && (asset == "" || o.Asset == asset) {
			out = append(out, *o)
		}
	}
	return out
}

// All returns copies of every order in submission order.
func (b *Book) All() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Order, 0, len(b.orders))
	for _, o := range b.orders {
		out = append(out, *o)
	}
	return out
}

// Update runs fn on every open order under the book's lock. Changes fn makes
// to the order are kept.
func (b *Book) Update(fn func(o *Order)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range b.orders {
		if o.Open() {
			fn(o)
		}
	}
}
