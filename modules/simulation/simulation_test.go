package simulation

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blotterkit/internal/blotter"
	"github.com/vk/blotterkit/internal/registry"
)

// newTestBlotter returns a blotter with sequential ids "o1", "o2", ...
func newTestBlotter(cfg Config) *Blotter {
	b := NewWithConfig(cfg)
	n := 0
	b.newID = func() string {
		n++
		return fmt.Sprintf("o%d", n)
	}
	return b
}

func price(f float64) *float64 { return &f }

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestModule_Register(t *testing.T) {
	t.Parallel()
	c := blotter.NewCatalog()
	require.NoError(t, (&Module{}).Register(c))
	assert.Equal(t, []string{Name}, c.View().Names())

	err := (&Module{}).Register(c)
	assert.ErrorIs(t, err, registry.ErrDuplicateName)
}

func TestNew_Options(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b, err := New(ctx, blotter.MustOptions(map[string]any{"slippage_bps": 10, "max_volume": 50}))
	require.NoError(t, err)
	sim := b.(*Blotter)
	assert.Equal(t, 10.0, sim.cfg.SlippageBps)
	assert.Equal(t, int64(50), sim.cfg.MaxVolume)
	assert.Equal(t, DefaultConfig().CommissionPerShare, sim.cfg.CommissionPerShare)

	_, err = New(ctx, blotter.MustOptions(map[string]any{"slippage_bps": -1}))
	assert.ErrorContains(t, err, "slippage_bps must not be negative")

	_, err = New(ctx, blotter.MustOptions(map[string]any{"spread": 1}))
	assert.ErrorContains(t, err, "unsupported options: spread")
}

func TestOrder_AssignsUUID(t *testing.T) {
	t.Parallel()
	b := NewWithConfig(DefaultConfig())

	id, err := b.Order(context.Background(), blotter.Order{Asset: "AAPL", Amount: 1})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestOrder_Invalid(t *testing.T) {
	t.Parallel()
	b := newTestBlotter(DefaultConfig())

	_, err := b.Order(context.Background(), blotter.Order{Asset: "AAPL"})
	assert.Error(t, err)
	assert.Empty(t, b.Orders())
}

func TestOrder_CancelledContext(t *testing.T) {
	t.Parallel()
	b := newTestBlotter(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Order(ctx, blotter.Order{Asset: "AAPL", Amount: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFill_MarketOrders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestBlotter(Config{SlippageBps: 10, CommissionPerShare: 0.01, MinCommission: 1})

	_, err := b.Order(ctx, blotter.Order{Asset: "AAPL", Amount: 200})
	require.NoError(t, err)
	_, err = b.Order(ctx, blotter.Order{Asset: "MSFT", Amount: -50})
	require.NoError(t, err)
	_, err = b.Order(ctx, blotter.Order{Asset: "TSLA", Amount: 10})
	require.NoError(t, err)

	txns, err := b.Fill(ctx, map[string]float64{"AAPL": 100, "MSFT": 400})
	require.NoError(t, err)

	want := []blotter.Transaction{
		{OrderID: "o1", Asset: "AAPL", Amount: 200, Price: 100.1, Commission: 2},
		{OrderID: "o2", Asset: "MSFT", Amount: -50, Price: 399.6, Commission: 1},
	}
	if diff := cmp.Diff(want, txns, approx); diff != "" {
		t.Errorf("transactions mismatch (-want +got):\n%s", diff)
	}

	open := b.OpenOrders("")
	require.Len(t, open, 1)
	assert.Equal(t, "TSLA", open[0].Asset)

	orders := b.Orders()
	assert.Equal(t, blotter.StatusFilled, orders[0].Status)
	assert.Equal(t, int64(200), orders[0].Filled)
}

func TestFill_LimitOrders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestBlotter(Config{SlippageBps: 100})

	_, err := b.Order(ctx, blotter.Order{Asset: "AAPL", Amount: 10, Limit: price(99)})
	require.NoError(t, err)
	_, err = b.Order(ctx, blotter.Order{Asset: "AAPL", Amount: -10, Limit: price(101)})
	require.NoError(t, err)

	// Neither limit is reached.
	txns, err := b.Fill(ctx, map[string]float64{"AAPL": 100})
	require.NoError(t, err)
	assert.Empty(t, txns)

	// The buy limit is reached; slippage would push past it, so it is clamped.
	txns, err = b.Fill(ctx, map[string]float64{"AAPL": 98.5})
	require.NoError(t, err)
	want := []blotter.Transaction{{OrderID: "o1", Asset: "AAPL", Amount: 10, Price: 99}}
	if diff := cmp.Diff(want, txns, approx); diff != "" {
		t.Errorf("transactions mismatch (-want +got):\n%s", diff)
	}

	// The sell limit is reached.
	txns, err = b.Fill(ctx, map[string]float64{"AAPL": 105})
	require.NoError(t, err)
	want = []blotter.Transaction{{OrderID: "o2", Asset: "AAPL", Amount: -10, Price: 103.95}}
	if diff := cmp.Diff(want, txns, approx); diff != "" {
		t.Errorf("transactions mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, b.OpenOrders("AAPL"))
}

func TestFill_StopOrderLatches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestBlotter(Config{MaxVolume: 5})

	_, err := b.Order(ctx, blotter.Order{Asset: "AAPL", Amount: -10, Stop: price(90)})
	require.NoError(t, err)

	txns, err := b.Fill(ctx, map[string]float64{"AAPL": 95})
	require.NoError(t, err)
	assert.Empty(t, txns, "stop not crossed")

	txns, err = b.Fill(ctx, map[string]float64{"AAPL": 89})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, int64(-5), txns[0].Amount)

	// Price recovers above the stop, but the triggered order keeps filling.
	txns, err = b.Fill(ctx, map[string]float64{"AAPL": 95})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, int64(-5), txns[0].Amount)

	assert.Equal(t, blotter.StatusFilled, b.Orders()[0].Status)
}

func TestCancel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestBlotter(DefaultConfig())

	id, err := b.Order(ctx, blotter.Order{Asset: "AAPL", Amount: 10})
	require.NoError(t, err)
	_, err = b.Order(ctx, blotter.Order{Asset: "AAPL", Amount: 20})
	require.NoError(t, err)
	_, err = b.Order(ctx, blotter.Order{Asset: "MSFT", Amount: 30})
	require.NoError(t, err)

	require.NoError(t, b.Cancel(ctx, id))
	assert.ErrorIs(t, b.Cancel(ctx, "missing"), blotter.ErrUnknownOrder)
	require.Len(t, b.OpenOrders("AAPL"), 1)

	require.NoError(t, b.CancelAll(ctx, "AAPL"))
	assert.Empty(t, b.OpenOrders("AAPL"))

	txns, err := b.Fill(ctx, map[string]float64{"AAPL": 10, "MSFT": 10})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "MSFT", txns[0].Asset)
}
