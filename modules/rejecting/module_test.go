package rejecting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blotterkit/internal/blotter"
)

func TestRejectingBlotter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := blotter.NewCatalog()
	require.NoError(t, (&Module{}).Register(c))

	b, err := blotter.Open(ctx, c, Name, blotter.MustOptions(map[string]any{"reason": "market closed"}))
	require.NoError(t, err)

	id, err := b.Order(ctx, blotter.Order{Asset: "AAPL", Amount: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Empty(t, b.OpenOrders(""))

	orders := b.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, blotter.StatusRejected, orders[0].Status)
	assert.Equal(t, "market closed", orders[0].Reason)

	txns, err := b.Fill(ctx, map[string]float64{"AAPL": 1})
	require.NoError(t, err)
	assert.Empty(t, txns)

	// Cancelling a rejected order is a no-op.
	require.NoError(t, b.Cancel(ctx, id))
	assert.Equal(t, blotter.StatusRejected, b.Orders()[0].Status)
}

func TestRejectingBlotter_DefaultReason(t *testing.T) {
	t.Parallel()
	b, err := New(context.Background(), blotter.Options{})
	require.NoError(t, err)

	_, err = b.Order(context.Background(), blotter.Order{Asset: "AAPL", Amount: -1})
	require.NoError(t, err)
	assert.Equal(t, "order routing disabled", b.Orders()[0].Reason)
}
