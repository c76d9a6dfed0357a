package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blotterkit/internal/registry"
)

func TestCollector_ObservesRegistry(t *testing.T) {
	t.Parallel()
	c := New(Config{})
	reg := registry.New[string]("widget", nil, registry.WithObserver(c))

	reg.MustRegister("a", "A")
	reg.MustRegister("b", "B")
	require.NoError(t, reg.Unregister("b"))
	_, _ = reg.Load("a")
	_, _ = reg.Load("typo-1")
	_, _ = reg.Load("typo-2")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.registrations.WithLabelValues("widget")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.removals.WithLabelValues("widget")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.entries.WithLabelValues("widget")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.lookups.WithLabelValues("widget", "a", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.lookups.WithLabelValues("widget", "", "false")))
}

func TestNew_UsesProvidedRegistry(t *testing.T) {
	t.Parallel()
	promReg := prometheus.NewRegistry()
	c := New(Config{Namespace: "test", Registry: promReg})
	assert.Same(t, promReg, c.Registry())

	c.Registered("blotter", "x")
	families, err := promReg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "test_catalog_registrations_total")
	assert.Contains(t, names, "test_catalog_entries")
}
