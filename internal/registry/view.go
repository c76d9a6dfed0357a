package registry

import (
	"fmt"
	"iter"
	"sort"
)

// View is a read-only projection of a Registry. Reads always reflect the
// catalog's current contents. Set and Delete exist for callers that treat the
// view as a map; they always fail with ErrImmutable.
type View[T any] struct {
	r *Registry[T]
}

// Get returns the implementation registered under name.
func (v *View[T]) Get(name string) (T, bool) {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()
	impl, ok := v.r.entries[name]
	return impl, ok
}

// Has reports whether name is registered.
func (v *View[T]) Has(name string) bool {
	_, ok := v.Get(name)
	return ok
}

// Len returns the number of registered implementations.
func (v *View[T]) Len() int {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()
	return len(v.r.entries)
}

// Names returns all registered names in sorted order.
func (v *View[T]) Names() []string {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()
	return v.r.sortedNamesLocked()
}

// Snapshot returns a copy of the catalog. Changing the returned map has no
// effect on the registry.
func (v *View[T]) Snapshot() map[string]T {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()
	out := make(map[string]T, len(v.r.entries))
	for name, impl := range v.r.entries {
		out[name] = impl
	}
	return out
}

// All iterates over a consistent snapshot of the catalog in name order. The
// lock is not held while yielding, so the loop body may use the registry.
func (v *View[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		snap := v.Snapshot()
		names := make([]string, 0, len(snap))
		for name := range snap {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !yield(name, snap[name]) {
				return
			}
		}
	}
}

// Set always fails with ErrImmutable.
func (v *View[T]) Set(name string, _ T) error {
	return fmt.Errorf("cannot set %s %q: %w", v.r.kind, name, ErrImmutable)
}

// Delete always fails with ErrImmutable.
func (v *View[T]) Delete(name string) error {
	return fmt.Errorf("cannot delete %s %q: %w", v.r.kind, name, ErrImmutable)
}
