package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
)

// Contract validates a candidate before it is stored. A non-nil error rejects
// the candidate.
type Contract[T any] func(candidate T) error

// Observer receives a notification after every successful mutation and after
// every lookup. Implementations must not call back into the registry.
type Observer interface {
	Registered(kind, name string)
	Unregistered(kind, name string)
	Loaded(kind, name string, found bool)
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	observer Observer
	logger   *slog.Logger
}

// WithObserver attaches an Observer to the registry.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithLogger sets the logger used for debug output on successful mutations.
func WithLogger(l *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = l
	}
}

// Registry is a concurrency-safe catalog of implementations keyed by name.
type Registry[T any] struct {
	kind     string
	contract Contract[T]
	observer Observer
	logger   *slog.Logger

	mu      sync.RWMutex
	entries map[string]T
}

// New creates an empty Registry. kind names the capability in error messages
// and logs. A nil contract accepts every non-nil candidate.
func New[T any](kind string, contract Contract[T], opts ...Option) *Registry[T] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[T]{
		kind:     kind,
		contract: contract,
		observer: o.observer,
		logger:   o.logger,
		entries:  make(map[string]T),
	}
}

// Kind returns the capability name the registry was created with.
func (r *Registry[T]) Kind() string {
	return r.kind
}

// Register stores impl under name and returns impl unchanged. It fails with
// ErrDuplicateName if the name is taken and with ErrContractViolation if impl
// is rejected by the contract; in both cases the catalog is not modified.
func (r *Registry[T]) Register(name string, impl T) (T, error) {
	var zero T
	if name == "" {
		return zero, fmt.Errorf("%s: %w", r.kind, ErrInvalidName)
	}

	r.mu.RLock()
	_, exists := r.entries[name]
	r.mu.RUnlock()
	if exists {
		return zero, &DuplicateNameError{Kind: r.kind, Name: name}
	}

	// The contract runs unlocked so it may consult the registry itself.
	if err := r.validate(name, impl); err != nil {
		return zero, err
	}

	r.mu.Lock()
	if _, exists := r.entries[name]; exists {
		r.mu.Unlock()
		return zero, &DuplicateNameError{Kind: r.kind, Name: name}
	}
	r.entries[name] = impl
	r.mu.Unlock()

	r.logger.Debug("Registered implementation.", "kind", r.kind, "name", name)
	if r.observer != nil {
		r.observer.Registered(r.kind, name)
	}
	return impl, nil
}

// Builder returns a function that registers its argument under name. It lets
// a definition attach itself to the catalog at the point where it is declared:
//
//	var New = reg.Builder("simulation")
//	factory, err := New(simulationFactory)
func (r *Registry[T]) Builder(name string) func(impl T) (T, error) {
	return func(impl T) (T, error) {
		return r.Register(name, impl)
	}
}

// MustRegister is like Register but panics on error. It is intended for
// module setup code where a failed registration is a programming error.
func (r *Registry[T]) MustRegister(name string, impl T) T {
	v, err := r.Register(name, impl)
	if err != nil {
		panic(err)
	}
	return v
}

// Unregister removes name from the catalog. It returns ErrNotFound if the
// name is not registered.
func (r *Registry[T]) Unregister(name string) error {
	r.mu.Lock()
	if _, exists := r.entries[name]; !exists {
		names := r.sortedNamesLocked()
		r.mu.Unlock()
		return &NotFoundError{Kind: r.kind, Name: name, Options: names}
	}
	delete(r.entries, name)
	r.mu.Unlock()

	r.logger.Debug("Unregistered implementation.", "kind", r.kind, "name", name)
	if r.observer != nil {
		r.observer.Unregistered(r.kind, name)
	}
	return nil
}

// Load returns the implementation registered under name. On a miss the
// returned *NotFoundError lists every currently valid name.
func (r *Registry[T]) Load(name string) (T, error) {
	r.mu.RLock()
	impl, ok := r.entries[name]
	var names []string
	if !ok {
		names = r.sortedNamesLocked()
	}
	r.mu.RUnlock()

	if r.observer != nil {
		r.observer.Loaded(r.kind, name, ok)
	}
	if !ok {
		var zero T
		return zero, &NotFoundError{Kind: r.kind, Name: name, Options: names}
	}
	return impl, nil
}

// View returns a live read-only projection of the catalog.
func (r *Registry[T]) View() *View[T] {
	return &View[T]{r: r}
}

func (r *Registry[T]) validate(name string, impl T) error {
	if isNil(impl) {
		return &ContractError{Kind: r.kind, Name: name, Reason: fmt.Errorf("nil %s", r.kind)}
	}
	if r.contract == nil {
		return nil
	}
	if err := r.contract(impl); err != nil {
		return &ContractError{Kind: r.kind, Name: name, Reason: err}
	}
	return nil
}

// sortedNamesLocked must be called with r.mu held.
func (r *Registry[T]) sortedNamesLocked() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isNil reports whether v is a nil interface or a typed nil of a nillable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
