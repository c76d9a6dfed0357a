// Package registry provides the catalog that maps string names to concrete
// implementations of a capability.
//
// Implementations are registered explicitly by the code that defines them and
// loaded later by name from code that has no compile-time knowledge of where
// they live. The registry validates every candidate against a Contract before
// storing it, refuses to overwrite an existing name, and hands out a read-only
// View for code that only needs to observe the catalog.
//
// A Registry is meant to be constructed once per process and passed to the
// code that needs it:
//
//	reg := registry.New[Factory]("blotter", contract)
//	reg.MustRegister("simulation", simulationFactory)
//
//	f, err := reg.Load("simulation")
//
// All operations are safe for concurrent use.
package registry
