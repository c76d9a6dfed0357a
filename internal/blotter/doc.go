// Package blotter defines the order blotter capability and the catalog that
// blotter implementations register themselves into.
//
// A blotter accepts orders, tracks them while they are open, and turns them
// into transactions when Fill is called with the current prices. Concrete
// blotters live in the modules/ tree; each exposes a Module whose Register
// method adds one or more named Factory values to a Catalog. Callers pick an
// implementation by name with Open.
package blotter
