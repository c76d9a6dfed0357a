package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidName is returned when a name is empty.
	ErrInvalidName = errors.New("invalid name")
	// ErrDuplicateName is returned by Register when the name is already taken.
	ErrDuplicateName = errors.New("name already registered")
	// ErrContractViolation is returned by Register when a candidate does not
	// satisfy the registry's contract.
	ErrContractViolation = errors.New("contract violation")
	// ErrNotFound is returned by Load and Unregister for unknown names.
	ErrNotFound = errors.New("name not registered")
	// ErrImmutable is returned by every write attempted through a View.
	ErrImmutable = errors.New("catalog view is read-only")
)

// DuplicateNameError reports an attempt to register a name twice.
type DuplicateNameError struct {
	Kind string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q is already registered", e.Kind, e.Name)
}

// Is reports whether target is ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// ContractError reports a candidate that failed validation. Reason holds the
// error returned by the contract, if any.
type ContractError struct {
	Kind   string
	Name   string
	Reason error
}

func (e *ContractError) Error() string {
	if e.Reason == nil {
		return fmt.Sprintf("%s %q does not satisfy the %s contract", e.Kind, e.Name, e.Kind)
	}
	return fmt.Sprintf("%s %q does not satisfy the %s contract: %v", e.Kind, e.Name, e.Kind, e.Reason)
}

// Is reports whether target is ErrContractViolation.
func (e *ContractError) Is(target error) bool {
	return target == ErrContractViolation
}

// Unwrap returns the contract's own error.
func (e *ContractError) Unwrap() error {
	return e.Reason
}

// NotFoundError reports a lookup or removal of an unknown name. Options lists
// every name registered at the time of the failure, sorted.
type NotFoundError struct {
	Kind    string
	Name    string
	Options []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s registered as %q, options are: [%s]", e.Kind, e.Name, quoteAll(e.Options))
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
