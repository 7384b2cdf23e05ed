package artifact

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// ErrUniquenessConflict is returned by Store.Persist when a concurrent
	// writer already claimed the same (kind, name, version). Creators recover
	// from it by re-querying; it is not surfaced to callers under normal
	// operation.
	ErrUniquenessConflict = errors.New("artifact version already exists")

	// ErrMissingDependency is returned when a required prerequisite artifact
	// cannot be resolved to an existing record and none was supplied.
	ErrMissingDependency = errors.New("required dependency artifact not found")

	// ErrUnregisteredImplementation is returned when a registered name has no
	// bound implementation in the type registry.
	ErrUnregisteredImplementation = errors.New("implementation not registered")
)

// NotFoundError indicates no record matched a lookup.
type NotFoundError struct {
	Kind Kind
	Name string
	ID   int64
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s id=%d not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
