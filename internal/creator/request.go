package creator

import (
	"errors"

	"strata/internal/artifact"
)

// ErrInvalidRequest indicates a request missing the fields its lookup policy
// requires (e.g. no registered name on a hash-based lookup).
var ErrInvalidRequest = errors.New("invalid artifact request")

// Request carries the explicit per-kind parameters for a retrieve-or-create
// call. Exactly one of Dependency and DependencyRequest may be set for
// non-leaf kinds; when neither is set, the dependency is resolved with an
// empty lookup, which fails unless such an artifact exists.
type Request struct {
	// RegisteredName selects the implementation in the type registry.
	// Required for every lookup except explicit-version and the metric
	// (name, model id) fast path.
	RegisteredName string

	// Name is the caller-chosen artifact name.
	Name string

	// Version, when positive, pins retrieval to (name, version) and skips
	// hashing entirely.
	Version int

	// Strict overrides the kind's default identity policy. Nil means use the
	// default: strict for dataset kinds, loose otherwise.
	Strict *bool

	// Config holds the implementation's declared constructor parameters.
	Config artifact.Config

	// Dependency supplies an already-resolved dependency artifact, bypassing
	// resolution entirely.
	Dependency *Result

	// DependencyRequest supplies lookup parameters for resolving the
	// dependency against its own creator. Ignored when Dependency is set.
	DependencyRequest *Request

	// DependencyID is the record ID of the dependency, used by the metric
	// fast path (name + model id) to skip hashing.
	DependencyID int64

	// Author and VersionDescription annotate the persisted record.
	Author             string
	VersionDescription string

	// Metadata carries free-form annotations persisted with the record. Not
	// part of the identity fingerprint.
	Metadata map[string]any
}

// strictOrDefault resolves the effective identity policy.
func (r Request) strictOrDefault(kindDefault bool) bool {
	if r.Strict != nil {
		return *r.Strict
	}
	return kindDefault
}

// Result pairs a persisted record with its loaded implementation instance.
type Result struct {
	Record *artifact.Record
	Impl   artifact.Implementation
}

// Event is published on the chain's broker for every retrieve-or-create
// outcome.
type Event struct {
	Kind   artifact.Kind
	Record *artifact.Record
}
