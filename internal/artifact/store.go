package artifact

import "context"

// Filters describes a store lookup. Zero values mean "not filtered on".
// Which combination is populated is decided by each creator's filter policy:
// (name, version) for direct lookups, (name, registered name, hash) for
// strict content matching, (name, registered name) or (name, dependency id)
// for loose matching.
type Filters struct {
	Name           string
	Version        int
	RegisteredName string
	Hash           string
	DependencyID   int64
}

// Store defines the persistence interface for artifact records.
// Implementations may use SQLite, in-memory storage, or other backends that
// provide filtering, version ordering, and uniqueness enforcement.
type Store interface {
	// Find returns records of the given kind matching the filters, ordered
	// by version descending (newest first). An empty result is not an error.
	Find(ctx context.Context, kind Kind, filters Filters) ([]*Record, error)

	// FindByID retrieves a single record by kind and internal ID.
	// Returns a NotFoundError if no matching record exists.
	FindByID(ctx context.Context, kind Kind, id int64) (*Record, error)

	// Persist inserts a new record with its payload. When the record has no
	// explicit version, the store allocates max(version)+1 within
	// (kind, name) transactionally and sets it, along with the ID, on the
	// record. A racing duplicate of (kind, name, version) or of the content
	// identity (kind, name, registered name, hash) fails with
	// ErrUniquenessConflict rather than overwriting.
	Persist(ctx context.Context, rec *Record, payload []byte) error

	// LoadPayload returns the opaque materialized payload of a persisted
	// record.
	LoadPayload(ctx context.Context, rec *Record) ([]byte, error)

	// Close releases any resources held by the store.
	Close() error
}
