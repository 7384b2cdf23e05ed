package artifact

import (
	"time"

	"github.com/google/uuid"
)

// Record represents the persisted identity of one artifact. All fields are
// unexported to enforce encapsulation; use the constructor and getter methods
// to access data. Records are never mutated after persistence — a new version
// is created instead.
type Record struct {
	id             int64
	guid           string
	kind           Kind
	name           string
	version        int
	registeredName string
	hash           string
	dependencyID   *int64

	author             string
	versionDescription string
	metadata           map[string]any

	createdAt time.Time
}

// NewRecord creates a new unpersisted Record. The ID is left as zero and the
// version unassigned; both are set by the persistence layer. The GUID is
// assigned immediately so payload files can reference the record before it is
// persisted.
func NewRecord(kind Kind, name, registeredName, hash string, dependencyID *int64) *Record {
	return &Record{
		id:             0,
		guid:           uuid.NewString(),
		kind:           kind,
		name:           name,
		version:        0,
		registeredName: registeredName,
		hash:           hash,
		dependencyID:   dependencyID,
		author:         "default",
		createdAt:      time.Now(),
	}
}

// ReconstituteRecord rebuilds a Record from persisted state. Intended for use
// by repository implementations only.
func ReconstituteRecord(
	id int64,
	guid string,
	kind Kind,
	name string,
	version int,
	registeredName string,
	hash string,
	dependencyID *int64,
	author string,
	versionDescription string,
	metadata map[string]any,
	createdAt time.Time,
) *Record {
	return &Record{
		id:                 id,
		guid:               guid,
		kind:               kind,
		name:               name,
		version:            version,
		registeredName:     registeredName,
		hash:               hash,
		dependencyID:       dependencyID,
		author:             author,
		versionDescription: versionDescription,
		metadata:           metadata,
		createdAt:          createdAt,
	}
}

// ID returns the internal database ID, or 0 for unpersisted records.
func (r *Record) ID() int64 { return r.id }

// GUID returns the globally unique identifier assigned at construction.
func (r *Record) GUID() string { return r.guid }

// Kind returns the artifact kind.
func (r *Record) Kind() Kind { return r.kind }

// Name returns the caller-chosen human-readable identifier.
func (r *Record) Name() string { return r.name }

// Version returns the monotonically increasing version within (kind, name),
// or 0 for unpersisted records.
func (r *Record) Version() int { return r.version }

// RegisteredName returns the registry key of the implementation that produced
// this artifact.
func (r *Record) RegisteredName() string { return r.registeredName }

// Hash returns the deterministic content fingerprint.
func (r *Record) Hash() string { return r.hash }

// DependencyID returns the record ID of the immediate dependency, or nil for
// the leaf kind.
func (r *Record) DependencyID() *int64 { return r.dependencyID }

// Author returns the record author.
func (r *Record) Author() string { return r.author }

// VersionDescription returns the free-form description of what changed in
// this version.
func (r *Record) VersionDescription() string { return r.versionDescription }

// Metadata returns the free-form metadata map. May be nil.
func (r *Record) Metadata() map[string]any { return r.metadata }

// CreatedAt returns the record creation time.
func (r *Record) CreatedAt() time.Time { return r.createdAt }

// SetID assigns the database ID after insertion. Intended for use by
// repository implementations only.
func (r *Record) SetID(id int64) { r.id = id }

// SetVersion assigns the allocated version after insertion. Intended for use
// by repository implementations only.
func (r *Record) SetVersion(version int) { r.version = version }

// SetAuthor overrides the default author prior to persistence.
func (r *Record) SetAuthor(author string) {
	if author != "" {
		r.author = author
	}
}

// SetVersionDescription sets the version description prior to persistence.
func (r *Record) SetVersionDescription(desc string) { r.versionDescription = desc }

// SetMetadata replaces the free-form metadata map prior to persistence.
func (r *Record) SetMetadata(md map[string]any) { r.metadata = md }
