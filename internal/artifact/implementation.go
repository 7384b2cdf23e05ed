package artifact

import "context"

// Implementation is the capability set user-supplied artifact logic must
// fulfil to participate in the creation framework. The framework treats the
// materialized state as opaque: it only moves payload bytes between the store
// and Snapshot/Restore.
type Implementation interface {
	// RegisteredName returns the registry key this implementation was
	// constructed under.
	RegisteredName() string

	// Name returns the caller-chosen artifact name.
	Name() string

	// Config returns the declared constructor parameters.
	Config() Config

	// AttachDependency binds the resolved upstream implementation. The
	// dependency's hash is folded into this implementation's fingerprint.
	// Leaf implementations return nil without effect.
	AttachDependency(dep Implementation) error

	// SetDependencyHash pins the upstream fingerprint folded into this
	// implementation's hash. A dependency loaded from the store carries only
	// its payload, so recomputing its hash from the instance would drift from
	// the persisted value; the creation framework pins the record hash here
	// after attaching the dependency.
	SetDependencyHash(hash string)

	// Materialize builds the artifact's state: load for datasets, fit for
	// pipelines and models, score for metrics. Long-running; honors ctx.
	Materialize(ctx context.Context) error

	// Hash computes the deterministic content fingerprint. For most kinds
	// this derives purely from configuration and the dependency hash; dataset
	// kinds additionally fold in materialized content, so Materialize must
	// run first for them.
	Hash() (string, error)

	// Snapshot serializes the materialized state for persistence.
	Snapshot() ([]byte, error)

	// Restore rehydrates the materialized state from a persisted payload.
	Restore(payload []byte) error
}

// Base carries the identity fields shared by every implementation and
// provides the default configuration-plus-dependency fingerprint. Embed it
// and override Hash only when content must participate in identity (dataset
// kinds).
type Base struct {
	registeredName string
	name           string
	cfg            Config
	depHash        string
}

// NewBase constructs the embedded identity for an implementation.
func NewBase(registeredName, name string, cfg Config) Base {
	return Base{
		registeredName: registeredName,
		name:           name,
		cfg:            cfg,
		depHash:        LeafDependencyHash,
	}
}

// RegisteredName returns the registry key.
func (b *Base) RegisteredName() string { return b.registeredName }

// Name returns the artifact name.
func (b *Base) Name() string { return b.name }

// Config returns the declared configuration.
func (b *Base) Config() Config { return b.cfg }

// AttachDependency records the dependency's hash for fingerprinting.
func (b *Base) AttachDependency(dep Implementation) error {
	if dep == nil {
		return nil
	}
	h, err := dep.Hash()
	if err != nil {
		return err
	}
	b.depHash = h
	return nil
}

// DependencyHash returns the attached dependency's hash, or the leaf sentinel
// when no dependency has been attached.
func (b *Base) DependencyHash() string { return b.depHash }

// SetDependencyHash overrides the dependency hash with an authoritative value,
// typically the persisted record hash of the resolved dependency.
func (b *Base) SetDependencyHash(hash string) {
	if hash != "" {
		b.depHash = hash
	}
}

// Hash returns the default fingerprint over registered name, configuration,
// and dependency hash.
func (b *Base) Hash() (string, error) {
	return Fingerprint(b.registeredName, b.cfg, b.depHash)
}
