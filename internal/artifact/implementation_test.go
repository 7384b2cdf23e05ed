package artifact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubImpl is a minimal Implementation for exercising Base.
type stubImpl struct {
	Base
	content []byte
}

func (s *stubImpl) Materialize(ctx context.Context) error { return nil }
func (s *stubImpl) Snapshot() ([]byte, error)             { return s.content, nil }
func (s *stubImpl) Restore(payload []byte) error {
	s.content = payload
	return nil
}

func TestBaseHashDefaultsToLeaf(t *testing.T) {
	impl := &stubImpl{Base: NewBase("loader", "housing", Config{"path": "/data"})}

	h, err := impl.Hash()
	require.NoError(t, err)

	expected, err := Fingerprint("loader", Config{"path": "/data"}, LeafDependencyHash)
	require.NoError(t, err)
	require.Equal(t, expected, h)
}

func TestBaseAttachDependencyFoldsHash(t *testing.T) {
	dep := &stubImpl{Base: NewBase("loader", "housing", nil)}
	depHash, err := dep.Hash()
	require.NoError(t, err)

	impl := &stubImpl{Base: NewBase("normalizer", "pipe", Config{"scale": true})}
	require.NoError(t, impl.AttachDependency(dep))
	require.Equal(t, depHash, impl.DependencyHash())

	h, err := impl.Hash()
	require.NoError(t, err)
	expected, err := Fingerprint("normalizer", Config{"scale": true}, depHash)
	require.NoError(t, err)
	require.Equal(t, expected, h)
}

func TestBaseAttachNilDependency(t *testing.T) {
	impl := &stubImpl{Base: NewBase("loader", "housing", nil)}
	require.NoError(t, impl.AttachDependency(nil))
	require.Equal(t, LeafDependencyHash, impl.DependencyHash())
}

func TestBaseSetDependencyHashOverrides(t *testing.T) {
	// A dependency loaded from the store may recompute a different hash than
	// its record; pinning the record hash keeps dependents stable.
	dep := &stubImpl{Base: NewBase("loader", "housing", nil)}

	impl := &stubImpl{Base: NewBase("pipe", "p", nil)}
	require.NoError(t, impl.AttachDependency(dep))
	impl.SetDependencyHash("persisted-hash")
	require.Equal(t, "persisted-hash", impl.DependencyHash())

	h, err := impl.Hash()
	require.NoError(t, err)
	expected, err := Fingerprint("pipe", nil, "persisted-hash")
	require.NoError(t, err)
	require.Equal(t, expected, h)

	// Empty values are ignored rather than clearing the pin.
	impl.SetDependencyHash("")
	require.Equal(t, "persisted-hash", impl.DependencyHash())
}

func TestBaseDependencyChangesHash(t *testing.T) {
	depA := &stubImpl{Base: NewBase("loader", "a", Config{"path": "/a"})}
	depB := &stubImpl{Base: NewBase("loader", "b", Config{"path": "/b"})}

	implA := &stubImpl{Base: NewBase("pipe", "p", nil)}
	require.NoError(t, implA.AttachDependency(depA))
	hashA, err := implA.Hash()
	require.NoError(t, err)

	implB := &stubImpl{Base: NewBase("pipe", "p", nil)}
	require.NoError(t, implB.AttachDependency(depB))
	hashB, err := implB.Hash()
	require.NoError(t, err)

	require.NotEqual(t, hashA, hashB)
}
