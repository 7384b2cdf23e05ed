package creator

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"strata/internal/artifact"
	"strata/internal/registry"
	"strata/internal/testutil"
)

// fakeImpl is a test implementation whose materialized state comes from a
// shared source slice, simulating an external data source that can change
// between runs.
type fakeImpl struct {
	artifact.Base
	source        *[][]byte // nil for kinds with no external content
	contentInHash bool
	state         []byte
	materialized  bool
}

func (f *fakeImpl) Materialize(ctx context.Context) error {
	f.materialized = true
	if f.source != nil && len(*f.source) > 0 {
		f.state = (*f.source)[len(*f.source)-1]
	} else if f.state == nil {
		f.state = []byte("fitted:" + f.RegisteredName() + ":" + f.Name())
	}
	return nil
}

func (f *fakeImpl) Hash() (string, error) {
	if f.contentInHash {
		return artifact.Fingerprint(f.RegisteredName(), f.Config(), f.DependencyHash(), f.state)
	}
	return f.Base.Hash()
}

func (f *fakeImpl) Snapshot() ([]byte, error) { return f.state, nil }

func (f *fakeImpl) Restore(payload []byte) error {
	f.state = payload
	f.materialized = true
	return nil
}

// fakeConstructor builds a registry constructor for fakeImpl. source and
// contentInHash model dataset kinds whose identity includes loaded content.
func fakeConstructor(registeredName string, source *[][]byte, contentInHash bool) registry.Constructor {
	return func(name string, cfg artifact.Config) (artifact.Implementation, error) {
		return &fakeImpl{
			Base:          artifact.NewBase(registeredName, name, cfg),
			source:        source,
			contentInHash: contentInHash,
		}, nil
	}
}

// testFixture bundles a chain over a real store with one fake implementation
// registered per kind.
type testFixture struct {
	chain    *Chain
	store    artifact.Store
	registry *registry.Registry

	// rawSource backs the raw dataset implementation; appending simulates the
	// upstream data changing.
	rawSource [][]byte
}

func newTestFixture(t *testing.T, opts ...Option) *testFixture {
	t.Helper()

	f := &testFixture{
		store:     testutil.NewTestStore(t),
		registry:  registry.New(),
		rawSource: [][]byte{[]byte("rows-v1")},
	}

	require.NoError(t, f.registry.Register("csv_loader", fakeConstructor("csv_loader", &f.rawSource, true)))
	require.NoError(t, f.registry.Register("splitter", fakeConstructor("splitter", nil, false)))
	require.NoError(t, f.registry.Register("split_dataset", fakeConstructor("split_dataset", nil, true)))
	require.NoError(t, f.registry.Register("feature_pipeline", fakeConstructor("feature_pipeline", nil, false)))
	require.NoError(t, f.registry.Register("xgboost_model", fakeConstructor("xgboost_model", nil, false)))
	require.NoError(t, f.registry.Register("accuracy_metric", fakeConstructor("accuracy_metric", nil, false)))

	f.chain = NewChain(f.store, f.registry, opts...)
	t.Cleanup(f.chain.Close)
	return f
}

// buildChain creates one artifact of every kind bottom-up, passing each result
// as the explicit dependency of the next. Returns results keyed by kind.
func (f *testFixture) buildChain(t *testing.T) map[artifact.Kind]*Result {
	t.Helper()
	ctx := context.Background()

	registered := map[artifact.Kind]string{
		artifact.KindRawDataset:         "csv_loader",
		artifact.KindDatasetPipeline:    "splitter",
		artifact.KindProcessedDataset:   "split_dataset",
		artifact.KindProductionPipeline: "feature_pipeline",
		artifact.KindModel:              "xgboost_model",
		artifact.KindMetric:             "accuracy_metric",
	}

	results := make(map[artifact.Kind]*Result)
	var dep *Result
	for _, kind := range artifact.Kinds() {
		res, err := f.chain.RetrieveOrCreate(ctx, kind, Request{
			RegisteredName: registered[kind],
			Name:           "e2e-" + kind.String(),
			Dependency:     dep,
		})
		require.NoError(t, err, "building %s", kind)
		results[kind] = res
		dep = res
	}
	return results
}

// countingStore wraps a Store and counts payload loads, for asserting cache
// behavior.
type countingStore struct {
	artifact.Store
	loads atomic.Int64
}

func (s *countingStore) LoadPayload(ctx context.Context, rec *artifact.Record) ([]byte, error) {
	s.loads.Add(1)
	return s.Store.LoadPayload(ctx, rec)
}
