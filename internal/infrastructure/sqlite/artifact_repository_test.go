package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"strata/internal/artifact"
)

func newTestStore(t *testing.T) artifact.Store {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db.ArtifactStore()
}

func persistRecord(t *testing.T, store artifact.Store, kind artifact.Kind, name, registeredName, hash string, depID *int64, payload []byte) *artifact.Record {
	t.Helper()
	rec := artifact.NewRecord(kind, name, registeredName, hash, depID)
	require.NoError(t, store.Persist(context.Background(), rec, payload))
	return rec
}

func TestNewDBCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "store.db")
	db, err := NewDB(path)
	require.NoError(t, err)
	require.Equal(t, path, db.Path())
	require.NoError(t, db.Close())
}

func TestReopenDatabaseKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	db, err := NewDB(path)
	require.NoError(t, err)
	rec := artifact.NewRecord(artifact.KindRawDataset, "housing", "csv_loader", "h1", nil)
	require.NoError(t, db.ArtifactStore().Persist(ctx, rec, []byte("rows")))
	require.NoError(t, db.Close())

	// The second open re-runs the migrator against an up-to-date schema.
	reopened, err := NewDB(path)
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.ArtifactStore().FindByID(ctx, artifact.KindRawDataset, rec.ID())
	require.NoError(t, err)
	require.Equal(t, rec.GUID(), found.GUID())

	payload, err := reopened.ArtifactStore().LoadPayload(ctx, found)
	require.NoError(t, err)
	require.Equal(t, []byte("rows"), payload)
}

func TestPersistAllocatesSequentialVersions(t *testing.T) {
	store := newTestStore(t)

	first := persistRecord(t, store, artifact.KindRawDataset, "housing", "csv_loader", "h1", nil, []byte("v1"))
	second := persistRecord(t, store, artifact.KindRawDataset, "housing", "csv_loader", "h2", nil, []byte("v2"))

	require.Equal(t, 1, first.Version())
	require.Equal(t, 2, second.Version())
	require.Greater(t, second.ID(), first.ID())
}

func TestVersionsIndependentPerKindAndName(t *testing.T) {
	store := newTestStore(t)

	a := persistRecord(t, store, artifact.KindRawDataset, "housing", "csv_loader", "h1", nil, nil)
	b := persistRecord(t, store, artifact.KindRawDataset, "prices", "csv_loader", "h2", nil, nil)
	c := persistRecord(t, store, artifact.KindModel, "housing", "xgb", "h3", nil, nil)

	require.Equal(t, 1, a.Version())
	require.Equal(t, 1, b.Version())
	require.Equal(t, 1, c.Version())
}

func TestFindOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Each refit produces new content, so every version carries its own hash.
	for _, hash := range []string{"h1", "h2", "h3"} {
		persistRecord(t, store, artifact.KindModel, "clf", "xgb", hash, nil, nil)
	}

	records, err := store.Find(ctx, artifact.KindModel, artifact.Filters{Name: "clf"})
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, 3, records[0].Version())
	require.Equal(t, 2, records[1].Version())
	require.Equal(t, 1, records[2].Version())
}

func TestFindFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dep := persistRecord(t, store, artifact.KindRawDataset, "raw", "csv_loader", "rh", nil, nil)
	depID := dep.ID()

	persistRecord(t, store, artifact.KindDatasetPipeline, "pipe", "splitter", "ph1", &depID, nil)
	persistRecord(t, store, artifact.KindDatasetPipeline, "pipe", "splitter", "ph2", &depID, nil)
	persistRecord(t, store, artifact.KindDatasetPipeline, "other", "splitter", "ph3", &depID, nil)

	t.Run("by name", func(t *testing.T) {
		records, err := store.Find(ctx, artifact.KindDatasetPipeline, artifact.Filters{Name: "pipe"})
		require.NoError(t, err)
		require.Len(t, records, 2)
	})

	t.Run("by hash", func(t *testing.T) {
		records, err := store.Find(ctx, artifact.KindDatasetPipeline, artifact.Filters{Hash: "ph2"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, 2, records[0].Version())
	})

	t.Run("by name and version", func(t *testing.T) {
		records, err := store.Find(ctx, artifact.KindDatasetPipeline, artifact.Filters{Name: "pipe", Version: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "ph1", records[0].Hash())
	})

	t.Run("by registered name", func(t *testing.T) {
		records, err := store.Find(ctx, artifact.KindDatasetPipeline, artifact.Filters{RegisteredName: "splitter"})
		require.NoError(t, err)
		require.Len(t, records, 3)
	})

	t.Run("by dependency id", func(t *testing.T) {
		records, err := store.Find(ctx, artifact.KindDatasetPipeline, artifact.Filters{DependencyID: depID})
		require.NoError(t, err)
		require.Len(t, records, 3)
	})

	t.Run("kind scoping", func(t *testing.T) {
		records, err := store.Find(ctx, artifact.KindModel, artifact.Filters{Name: "pipe"})
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("no match", func(t *testing.T) {
		records, err := store.Find(ctx, artifact.KindDatasetPipeline, artifact.Filters{Name: "ghost"})
		require.NoError(t, err)
		require.Empty(t, records)
	})
}

func TestFindByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := persistRecord(t, store, artifact.KindMetric, "accuracy", "acc", "mh", nil, nil)

	found, err := store.FindByID(ctx, artifact.KindMetric, rec.ID())
	require.NoError(t, err)
	require.Equal(t, rec.GUID(), found.GUID())
	require.Equal(t, rec.Hash(), found.Hash())

	_, err = store.FindByID(ctx, artifact.KindMetric, 9999)
	require.True(t, artifact.IsNotFound(err))
}

func TestPersistExplicitVersionConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	persistRecord(t, store, artifact.KindModel, "clf", "xgb", "h1", nil, nil)

	dup := artifact.NewRecord(artifact.KindModel, "clf", "xgb", "h2", nil)
	dup.SetVersion(1)
	err := store.Persist(ctx, dup, nil)
	require.ErrorIs(t, err, artifact.ErrUniquenessConflict)
}

func TestLoadPayloadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := []byte("serialized model weights")
	rec := persistRecord(t, store, artifact.KindModel, "clf", "xgb", "h", nil, payload)

	loaded, err := store.LoadPayload(ctx, rec)
	require.NoError(t, err)
	require.Equal(t, payload, loaded)
}

func TestLoadPayloadNotFound(t *testing.T) {
	store := newTestStore(t)

	ghost := artifact.NewRecord(artifact.KindModel, "ghost", "xgb", "h", nil)
	ghost.SetID(404)
	_, err := store.LoadPayload(context.Background(), ghost)
	require.True(t, artifact.IsNotFound(err))
}

func TestPersistRoundTripsAnnotations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := artifact.NewRecord(artifact.KindProcessedDataset, "housing", "split", "h", nil)
	rec.SetAuthor("alice")
	rec.SetVersionDescription("refit with new split")
	rec.SetMetadata(map[string]any{"rows": float64(100)})
	require.NoError(t, store.Persist(ctx, rec, nil))

	found, err := store.FindByID(ctx, artifact.KindProcessedDataset, rec.ID())
	require.NoError(t, err)
	require.Equal(t, "alice", found.Author())
	require.Equal(t, "refit with new split", found.VersionDescription())
	require.Equal(t, map[string]any{"rows": float64(100)}, found.Metadata())
}

func TestGUIDUniqueConstraint(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := persistRecord(t, store, artifact.KindRawDataset, "d", "r", "h", nil, nil)

	// Re-persisting the same record reuses its GUID and must be rejected.
	err := store.Persist(ctx, rec, nil)
	require.ErrorIs(t, err, artifact.ErrUniquenessConflict)
}
