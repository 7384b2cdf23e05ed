package artifact

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewRecordDefaults(t *testing.T) {
	rec := NewRecord(KindModel, "classifier", "xgboost_model", "abc123", nil)

	require.Equal(t, int64(0), rec.ID())
	require.Equal(t, 0, rec.Version())
	require.Equal(t, KindModel, rec.Kind())
	require.Equal(t, "classifier", rec.Name())
	require.Equal(t, "xgboost_model", rec.RegisteredName())
	require.Equal(t, "abc123", rec.Hash())
	require.Nil(t, rec.DependencyID())
	require.Equal(t, "default", rec.Author())
	require.WithinDuration(t, time.Now(), rec.CreatedAt(), time.Second)

	_, err := uuid.Parse(rec.GUID())
	require.NoError(t, err)
}

func TestNewRecordUniqueGUIDs(t *testing.T) {
	a := NewRecord(KindRawDataset, "d", "r", "h", nil)
	b := NewRecord(KindRawDataset, "d", "r", "h", nil)
	require.NotEqual(t, a.GUID(), b.GUID())
}

func TestRecordSetAuthor(t *testing.T) {
	rec := NewRecord(KindMetric, "accuracy", "acc_metric", "h", nil)

	rec.SetAuthor("")
	require.Equal(t, "default", rec.Author())

	rec.SetAuthor("trainer-7")
	require.Equal(t, "trainer-7", rec.Author())
}

func TestReconstituteRecord(t *testing.T) {
	depID := int64(9)
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	rec := ReconstituteRecord(
		42, "guid-1", KindProcessedDataset, "housing", 3, "split_dataset",
		"deadbeef", &depID, "alice", "refit with new split", map[string]any{"rows": 100}, created,
	)

	require.Equal(t, int64(42), rec.ID())
	require.Equal(t, "guid-1", rec.GUID())
	require.Equal(t, 3, rec.Version())
	require.Equal(t, &depID, rec.DependencyID())
	require.Equal(t, "alice", rec.Author())
	require.Equal(t, "refit with new split", rec.VersionDescription())
	require.Equal(t, map[string]any{"rows": 100}, rec.Metadata())
	require.Equal(t, created, rec.CreatedAt())
}
