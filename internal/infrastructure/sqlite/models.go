package sqlite

import (
	"encoding/json"
	"time"

	"strata/internal/artifact"
)

// ArtifactModel represents the database row for the artifacts table.
// Fields map directly to SQL columns with Unix timestamps for time values;
// the payload column is handled separately from the row model.
type ArtifactModel struct {
	ID                 int64
	GUID               string
	Kind               string
	Name               string
	Version            int64
	RegisteredName     string
	Hash               string
	DependencyID       *int64  // nullable, leaf kind has none
	Author             string
	VersionDescription string
	Metadata           *string // nullable, JSON encoded
	CreatedAt          int64   // Unix timestamp
}

// toArtifactModel converts a domain Record entity to a database ArtifactModel.
func toArtifactModel(rec *artifact.Record) *ArtifactModel {
	m := &ArtifactModel{
		ID:                 rec.ID(),
		GUID:               rec.GUID(),
		Kind:               rec.Kind().String(),
		Name:               rec.Name(),
		Version:            int64(rec.Version()),
		RegisteredName:     rec.RegisteredName(),
		Hash:               rec.Hash(),
		DependencyID:       rec.DependencyID(),
		Author:             rec.Author(),
		VersionDescription: rec.VersionDescription(),
		CreatedAt:          rec.CreatedAt().Unix(),
	}
	if md := rec.Metadata(); len(md) > 0 {
		if encoded, err := json.Marshal(md); err == nil {
			s := string(encoded)
			m.Metadata = &s
		}
	}
	return m
}

// toDomain converts a database ArtifactModel to a domain Record entity.
func (m *ArtifactModel) toDomain() *artifact.Record {
	var metadata map[string]any
	if m.Metadata != nil {
		_ = json.Unmarshal([]byte(*m.Metadata), &metadata)
	}
	return artifact.ReconstituteRecord(
		m.ID,
		m.GUID,
		artifact.Kind(m.Kind),
		m.Name,
		int(m.Version),
		m.RegisteredName,
		m.Hash,
		m.DependencyID,
		m.Author,
		m.VersionDescription,
		metadata,
		time.Unix(m.CreatedAt, 0),
	)
}
