package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"strata/internal/artifact"
)

// artifactColumns is the list of columns to select for artifact queries.
const artifactColumns = `id, guid, kind, name, version, registered_name, hash, dependency_id,
	author, version_description, metadata, created_at`

// artifactStore implements artifact.Store using SQLite.
type artifactStore struct {
	db *sql.DB
}

// newArtifactStore creates a new artifactStore instance.
func newArtifactStore(db *sql.DB) *artifactStore {
	return &artifactStore{db: db}
}

// Ensure artifactStore implements artifact.Store.
var _ artifact.Store = (*artifactStore)(nil)

// scanArtifact scans a row into an ArtifactModel.
func scanArtifact(scanner interface{ Scan(...any) error }) (*ArtifactModel, error) {
	var model ArtifactModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Kind, &model.Name, &model.Version,
		&model.RegisteredName, &model.Hash, &model.DependencyID,
		&model.Author, &model.VersionDescription, &model.Metadata, &model.CreatedAt,
	)
	return &model, err
}

// Find returns records of the given kind matching the filters, newest version
// first. Filters with zero values are not applied.
func (s *artifactStore) Find(ctx context.Context, kind artifact.Kind, filters artifact.Filters) ([]*artifact.Record, error) {
	where := []string{"kind = ?"}
	args := []any{kind.String()}

	if filters.Name != "" {
		where = append(where, "name = ?")
		args = append(args, filters.Name)
	}
	if filters.Version > 0 {
		where = append(where, "version = ?")
		args = append(args, filters.Version)
	}
	if filters.RegisteredName != "" {
		where = append(where, "registered_name = ?")
		args = append(args, filters.RegisteredName)
	}
	if filters.Hash != "" {
		where = append(where, "hash = ?")
		args = append(args, filters.Hash)
	}
	if filters.DependencyID > 0 {
		where = append(where, "dependency_id = ?")
		args = append(args, filters.DependencyID)
	}

	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY version DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer rows.Close()

	var records []*artifact.Record
	for rows.Next() {
		model, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		records = append(records, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artifacts: %w", err)
	}
	return records, nil
}

// FindByID retrieves a single record by kind and internal ID.
func (s *artifactStore) FindByID(ctx context.Context, kind artifact.Kind, id int64) (*artifact.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+artifactColumns+` FROM artifacts WHERE kind = ? AND id = ?`,
		kind.String(), id,
	)
	model, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &artifact.NotFoundError{Kind: kind, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find artifact by id: %w", err)
	}
	return model.toDomain(), nil
}

// Persist inserts a new record and its payload. When no explicit version is
// set, the version is allocated as max(version)+1 within (kind, name) in the
// same statement. The UNIQUE (kind, name, version) and
// (kind, name, registered_name, hash) indexes turn racing duplicates into
// artifact.ErrUniquenessConflict.
func (s *artifactStore) Persist(ctx context.Context, rec *artifact.Record, payload []byte) error {
	model := toArtifactModel(rec)

	var row *sql.Row
	if model.Version > 0 {
		row = s.db.QueryRowContext(ctx,
			`INSERT INTO artifacts (
				guid, kind, name, version, registered_name, hash, dependency_id,
				author, version_description, metadata, payload, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id, version`,
			model.GUID, model.Kind, model.Name, model.Version, model.RegisteredName,
			model.Hash, model.DependencyID, model.Author, model.VersionDescription,
			model.Metadata, payload, model.CreatedAt,
		)
	} else {
		row = s.db.QueryRowContext(ctx,
			`INSERT INTO artifacts (
				guid, kind, name, version, registered_name, hash, dependency_id,
				author, version_description, metadata, payload, created_at
			) VALUES (?, ?, ?,
				COALESCE((SELECT MAX(version) FROM artifacts WHERE kind = ? AND name = ?), 0) + 1,
				?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id, version`,
			model.GUID, model.Kind, model.Name, model.Kind, model.Name,
			model.RegisteredName, model.Hash, model.DependencyID, model.Author,
			model.VersionDescription, model.Metadata, payload, model.CreatedAt,
		)
	}

	var id, version int64
	if err := row.Scan(&id, &version); err != nil {
		if isUniqueConstraint(err) {
			return artifact.ErrUniquenessConflict
		}
		return fmt.Errorf("failed to insert artifact: %w", err)
	}

	rec.SetID(id)
	rec.SetVersion(int(version))
	return nil
}

// LoadPayload returns the opaque materialized payload of a persisted record.
func (s *artifactStore) LoadPayload(ctx context.Context, rec *artifact.Record) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM artifacts WHERE id = ?`, rec.ID(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &artifact.NotFoundError{Kind: rec.Kind(), ID: rec.ID()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact payload: %w", err)
	}
	return payload, nil
}

// Close releases any resources held by the store.
// This is a no-op because the connection is owned by the DB struct.
func (s *artifactStore) Close() error {
	return nil
}
