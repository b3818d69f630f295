package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/pokedex/internal/domain"
)

// CollectionRepository implements domain.CollectionRepository using SQLite.
type CollectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new SQLite-backed CollectionRepository.
func NewCollectionRepository(db *DB) *CollectionRepository {
	return &CollectionRepository{db: db.SqlDB}
}

const entryColumns = `id, poke_id, name, image_url, height, weight, abilities, types, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create always inserts a new row; entries are never deduplicated.
func (r *CollectionRepository) Create(ctx context.Context, entry *domain.CollectionEntry) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO collection_entries (poke_id, name, image_url, height, weight, abilities, types, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.PokeID, entry.Name, entry.ImageURL, entry.Height, entry.Weight,
		entry.Abilities, entry.Types, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert collection entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return nil
}

func (r *CollectionRepository) GetByID(ctx context.Context, id int64) (*domain.CollectionEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM collection_entries WHERE id = ?`, id)
	entry := &domain.CollectionEntry{}
	if err := scanEntry(row, entry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query collection entry: %w", err)
	}
	return entry, nil
}

func (r *CollectionRepository) List(ctx context.Context) ([]domain.CollectionEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM collection_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list collection entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.CollectionEntry{}
	for rows.Next() {
		var e domain.CollectionEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("scan collection entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *CollectionRepository) Update(ctx context.Context, id int64, patch domain.CollectionPatch) (*domain.CollectionEntry, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE collection_entries SET
			poke_id    = COALESCE(?, poke_id),
			name       = COALESCE(?, name),
			image_url  = COALESCE(?, image_url),
			height     = COALESCE(?, height),
			weight     = COALESCE(?, weight),
			abilities  = COALESCE(?, abilities),
			types      = COALESCE(?, types),
			updated_at = ?
		 WHERE id = ?`,
		nullInt64(patch.PokeID), nullString(patch.Name), nullString(patch.ImageURL),
		nullInt(patch.Height), nullInt(patch.Weight), nullString(patch.Abilities),
		nullString(patch.Types), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update collection entry: %w", err)
	}

	if err := requireAffected(result); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *CollectionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM collection_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete collection entry: %w", err)
	}
	return requireAffected(result)
}

func scanEntry(row rowScanner, e *domain.CollectionEntry) error {
	return row.Scan(&e.ID, &e.PokeID, &e.Name, &e.ImageURL, &e.Height, &e.Weight,
		&e.Abilities, &e.Types, &e.CreatedAt, &e.UpdatedAt)
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
