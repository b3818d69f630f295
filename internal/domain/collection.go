package domain

import (
	"context"
	"time"
)

// CollectionEntry is a Pokémon saved to the personal collection.
// Abilities and Types hold the ", " joined names in upstream order.
type CollectionEntry struct {
	ID        int64
	PokeID    int64
	Name      string
	ImageURL  string
	Height    int
	Weight    int
	Abilities string
	Types     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CollectionPatch carries a partial entry update. Nil fields are left unchanged.
type CollectionPatch struct {
	PokeID    *int64
	Name      *string
	ImageURL  *string
	Height    *int
	Weight    *int
	Abilities *string
	Types     *string
}

// CollectionRepository defines persistence operations for collection entries.
type CollectionRepository interface {
	Create(ctx context.Context, entry *CollectionEntry) error
	GetByID(ctx context.Context, id int64) (*CollectionEntry, error)
	List(ctx context.Context) ([]CollectionEntry, error)
	Update(ctx context.Context, id int64, patch CollectionPatch) (*CollectionEntry, error)
	Delete(ctx context.Context, id int64) error
}
