package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/pokedex/internal/domain"
)

// listSeparator joins ability and type names into the persisted strings.
const listSeparator = ", "

// CollectionService manages the personal Pokémon collection.
type CollectionService struct {
	entries domain.CollectionRepository
	source  domain.PokemonSource
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(entries domain.CollectionRepository, source domain.PokemonSource) *CollectionService {
	return &CollectionService{entries: entries, source: source}
}

// CreateByName resolves name against the reference source and persists the
// flattened result as a new entry. Each call creates a new row.
func (s *CollectionService) CreateByName(ctx context.Context, name string) (*domain.CollectionEntry, error) {
	entry, err := s.Preview(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create collection entry: %w", err)
	}
	return entry, nil
}

// Preview resolves name and returns the entry that CreateByName would store,
// without persisting it.
func (s *CollectionService) Preview(ctx context.Context, name string) (*domain.CollectionEntry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("%w: pokemon name is required", domain.ErrInvalidInput)
	}

	p, err := s.source.Lookup(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", name, err)
	}
	return entryFromPokemon(p), nil
}

// CreateDirect persists the caller-supplied fields verbatim without
// consulting the reference source.
func (s *CollectionService) CreateDirect(ctx context.Context, entry *domain.CollectionEntry) error {
	entry.ID = 0
	if err := s.entries.Create(ctx, entry); err != nil {
		return fmt.Errorf("create collection entry: %w", err)
	}
	return nil
}

// Get returns a collection entry by ID.
func (s *CollectionService) Get(ctx context.Context, id int64) (*domain.CollectionEntry, error) {
	return s.entries.GetByID(ctx, id)
}

// List returns every collection entry ordered by ID.
func (s *CollectionService) List(ctx context.Context) ([]domain.CollectionEntry, error) {
	return s.entries.List(ctx)
}

// Update applies a partial update to a collection entry.
func (s *CollectionService) Update(ctx context.Context, id int64, patch domain.CollectionPatch) (*domain.CollectionEntry, error) {
	entry, err := s.entries.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update collection entry: %w", err)
	}
	return entry, nil
}

// Delete removes a collection entry by ID.
func (s *CollectionService) Delete(ctx context.Context, id int64) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete collection entry: %w", err)
	}
	return nil
}

func entryFromPokemon(p *domain.Pokemon) *domain.CollectionEntry {
	return &domain.CollectionEntry{
		PokeID:    p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		Height:    p.Height,
		Weight:    p.Weight,
		Abilities: strings.Join(p.Abilities, listSeparator),
		Types:     strings.Join(p.Types, listSeparator),
	}
}
