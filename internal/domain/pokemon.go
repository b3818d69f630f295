package domain

import "context"

// Pokemon is the normalized record returned by the reference source.
type Pokemon struct {
	ID        int64
	Name      string
	ImageURL  string
	Height    int
	Weight    int
	Abilities []string
	Types     []string
}

// PokemonSource resolves a Pokémon by name against an upstream catalog.
// Implementations return an error wrapping ErrNotFound when the name is
// unknown and ErrUpstream for any other failure.
type PokemonSource interface {
	Lookup(ctx context.Context, name string) (*Pokemon, error)
}
