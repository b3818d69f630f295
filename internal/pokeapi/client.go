// Package pokeapi resolves Pokémon by name against the public PokeAPI and
// flattens its nested response into domain.Pokemon.
package pokeapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/msomdec/pokedex/internal/domain"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the public PokeAPI v2 endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 4 << 20

// Client implements domain.PokemonSource over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for baseURL. A zero timeout disables the
// per-request deadline; the caller's context still applies.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup fetches /pokemon/{name}. The name is sent as given; callers
// normalize case.
func (c *Client) Lookup(ctx context.Context, name string) (*domain.Pokemon, error) {
	endpoint := c.baseURL + "/pokemon/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrUpstream, name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("pokemon %q: %w", name, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: get %s: status %d", domain.ErrUpstream, name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}

	return Parse(body)
}

// Parse normalizes a PokeAPI pokemon document. Ability and type names keep
// the order of the source arrays.
func Parse(body []byte) (*domain.Pokemon, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", domain.ErrUpstream)
	}

	doc := gjson.ParseBytes(body)
	id, name := doc.Get("id"), doc.Get("name")
	if id.Type != gjson.Number || name.Type != gjson.String {
		return nil, fmt.Errorf("%w: unexpected response shape", domain.ErrUpstream)
	}

	return &domain.Pokemon{
		ID:        id.Int(),
		Name:      name.String(),
		ImageURL:  doc.Get("sprites.front_default").String(),
		Height:    int(doc.Get("height").Int()),
		Weight:    int(doc.Get("weight").Int()),
		Abilities: names(doc.Get("abilities.#.ability.name")),
		Types:     names(doc.Get("types.#.type.name")),
	}, nil
}

func names(r gjson.Result) []string {
	arr := r.Array()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.String())
	}
	return out
}
