package pokeapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msomdec/pokedex/internal/domain"
	"github.com/msomdec/pokedex/internal/pokeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ domain.PokemonSource = (*pokeapi.Client)(nil)

const pikachuJSON = `{
  "id": 25,
  "name": "pikachu",
  "height": 4,
  "weight": 60,
  "sprites": {"front_default": "https://img.example/25.png", "back_default": null},
  "abilities": [
    {"ability": {"name": "static", "url": "https://pokeapi.co/api/v2/ability/9/"}, "is_hidden": false, "slot": 1},
    {"ability": {"name": "lightning-rod", "url": "https://pokeapi.co/api/v2/ability/31/"}, "is_hidden": true, "slot": 3}
  ],
  "types": [
    {"slot": 1, "type": {"name": "electric", "url": "https://pokeapi.co/api/v2/type/13/"}}
  ]
}`

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon/pikachu":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(pikachuJSON))
		case "/pokemon/broken":
			w.Write([]byte(`{"id": "abc"`))
		case "/pokemon/teapot":
			w.WriteHeader(http.StatusTeapot)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Lookup(t *testing.T) {
	srv := newUpstream(t)
	c := pokeapi.NewClient(srv.URL, time.Second)

	p, err := c.Lookup(context.Background(), "pikachu")
	require.NoError(t, err)

	assert.Equal(t, int64(25), p.ID)
	assert.Equal(t, "pikachu", p.Name)
	assert.Equal(t, "https://img.example/25.png", p.ImageURL)
	assert.Equal(t, 4, p.Height)
	assert.Equal(t, 60, p.Weight)
	assert.Equal(t, []string{"static", "lightning-rod"}, p.Abilities)
	assert.Equal(t, []string{"electric"}, p.Types)
}

func TestClient_Lookup_NotFound(t *testing.T) {
	srv := newUpstream(t)
	c := pokeapi.NewClient(srv.URL, time.Second)

	_, err := c.Lookup(context.Background(), "missingno")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_Lookup_UpstreamFailures(t *testing.T) {
	srv := newUpstream(t)
	c := pokeapi.NewClient(srv.URL+"/", time.Second)

	for _, name := range []string{"broken", "teapot"} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Lookup(context.Background(), name)
			assert.ErrorIs(t, err, domain.ErrUpstream)
		})
	}
}

func TestClient_Lookup_Unreachable(t *testing.T) {
	srv := newUpstream(t)
	url := srv.URL
	srv.Close()

	_, err := pokeapi.NewClient(url, time.Second).Lookup(context.Background(), "pikachu")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestParse_MissingSprite(t *testing.T) {
	p, err := pokeapi.Parse([]byte(`{"id": 1, "name": "bulbasaur", "sprites": {"front_default": null}, "abilities": [], "types": []}`))
	require.NoError(t, err)

	assert.Empty(t, p.ImageURL)
	assert.Empty(t, p.Abilities)
	assert.NotNil(t, p.Types)
}

func TestParse_UnexpectedShape(t *testing.T) {
	_, err := pokeapi.Parse([]byte(`{"results": []}`))
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
