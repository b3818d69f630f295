package view_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/msomdec/pokedex/internal/view"
)

func TestHomePage(t *testing.T) {
	var buf bytes.Buffer
	if err := view.HomePage().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); got != "Hello from the Pokédex API!" {
		t.Fatalf("unexpected output %q", got)
	}
}
