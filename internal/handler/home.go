package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/pokedex/internal/view"
)

// HandleHome renders the landing text.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := view.HomePage().Render(r.Context(), w); err != nil {
		slog.Error("render home", "error", err)
	}
}
