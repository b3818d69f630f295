package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/pokedex/internal/domain"
	"github.com/msomdec/pokedex/internal/service"
)

// CollectionHandler handles the personal collection endpoints.
type CollectionHandler struct {
	collection *service.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collection *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collection: collection}
}

// HandleCreateByName resolves a Pokémon upstream and stores it.
// POST /collection
// Request:  {"pokename":"pikachu"}
//
// Upstream failures, including an unknown name, answer 500.
func (h *CollectionHandler) HandleCreateByName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"pokename"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	entry, err := h.collection.CreateByName(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "pokename is required.")
			return
		}
		slog.Error("create collection entry by name", "name", req.Name, "error", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while creating the collection entry")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Collection entry created successfully",
		"collection": toCollectionEntryDTO(entry),
	})
}

// HandleCreateDirect stores caller-supplied fields without an upstream call.
// POST /collection/create
func (h *CollectionHandler) HandleCreateDirect(w http.ResponseWriter, r *http.Request) {
	var req CollectionEntryDTO
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	entry := &domain.CollectionEntry{
		PokeID:    req.PokeID,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		Height:    req.Height,
		Weight:    req.Weight,
		Abilities: req.Abilities,
		Types:     req.Types,
	}
	if err := h.collection.CreateDirect(r.Context(), entry); err != nil {
		slog.Error("create collection entry", "error", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while creating the collection entry")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Collection entry created successfully",
		"collection": toCollectionEntryDTO(entry),
	})
}

// HandleList returns every entry in the collection.
// GET /collection
func (h *CollectionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.collection.List(r.Context())
	if err != nil {
		slog.Error("list collection entries", "error", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while fetching collection entries")
		return
	}

	writeJSON(w, http.StatusOK, toCollectionEntryDTOs(entries))
}

// HandlePreview shows what would be stored for a name without storing it.
// GET /collection/name/{pokename}
func (h *CollectionHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("pokename")

	entry, err := h.collection.Preview(r.Context(), name)
	if err != nil {
		slog.Error("fetch pokemon details", "name", name, "error", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while fetching Pokémon details")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Pokémon details fetched successfully",
		"collection": toCollectionEntryDTO(entry),
	})
}

// HandleGet returns one entry.
// GET /collection/{id}
func (h *CollectionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.collection.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Collection entry not found")
			return
		}
		slog.Error("get collection entry", "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while fetching the collection entry")
		return
	}

	writeJSON(w, http.StatusOK, toCollectionEntryDTO(entry))
}

// HandleUpdate applies a partial update to an entry.
// PATCH /collection/{id}
func (h *CollectionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		ImageURL  *string `json:"pokeimg"`
		PokeID    *int64  `json:"pokeid"`
		Name      *string `json:"pokename"`
		Height    *int    `json:"height"`
		Weight    *int    `json:"weight"`
		Abilities *string `json:"abilities"`
		Types     *string `json:"poketypes"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	entry, err := h.collection.Update(r.Context(), id, domain.CollectionPatch{
		PokeID:    req.PokeID,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		Height:    req.Height,
		Weight:    req.Weight,
		Abilities: req.Abilities,
		Types:     req.Types,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Collection entry not found")
			return
		}
		slog.Error("update collection entry", "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while updating the collection entry")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Collection entry updated successfully",
		"collection": toCollectionEntryDTO(entry),
	})
}

// HandleDelete removes an entry.
// DELETE /collection/{id}
func (h *CollectionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.collection.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Collection entry not found")
			return
		}
		slog.Error("delete collection entry", "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while deleting the collection entry")
		return
	}

	writeMessage(w, http.StatusOK, "Collection entry deleted successfully")
}
