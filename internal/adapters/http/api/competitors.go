// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/cubestand/internal/domain/types"
)

// Querier answers profile and comparison queries.
type Querier interface {
	Profile(ctx context.Context, id string) (types.Profile, error)
	Compare(ctx context.Context, idA, idB string) (types.Comparison, error)
}

// CompetitorHandler handles profile and comparison requests.
type CompetitorHandler struct {
	querier Querier
}

// NewCompetitorHandler creates a new competitor handler.
func NewCompetitorHandler(querier Querier) *CompetitorHandler {
	return &CompetitorHandler{querier: querier}
}

// HandleGetProfile handles GET /competitors/{id} requests.
func (h *CompetitorHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.querier.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleCompare handles GET /compare/{a}/{b} requests.
func (h *CompetitorHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	result, err := h.querier.Compare(r.Context(), chi.URLParam(r, "a"), chi.URLParam(r, "b"))
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
