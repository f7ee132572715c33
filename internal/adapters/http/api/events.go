// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/cubestand/internal/domain/types"
)

// EventLister lists the event catalog.
type EventLister interface {
	Events() []types.EventInfo
}

// EventsHandler handles event catalog requests.
type EventsHandler struct {
	lister EventLister
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(lister EventLister) *EventsHandler {
	return &EventsHandler{lister: lister}
}

// HandleListEvents handles GET /events requests.
func (h *EventsHandler) HandleListEvents(w http.ResponseWriter, _ *http.Request) {
	events := h.lister.Events()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}
