package handlers

import (
	"net/http"
	"strings"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/server/filter"
	"github.com/agentstation/boxoffice/internal/server/response"
	"github.com/agentstation/boxoffice/pkg/errors"
)

// HandleListEvents handles GET /api/v1/events.
// Query: name_contains, available, min_remaining.
func (h *Handlers) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	cacheKey := "events:" + r.URL.RawQuery
	if cached, found := h.cache.Get(cacheKey); found {
		response.OK(w, cached)
		return
	}

	f, err := filter.ParseEventFilter(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	gen := h.cache.Generation()
	events := f.Apply(h.bo.Events())
	result := map[string]any{
		"events": events,
		"count":  len(events),
	}

	h.cache.SetIfGeneration(cacheKey, result, gen)
	response.OK(w, result)
}

// HandleGetEvent handles GET /api/v1/events/{name}.
func (h *Handlers) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	for _, e := range h.bo.Events() {
		if e.Name == name {
			response.OK(w, e)
			return
		}
	}
	response.ErrorFromType(w, errors.NewNotFoundError("event", name))
}

// HandleListClients handles GET /api/v1/clients.
// Query: name_contains, event.
func (h *Handlers) HandleListClients(w http.ResponseWriter, r *http.Request) {
	cacheKey := "clients:" + r.URL.RawQuery
	if cached, found := h.cache.Get(cacheKey); found {
		response.OK(w, cached)
		return
	}

	gen := h.cache.Generation()
	clients := filter.ParseClientFilter(r).Apply(h.bo.Clients())
	result := map[string]any{
		"clients": clients,
		"count":   len(clients),
	}

	h.cache.SetIfGeneration(cacheKey, result, gen)
	response.OK(w, result)
}

// HandleGetClient handles GET /api/v1/clients/{name} where name is "First Last".
func (h *Handlers) HandleGetClient(w http.ResponseWriter, r *http.Request) {
	name := strings.Join(strings.Fields(r.PathValue("name")), " ")
	for _, c := range h.bo.Clients() {
		if c.FullName() == name {
			response.OK(w, c)
			return
		}
	}
	response.ErrorFromType(w, errors.NewNotFoundError("client", name))
}

// HandleJournal handles GET /api/v1/journal. Query: kind (sale, cancellation).
func (h *Handlers) HandleJournal(w http.ResponseWriter, r *http.Request) {
	kind := boxoffice.Kind(r.URL.Query().Get("kind"))
	if kind != "" && kind != boxoffice.KindSale && kind != boxoffice.KindCancellation {
		response.ErrorFromType(w, errors.NewValidationError("kind", string(kind), "must be sale or cancellation"))
		return
	}

	entries := h.bo.Journal()
	if kind != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Kind == kind {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	response.OK(w, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
