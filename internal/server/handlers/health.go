package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/boxoffice/internal/server/response"
)

// HandleHealth handles GET /health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "boxoffice-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The ledger must pass its audit.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if err := h.bo.Audit(); err != nil {
		h.logger.Error().Err(err).Msg("Ledger audit failed")
		response.ServiceUnavailable(w, "Ledger audit failed")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"uptime":            time.Since(h.startTime).Round(time.Second).String(),
		"transactions":      len(h.bo.Journal()),
		"cache_items":       h.cache.ItemCount(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
