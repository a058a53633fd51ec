package server

import (
	"net/http"

	"github.com/agentstation/boxoffice/internal/server/handlers"
	"github.com/agentstation/boxoffice/internal/server/middleware"
	"github.com/agentstation/boxoffice/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.bo,
		s.cache,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Ledger reads
	mux.HandleFunc("GET "+prefix+"/events", h.HandleListEvents)
	mux.HandleFunc("GET "+prefix+"/events/{name}", h.HandleGetEvent)
	mux.HandleFunc("GET "+prefix+"/clients", h.HandleListClients)
	mux.HandleFunc("GET "+prefix+"/clients/{name}", h.HandleGetClient)
	mux.HandleFunc("GET "+prefix+"/journal", h.HandleJournal)

	// Transactions
	mux.HandleFunc("POST "+prefix+"/sales", h.HandleSell)
	mux.HandleFunc("POST "+prefix+"/cancellations", h.HandleCancel)

	// Realtime
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found", r.Method+" "+r.URL.Path)
	})
}

// applyMiddleware wraps handler with the middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	if s.rateLimiter != nil {
		handler = middleware.RateLimit(s.rateLimiter)(handler)
	}

	if s.config.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = s.config.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery are always on
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(handler)
}
