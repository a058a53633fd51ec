// Package server exposes a box office over HTTP: JSON reads of events,
// clients and the journal, sale and cancellation endpoints, and realtime
// updates over WebSocket and Server-Sent Events.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/server/cache"
	"github.com/agentstation/boxoffice/internal/server/events"
	"github.com/agentstation/boxoffice/internal/server/events/adapters"
	"github.com/agentstation/boxoffice/internal/server/middleware"
	"github.com/agentstation/boxoffice/internal/server/sse"
	ws "github.com/agentstation/boxoffice/internal/server/websocket"
	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

// Server holds the HTTP server state and dependencies.
type Server struct {
	bo             boxoffice.BoxOffice
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
}

// New creates a server for bo and connects its hooks to the event broker.
func New(bo boxoffice.BoxOffice, cfg Config, logger *zerolog.Logger) (*Server, error) {
	if bo == nil {
		return nil, errors.NewValidationError("boxoffice", nil, "cannot be nil")
	}
	if logger == nil {
		return nil, errors.NewValidationError("logger", nil, "cannot be nil")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		bo:             bo,
		cache:          cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	s.connectHooks()
	return s, nil
}

// connectHooks publishes box office transactions to the broker and
// invalidates cached reads.
func (s *Server) connectHooks() {
	s.bo.OnSold(func(entry boxoffice.Entry) {
		s.cache.Clear()
		s.broker.Publish(events.TicketsSold, entry)
	})

	s.bo.OnCancelled(func(entry boxoffice.Entry) {
		s.cache.Clear()
		s.broker.Publish(events.TicketsCancelled, entry)
	})

	s.bo.OnSoldOut(func(client *ledger.Client, event *ledger.Event) {
		s.broker.Publish(events.EventSoldOut, map[string]any{
			"client": client.FullName(),
			"event":  event.Name(),
		})
	})
}

// Start starts the broker, the transports and the rate limiter sweeper.
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
	if s.rateLimiter != nil {
		go s.rateLimiter.Run(s.ctx)
	}
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services.
func (s *Server) Shutdown() {
	s.cancel()
	s.logger.Debug().Msg("Background services stopped")
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.Start()
	defer s.Shutdown()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info().
		Str("addr", srv.Addr).
		Str("prefix", s.config.PathPrefix).
		Msg("Box office API listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("Shutting down box office API")
	return srv.Shutdown(shutdownCtx)
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// Cache returns the read cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}
