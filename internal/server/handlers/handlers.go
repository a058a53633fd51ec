// Package handlers provides the HTTP handlers for the box office API.
package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/server/cache"
	"github.com/agentstation/boxoffice/internal/server/sse"
	ws "github.com/agentstation/boxoffice/internal/server/websocket"
)

// maxBodyBytes bounds transaction request bodies.
const maxBodyBytes = 1 << 16

// Handlers holds the dependencies shared by all handlers.
type Handlers struct {
	bo             boxoffice.BoxOffice
	cache          *cache.Cache
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	startTime      time.Time
}

// New creates a new Handlers instance.
func New(
	bo boxoffice.BoxOffice,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		bo:             bo,
		cache:          cache,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		startTime:      time.Now(),
	}
}
