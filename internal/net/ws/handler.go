// Package ws hosts the WebSocket session boundary. A connection is a player:
// joining happens on upgrade, leaving happens when the socket closes, and
// everything in between is JSON frames in both directions.
package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ringfall/server/internal/world"
	"ringfall/server/logging"
)

// Hub is the slice of the game hub a session needs.
type Hub interface {
	Join() world.Player
	Disconnect(id string) (world.Player, bool)
	Move(id string, target world.Position)
	ChooseUpgrade(id string, kind world.UpgradeKind) error
	Snapshot() world.Snapshot
	ScoreboardSnapshot() []world.ScoreEntry
	PendingUpgrade(id string) (world.PendingLevelUp, bool)
	WorldConfig() world.Config
	SnapshotInterval() time.Duration
}

// Handler upgrades HTTP requests into game sessions.
type Handler struct {
	hub       Hub
	publisher logging.Publisher
	upgrader  websocket.Upgrader
}

// NewHandler builds the upgrade handler. A nil publisher disables session
// logging.
func NewHandler(hub Hub, publisher logging.Publisher) *Handler {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Handler{
		hub:       hub,
		publisher: publisher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and runs the session until the socket
// closes. The player exists in the world exactly as long as this call runs.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}
	newSession(h.hub, conn, h.publisher).run()
}
