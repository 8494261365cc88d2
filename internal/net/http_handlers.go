// Package net assembles the HTTP surface: the WebSocket endpoint plus the
// small read-only REST routes that sit next to it.
package net

import (
	"encoding/json"
	"net/http"
	"time"

	"ringfall/server/internal/net/ws"
	"ringfall/server/internal/world"
	"ringfall/server/logging"
)

// Hub is the slice of the game hub the HTTP routes need, a superset of what
// a WebSocket session uses.
type Hub interface {
	ws.Hub
	GameTime() float64
	Counts() (players, enemies int)
}

// NewHandler wires all routes onto one mux.
//
//	/health      liveness probe
//	/ws          game socket
//	/scoreboard  current top runs as JSON
//	/diagnostics process and simulation counters
func NewHandler(hub Hub, publisher logging.Publisher) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.Handle("/ws", ws.NewHandler(hub, publisher))
	mux.HandleFunc("/scoreboard", handleScoreboard(hub))
	mux.HandleFunc("/diagnostics", handleDiagnostics(hub))
	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}

func handleScoreboard(hub Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, struct {
			Scores []world.ScoreEntry `json:"scores"`
		}{Scores: hub.ScoreboardSnapshot()})
	}
}

func handleDiagnostics(hub Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		players, enemies := hub.Counts()
		writeJSON(w, struct {
			Status     string  `json:"status"`
			ServerTime string  `json:"server_time"`
			TickRate   float64 `json:"tick_rate"`
			Players    int     `json:"players"`
			Enemies    int     `json:"enemies"`
			GameTime   float64 `json:"game_time"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UTC().Format(time.RFC3339),
			TickRate:   hub.WorldConfig().TickRate,
			Players:    players,
			Enemies:    enemies,
			GameTime:   hub.GameTime(),
		})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
	}
}
