package ws

import (
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ringfall/server/internal/net/proto"
	"ringfall/server/internal/world"
)

// fakeHub records intents and serves canned state so session behavior can be
// tested without a running simulation.
type fakeHub struct {
	mu           sync.Mutex
	player       world.Player
	dead         bool
	moves        []world.Position
	chosen       []world.UpgradeKind
	chooseErr    error
	disconnected bool
}

func newFakeHub() *fakeHub {
	player := *world.NewPlayer("player-1", time.Now())
	return &fakeHub{player: player}
}

func (h *fakeHub) Join() world.Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.player
}

func (h *fakeHub) Disconnect(id string) (world.Player, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnected = true
	return h.player, true
}

func (h *fakeHub) Move(id string, target world.Position) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.moves = append(h.moves, target)
}

func (h *fakeHub) ChooseUpgrade(id string, kind world.UpgradeKind) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chosen = append(h.chosen, kind)
	return h.chooseErr
}

func (h *fakeHub) Snapshot() world.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	player := h.player
	if h.dead {
		player.Health = 0
	}
	return world.Snapshot{Players: []world.Player{player}}
}

func (h *fakeHub) ScoreboardSnapshot() []world.ScoreEntry {
	return nil
}

func (h *fakeHub) PendingUpgrade(id string) (world.PendingLevelUp, bool) {
	return world.PendingLevelUp{}, false
}

func (h *fakeHub) WorldConfig() world.Config {
	return world.DefaultConfig().Normalized()
}

func (h *fakeHub) SnapshotInterval() time.Duration {
	return 10 * time.Millisecond
}

func (h *fakeHub) markDead() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dead = true
}

func dialTestServer(t *testing.T, hub Hub) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(NewHandler(hub, nil))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrameOfType(t *testing.T, conn *websocket.Conn, want string) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var frame map[string]any
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("waiting for %s frame: %v", want, err)
		}
		if frame["type"] == want {
			return frame
		}
	}
}

func TestSessionHandshake(t *testing.T) {
	hub := newFakeHub()
	conn := dialTestServer(t, hub)

	welcome := readFrameOfType(t, conn, proto.TypeWelcome)
	if welcome["player_id"] != "player-1" {
		t.Fatalf("unexpected welcome: %v", welcome)
	}
	readFrameOfType(t, conn, proto.TypeScoreboard)
	readFrameOfType(t, conn, proto.TypeGameState)
}

func TestSessionAppliesMoveIntents(t *testing.T) {
	hub := newFakeHub()
	conn := dialTestServer(t, hub)
	readFrameOfType(t, conn, proto.TypeWelcome)

	err := conn.WriteJSON(proto.ClientMessage{
		Type:   proto.TypeMove,
		Target: &world.Position{X: 250, Y: -80},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.Lock()
		count := len(hub.moves)
		hub.mu.Unlock()
		if count > 0 {
			hub.mu.Lock()
			target := hub.moves[0]
			hub.mu.Unlock()
			if target.X != 250 || target.Y != -80 {
				t.Fatalf("unexpected move target: %+v", target)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("move intent never reached the hub")
}

func TestSessionReportsUpgradeRejection(t *testing.T) {
	hub := newFakeHub()
	hub.chooseErr = errors.New("no pending upgrade offer")
	conn := dialTestServer(t, hub)
	readFrameOfType(t, conn, proto.TypeWelcome)

	err := conn.WriteJSON(proto.ClientMessage{
		Type:    proto.TypeChooseUpgrade,
		Upgrade: world.UpgradeIncreaseDamage,
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	frame := readFrameOfType(t, conn, proto.TypeError)
	if msg, _ := frame["message"].(string); !strings.Contains(msg, "no pending upgrade offer") {
		t.Fatalf("unexpected error frame: %v", frame)
	}
}

func TestSessionSurvivesMalformedFrames(t *testing.T) {
	hub := newFakeHub()
	conn := dialTestServer(t, hub)
	readFrameOfType(t, conn, proto.TypeWelcome)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}

	// The session must keep streaming state after a bad frame.
	readFrameOfType(t, conn, proto.TypeGameState)
	readFrameOfType(t, conn, proto.TypeGameState)
}

func TestSessionReportsDeathOnce(t *testing.T) {
	hub := newFakeHub()
	conn := dialTestServer(t, hub)
	readFrameOfType(t, conn, proto.TypeWelcome)
	readFrameOfType(t, conn, proto.TypeGameState)

	hub.markDead()

	frame := readFrameOfType(t, conn, proto.TypePlayerDied)
	if frame["player_id"] != "player-1" {
		t.Fatalf("unexpected death frame: %v", frame)
	}
	// The refreshed scoreboard follows the death report.
	readFrameOfType(t, conn, proto.TypeScoreboard)

	// Further snapshots must not repeat the death report.
	conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	for {
		var next map[string]any
		if err := conn.ReadJSON(&next); err != nil {
			break
		}
		if next["type"] == proto.TypePlayerDied {
			t.Fatalf("death reported twice")
		}
	}
}

func TestSessionDisconnectsOnClose(t *testing.T) {
	hub := newFakeHub()
	conn := dialTestServer(t, hub)
	readFrameOfType(t, conn, proto.TypeWelcome)

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.Lock()
		gone := hub.disconnected
		hub.mu.Unlock()
		if gone {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session never released its player")
}
