package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"ringfall/server/internal/net/proto"
	"ringfall/server/internal/world"
	"ringfall/server/logging"
	networklog "ringfall/server/logging/network"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// session ties one socket to one player. The read loop applies intents, the
// write loop broadcasts state at the snapshot cadence; either loop ending
// tears the whole session down.
type session struct {
	hub       Hub
	conn      *websocket.Conn
	publisher logging.Publisher

	playerID string
	joinedAt time.Time

	writeMu sync.Mutex
	done    chan struct{}
	once    sync.Once
}

func newSession(hub Hub, conn *websocket.Conn, publisher logging.Publisher) *session {
	return &session{
		hub:       hub,
		conn:      conn,
		publisher: publisher,
		done:      make(chan struct{}),
	}
}

func (s *session) run() {
	player := s.hub.Join()
	s.playerID = player.ID
	s.joinedAt = time.Now()
	defer s.hub.Disconnect(s.playerID)
	defer s.conn.Close()

	if err := s.writeJSON(proto.NewWelcome(s.playerID)); err != nil {
		return
	}
	if err := s.writeJSON(proto.NewScoreboard(s.hub.ScoreboardSnapshot())); err != nil {
		return
	}

	go s.writeLoop(player.Level)
	s.readLoop()
	s.close()
}

func (s *session) close() {
	s.once.Do(func() { close(s.done) })
}

// writeJSON serializes under the write mutex with a deadline. The broadcast
// loop and error replies from the read loop share one socket.
func (s *session) writeJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(v)
}

func (s *session) writePing() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}

// writeLoop pushes a GameState frame every snapshot interval, plus LevelUp
// offers as they appear and a single PlayerDied when this session's player
// falls. lastLevel tracks which level the client has already been offered.
func (s *session) writeLoop(lastLevel int) {
	snapshots := time.NewTicker(s.hub.SnapshotInterval())
	defer snapshots.Stop()
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	deathReported := false
	for {
		select {
		case <-s.done:
			return
		case <-pings.C:
			if err := s.writePing(); err != nil {
				s.close()
				return
			}
		case <-snapshots.C:
			snap := s.hub.Snapshot()
			if err := s.writeJSON(proto.NewGameState(snap)); err != nil {
				s.close()
				return
			}
			if pending, ok := s.hub.PendingUpgrade(s.playerID); ok && pending.NewLevel > lastLevel {
				lastLevel = pending.NewLevel
				if err := s.writeJSON(proto.NewLevelUp(s.playerID, pending)); err != nil {
					s.close()
					return
				}
			}
			if !deathReported {
				if p, ok := findPlayer(snap.Players, s.playerID); ok && !p.IsAlive() {
					deathReported = true
					survival := time.Since(s.joinedAt).Seconds()
					qualified := p.MaxRingReached >= s.hub.WorldConfig().ScoreMinRing
					if err := s.writeJSON(proto.NewPlayerDied(p, survival, qualified)); err != nil {
						s.close()
						return
					}
					if err := s.writeJSON(proto.NewScoreboard(s.hub.ScoreboardSnapshot())); err != nil {
						s.close()
						return
					}
				}
			}
		}
	}
}

// readLoop dispatches client intents until the socket fails. A frame that
// does not parse is logged and skipped; only transport errors end the
// session.
func (s *session) readLoop() {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg proto.ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			networklog.MalformedMessage(context.Background(), s.publisher, 0,
				logging.PlayerRef(s.playerID), err.Error())
			continue
		}
		s.dispatch(msg)
	}
}

func (s *session) dispatch(msg proto.ClientMessage) {
	switch msg.Type {
	case proto.TypeJoin:
		// Joining happened at upgrade time; the frame is harmless.
	case proto.TypeMove:
		if msg.Target == nil {
			networklog.MalformedMessage(context.Background(), s.publisher, 0,
				logging.PlayerRef(s.playerID), "move without target")
			return
		}
		s.hub.Move(s.playerID, *msg.Target)
	case proto.TypeChooseUpgrade:
		if err := s.hub.ChooseUpgrade(s.playerID, msg.Upgrade); err != nil {
			networklog.ClientError(context.Background(), s.publisher, 0,
				logging.PlayerRef(s.playerID), err.Error())
			s.writeJSON(proto.NewError(err.Error()))
		}
	default:
		networklog.MalformedMessage(context.Background(), s.publisher, 0,
			logging.PlayerRef(s.playerID), "unknown message type "+msg.Type)
	}
}

func findPlayer(players []world.Player, id string) (world.Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return world.Player{}, false
}
