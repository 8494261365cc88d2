package net

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ringfall/server/internal/world"
)

type stubHub struct{}

func (stubHub) Join() world.Player                            { return world.Player{ID: "p1"} }
func (stubHub) Disconnect(string) (world.Player, bool)        { return world.Player{}, false }
func (stubHub) Move(string, world.Position)                   {}
func (stubHub) ChooseUpgrade(string, world.UpgradeKind) error { return nil }
func (stubHub) Snapshot() world.Snapshot                      { return world.Snapshot{} }
func (stubHub) PendingUpgrade(string) (world.PendingLevelUp, bool) {
	return world.PendingLevelUp{}, false
}
func (stubHub) WorldConfig() world.Config       { return world.DefaultConfig().Normalized() }
func (stubHub) SnapshotInterval() time.Duration { return 50 * time.Millisecond }
func (stubHub) GameTime() float64               { return 12.5 }
func (stubHub) Counts() (int, int)              { return 2, 9 }

func (stubHub) ScoreboardSnapshot() []world.ScoreEntry {
	return []world.ScoreEntry{
		{PlayerID: "p1", MaxRingReached: 10, SurvivalTimeSeconds: 300, EnemiesDefeated: 40},
	}
}

func TestHealthRoute(t *testing.T) {
	server := httptest.NewServer(NewHandler(stubHub{}, nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestScoreboardRoute(t *testing.T) {
	server := httptest.NewServer(NewHandler(stubHub{}, nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/scoreboard")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Scores []world.ScoreEntry `json:"scores"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Scores) != 1 || payload.Scores[0].PlayerID != "p1" {
		t.Fatalf("unexpected scoreboard: %+v", payload.Scores)
	}
}

func TestScoreboardRejectsNonGet(t *testing.T) {
	server := httptest.NewServer(NewHandler(stubHub{}, nil))
	defer server.Close()

	resp, err := http.Post(server.URL+"/scoreboard", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestDiagnosticsRoute(t *testing.T) {
	server := httptest.NewServer(NewHandler(stubHub{}, nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/diagnostics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Status   string  `json:"status"`
		TickRate float64 `json:"tick_rate"`
		Players  int     `json:"players"`
		Enemies  int     `json:"enemies"`
		GameTime float64 `json:"game_time"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Status != "ok" || payload.TickRate != 20 ||
		payload.Players != 2 || payload.Enemies != 9 || payload.GameTime != 12.5 {
		t.Fatalf("unexpected diagnostics: %+v", payload)
	}
}
