package proto

import (
	"encoding/json"
	"testing"

	"ringfall/server/internal/world"
)

func TestDecodeMoveIntent(t *testing.T) {
	raw := []byte(`{"type":"Move","target":{"x":120.5,"y":-40}}`)
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != TypeMove {
		t.Fatalf("expected type Move, got %q", msg.Type)
	}
	if msg.Target == nil || msg.Target.X != 120.5 || msg.Target.Y != -40 {
		t.Fatalf("target mismatch: %+v", msg.Target)
	}
}

func TestDecodeChooseUpgradeIntent(t *testing.T) {
	raw := []byte(`{"type":"ChooseUpgrade","upgrade":"IncreaseDamage"}`)
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != TypeChooseUpgrade {
		t.Fatalf("expected type ChooseUpgrade, got %q", msg.Type)
	}
	if msg.Upgrade != world.UpgradeIncreaseDamage {
		t.Fatalf("expected IncreaseDamage, got %q", msg.Upgrade)
	}
}

func TestDecodeJoinIntentWithoutPayload(t *testing.T) {
	var msg ClientMessage
	if err := json.Unmarshal([]byte(`{"type":"Join"}`), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != TypeJoin || msg.Target != nil {
		t.Fatalf("unexpected decode: %+v", msg)
	}
}

func TestWelcomeEncoding(t *testing.T) {
	data, err := json.Marshal(NewWelcome("abc"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != TypeWelcome || decoded["player_id"] != "abc" {
		t.Fatalf("unexpected frame: %v", decoded)
	}
}

func TestGameStateCarriesSnapshotFields(t *testing.T) {
	snap := world.Snapshot{GameTime: 12.5}
	data, err := json.Marshal(NewGameState(snap))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != TypeGameState {
		t.Fatalf("expected GameState type, got %v", decoded["type"])
	}
	if decoded["game_time"] != 12.5 {
		t.Fatalf("expected game_time 12.5, got %v", decoded["game_time"])
	}
	for _, key := range []string{"players", "enemies", "projectiles"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("frame is missing %q", key)
		}
	}
}

func TestLevelUpEncoding(t *testing.T) {
	pending := world.PendingLevelUp{
		NewLevel: 3,
		Choices:  []world.UpgradeKind{world.UpgradeArmor, world.UpgradeMagnet, world.UpgradeLuck},
	}
	data, err := json.Marshal(NewLevelUp("p1", pending))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Type           string   `json:"type"`
		PlayerID       string   `json:"player_id"`
		NewLevel       int      `json:"new_level"`
		UpgradeChoices []string `json:"upgrade_choices"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != TypeLevelUp || decoded.PlayerID != "p1" || decoded.NewLevel != 3 {
		t.Fatalf("unexpected frame: %+v", decoded)
	}
	if len(decoded.UpgradeChoices) != 3 || decoded.UpgradeChoices[0] != "Armor" {
		t.Fatalf("unexpected choices: %v", decoded.UpgradeChoices)
	}
}

func TestPlayerDiedEncoding(t *testing.T) {
	p := world.Player{ID: "p1", MaxRingReached: 6, EnemiesDefeated: 12}
	data, err := json.Marshal(NewPlayerDied(p, 93.5, false))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Type            string  `json:"type"`
		PlayerID        string  `json:"player_id"`
		MaxRing         int     `json:"max_ring"`
		SurvivalTime    float64 `json:"survival_time"`
		EnemiesDefeated int     `json:"enemies_defeated"`
		ScoreRecorded   bool    `json:"score_recorded"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != TypePlayerDied || decoded.MaxRing != 6 ||
		decoded.SurvivalTime != 93.5 || decoded.ScoreRecorded {
		t.Fatalf("unexpected frame: %+v", decoded)
	}
}
