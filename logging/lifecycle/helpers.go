package lifecycle

import (
	"context"

	"ringfall/server/logging"
)

const (
	// EventPlayerJoined is emitted when a player enters the arena.
	EventPlayerJoined logging.EventType = "lifecycle.player_joined"
	// EventPlayerDisconnected is emitted when a player's record is removed.
	EventPlayerDisconnected logging.EventType = "lifecycle.player_disconnected"
	// EventPlayerDied is emitted when a player's health reaches zero.
	EventPlayerDied logging.EventType = "lifecycle.player_died"
	// EventScoreRecorded is emitted when a run qualifies for the scoreboard.
	EventScoreRecorded logging.EventType = "lifecycle.score_recorded"
)

// PlayerJoinedPayload captures spawn metadata for a new player.
type PlayerJoinedPayload struct {
	SpawnX float64 `json:"spawnX"`
	SpawnY float64 `json:"spawnY"`
}

// PlayerDiedPayload captures the state of a player at death.
type PlayerDiedPayload struct {
	MaxRing         int     `json:"maxRing"`
	EnemiesDefeated int     `json:"enemiesDefeated"`
	GameTime        float64 `json:"gameTime"`
}

// ScoreRecordedPayload captures a qualifying run.
type ScoreRecordedPayload struct {
	MaxRing         int     `json:"maxRing"`
	SurvivalSeconds float64 `json:"survivalSeconds"`
	EnemiesDefeated int     `json:"enemiesDefeated"`
	TotalScore      int     `json:"totalScore"`
}

// PlayerJoined publishes a player join event.
func PlayerJoined(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerJoinedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPlayerJoined,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

// PlayerDisconnected publishes a player removal event.
func PlayerDisconnected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, reason string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPlayerDisconnected,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  map[string]string{"reason": reason},
	})
}

// PlayerDied publishes a player death event.
func PlayerDied(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerDiedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPlayerDied,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

// ScoreRecorded publishes a scoreboard qualification event.
func ScoreRecorded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ScoreRecordedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventScoreRecorded,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}
