// Package proto defines the JSON messages exchanged over a game socket.
// Every message carries a "type" discriminator; field names follow the
// snake_case convention of the simulation state they mirror.
package proto

import "ringfall/server/internal/world"

// Client-to-server message types.
const (
	TypeJoin          = "Join"
	TypeMove          = "Move"
	TypeChooseUpgrade = "ChooseUpgrade"
)

// Server-to-client message types.
const (
	TypeWelcome    = "Welcome"
	TypeGameState  = "GameState"
	TypeLevelUp    = "LevelUp"
	TypeScoreboard = "Scoreboard"
	TypePlayerDied = "PlayerDied"
	TypeError      = "Error"
)

// ClientMessage is the single envelope for everything a client sends. Only
// the fields relevant to the given type are populated.
type ClientMessage struct {
	Type    string            `json:"type"`
	Target  *world.Position   `json:"target,omitempty"`
	Upgrade world.UpgradeKind `json:"upgrade,omitempty"`
}

// Welcome confirms a join and hands the client its id.
type Welcome struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
}

// GameState is one full broadcast snapshot.
type GameState struct {
	Type        string             `json:"type"`
	Players     []world.Player     `json:"players"`
	Enemies     []world.Enemy      `json:"enemies"`
	Projectiles []world.Projectile `json:"projectiles"`
	GameTime    float64            `json:"game_time"`
}

// LevelUp offers the client its pending upgrade choices.
type LevelUp struct {
	Type           string              `json:"type"`
	PlayerID       string              `json:"player_id"`
	NewLevel       int                 `json:"new_level"`
	UpgradeChoices []world.UpgradeKind `json:"upgrade_choices"`
}

// Scoreboard carries the current top runs.
type Scoreboard struct {
	Type   string             `json:"type"`
	Scores []world.ScoreEntry `json:"scores"`
}

// PlayerDied reports the client's own death and the outcome of the run.
type PlayerDied struct {
	Type            string  `json:"type"`
	PlayerID        string  `json:"player_id"`
	MaxRing         int     `json:"max_ring"`
	SurvivalTime    float64 `json:"survival_time"`
	EnemiesDefeated int     `json:"enemies_defeated"`
	ScoreRecorded   bool    `json:"score_recorded"`
}

// ErrorMessage reports a rejected intent without closing the connection.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewWelcome builds a Welcome for the given player.
func NewWelcome(playerID string) Welcome {
	return Welcome{Type: TypeWelcome, PlayerID: playerID}
}

// NewGameState wraps a world snapshot for broadcast.
func NewGameState(snap world.Snapshot) GameState {
	return GameState{
		Type:        TypeGameState,
		Players:     snap.Players,
		Enemies:     snap.Enemies,
		Projectiles: snap.Projectiles,
		GameTime:    snap.GameTime,
	}
}

// NewLevelUp wraps a pending offer for the given player.
func NewLevelUp(playerID string, pending world.PendingLevelUp) LevelUp {
	return LevelUp{
		Type:           TypeLevelUp,
		PlayerID:       playerID,
		NewLevel:       pending.NewLevel,
		UpgradeChoices: pending.Choices,
	}
}

// NewScoreboard wraps the score list.
func NewScoreboard(scores []world.ScoreEntry) Scoreboard {
	return Scoreboard{Type: TypeScoreboard, Scores: scores}
}

// NewPlayerDied summarizes a finished run. survivalTime is seconds from
// spawn to death.
func NewPlayerDied(p world.Player, survivalTime float64, scoreRecorded bool) PlayerDied {
	return PlayerDied{
		Type:            TypePlayerDied,
		PlayerID:        p.ID,
		MaxRing:         p.MaxRingReached,
		SurvivalTime:    survivalTime,
		EnemiesDefeated: p.EnemiesDefeated,
		ScoreRecorded:   scoreRecorded,
	}
}

// NewError wraps a rejection message.
func NewError(message string) ErrorMessage {
	return ErrorMessage{Type: TypeError, Message: message}
}
