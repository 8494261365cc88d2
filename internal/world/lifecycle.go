package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ringfall/server/logging"
	lifecyclelog "ringfall/server/logging/lifecycle"
	progressionlog "ringfall/server/logging/progression"
)

// Validation failures surfaced to a single client; never fatal to the world.
var (
	ErrUnknownPlayer    = errors.New("player not found")
	ErrNoPendingUpgrade = errors.New("no pending upgrade offer")
	ErrUnknownUpgrade   = errors.New("unknown upgrade kind")
)

// AddPlayer creates a fresh player at the arena center and returns a copy of
// the record for the caller to relay.
func (w *World) AddPlayer() Player {
	player := NewPlayer(uuid.NewString(), w.now())
	w.players[player.ID] = player

	lifecyclelog.PlayerJoined(context.Background(), w.publisher, w.tick,
		logging.PlayerRef(player.ID), lifecyclelog.PlayerJoinedPayload{
			SpawnX: player.Position.X,
			SpawnY: player.Position.Y,
		})
	return *player
}

// RemovePlayer deletes the player and, when the run reached the qualifying
// ring, folds it into the scoreboard. Survival time is wall-clock elapsed
// since spawn. Returns the removed record.
func (w *World) RemovePlayer(id string) (Player, bool) {
	player, ok := w.players[id]
	if !ok {
		return Player{}, false
	}
	delete(w.players, id)
	delete(w.pendingLevelUps, id)

	lifecyclelog.PlayerDisconnected(context.Background(), w.publisher, w.tick,
		logging.PlayerRef(id), "disconnect")

	if player.MaxRingReached >= w.cfg.ScoreMinRing {
		now := w.now()
		entry := ScoreEntry{
			PlayerID:            id,
			MaxRingReached:      player.MaxRingReached,
			SurvivalTimeSeconds: now.Sub(player.SpawnTime).Seconds(),
			EnemiesDefeated:     player.EnemiesDefeated,
			Timestamp:           now,
		}
		w.scores = insertScore(w.scores, entry, w.cfg.MaxScoreboardEntries)

		lifecyclelog.ScoreRecorded(context.Background(), w.publisher, w.tick,
			logging.PlayerRef(id), lifecyclelog.ScoreRecordedPayload{
				MaxRing:         entry.MaxRingReached,
				SurvivalSeconds: entry.SurvivalTimeSeconds,
				EnemiesDefeated: entry.EnemiesDefeated,
				TotalScore:      entry.TotalScore(),
			})
	}
	return *player, true
}

// MovePlayer advances the player toward target at their movement speed for
// one tick's worth of time. Unknown ids are a silent no-op: a racing
// disconnect is not an error. The high-water ring is updated here, the only
// place a player changes ring.
func (w *World) MovePlayer(id string, target Position, dt float64) {
	player, ok := w.players[id]
	if !ok || !player.IsAlive() {
		return
	}
	player.Position.MoveTowards(target, player.MovementSpeed, dt)

	ring := player.Position.Ring(w.cfg.RingRadius)
	if ring > player.MaxRingReached {
		player.MaxRingReached = ring
	}
}

// ApplyUpgrade resolves the player's pending offer with the chosen upgrade.
// It validates before mutating: an unknown player, a kind outside the
// catalogue, or a player with no pending offer fails and leaves all state
// unchanged, the offer included. Live stats affected by
// the choice are recomputed from baseline immediately; max-health gains heal
// the player by the exact delta.
func (w *World) ApplyUpgrade(id string, kind UpgradeKind) error {
	player, ok := w.players[id]
	if !ok {
		return fmt.Errorf("apply upgrade %s: %w", kind, ErrUnknownPlayer)
	}
	if !kind.Valid() {
		return fmt.Errorf("apply upgrade %s: %w", kind, ErrUnknownUpgrade)
	}
	if _, ok := w.pendingLevelUps[id]; !ok {
		return fmt.Errorf("apply upgrade %s: %w", kind, ErrNoPendingUpgrade)
	}
	delete(w.pendingLevelUps, id)

	player.Upgrades.Apply(kind)

	switch kind {
	case UpgradeIncreaseDamage:
		player.Damage = PlayerBaseDamage * player.Upgrades.DamageMultiplier()
	case UpgradeIncreaseAttackSpeed:
		player.AttackSpeed = PlayerBaseAttackSpeed * player.Upgrades.AttackSpeedMultiplier()
	case UpgradeIncreaseMovementSpeed:
		player.MovementSpeed = PlayerBaseMoveSpeed * player.Upgrades.MovementSpeedMultiplier()
	case UpgradeIncreaseMaxHealth:
		oldMax := player.MaxHealth
		player.MaxHealth = PlayerBaseMaxHealth * (1 + float64(player.Upgrades.MaxHealth)*0.25)
		player.Health += player.MaxHealth - oldMax
	}

	progressionlog.UpgradeChosen(context.Background(), w.publisher, w.tick,
		logging.PlayerRef(id), progressionlog.UpgradeChosenPayload{
			Upgrade: string(kind),
			Level:   player.Level,
		})
	return nil
}

// reportPlayerDeath publishes the death event. The record itself stays in
// the world until the connection closes.
func (w *World) reportPlayerDeath(player *Player) {
	lifecyclelog.PlayerDied(context.Background(), w.publisher, w.tick,
		logging.PlayerRef(player.ID), lifecyclelog.PlayerDiedPayload{
			MaxRing:         player.MaxRingReached,
			EnemiesDefeated: player.EnemiesDefeated,
			GameTime:        w.gameTime,
		})
}
