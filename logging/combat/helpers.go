package combat

import (
	"context"

	"ringfall/server/logging"
)

const (
	// EventProjectileHit is emitted whenever a projectile connects.
	EventProjectileHit logging.EventType = "combat.projectile_hit"
	// EventEnemyKilled is emitted when a projectile finishes an enemy.
	EventEnemyKilled logging.EventType = "combat.enemy_killed"
	// EventPlayerDamaged is emitted when an enemy lands a melee hit.
	EventPlayerDamaged logging.EventType = "combat.player_damaged"
)

// ProjectileHitPayload captures a landed projectile.
type ProjectileHitPayload struct {
	Damage          float64 `json:"damage"`
	RemainingHealth float64 `json:"remainingHealth"`
}

// ProjectileHit publishes a hit event. The actor is the projectile, the
// target the struck enemy.
func ProjectileHit(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload ProjectileHitPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProjectileHit,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// EnemyKilledPayload captures the kill and its reward.
type EnemyKilledPayload struct {
	EnemyType string `json:"enemyType"`
	Ring      int    `json:"ring"`
	XPReward  int    `json:"xpReward"`
}

// PlayerDamagedPayload captures a melee hit after armor reduction.
type PlayerDamagedPayload struct {
	Damage          float64 `json:"damage"`
	RemainingHealth float64 `json:"remainingHealth"`
}

// EnemyKilled publishes a kill credit event. The actor is the owning player,
// the target the dead enemy.
func EnemyKilled(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload EnemyKilledPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEnemyKilled,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// PlayerDamaged publishes a melee hit event. The actor is the attacking
// enemy, the target the damaged player.
func PlayerDamaged(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload PlayerDamagedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPlayerDamaged,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}
