package world

import (
	"context"

	"ringfall/server/logging"
	combatlog "ringfall/server/logging/combat"
	progressionlog "ringfall/server/logging/progression"
)

// Combat tuning. Projectile speed is the pre-upgrade baseline; the
// per-player projectile-speed multiplier scales it at launch.
const (
	ProjectileSpeed    = 300.0
	ProjectileLifetime = 3.0
	AutoAttackRange    = 400.0
	CollisionRadius    = 20.0
	MeleeRange         = 50.0
	upgradeChoiceCount = 3
)

// updateProjectiles advances every projectile, resolves collisions against
// the nearest living enemy within the collision radius (boundary inclusive),
// and removes spent projectiles. Kills credit the owning player with XP and
// may queue a level-up offer.
func (w *World) updateProjectiles(dt float64) {
	for _, projectile := range w.projectiles {
		projectile.Advance(dt)
	}

	for _, id := range w.sortedProjectileIDs() {
		projectile, ok := w.projectiles[id]
		if !ok {
			continue
		}
		enemy, dist := w.nearestLivingEnemy(projectile.Position)
		if enemy == nil || dist > CollisionRadius {
			continue
		}

		enemy.TakeDamage(projectile.Damage)
		combatlog.ProjectileHit(context.Background(), w.publisher, w.tick,
			logging.ProjectileRef(id), logging.EnemyRef(enemy.ID),
			combatlog.ProjectileHitPayload{
				Damage:          projectile.Damage,
				RemainingHealth: enemy.Health,
			})
		if !enemy.IsAlive() {
			w.creditKill(projectile.OwnerID, enemy)
		}
		delete(w.projectiles, id)
	}

	for id, projectile := range w.projectiles {
		if projectile.Expired() {
			delete(w.projectiles, id)
		}
	}
}

// creditKill awards the kill and its XP to the owning player, resolving any
// level-ups into a fresh upgrade offer. Owners who already disconnected are
// simply skipped.
func (w *World) creditKill(ownerID string, enemy *Enemy) {
	owner, ok := w.players[ownerID]
	if !ok {
		return
	}
	owner.EnemiesDefeated++
	levels := owner.GrantXP(enemy.XPReward)

	combatlog.EnemyKilled(context.Background(), w.publisher, w.tick,
		logging.PlayerRef(ownerID), logging.EnemyRef(enemy.ID),
		combatlog.EnemyKilledPayload{
			EnemyType: string(enemy.Type),
			Ring:      enemy.SpawnRing,
			XPReward:  enemy.XPReward,
		})

	if levels == 0 {
		return
	}
	choices := RandomUpgradeChoices(w.rng, upgradeChoiceCount)
	w.pendingLevelUps[ownerID] = PendingLevelUp{NewLevel: owner.Level, Choices: choices}

	names := make([]string, len(choices))
	for i, choice := range choices {
		names[i] = string(choice)
	}
	progressionlog.LevelUp(context.Background(), w.publisher, w.tick,
		logging.PlayerRef(ownerID), progressionlog.LevelUpPayload{
			NewLevel: owner.Level,
			Choices:  names,
		})
}

// processCombat runs the two offense passes in a fixed order so neither
// side is biased by map iteration within a tick: players launch projectiles
// first, then enemies resolve melee against their recorded targets.
func (w *World) processCombat() {
	w.playerOffense()
	w.enemyOffense()
}

// playerOffense auto-attacks the nearest living enemy in range by spawning
// a projectile. Players inside the safe zone never initiate attacks.
func (w *World) playerOffense() {
	for _, id := range w.sortedPlayerIDs() {
		player := w.players[id]
		if !player.IsAlive() || !player.CanAttack(w.gameTime) {
			continue
		}
		if player.InSafeZone(w.cfg.SafeZoneRadius) {
			continue
		}

		enemy, dist := w.nearestLivingEnemy(player.Position)
		if enemy == nil || dist > AutoAttackRange {
			continue
		}

		direction := Vec2{
			X: enemy.Position.X - player.Position.X,
			Y: enemy.Position.Y - player.Position.Y,
		}
		speed := ProjectileSpeed * player.Upgrades.ProjectileSpeedMultiplier()
		projectile := NewProjectile(player.ID, player.Position, direction, speed, player.Damage, ProjectileLifetime)
		w.projectiles[projectile.ID] = projectile
		player.LastAttackTime = w.gameTime
	}
}

// enemyOffense resolves melee hits against each enemy's recorded target.
// Targets inside the safe zone cannot be damaged; armor reduces the hit.
func (w *World) enemyOffense() {
	for _, id := range w.sortedEnemyIDs() {
		enemy := w.enemies[id]
		if !enemy.IsAlive() || !enemy.CanAttack(w.gameTime) || enemy.TargetPlayerID == "" {
			continue
		}
		target, ok := w.players[enemy.TargetPlayerID]
		if !ok || !target.IsAlive() {
			continue
		}
		if target.InSafeZone(w.cfg.SafeZoneRadius) {
			continue
		}
		if enemy.Position.Distance(target.Position) > MeleeRange {
			continue
		}

		damage := enemy.Damage * (1 - target.Upgrades.DamageReduction())
		target.TakeDamage(damage)
		enemy.LastAttackTime = w.gameTime

		combatlog.PlayerDamaged(context.Background(), w.publisher, w.tick,
			logging.EnemyRef(enemy.ID), logging.PlayerRef(target.ID),
			combatlog.PlayerDamagedPayload{
				Damage:          damage,
				RemainingHealth: target.Health,
			})

		if !target.IsAlive() {
			w.reportPlayerDeath(target)
		}
	}
}
