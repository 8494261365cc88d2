package world

import (
	"context"
	"sort"

	"ringfall/server/logging"
	simulationlog "ringfall/server/logging/simulation"
)

// spawnEnemies triggers at most once per spawn interval of simulation time.
// On trigger it spawns one enemy in every active ring.
func (w *World) spawnEnemies(dt float64) {
	if w.cfg.EnemySpawnRate <= 0 {
		return
	}
	interval := 1 / w.cfg.EnemySpawnRate
	if w.gameTime-w.lastSpawnTime < interval {
		return
	}
	w.lastSpawnTime = w.gameTime

	for _, ring := range w.activeRings() {
		w.spawnEnemyInRing(ring)
	}
}

// activeRings is the union, over all connected players, of each player's
// current ring and the next ring out, both clamped to the ring cap. It is a
// set: overlapping players contribute each ring once.
func (w *World) activeRings() []int {
	set := make(map[int]struct{})
	for _, player := range w.players {
		playerRing := player.Position.Ring(w.cfg.RingRadius)
		for offset := 0; offset <= 1; offset++ {
			ring := playerRing + offset
			if ring > w.cfg.MaxRings {
				ring = w.cfg.MaxRings
			}
			set[ring] = struct{}{}
		}
	}
	rings := make([]int, 0, len(set))
	for ring := range set {
		rings = append(rings, ring)
	}
	sort.Ints(rings)
	return rings
}

// spawnEnemyInRing places one ring-appropriate enemy at a uniform random
// point inside the ring's annulus.
func (w *World) spawnEnemyInRing(ring int) {
	pool := PoolForRing(ring)
	enemyType := pool[w.rng.Intn(len(pool))]

	inner := float64(ring-1)*w.cfg.RingRadius + w.cfg.SafeZoneRadius
	outer := float64(ring)*w.cfg.RingRadius + w.cfg.SafeZoneRadius
	position := RandomPointInAnnulus(w.rng, inner, outer)

	enemy := NewEnemy(enemyType, position, ring)
	w.enemies[enemy.ID] = enemy

	simulationlog.EnemySpawned(context.Background(), w.publisher, w.tick,
		logging.EnemyRef(enemy.ID), simulationlog.EnemySpawnedPayload{
			EnemyType: string(enemyType),
			Ring:      ring,
			X:         position.X,
			Y:         position.Y,
		})
}
