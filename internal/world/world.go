package world

import (
	"math/rand"
	"sort"
	"time"

	"ringfall/server/logging"
)

// Deps carries the injectable collaborators for a World. Zero values fall
// back to a deterministic RNG, the system clock, and a no-op publisher.
type Deps struct {
	RNG       *rand.Rand
	Clock     logging.Clock
	Publisher logging.Publisher
}

// PendingLevelUp is the transient offer between an XP threshold crossing and
// the player's upgrade selection. At most one set exists per player.
type PendingLevelUp struct {
	NewLevel int           `json:"new_level"`
	Choices  []UpgradeKind `json:"upgrade_choices"`
}

// World is the single mutable aggregate owning every entity in the arena.
// It is not safe for concurrent use; callers serialize access through the
// hub's reader/writer lock.
type World struct {
	cfg Config

	players     map[string]*Player
	enemies     map[string]*Enemy
	projectiles map[string]*Projectile
	scores      []ScoreEntry

	pendingLevelUps map[string]PendingLevelUp

	tick          uint64
	gameTime      float64
	lastSpawnTime float64

	rng       *rand.Rand
	clock     logging.Clock
	publisher logging.Publisher
}

// New constructs an empty world with the normalized config.
func New(cfg Config, deps Deps) *World {
	cfg = cfg.normalized()
	rng := deps.RNG
	if rng == nil {
		rng = NewDeterministicRNG(cfg.Seed, "world")
	}
	clock := deps.Clock
	if clock == nil {
		clock = logging.SystemClock{}
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &World{
		cfg:             cfg,
		players:         make(map[string]*Player),
		enemies:         make(map[string]*Enemy),
		projectiles:     make(map[string]*Projectile),
		pendingLevelUps: make(map[string]PendingLevelUp),
		rng:             rng,
		clock:           clock,
		publisher:       publisher,
	}
}

// Config returns the normalized simulation config.
func (w *World) Config() Config {
	return w.cfg
}

// GameTime returns the accumulated simulation time in seconds.
func (w *World) GameTime() float64 {
	return w.gameTime
}

// Tick returns the number of completed simulation steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// RNG exposes the world's seeded RNG.
func (w *World) RNG() *rand.Rand {
	return w.rng
}

// Step advances the simulation by dt seconds, running the update phases in
// their fixed order: spawning, enemy movement, projectile resolution, combat
// offense, regeneration, cleanup. One call is one atomic tick.
func (w *World) Step(dt float64) {
	w.tick++
	w.gameTime += dt
	w.spawnEnemies(dt)
	w.updateEnemies(dt)
	w.updateProjectiles(dt)
	w.processCombat()
	w.regeneratePlayers(dt)
	w.removeDeadEnemies()
}

// regeneratePlayers applies the health-regeneration upgrade: one HP per
// second per level, never past max health, never to the dead.
func (w *World) regeneratePlayers(dt float64) {
	for _, player := range w.players {
		if !player.IsAlive() || player.Upgrades.Regen == 0 {
			continue
		}
		player.Heal(float64(player.Upgrades.Regen) * dt)
	}
}

// removeDeadEnemies drops every enemy whose health reached zero. Dead
// players are kept; they leave only on disconnect.
func (w *World) removeDeadEnemies() {
	for id, enemy := range w.enemies {
		if !enemy.IsAlive() {
			delete(w.enemies, id)
		}
	}
}

// Snapshot is a full copy of the observable world for one broadcast.
type Snapshot struct {
	Players     []Player
	Enemies     []Enemy
	Projectiles []Projectile
	GameTime    float64
	Tick        uint64
}

// Snapshot copies the current entity sets, sorted by id so serialized
// output is stable across identical states.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Players:     make([]Player, 0, len(w.players)),
		Enemies:     make([]Enemy, 0, len(w.enemies)),
		Projectiles: make([]Projectile, 0, len(w.projectiles)),
		GameTime:    w.gameTime,
		Tick:        w.tick,
	}
	for _, player := range w.players {
		snap.Players = append(snap.Players, *player)
	}
	for _, enemy := range w.enemies {
		snap.Enemies = append(snap.Enemies, *enemy)
	}
	for _, projectile := range w.projectiles {
		snap.Projectiles = append(snap.Projectiles, *projectile)
	}
	sort.Slice(snap.Players, func(i, j int) bool { return snap.Players[i].ID < snap.Players[j].ID })
	sort.Slice(snap.Enemies, func(i, j int) bool { return snap.Enemies[i].ID < snap.Enemies[j].ID })
	sort.Slice(snap.Projectiles, func(i, j int) bool { return snap.Projectiles[i].ID < snap.Projectiles[j].ID })
	return snap
}

// Scores returns a copy of the scoreboard, already sorted descending.
func (w *World) Scores() []ScoreEntry {
	scores := make([]ScoreEntry, len(w.scores))
	copy(scores, w.scores)
	return scores
}

// Player returns a copy of the player record, if present.
func (w *World) Player(id string) (Player, bool) {
	player, ok := w.players[id]
	if !ok {
		return Player{}, false
	}
	return *player, true
}

// PendingUpgrade returns the player's unresolved level-up offer, if any.
func (w *World) PendingUpgrade(id string) (PendingLevelUp, bool) {
	pending, ok := w.pendingLevelUps[id]
	return pending, ok
}

// PlayerCount reports how many players are connected.
func (w *World) PlayerCount() int {
	return len(w.players)
}

// EnemyCount reports how many enemies are alive.
func (w *World) EnemyCount() int {
	return len(w.enemies)
}

// sortedPlayerIDs returns player ids in lexical order, the iteration order
// for every per-player simulation pass.
func (w *World) sortedPlayerIDs() []string {
	ids := make([]string, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (w *World) sortedEnemyIDs() []string {
	ids := make([]string, 0, len(w.enemies))
	for id := range w.enemies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (w *World) sortedProjectileIDs() []string {
	ids := make([]string, 0, len(w.projectiles))
	for id := range w.projectiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// nearestLivingPlayer picks the closest living player to the position, with
// ties broken by id so the result never depends on map iteration order.
func (w *World) nearestLivingPlayer(from Position) (*Player, float64) {
	var best *Player
	bestDist := 0.0
	for _, id := range w.sortedPlayerIDs() {
		player := w.players[id]
		if !player.IsAlive() {
			continue
		}
		dist := from.Distance(player.Position)
		if best == nil || dist < bestDist {
			best = player
			bestDist = dist
		}
	}
	return best, bestDist
}

// nearestLivingEnemy picks the closest living enemy to the position, with
// the same deterministic tie-break as player targeting.
func (w *World) nearestLivingEnemy(from Position) (*Enemy, float64) {
	var best *Enemy
	bestDist := 0.0
	for _, id := range w.sortedEnemyIDs() {
		enemy := w.enemies[id]
		if !enemy.IsAlive() {
			continue
		}
		dist := from.Distance(enemy.Position)
		if best == nil || dist < bestDist {
			best = enemy
			bestDist = dist
		}
	}
	return best, bestDist
}

func (w *World) now() time.Time {
	return w.clock.Now()
}
