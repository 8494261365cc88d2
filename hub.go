package server

import (
	"context"
	"sync"
	"time"

	"ringfall/server/internal/world"
	"ringfall/server/logging"
	simulationlog "ringfall/server/logging/simulation"
)

// DefaultSnapshotInterval is the outbound broadcast cadence when the hub
// config leaves it unset.
const DefaultSnapshotInterval = 50 * time.Millisecond

// HubConfig bundles the knobs a Hub needs at construction.
type HubConfig struct {
	World            world.Config
	SnapshotInterval time.Duration
	Publisher        logging.Publisher
	Clock            logging.Clock
}

// Hub owns the world and the lock that serializes all access to it. The
// simulation loop and inbound intents take the write lock; snapshot reads
// take the read lock and may overlap freely.
type Hub struct {
	mu    sync.RWMutex
	world *world.World

	snapshotInterval time.Duration
	publisher        logging.Publisher
	clock            logging.Clock
}

// NewHub builds a hub around a fresh world.
func NewHub(cfg HubConfig) *Hub {
	clock := cfg.Clock
	if clock == nil {
		clock = logging.SystemClock{}
	}
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	interval := cfg.SnapshotInterval
	if interval <= 0 {
		interval = DefaultSnapshotInterval
	}
	w := world.New(cfg.World, world.Deps{
		Clock:     clock,
		Publisher: publisher,
	})
	return &Hub{
		world:            w,
		snapshotInterval: interval,
		publisher:        publisher,
		clock:            clock,
	}
}

// Join registers a new player and returns its starting record.
func (h *Hub) Join() world.Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.AddPlayer()
}

// Disconnect removes the player, recording its run on the scoreboard when it
// qualifies. Safe to call for ids that already left.
func (h *Hub) Disconnect(id string) (world.Player, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.RemovePlayer(id)
}

// Move applies one tick of movement toward target for the player.
func (h *Hub) Move(id string, target world.Position) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.world.MovePlayer(id, target, 1/h.world.Config().TickRate)
}

// ChooseUpgrade resolves the player's pending level-up offer.
func (h *Hub) ChooseUpgrade(id string, kind world.UpgradeKind) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.ApplyUpgrade(id, kind)
}

// Snapshot copies the observable world under the read lock.
func (h *Hub) Snapshot() world.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.world.Snapshot()
}

// ScoreboardSnapshot copies the current scoreboard.
func (h *Hub) ScoreboardSnapshot() []world.ScoreEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.world.Scores()
}

// PlayerView returns a copy of one player's record.
func (h *Hub) PlayerView(id string) (world.Player, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.world.Player(id)
}

// PendingUpgrade returns the player's unresolved level-up offer, if any.
func (h *Hub) PendingUpgrade(id string) (world.PendingLevelUp, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.world.PendingUpgrade(id)
}

// WorldConfig returns the normalized simulation config.
func (h *Hub) WorldConfig() world.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.world.Config()
}

// GameTime returns the accumulated simulation time in seconds.
func (h *Hub) GameTime() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.world.GameTime()
}

// Counts reports the connected player and live enemy totals.
func (h *Hub) Counts() (players, enemies int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.world.PlayerCount(), h.world.EnemyCount()
}

// SnapshotInterval is the cadence at which sessions broadcast state.
func (h *Hub) SnapshotInterval() time.Duration {
	return h.snapshotInterval
}

// step advances the simulation one tick under the write lock. Exposed for
// tests that drive the loop manually.
func (h *Hub) step(dt float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.world.Step(dt)
}

// RunSimulation drives the fixed-rate tick loop until stop closes. Each tick
// measures wall-clock elapsed time, clamps it so a stalled scheduler cannot
// teleport every entity on the catch-up tick, and steps the world under the
// write lock. Ticks that exceed their budget are reported, never skipped.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	tickRate := h.WorldConfig().TickRate
	budget := time.Duration(float64(time.Second) / tickRate)
	ticker := time.NewTicker(budget)
	defer ticker.Stop()

	last := h.clock.Now()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := h.clock.Now()
			dt := now.Sub(last).Seconds()
			last = now
			if dt <= 0 {
				dt = budget.Seconds()
			}
			if dt > 4*budget.Seconds() {
				dt = 4 * budget.Seconds()
			}

			start := h.clock.Now()
			h.step(dt)
			elapsed := h.clock.Now().Sub(start)
			if elapsed > budget {
				simulationlog.TickBudgetOverrun(context.Background(), h.publisher, h.tickCount(),
					simulationlog.TickBudgetOverrunPayload{
						DurationMillis: elapsed.Milliseconds(),
						BudgetMillis:   budget.Milliseconds(),
						Ratio:          float64(elapsed) / float64(budget),
					})
			}
		}
	}
}

func (h *Hub) tickCount() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.world.Tick()
}
