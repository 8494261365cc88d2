package simulation

import (
	"context"

	"ringfall/server/logging"
)

const (
	// EventEnemySpawned is emitted for every enemy the spawner creates.
	EventEnemySpawned logging.EventType = "simulation.enemy_spawned"
	// EventTickBudgetOverrun is emitted when a tick exceeds its time budget.
	EventTickBudgetOverrun logging.EventType = "simulation.tick_budget_overrun"
)

// EnemySpawnedPayload captures where and what the spawner placed.
type EnemySpawnedPayload struct {
	EnemyType string  `json:"enemyType"`
	Ring      int     `json:"ring"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// TickBudgetOverrunPayload captures timing details for a budget breach.
type TickBudgetOverrunPayload struct {
	DurationMillis int64   `json:"durationMillis"`
	BudgetMillis   int64   `json:"budgetMillis"`
	Ratio          float64 `json:"ratio"`
}

// EnemySpawned publishes a spawn event.
func EnemySpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload EnemySpawnedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEnemySpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}

// TickBudgetOverrun publishes a warning when a tick ran over budget.
func TickBudgetOverrun(ctx context.Context, pub logging.Publisher, tick uint64, payload TickBudgetOverrunPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTickBudgetOverrun,
		Tick:     tick,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}
