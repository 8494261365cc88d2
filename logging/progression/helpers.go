package progression

import (
	"context"

	"ringfall/server/logging"
)

const (
	// EventLevelUp is emitted when a player crosses an XP threshold.
	EventLevelUp logging.EventType = "progression.level_up"
	// EventUpgradeChosen is emitted when a pending offer is resolved.
	EventUpgradeChosen logging.EventType = "progression.upgrade_chosen"
)

// LevelUpPayload captures the new level and the offered choices.
type LevelUpPayload struct {
	NewLevel int      `json:"newLevel"`
	Choices  []string `json:"choices"`
}

// UpgradeChosenPayload captures the selection.
type UpgradeChosenPayload struct {
	Upgrade string `json:"upgrade"`
	Level   int    `json:"level"`
}

// LevelUp publishes a level-up event.
func LevelUp(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload LevelUpPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLevelUp,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryProgression,
		Payload:  payload,
	})
}

// UpgradeChosen publishes an upgrade selection event.
func UpgradeChosen(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload UpgradeChosenPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventUpgradeChosen,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryProgression,
		Payload:  payload,
	})
}
