package world

import (
	"math"
	"time"
)

// Baseline player stats. Live stats are always recomputed as baseline times
// the relevant upgrade multiplier, never incremented in place.
const (
	PlayerBaseMaxHealth   = 100.0
	PlayerBaseDamage      = 10.0
	PlayerBaseAttackSpeed = 1.0 // attacks per second
	PlayerBaseMoveSpeed   = 120.0
)

const (
	initialXPToNextLevel = 100
	xpGrowthFactor       = 1.2
)

// Player is a connected combatant. Spawns at the arena center with level 1
// baseline stats and lives until its connection drops; a player at zero
// health stays in the world as "dead but present" until then.
type Player struct {
	ID              string        `json:"id"`
	Position        Position      `json:"position"`
	Health          float64       `json:"health"`
	MaxHealth       float64       `json:"max_health"`
	Damage          float64       `json:"damage"`
	AttackSpeed     float64       `json:"attack_speed"`
	MovementSpeed   float64       `json:"movement_speed"`
	LastAttackTime  float64       `json:"last_attack_time"`
	MaxRingReached  int           `json:"max_ring_reached"`
	EnemiesDefeated int           `json:"enemies_defeated"`
	SpawnTime       time.Time     `json:"spawn_time"`
	Level           int           `json:"level"`
	CurrentXP       int           `json:"current_xp"`
	XPToNextLevel   int           `json:"xp_to_next_level"`
	Upgrades        UpgradeLevels `json:"upgrades"`
}

// NewPlayer creates a level-1 player at the arena center.
func NewPlayer(id string, now time.Time) *Player {
	return &Player{
		ID:             id,
		Position:       Position{},
		Health:         PlayerBaseMaxHealth,
		MaxHealth:      PlayerBaseMaxHealth,
		Damage:         PlayerBaseDamage,
		AttackSpeed:    PlayerBaseAttackSpeed,
		MovementSpeed:  PlayerBaseMoveSpeed,
		MaxRingReached: 1,
		SpawnTime:      now,
		Level:          1,
		CurrentXP:      0,
		XPToNextLevel:  initialXPToNextLevel,
	}
}

// IsAlive reports whether the player still has health remaining.
func (p *Player) IsAlive() bool {
	return p.Health > 0
}

// InSafeZone reports whether the player stands inside the central disc where
// no combat occurs.
func (p *Player) InSafeZone(safeZoneRadius float64) bool {
	return p.Position.DistanceFromCenter() <= safeZoneRadius
}

// TakeDamage reduces health, clamping at zero. Lethal damage is idempotent.
func (p *Player) TakeDamage(amount float64) {
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
}

// Heal restores health, clamping at the maximum.
func (p *Player) Heal(amount float64) {
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// CanAttack reports whether the attack cooldown has elapsed at the given
// simulation time.
func (p *Player) CanAttack(now float64) bool {
	return now-p.LastAttackTime >= 1/p.AttackSpeed
}

// GrantXP accumulates experience and resolves any level-ups it causes.
// Each level-up subtracts the current threshold and raises the next one by
// a fixed 20% growth. Returns how many levels were gained.
func (p *Player) GrantXP(amount int) int {
	p.CurrentXP += amount
	levels := 0
	for p.CurrentXP >= p.XPToNextLevel {
		p.CurrentXP -= p.XPToNextLevel
		p.Level++
		levels++
		p.XPToNextLevel = int(math.Round(float64(p.XPToNextLevel) * xpGrowthFactor))
	}
	return levels
}
