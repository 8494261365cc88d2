package world

import "github.com/google/uuid"

// EnemyType identifies one of the closed set of enemy kinds. The string
// values double as the wire representation.
type EnemyType string

const (
	EnemyGoblin   EnemyType = "Goblin"
	EnemyOrc      EnemyType = "Orc"
	EnemyWolf     EnemyType = "Wolf"
	EnemySkeleton EnemyType = "Skeleton"
	EnemyZombie   EnemyType = "Zombie"
	EnemyDemon    EnemyType = "Demon"
	EnemyWraith   EnemyType = "Wraith"
	EnemyTroll    EnemyType = "Troll"
	EnemyDragon   EnemyType = "Dragon"
	EnemyLich     EnemyType = "Lich"
)

// AllEnemyTypes lists every enemy kind in catalogue order.
func AllEnemyTypes() []EnemyType {
	return []EnemyType{
		EnemyGoblin,
		EnemyOrc,
		EnemyWolf,
		EnemySkeleton,
		EnemyZombie,
		EnemyDemon,
		EnemyWraith,
		EnemyTroll,
		EnemyDragon,
		EnemyLich,
	}
}

// EnemyStats holds the ring-1 baseline for an enemy kind.
type EnemyStats struct {
	MaxHealth     float64
	Damage        float64
	MovementSpeed float64
	AttackSpeed   float64
	BaseXP        int
}

var enemyBaseStats = map[EnemyType]EnemyStats{
	EnemyGoblin:   {MaxHealth: 20, Damage: 5, MovementSpeed: 4.0, AttackSpeed: 0.8, BaseXP: 2},
	EnemyOrc:      {MaxHealth: 40, Damage: 8, MovementSpeed: 3.0, AttackSpeed: 0.6, BaseXP: 4},
	EnemyWolf:     {MaxHealth: 15, Damage: 7, MovementSpeed: 6.0, AttackSpeed: 1.2, BaseXP: 2},
	EnemySkeleton: {MaxHealth: 25, Damage: 6, MovementSpeed: 3.5, AttackSpeed: 0.9, BaseXP: 3},
	EnemyZombie:   {MaxHealth: 50, Damage: 10, MovementSpeed: 2.0, AttackSpeed: 0.5, BaseXP: 5},
	EnemyDemon:    {MaxHealth: 60, Damage: 15, MovementSpeed: 4.5, AttackSpeed: 0.7, BaseXP: 8},
	EnemyWraith:   {MaxHealth: 30, Damage: 12, MovementSpeed: 5.0, AttackSpeed: 1.0, BaseXP: 6},
	EnemyTroll:    {MaxHealth: 100, Damage: 20, MovementSpeed: 2.5, AttackSpeed: 0.4, BaseXP: 10},
	EnemyDragon:   {MaxHealth: 150, Damage: 30, MovementSpeed: 3.0, AttackSpeed: 0.5, BaseXP: 15},
	EnemyLich:     {MaxHealth: 120, Damage: 25, MovementSpeed: 3.5, AttackSpeed: 0.8, BaseXP: 12},
}

// enemyRingPools maps a ring number to the kinds allowed to spawn there.
// Rings beyond the table share the top-tier pool.
var enemyRingPools = map[int][]EnemyType{
	1: {EnemyGoblin, EnemyWolf},
	2: {EnemyGoblin, EnemyWolf, EnemySkeleton},
	3: {EnemySkeleton, EnemyOrc, EnemyZombie},
	4: {EnemyOrc, EnemyZombie, EnemyWraith},
	5: {EnemyWraith, EnemyDemon},
	6: {EnemyDemon, EnemyTroll},
	7: {EnemyTroll, EnemyWraith, EnemyDemon},
	8: {EnemyTroll, EnemyLich},
	9: {EnemyLich, EnemyDragon},
}

var topTierPool = []EnemyType{EnemyDragon, EnemyLich, EnemyTroll}

// PoolForRing returns the enemy kinds eligible to spawn in the given ring.
func PoolForRing(ring int) []EnemyType {
	if pool, ok := enemyRingPools[ring]; ok {
		return pool
	}
	return topTierPool
}

// BaseStats returns the ring-1 stats for the kind. Unknown kinds report the
// zero value; the catalogue is closed so that only happens on bad input.
func (t EnemyType) BaseStats() EnemyStats {
	return enemyBaseStats[t]
}

// StatsForRing scales the kind's baseline to the given ring. Health and
// damage grow 30% per ring, movement speed 10%; attack cadence stays fixed.
func (t EnemyType) StatsForRing(ring int) EnemyStats {
	base := t.BaseStats()
	scale := 1 + (float64(ring)-1)*0.3
	return EnemyStats{
		MaxHealth:     base.MaxHealth * scale,
		Damage:        base.Damage * scale,
		MovementSpeed: base.MovementSpeed * (1 + (float64(ring)-1)*0.1),
		AttackSpeed:   base.AttackSpeed,
		BaseXP:        base.BaseXP,
	}
}

// XPRewardForRing returns the XP granted for killing this kind at the ring.
func (t EnemyType) XPRewardForRing(ring int) int {
	return t.BaseStats().BaseXP * ring * 5
}

// Enemy is a hostile entity owned by the world aggregate. It references its
// current target by id only; the target is re-resolved every tick.
type Enemy struct {
	ID             string    `json:"id"`
	Type           EnemyType `json:"enemy_type"`
	Position       Position  `json:"position"`
	Health         float64   `json:"health"`
	MaxHealth      float64   `json:"max_health"`
	Damage         float64   `json:"damage"`
	MovementSpeed  float64   `json:"movement_speed"`
	AttackSpeed    float64   `json:"attack_speed"`
	SpawnRing      int       `json:"spawn_ring"`
	XPReward       int       `json:"xp_reward"`
	LastAttackTime float64   `json:"last_attack_time"`
	TargetPlayerID string    `json:"target_player_id,omitempty"`
}

// NewEnemy builds an enemy of the given kind with stats scaled to the ring.
func NewEnemy(enemyType EnemyType, position Position, ring int) *Enemy {
	stats := enemyType.StatsForRing(ring)
	return &Enemy{
		ID:            uuid.NewString(),
		Type:          enemyType,
		Position:      position,
		Health:        stats.MaxHealth,
		MaxHealth:     stats.MaxHealth,
		Damage:        stats.Damage,
		MovementSpeed: stats.MovementSpeed,
		AttackSpeed:   stats.AttackSpeed,
		SpawnRing:     ring,
		XPReward:      enemyType.XPRewardForRing(ring),
	}
}

// IsAlive reports whether the enemy still has health remaining.
func (e *Enemy) IsAlive() bool {
	return e.Health > 0
}

// TakeDamage reduces health, clamping at zero.
func (e *Enemy) TakeDamage(amount float64) {
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
}

// CanAttack reports whether the attack cooldown has elapsed at the given
// simulation time.
func (e *Enemy) CanAttack(now float64) bool {
	return now-e.LastAttackTime >= 1/e.AttackSpeed
}
