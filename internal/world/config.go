package world

import "strings"

// DefaultSeed seeds the world RNG when no explicit seed is configured.
const DefaultSeed = "ringfall"

// Config is the immutable simulation tuning surface. It is loaded once at
// process start; a zero value normalizes to the defaults.
type Config struct {
	TickRate             float64 `json:"tick_rate"`              // ticks per second
	SafeZoneRadius       float64 `json:"safe_zone_radius"`       // central no-combat disc
	RingRadius           float64 `json:"ring_radius"`            // width of each ring band
	MaxRings             int     `json:"max_rings"`              // outermost spawnable ring
	EnemySpawnRate       float64 `json:"enemy_spawn_rate"`       // enemies per second per active ring
	MapRadius            float64 `json:"map_radius"`             // total arena radius
	ScoreMinRing         int     `json:"score_min_ring"`         // minimum ring to qualify for the scoreboard
	MaxScoreboardEntries int     `json:"max_scoreboard_entries"` // scoreboard bound
	Seed                 string  `json:"seed"`
}

// DefaultConfig returns the stock arena tuning.
func DefaultConfig() Config {
	return Config{
		TickRate:             20,
		SafeZoneRadius:       100,
		RingRadius:           200,
		MaxRings:             10,
		EnemySpawnRate:       0.5,
		MapRadius:            2500,
		ScoreMinRing:         10,
		MaxScoreboardEntries: 100,
		Seed:                 DefaultSeed,
	}
}

func (cfg Config) normalized() Config {
	defaults := DefaultConfig()
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = defaults.Seed
	}
	if normalized.TickRate <= 0 {
		normalized.TickRate = defaults.TickRate
	}
	if normalized.SafeZoneRadius < 0 {
		normalized.SafeZoneRadius = 0
	}
	if normalized.RingRadius <= 0 {
		normalized.RingRadius = defaults.RingRadius
	}
	if normalized.MaxRings < 1 {
		normalized.MaxRings = defaults.MaxRings
	}
	if normalized.EnemySpawnRate < 0 {
		normalized.EnemySpawnRate = 0
	}
	if normalized.MapRadius <= 0 {
		normalized.MapRadius = defaults.MapRadius
	}
	if normalized.ScoreMinRing < 1 {
		normalized.ScoreMinRing = defaults.ScoreMinRing
	}
	if normalized.MaxScoreboardEntries <= 0 {
		normalized.MaxScoreboardEntries = defaults.MaxScoreboardEntries
	}
	return normalized
}

// Normalized returns the config with defaults applied to unset fields.
func (cfg Config) Normalized() Config {
	return cfg.normalized()
}
