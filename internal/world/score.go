package world

import (
	"sort"
	"time"
)

// ScoreEntry records one qualifying run for the leaderboard.
type ScoreEntry struct {
	PlayerID            string    `json:"player_id"`
	MaxRingReached      int       `json:"max_ring_reached"`
	SurvivalTimeSeconds float64   `json:"survival_time_seconds"`
	EnemiesDefeated     int       `json:"enemies_defeated"`
	Timestamp           time.Time `json:"timestamp"`
}

// TotalScore folds the run into a single ranking key: the ring reached
// dominates, then survival time, then kills.
func (e ScoreEntry) TotalScore() int {
	return e.MaxRingReached*10000 + int(e.SurvivalTimeSeconds)*10 + e.EnemiesDefeated
}

// insertScore adds an entry, re-sorts descending by composite score, and
// truncates to the configured bound. The board stays sorted at all times so
// reads never sort.
func insertScore(scores []ScoreEntry, entry ScoreEntry, maxEntries int) []ScoreEntry {
	scores = append(scores, entry)
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore() > scores[j].TotalScore()
	})
	if maxEntries > 0 && len(scores) > maxEntries {
		scores = scores[:maxEntries]
	}
	return scores
}
