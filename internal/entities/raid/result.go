package raid

import "time"

// Result is the write-once outcome of a finished raid
type Result struct {
	ID          string    `json:"id"`
	RaidID      string    `json:"raid_id"`
	PlayerID    string    `json:"player_id"`
	BossID      string    `json:"boss_id"`
	Victory     bool      `json:"victory"`
	DamageDealt int       `json:"damage_dealt"`
	RoundsUsed  int       `json:"rounds_used"`
	RatingDelta int       `json:"rating_delta"`
	Placement   int       `json:"placement,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlacementBase is the rating awarded for a placement before the damage bonus
var PlacementBase = map[int]int{1: 100, 2: 75, 3: 50}

// RatingGain computes the rating awarded for a victory. The damage bonus is half
// the percentage of the boss shield dealt, rounded down.
func RatingGain(placement, damageDealt, bossShield int) int {
	base := PlacementBase[placement]
	if bossShield <= 0 || damageDealt <= 0 {
		return base
	}
	bonus := damageDealt * 100 / (bossShield * 2)
	return base + bonus
}
