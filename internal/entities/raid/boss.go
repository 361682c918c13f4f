// Package raid defines raid bosses, consumables, results and the phases a raid moves through.
package raid

import (
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// Boss is a static raid boss definition
type Boss struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Shield       int    `yaml:"shield" json:"shield"`
	TimeLimit    string `yaml:"time_limit" json:"time_limit"`
	RaidDuration int    `yaml:"raid_duration_seconds" json:"raid_duration_seconds"`
	MaxPartySize int    `yaml:"max_party_size" json:"max_party_size"`
	MinLevel     int    `yaml:"min_level" json:"min_level"`
	KeyItem      string `yaml:"key_item" json:"key_item"`
	KeyQuantity  int    `yaml:"key_quantity" json:"key_quantity"`
	Damage       int    `yaml:"damage" json:"damage"`

	// FinalBattleHP overrides the engine default for the final battle pool when set
	FinalBattleHP int            `yaml:"final_battle_hp,omitempty" json:"final_battle_hp,omitempty"`
	Rewards       map[string]int `yaml:"rewards" json:"rewards"`
}

// RoundBudget returns the per-round time budget parsed from TimeLimit
func (b *Boss) RoundBudget() (time.Duration, error) {
	return ParseTimeLimit(b.TimeLimit)
}

// RaidTimer returns the global raid duration
func (b *Boss) RaidTimer() time.Duration {
	return time.Duration(b.RaidDuration) * time.Second
}

// ParseTimeLimit parses an "MM:SS" time limit
func ParseTimeLimit(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, errors.InvalidArgumentf("time limit %q must be MM:SS", s)
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0, errors.InvalidArgumentf("invalid minutes in time limit %q", s)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, errors.InvalidArgumentf("invalid seconds in time limit %q", s)
	}

	total := time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if total == 0 {
		return 0, errors.InvalidArgumentf("time limit %q must be positive", s)
	}
	return total, nil
}
