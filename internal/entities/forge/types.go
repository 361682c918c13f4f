// Package forge defines forge slots and the jobs they hold.
package forge

import (
	"time"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
)

// Job is an in-flight enchantment forge
type Job struct {
	EquipmentID   string               `json:"equipment_id"`
	Category      enchantment.Category `json:"category"`
	EnchantmentID enchantment.ID       `json:"enchantment_id"`
	Tier          enchantment.Tier     `json:"tier"`
	StartTime     time.Time            `json:"start_time"`
	EndTime       time.Time            `json:"end_time"`
}

// Slot is one forge slot. A nil Job means the slot is idle.
type Slot struct {
	Index int  `json:"index"`
	Job   *Job `json:"job,omitempty"`
}

// Idle reports whether the slot holds no job
func (s *Slot) Idle() bool {
	return s.Job == nil
}

// Ready reports whether the job has reached its end time
func (s *Slot) Ready(now time.Time) bool {
	return s.Job != nil && !now.Before(s.Job.EndTime)
}

// Progress returns the fraction of the job completed at now, in [0, 1].
func Progress(now, start, end time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 || !now.Before(end) {
		return 1
	}
	if now.Before(start) {
		return 0
	}
	return float64(now.Sub(start)) / float64(total)
}

// Remaining returns the time left until end, never negative
func Remaining(now, end time.Time) time.Duration {
	if !now.Before(end) {
		return 0
	}
	return end.Sub(now)
}
