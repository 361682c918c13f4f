package forge

import (
	"time"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	entities "github.com/KirkDiggler/rpg-raid/internal/entities/forge"
)

// StartForgingInput defines the request for starting a forge job
type StartForgingInput struct {
	PlayerID      string
	Slot          int
	EnchantmentID enchantment.ID
	EquipmentID   string
}

// StartForgingOutput defines the response for starting a forge job
type StartForgingOutput struct {
	Slot *SlotView
	// Remaining holds the player's balance of each consumed orb
	Remaining map[string]int
}

// CompleteForgingInput defines the request for completing a finished job
type CompleteForgingInput struct {
	PlayerID string
	Slot     int
}

// CompleteForgingOutput defines the response for completing a job.
// Binding is nil when the slot was already idle.
type CompleteForgingOutput struct {
	Binding *enchantment.Binding
}

// SpeedUpForgingInput defines the request for finishing a job instantly
type SpeedUpForgingInput struct {
	PlayerID string
	Slot     int
}

// SpeedUpForgingOutput defines the response for a speed up
type SpeedUpForgingOutput struct {
	Binding *enchantment.Binding
	// CrystalsSpent is zero when the slot was already idle
	CrystalsSpent int
}

// CancelForgingInput defines the request for abandoning a job
type CancelForgingInput struct {
	PlayerID string
	Slot     int
}

// CancelForgingOutput defines the response for a cancel
type CancelForgingOutput struct {
	// Cancelled is the discarded job, nil when the slot was idle
	Cancelled *entities.Job
}

// CheckExpiredInput defines the request for completing every finished job
type CheckExpiredInput struct {
	PlayerID string
}

// CheckExpiredOutput lists the bindings written
type CheckExpiredOutput struct {
	Completed []*enchantment.Binding
}

// ListSlotsInput defines the request for listing slots
type ListSlotsInput struct {
	PlayerID string
}

// ListSlotsOutput holds every slot with its timing
type ListSlotsOutput struct {
	Slots []*SlotView
}

// SlotView is a slot plus its progress at the time it was read
type SlotView struct {
	*entities.Slot
	Progress  float64       `json:"progress"`
	Remaining time.Duration `json:"remaining"`
}

func viewOf(slot *entities.Slot, now time.Time) *SlotView {
	v := &SlotView{Slot: slot}
	if slot.Job != nil {
		v.Progress = entities.Progress(now, slot.Job.StartTime, slot.Job.EndTime)
		v.Remaining = entities.Remaining(now, slot.Job.EndTime)
	}
	return v
}
