// Package forge implements the forge orchestrator: timed enchantment jobs in a
// fixed pool of slots that write equipment bindings when they finish.
package forge

//go:generate mockgen -destination=mock/mock_service.go -package=forgemock github.com/KirkDiggler/rpg-raid/internal/orchestrators/forge Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-raid/internal/catalog"
	"github.com/KirkDiggler/rpg-raid/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	entities "github.com/KirkDiggler/rpg-raid/internal/entities/forge"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/enchantments"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/equipment"
	forgeslots "github.com/KirkDiggler/rpg-raid/internal/repositories/forge_slots"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/inventory"
)

// DefaultSlotCount is the size of the forge slot pool
const DefaultSlotCount = 3

// Service defines the interface for forge operations
type Service interface {
	// StartForging consumes the orb cost and starts a job in an idle slot
	StartForging(ctx context.Context, input *StartForgingInput) (*StartForgingOutput, error)

	// CompleteForging writes the binding of a finished job and frees the slot.
	// Completing an idle slot is a no-op.
	CompleteForging(ctx context.Context, input *CompleteForgingInput) (*CompleteForgingOutput, error)

	// SpeedUpForging pays the skip cost in crystals and completes the job now
	SpeedUpForging(ctx context.Context, input *SpeedUpForgingInput) (*SpeedUpForgingOutput, error)

	// CancelForging frees the slot. Consumed orbs are not refunded.
	CancelForging(ctx context.Context, input *CancelForgingInput) (*CancelForgingOutput, error)

	// CheckExpired completes every job whose end time has passed
	CheckExpired(ctx context.Context, input *CheckExpiredInput) (*CheckExpiredOutput, error)

	// ListSlots returns every slot with progress and remaining time
	ListSlots(ctx context.Context, input *ListSlotsInput) (*ListSlotsOutput, error)
}

// Config holds the dependencies for the forge orchestrator
type Config struct {
	Catalog       catalog.Reader
	InventoryRepo inventory.Repository
	EquipmentRepo equipment.Repository
	BindingRepo   enchantments.Repository
	SlotRepo      forgeslots.Repository
	Clock         clock.Clock
	// Publisher is optional
	Publisher *rpgtoolkit.Publisher
	// SlotCount defaults to DefaultSlotCount
	SlotCount int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.InventoryRepo == nil {
		vb.RequiredField("InventoryRepo")
	}
	if c.EquipmentRepo == nil {
		vb.RequiredField("EquipmentRepo")
	}
	if c.BindingRepo == nil {
		vb.RequiredField("BindingRepo")
	}
	if c.SlotRepo == nil {
		vb.RequiredField("SlotRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.SlotCount < 0 {
		vb.Field("SlotCount", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	catalog       catalog.Reader
	inventoryRepo inventory.Repository
	equipmentRepo equipment.Repository
	bindingRepo   enchantments.Repository
	slotRepo      forgeslots.Repository
	clock         clock.Clock
	publisher     *rpgtoolkit.Publisher
	slotCount     int

	// serializes slot mutations so a job is paid for and completed once
	mu sync.Mutex
}

// NewOrchestrator creates a new forge orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	slotCount := cfg.SlotCount
	if slotCount == 0 {
		slotCount = DefaultSlotCount
	}

	return &orchestrator{
		catalog:       cfg.Catalog,
		inventoryRepo: cfg.InventoryRepo,
		equipmentRepo: cfg.EquipmentRepo,
		bindingRepo:   cfg.BindingRepo,
		slotRepo:      cfg.SlotRepo,
		clock:         cfg.Clock,
		publisher:     cfg.Publisher,
		slotCount:     slotCount,
	}, nil
}

// StartForging starts a job. Every check runs before the orbs are consumed so
// a rejected start never costs anything.
func (o *orchestrator) StartForging(ctx context.Context, input *StartForgingInput) (*StartForgingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("PlayerID", input.PlayerID, vb)
	errors.ValidateRequired("EnchantmentID", string(input.EnchantmentID), vb)
	errors.ValidateRequired("EquipmentID", input.EquipmentID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if err := o.checkSlot(input.Slot); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	ench, err := o.catalog.Enchantment(input.EnchantmentID)
	if err != nil {
		return nil, err
	}

	item, err := o.equipmentRepo.Get(ctx, equipment.GetInput{EquipmentID: input.EquipmentID})
	if err != nil {
		return nil, err
	}
	if item.Item.OwnerID != input.PlayerID {
		return nil, errors.InvalidTarget("equipment %s is not owned by %s", input.EquipmentID, input.PlayerID)
	}
	if !ench.Eligible(item.Item.Category) {
		return nil, errors.InvalidTarget("%s cannot be bound to %s", ench.ID, item.Item.Category).
			WithMeta("category", string(item.Item.Category))
	}

	slots, err := o.slotRepo.List(ctx, &forgeslots.ListInput{PlayerID: input.PlayerID, Count: o.slotCount})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read forge slots")
	}
	for _, s := range slots.Slots {
		if s.Index == input.Slot && !s.Idle() {
			return nil, errors.AlreadyActive("forge slot %d is already forging", input.Slot)
		}
		if s.Job != nil && s.Job.EquipmentID == input.EquipmentID {
			return nil, errors.AlreadyActive("equipment %s is already forging in slot %d", input.EquipmentID, s.Index)
		}
	}

	existing, err := o.bindingRepo.Get(ctx, &enchantments.GetInput{EquipmentID: input.EquipmentID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read current enchantment")
	}
	if !enchantment.CanReplace(existing.Binding, ench.Tier) {
		return nil, errors.IneligibleReplacement("equipment %s holds mythical %s; %s cannot replace it",
			input.EquipmentID, existing.Binding.EnchantmentID, ench.Tier)
	}

	consumed, err := o.inventoryRepo.Consume(ctx, &inventory.ConsumeInput{
		PlayerID: input.PlayerID,
		Costs:    ench.OrbCost,
	})
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	job := &entities.Job{
		EquipmentID:   input.EquipmentID,
		Category:      item.Item.Category,
		EnchantmentID: ench.ID,
		Tier:          ench.Tier,
		StartTime:     now,
		EndTime:       now.Add(ench.ForgeDuration()),
	}

	put, err := o.slotRepo.Put(ctx, &forgeslots.PutInput{PlayerID: input.PlayerID, Index: input.Slot, Job: job})
	if err != nil {
		// the job never started, so this is the one path that gives orbs back
		o.refund(ctx, input.PlayerID, ench.OrbCost)
		return nil, err
	}

	slog.Info("Forge started",
		"player_id", input.PlayerID,
		"slot", input.Slot,
		"enchantment_id", ench.ID,
		"equipment_id", input.EquipmentID,
		"end_time", job.EndTime,
	)
	o.publisher.Publish(ctx, rpgtoolkit.EventForgeStarted,
		rpgtoolkit.ForgeSlot(input.PlayerID, input.Slot), rpgtoolkit.Player(input.PlayerID),
		map[string]any{
			rpgtoolkit.KeyEnchantment: string(ench.ID),
			rpgtoolkit.KeyEquipment:   input.EquipmentID,
		})

	return &StartForgingOutput{
		Slot:      viewOf(put.Slot, now),
		Remaining: consumed.Remaining,
	}, nil
}

// CompleteForging completes a job whose end time has passed
func (o *orchestrator) CompleteForging(ctx context.Context, input *CompleteForgingInput) (*CompleteForgingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.checkPlayerSlot(input.PlayerID, input.Slot); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	got, err := o.slotRepo.Get(ctx, &forgeslots.GetInput{PlayerID: input.PlayerID, Index: input.Slot})
	if err != nil {
		return nil, err
	}
	if got.Slot.Idle() {
		return &CompleteForgingOutput{}, nil
	}
	if now := o.clock.Now(); !got.Slot.Ready(now) {
		return nil, errors.FailedPreconditionf("forge slot %d finishes in %s",
			input.Slot, entities.Remaining(now, got.Slot.Job.EndTime).Round(time.Second))
	}

	b, err := o.finish(ctx, input.PlayerID, input.Slot)
	if err != nil {
		return nil, err
	}

	return &CompleteForgingOutput{Binding: b}, nil
}

// SpeedUpForging pays the skip cost and completes the job without a time check.
// The crystals go back when the job was not completed by this call.
func (o *orchestrator) SpeedUpForging(ctx context.Context, input *SpeedUpForgingInput) (*SpeedUpForgingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.checkPlayerSlot(input.PlayerID, input.Slot); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	got, err := o.slotRepo.Get(ctx, &forgeslots.GetInput{PlayerID: input.PlayerID, Index: input.Slot})
	if err != nil {
		return nil, err
	}
	if got.Slot.Idle() {
		return &SpeedUpForgingOutput{}, nil
	}

	ench, err := o.catalog.Enchantment(got.Slot.Job.EnchantmentID)
	if err != nil {
		return nil, err
	}

	cost := map[string]int{inventory.ItemCrystals: ench.SkipCost}
	if ench.SkipCost > 0 {
		if _, err := o.inventoryRepo.Consume(ctx, &inventory.ConsumeInput{
			PlayerID: input.PlayerID,
			Costs:    cost,
		}); err != nil {
			return nil, err
		}
	}

	b, err := o.finish(ctx, input.PlayerID, input.Slot)
	if err != nil {
		o.refund(ctx, input.PlayerID, cost)
		return nil, err
	}
	if b == nil {
		// another completion emptied the slot after it was read
		o.refund(ctx, input.PlayerID, cost)
		return &SpeedUpForgingOutput{}, nil
	}

	return &SpeedUpForgingOutput{Binding: b, CrystalsSpent: ench.SkipCost}, nil
}

// CancelForging clears the slot without refunding
func (o *orchestrator) CancelForging(ctx context.Context, input *CancelForgingInput) (*CancelForgingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.checkPlayerSlot(input.PlayerID, input.Slot); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	cleared, err := o.slotRepo.Clear(ctx, &forgeslots.ClearInput{PlayerID: input.PlayerID, Index: input.Slot})
	if err != nil {
		return nil, err
	}
	if cleared.Job == nil {
		return &CancelForgingOutput{}, nil
	}

	slog.Info("Forge cancelled",
		"player_id", input.PlayerID,
		"slot", input.Slot,
		"enchantment_id", cleared.Job.EnchantmentID,
	)
	o.publisher.Publish(ctx, rpgtoolkit.EventForgeCancelled,
		rpgtoolkit.ForgeSlot(input.PlayerID, input.Slot), rpgtoolkit.Player(input.PlayerID),
		map[string]any{
			rpgtoolkit.KeyEnchantment: string(cleared.Job.EnchantmentID),
			rpgtoolkit.KeyEquipment:   cleared.Job.EquipmentID,
		})

	return &CancelForgingOutput{Cancelled: cleared.Job}, nil
}

// CheckExpired completes each ready job. A refused binding stays in its slot,
// is logged, and the remaining slots are still processed.
func (o *orchestrator) CheckExpired(ctx context.Context, input *CheckExpiredInput) (*CheckExpiredOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.clock.Now()

	slots, err := o.slotRepo.List(ctx, &forgeslots.ListInput{PlayerID: input.PlayerID, Count: o.slotCount})
	if err != nil {
		return nil, err
	}

	out := &CheckExpiredOutput{}
	for _, s := range slots.Slots {
		if !s.Ready(now) {
			continue
		}
		b, err := o.finish(ctx, input.PlayerID, s.Index)
		if err != nil {
			if errors.IsIneligibleReplacement(err) {
				slog.Warn("Forge job kept in slot",
					"player_id", input.PlayerID,
					"slot", s.Index,
					"error", err,
				)
				continue
			}
			return nil, err
		}
		if b != nil {
			out.Completed = append(out.Completed, b)
		}
	}

	return out, nil
}

// ListSlots returns the slot pool
func (o *orchestrator) ListSlots(ctx context.Context, input *ListSlotsInput) (*ListSlotsOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	slots, err := o.slotRepo.List(ctx, &forgeslots.ListInput{PlayerID: input.PlayerID, Count: o.slotCount})
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	views := make([]*SlotView, len(slots.Slots))
	for i, s := range slots.Slots {
		views[i] = viewOf(s, now)
	}

	return &ListSlotsOutput{Slots: views}, nil
}

// finish clears the slot and writes the binding. The clear hands the job to
// exactly one caller; everyone else sees an idle slot and gets a nil binding.
// When the binding cannot be written the job goes back into its slot.
func (o *orchestrator) finish(ctx context.Context, playerID string, index int) (*enchantment.Binding, error) {
	cleared, err := o.slotRepo.Clear(ctx, &forgeslots.ClearInput{PlayerID: playerID, Index: index})
	if err != nil {
		return nil, err
	}
	job := cleared.Job
	if job == nil {
		return nil, nil
	}

	b, err := o.bind(ctx, job)
	if err != nil {
		o.restore(ctx, playerID, index, job)
		return nil, err
	}

	slog.Info("Forge completed",
		"player_id", playerID,
		"slot", index,
		"enchantment_id", b.EnchantmentID,
		"equipment_id", b.EquipmentID,
		"power", b.Power,
	)
	o.publisher.Publish(ctx, rpgtoolkit.EventForgeCompleted,
		rpgtoolkit.ForgeSlot(playerID, index), rpgtoolkit.Player(playerID),
		map[string]any{
			rpgtoolkit.KeyEnchantment: string(b.EnchantmentID),
			rpgtoolkit.KeyEquipment:   b.EquipmentID,
		})

	return b, nil
}

func (o *orchestrator) bind(ctx context.Context, job *entities.Job) (*enchantment.Binding, error) {
	ench, err := o.catalog.Enchantment(job.EnchantmentID)
	if err != nil {
		return nil, err
	}

	level := 0
	item, err := o.equipmentRepo.Get(ctx, equipment.GetInput{EquipmentID: job.EquipmentID})
	switch {
	case err == nil:
		level = item.Item.Level
	case errors.IsInvalidTarget(err):
		return nil, errors.InvalidTarget("equipment %s no longer exists", job.EquipmentID)
	default:
		return nil, err
	}

	b := &enchantment.Binding{
		EquipmentID:   job.EquipmentID,
		Category:      job.Category,
		EnchantmentID: job.EnchantmentID,
		Tier:          job.Tier,
		Power:         ench.PowerAt(level),
		BoundAt:       o.clock.Now(),
	}
	if _, err := o.bindingRepo.Put(ctx, &enchantments.PutInput{Binding: b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (o *orchestrator) restore(ctx context.Context, playerID string, index int, job *entities.Job) {
	if _, err := o.slotRepo.Put(ctx, &forgeslots.PutInput{PlayerID: playerID, Index: index, Job: job}); err != nil {
		slog.Error("Failed to restore forge job",
			"player_id", playerID,
			"slot", index,
			"enchantment_id", job.EnchantmentID,
			"error", err,
		)
	}
}

func (o *orchestrator) refund(ctx context.Context, playerID string, costs map[string]int) {
	for item, n := range costs {
		if n <= 0 {
			continue
		}
		if _, err := o.inventoryRepo.Increment(ctx, &inventory.IncrementInput{
			PlayerID: playerID, ItemID: item, Delta: n,
		}); err != nil {
			slog.Error("Failed to refund forge cost",
				"player_id", playerID,
				"item_id", item,
				"amount", n,
				"error", err,
			)
		}
	}
}

func (o *orchestrator) checkPlayerSlot(playerID string, index int) error {
	if playerID == "" {
		return errors.InvalidArgument("player ID is required")
	}
	return o.checkSlot(index)
}

func (o *orchestrator) checkSlot(index int) error {
	if index < 0 || index >= o.slotCount {
		return errors.InvalidTarget("forge slot %d does not exist", index).
			WithMeta("slot_count", o.slotCount)
	}
	return nil
}
