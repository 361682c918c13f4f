package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/orchestrators/forge"
)

// ForgeHandlerConfig holds dependencies for the forge handler
type ForgeHandlerConfig struct {
	ForgeService forge.Service
}

// Validate ensures all required dependencies are present
func (c *ForgeHandlerConfig) Validate() error {
	if c.ForgeService == nil {
		return errors.InvalidArgument("forge service is required")
	}
	return nil
}

// ForgeHandler implements ForgeServiceServer
type ForgeHandler struct {
	forgeService forge.Service
}

// NewForgeHandler creates a new forge handler with the given configuration
func NewForgeHandler(cfg *ForgeHandlerConfig) (*ForgeHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ForgeHandler{
		forgeService: cfg.ForgeService,
	}, nil
}

// StartForging starts a job in a slot
func (h *ForgeHandler) StartForging(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requireField(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	enchantmentID, err := requireField(req, fieldEnchantmentID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	equipmentID, err := requireField(req, fieldEquipmentID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.forgeService.StartForging(ctx, &forge.StartForgingInput{
		PlayerID:      playerID,
		Slot:          intField(req, fieldSlot),
		EnchantmentID: enchantment.ID(enchantmentID),
		EquipmentID:   equipmentID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(map[string]any{
		"slot":      out.Slot,
		"remaining": out.Remaining,
	})
}

// CompleteForging writes the binding of a finished job
func (h *ForgeHandler) CompleteForging(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requireField(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.forgeService.CompleteForging(ctx, &forge.CompleteForgingInput{
		PlayerID: playerID,
		Slot:     intField(req, fieldSlot),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(map[string]any{"binding": out.Binding})
}

// SpeedUpForging finishes a job for crystals
func (h *ForgeHandler) SpeedUpForging(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requireField(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.forgeService.SpeedUpForging(ctx, &forge.SpeedUpForgingInput{
		PlayerID: playerID,
		Slot:     intField(req, fieldSlot),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(map[string]any{
		"binding":        out.Binding,
		"crystals_spent": out.CrystalsSpent,
	})
}

// CancelForging discards a job
func (h *ForgeHandler) CancelForging(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requireField(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.forgeService.CancelForging(ctx, &forge.CancelForgingInput{
		PlayerID: playerID,
		Slot:     intField(req, fieldSlot),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(map[string]any{"cancelled": out.Cancelled})
}

// CheckExpired completes every job finished by the server clock
func (h *ForgeHandler) CheckExpired(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requireField(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.forgeService.CheckExpired(ctx, &forge.CheckExpiredInput{PlayerID: playerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(map[string]any{"completed": out.Completed})
}

// ListSlots lists the player's forge slots
func (h *ForgeHandler) ListSlots(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requireField(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.forgeService.ListSlots(ctx, &forge.ListSlotsInput{PlayerID: playerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(map[string]any{"slots": out.Slots})
}

func response(fields map[string]any) (*structpb.Struct, error) {
	resp, err := toStruct(fields)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

var _ ForgeServiceServer = (*ForgeHandler)(nil)
