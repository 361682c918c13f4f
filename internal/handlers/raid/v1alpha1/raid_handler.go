package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/orchestrators/raid"
)

// RaidHandlerConfig holds dependencies for the raid handler
type RaidHandlerConfig struct {
	RaidService raid.Service
}

// Validate ensures all required dependencies are present
func (c *RaidHandlerConfig) Validate() error {
	if c.RaidService == nil {
		return errors.InvalidArgument("raid service is required")
	}
	return nil
}

// RaidHandler implements RaidServiceServer
type RaidHandler struct {
	raidService raid.Service
}

// NewRaidHandler creates a new raid handler with the given configuration
func NewRaidHandler(cfg *RaidHandlerConfig) (*RaidHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &RaidHandler{
		raidService: cfg.RaidService,
	}, nil
}

// StartRaid starts a raid against a boss
func (h *RaidHandler) StartRaid(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requireField(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	bossID, err := requireField(req, fieldBossID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.StartRaid(ctx, &raid.StartRaidInput{
		PlayerID: playerID,
		BossID:   bossID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// StartBattle enters a battle round
func (h *RaidHandler) StartBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.StartBattle(ctx, &raid.StartBattleInput{
		RaidID:   raidID,
		ChargeID: stringField(req, fieldChargeID),
		ElixirID: stringField(req, fieldElixirID),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// Attack performs a basic attack
func (h *RaidHandler) Attack(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.Attack(ctx, &raid.AttackInput{RaidID: raidID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// UseCharge spends a charge
func (h *RaidHandler) UseCharge(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	chargeID, err := requireField(req, fieldChargeID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.UseCharge(ctx, &raid.UseChargeInput{RaidID: raidID, ChargeID: chargeID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// UseElixir drinks an elixir
func (h *RaidHandler) UseElixir(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	elixirID, err := requireField(req, fieldElixirID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.UseElixir(ctx, &raid.UseElixirInput{RaidID: raidID, ElixirID: elixirID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// CastMagic spends the magic charge
func (h *RaidHandler) CastMagic(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.CastMagic(ctx, &raid.CastMagicInput{RaidID: raidID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// EndRound ends the battle round
func (h *RaidHandler) EndRound(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.EndRound(ctx, &raid.EndRoundInput{RaidID: raidID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// Retreat leaves the battle or the raid
func (h *RaidHandler) Retreat(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.Retreat(ctx, &raid.RetreatInput{RaidID: raidID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// ContinueToLobby leaves the round result
func (h *RaidHandler) ContinueToLobby(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.ContinueToLobby(ctx, &raid.ContinueToLobbyInput{RaidID: raidID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// ClaimReward grants the victory reward
func (h *RaidHandler) ClaimReward(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.ClaimReward(ctx, &raid.ClaimRewardInput{RaidID: raidID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, map[string]any{"rewards": out.Rewards})
}

// Advance applies elapsed time
func (h *RaidHandler) Advance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.Advance(ctx, &raid.AdvanceInput{RaidID: raidID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

// GetRaid reads a raid
func (h *RaidHandler) GetRaid(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raidID, err := requireField(req, fieldRaidID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.raidService.GetRaid(ctx, &raid.GetRaidInput{RaidID: raidID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return raidResponse(out.Raid, nil)
}

func raidResponse(r *raid.Raid, extra map[string]any) (*structpb.Struct, error) {
	fields := map[string]any{"raid": r}
	for k, v := range extra {
		fields[k] = v
	}
	return response(fields)
}

var _ RaidServiceServer = (*RaidHandler)(nil)
