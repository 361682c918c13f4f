// Package errors provides the structured error type used across the raid engine.
//
// Every failure a player action can produce is a *Error carrying a Code, a
// user-facing message and optional metadata. Nothing in the engine panics or
// treats a rejected action as fatal; callers inspect the code and surface the
// message.
//
// # Basic Usage
//
//	err := errors.NotFound("boss not found").WithMeta("boss_id", bossID)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load inventory")
//	}
//
// # Game Taxonomy
//
// Player-facing rejections use the constructors in game.go, which map onto the
// generic codes:
//
//   - InsufficientResources: CodeResourceExhausted
//   - InvalidTarget: CodeNotFound
//   - AlreadyActive: CodeAlreadyExists
//   - IneligibleReplacement: CodeFailedPrecondition
//   - Terminal: CodeAborted
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Roller == nil {
//	    vb.RequiredField("Roller")
//	}
//	return vb.Build()
//
// # gRPC Integration
//
// ToGRPCError converts any error into a status error; metadata travels as a
// google.protobuf.Struct detail so FromGRPCError can restore it on the client.
package errors
