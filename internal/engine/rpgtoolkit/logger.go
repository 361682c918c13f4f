package rpgtoolkit

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Keys set on event contexts
const (
	KeyPhaseFrom   = "phase_from"
	KeyPhaseTo     = "phase_to"
	KeyVictory     = "victory"
	KeyDamage      = "damage"
	KeyShield      = "shield"
	KeyEnchantment = "enchantment_id"
	KeyEquipment   = "equipment_id"
	KeyReason      = "reason"
	KeyRating      = "rating_delta"
	KeyPlacement   = "placement"
)

var logKeys = []string{
	KeyPhaseFrom, KeyPhaseTo, KeyVictory, KeyDamage, KeyShield,
	KeyEnchantment, KeyEquipment, KeyReason, KeyRating, KeyPlacement,
}

// SubscribeLogger logs every engine event at debug level and returns the
// subscription IDs
func SubscribeLogger(bus events.EventBus, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	ids := make([]string, 0, len(AllEventTypes))
	for _, eventType := range AllEventTypes {
		ids = append(ids, bus.SubscribeFunc(eventType, 0, func(ctx context.Context, e events.Event) error {
			attrs := []any{"event_type", e.Type()}
			if src := e.Source(); src != nil {
				attrs = append(attrs, "source", src.GetID())
			}
			if tgt := e.Target(); tgt != nil {
				attrs = append(attrs, "target", tgt.GetID())
			}
			for _, k := range logKeys {
				if v, ok := e.Context().Get(k); ok {
					attrs = append(attrs, k, v)
				}
			}
			logger.DebugContext(ctx, "Engine event", attrs...)
			return nil
		}))
	}
	return ids
}
