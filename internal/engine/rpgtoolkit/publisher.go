// Package rpgtoolkit adapts raid and forge domain events onto the rpg-toolkit event bus.
package rpgtoolkit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// Event types published by the engine
const (
	EventRaidStarted      = "raid.started"
	EventRaidPhaseChanged = "raid.phase_changed"
	EventBattleFinished   = "raid.battle_finished"
	EventRaidFinished     = "raid.finished"
	EventProcTriggered    = "combat.proc_triggered"
	EventForgeStarted     = "forge.started"
	EventForgeCompleted   = "forge.completed"
	EventForgeCancelled   = "forge.cancelled"
)

// AllEventTypes lists every published event type
var AllEventTypes = []string{
	EventRaidStarted,
	EventRaidPhaseChanged,
	EventBattleFinished,
	EventRaidFinished,
	EventProcTriggered,
	EventForgeStarted,
	EventForgeCompleted,
	EventForgeCancelled,
}

// Publisher publishes domain events. A nil *Publisher drops everything, so
// orchestrators can run without a bus.
type Publisher struct {
	bus events.EventBus
}

// PublisherConfig contains configuration for creating a Publisher
type PublisherConfig struct {
	EventBus events.EventBus
}

// Validate checks that all required dependencies are provided
func (c *PublisherConfig) Validate() error {
	if c.EventBus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	return nil
}

// NewPublisher creates a publisher over an rpg-toolkit event bus
func NewPublisher(cfg *PublisherConfig) (*Publisher, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Publisher{bus: cfg.EventBus}, nil
}

// Publish sends one event with the given context values. Handler failures are
// logged and never surface to the caller; the game action already happened.
func (p *Publisher) Publish(ctx context.Context, eventType string, source, target core.Entity, data map[string]any) {
	if p == nil || p.bus == nil {
		return
	}

	ev := events.NewGameEvent(eventType, source, target)
	for k, v := range data {
		ev.Context().Set(k, v)
	}

	if err := p.bus.Publish(ctx, ev); err != nil {
		slog.Warn("Event handler failed",
			"event_type", eventType,
			"error", err,
		)
	}
}

func slotID(playerID string, index int) string {
	return fmt.Sprintf("%s/%d", playerID, index)
}
