package rpgtoolkit

import "github.com/KirkDiggler/rpg-toolkit/core"

// Entity types reported through GetType
const (
	EntityTypePlayer    = "player"
	EntityTypeBoss      = "boss"
	EntityTypeRaid      = "raid"
	EntityTypeForgeSlot = "forge_slot"
)

// Entity is a lightweight core.Entity used as an event source or target
type Entity struct {
	ID   string
	Type string
}

// GetID returns the entity ID
func (e *Entity) GetID() string {
	return e.ID
}

// GetType returns the entity type for rpg-toolkit
func (e *Entity) GetType() string {
	return e.Type
}

// Player wraps a player ID
func Player(id string) *Entity {
	return &Entity{ID: id, Type: EntityTypePlayer}
}

// Boss wraps a boss ID
func Boss(id string) *Entity {
	return &Entity{ID: id, Type: EntityTypeBoss}
}

// Raid wraps a raid ID
func Raid(id string) *Entity {
	return &Entity{ID: id, Type: EntityTypeRaid}
}

// ForgeSlot wraps a player's slot
func ForgeSlot(playerID string, index int) *Entity {
	return &Entity{ID: slotID(playerID, index), Type: EntityTypeForgeSlot}
}

// Compile-time check that our entity wrapper implements core.Entity
var _ core.Entity = (*Entity)(nil)
