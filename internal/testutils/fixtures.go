package testutils

import (
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-raid/internal/testutils/builders"
)

// TestKeyItem is the key consumed by the boss from CreateTestBoss
const TestKeyItem = "test-key"

// CreateTestItem creates an owned item with 10 damage
func CreateTestItem(ownerID, id string, category enchantment.Category, level int) *equipment.Item {
	return builders.NewItemBuilder().
		WithID(id).
		WithOwner(ownerID).
		WithCategory(category).
		WithLevel(level).
		WithDamage(10).
		Build()
}

// CreateTestBoss creates the raid boss used across orchestrator tests: the
// 1757 point shield of the smallest catalog boss, a 200 point final pool and
// a level 5 gate.
func CreateTestBoss() *raid.Boss {
	return builders.NewBossBuilder().
		WithShield(1757).
		WithFinalBattleHP(200).
		WithMinLevel(5).
		WithKey(TestKeyItem, 1).
		WithReward(inventory.ItemPurpleOrbs, 2).
		WithReward(inventory.ItemCrystals, 50).
		Build()
}
