package proc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-raid/internal/engine/proc"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
)

func TestTriggerChanceBounds(t *testing.T) {
	for power := -100; power <= 10000; power += 7 {
		c := proc.TriggerChance(power)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, proc.MaxChance)
	}

	assert.Zero(t, proc.TriggerChance(0))
	assert.InDelta(t, 40.0, proc.TriggerChance(proc.MaxPower), 0.0001)
	assert.InDelta(t, 20.0, proc.TriggerChance(950), 0.0001)
	assert.Equal(t, proc.MaxChance, proc.TriggerChance(5000))
}

func TestDamageScaledChance(t *testing.T) {
	assert.InDelta(t, 10.0, proc.DamageScaledChance(100, 10), 0.0001)
	assert.InDelta(t, 14.0, proc.DamageScaledChance(140, 10), 0.0001)
	assert.Equal(t, proc.MaxChance, proc.DamageScaledChance(2000, 10))
	assert.Zero(t, proc.DamageScaledChance(0, 10))
	assert.Zero(t, proc.DamageScaledChance(-50, 10))
}

func TestSetBonus(t *testing.T) {
	full := func(id enchantment.ID) []*enchantment.Binding {
		out := make([]*enchantment.Binding, 0, len(enchantment.AllCategories))
		for _, c := range enchantment.AllCategories {
			out = append(out, &enchantment.Binding{Category: c, EnchantmentID: id, Tier: enchantment.TierMythical})
		}
		return out
	}

	id, ok := proc.SetBonus(full(enchantment.Karma))
	assert.True(t, ok)
	assert.Equal(t, enchantment.Karma, id)

	mixed := full(enchantment.Karma)
	mixed[2].EnchantmentID = enchantment.TempestRage
	_, ok = proc.SetBonus(mixed)
	assert.False(t, ok, "different mythics")

	partial := full(enchantment.Karma)[:4]
	_, ok = proc.SetBonus(partial)
	assert.False(t, ok, "missing category")

	lowTier := full(enchantment.Precision)
	for _, b := range lowTier {
		b.Tier = enchantment.TierSimple
	}
	_, ok = proc.SetBonus(lowTier)
	assert.False(t, ok, "not mythical")

	_, ok = proc.SetBonus(nil)
	assert.False(t, ok)
}
