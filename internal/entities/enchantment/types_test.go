package enchantment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
)

func TestCanReplace(t *testing.T) {
	mythic := &enchantment.Binding{EnchantmentID: enchantment.Karma, Tier: enchantment.TierMythical}
	simple := &enchantment.Binding{EnchantmentID: enchantment.Poisoning, Tier: enchantment.TierSimple}

	testCases := []struct {
		name     string
		existing *enchantment.Binding
		incoming enchantment.Tier
		want     bool
	}{
		{"empty slot takes anything", nil, enchantment.TierSimple, true},
		{"simple over simple", simple, enchantment.TierSimple, true},
		{"mythical over simple", simple, enchantment.TierMythical, true},
		{"medium over mythical", mythic, enchantment.TierMedium, false},
		{"simple over mythical", mythic, enchantment.TierSimple, false},
		{"mythical over mythical", mythic, enchantment.TierMythical, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, enchantment.CanReplace(tc.existing, tc.incoming))
		})
	}
}

func TestEnchantmentHelpers(t *testing.T) {
	e := &enchantment.Enchantment{
		ID:            enchantment.Precision,
		Categories:    []enchantment.Category{enchantment.CategoryWeapon},
		ForgeSeconds:  90,
		PowerPerLevel: 19,
	}

	assert.True(t, e.Eligible(enchantment.CategoryWeapon))
	assert.False(t, e.Eligible(enchantment.CategoryBoots))
	assert.Equal(t, 90*time.Second, e.ForgeDuration())
	assert.Equal(t, 1900, e.PowerAt(100))
	assert.Equal(t, 0, e.PowerAt(-3))
	assert.True(t, enchantment.CategoryGloves.Valid())
	assert.False(t, enchantment.Category("ring").Valid())
	assert.False(t, enchantment.Tier("legendary").Valid())
	assert.True(t, enchantment.FamilyStatefulStack.Valid())
}
