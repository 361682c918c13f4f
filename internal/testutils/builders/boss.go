package builders

import (
	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
)

// BossBuilder provides a fluent interface for building test bosses
type BossBuilder struct {
	boss *raid.Boss
}

// NewBossBuilder creates a new builder for a small boss with a 45 second
// battle timer and a ten minute raid
func NewBossBuilder() *BossBuilder {
	return &BossBuilder{
		boss: &raid.Boss{
			ID:           "test-boss",
			Name:         "Test Boss",
			Shield:       1000,
			TimeLimit:    "00:45",
			RaidDuration: 600,
			MaxPartySize: 3,
			MinLevel:     1,
			KeyItem:      "test-key",
			KeyQuantity:  1,
			Rewards:      map[string]int{},
		},
	}
}

// WithID sets the boss ID
func (b *BossBuilder) WithID(id string) *BossBuilder {
	b.boss.ID = id
	return b
}

// WithShield sets the shield pool
func (b *BossBuilder) WithShield(shield int) *BossBuilder {
	b.boss.Shield = shield
	return b
}

// WithFinalBattleHP overrides the final battle pool
func (b *BossBuilder) WithFinalBattleHP(hp int) *BossBuilder {
	b.boss.FinalBattleHP = hp
	return b
}

// WithMinLevel sets the level gate
func (b *BossBuilder) WithMinLevel(level int) *BossBuilder {
	b.boss.MinLevel = level
	return b
}

// WithKey sets the key item consumed on entry
func (b *BossBuilder) WithKey(item string, quantity int) *BossBuilder {
	b.boss.KeyItem = item
	b.boss.KeyQuantity = quantity
	return b
}

// WithReward adds a reward item
func (b *BossBuilder) WithReward(item string, n int) *BossBuilder {
	b.boss.Rewards[item] = n
	return b
}

// Build returns the built boss
func (b *BossBuilder) Build() *raid.Boss {
	return b.boss
}
