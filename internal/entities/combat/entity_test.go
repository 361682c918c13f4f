package combat_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
)

type EntityTestSuite struct {
	suite.Suite
	entity *combat.Entity
}

func (s *EntityTestSuite) SetupTest() {
	s.entity = combat.NewEntity("player_1", 1000, combat.Stats{Damage: 10, Defense: 20})
}

func (s *EntityTestSuite) TestTakeDamageClampsAtZero() {
	s.Equal(300, s.entity.TakeDamage(300))
	s.Equal(700, s.entity.CurrentHealth)

	s.Equal(700, s.entity.TakeDamage(5000))
	s.Equal(0, s.entity.CurrentHealth)
	s.False(s.entity.IsAlive())

	s.Equal(0, s.entity.TakeDamage(-5))
}

func (s *EntityTestSuite) TestHealClampsAtMax() {
	s.entity.TakeDamage(100)
	s.Equal(100, s.entity.Heal(250))
	s.Equal(1000, s.entity.CurrentHealth)

	s.entity.TakeDamage(1000)
	s.Equal(0, s.entity.Heal(50), "dead entities are not healed")
}

func (s *EntityTestSuite) TestHealthPercent() {
	s.entity.TakeDamage(250)
	s.InDelta(75.0, s.entity.HealthPercent(), 0.001)

	empty := combat.NewEntity("empty", 0, combat.Stats{})
	s.Zero(empty.HealthPercent())
}

func (s *EntityTestSuite) TestZeroDurationEffectsAreNotStored() {
	s.entity.AddBuff(combat.Buff{Kind: combat.BuffDamageMultiplier, Multiplier: 2})
	s.entity.AddDebuff(combat.Debuff{Kind: combat.DebuffStun})

	s.Empty(s.entity.Buffs)
	s.Empty(s.entity.Debuffs)
}

func (s *EntityTestSuite) TestAddBuffRefreshesSameSource() {
	s.entity.AddBuff(combat.Buff{Kind: combat.BuffDefenseMultiplier, Source: "shielding", Multiplier: 1.5, Remaining: 3})
	s.entity.Tick()
	s.entity.AddBuff(combat.Buff{Kind: combat.BuffDefenseMultiplier, Source: "shielding", Multiplier: 1.5, Remaining: 3})

	s.Require().Len(s.entity.Buffs, 1)
	s.Equal(3, s.entity.Buffs[0].Remaining)
}

func (s *EntityTestSuite) TestMultipliers() {
	s.entity.AddBuff(combat.Buff{Kind: combat.BuffDamageMultiplier, Source: "elixir", Multiplier: 1.5, Remaining: 10})
	s.entity.AddDebuff(combat.Debuff{Kind: combat.DebuffWeaken, Source: "weakness", Multiplier: 0.5, Remaining: 3})
	s.entity.AddBuff(combat.Buff{Kind: combat.BuffDefenseMultiplier, Source: "shielding", Multiplier: 2, Remaining: 3})

	s.InDelta(0.75, s.entity.OutgoingMultiplier(), 0.0001)
	s.InDelta(0.5, s.entity.DefenseMultiplier(), 0.0001)
}

func (s *EntityTestSuite) TestConsumeSingleUse() {
	s.entity.AddBuff(combat.Buff{Kind: combat.BuffDamageMultiplier, Source: "overheat", Multiplier: 2, Remaining: 5, SingleUse: true})
	s.InDelta(1.0, s.entity.OutgoingMultiplier(), 0.0001)

	s.InDelta(2.0, s.entity.ConsumeSingleUse(), 0.0001)
	s.Empty(s.entity.Buffs)
	s.InDelta(1.0, s.entity.ConsumeSingleUse(), 0.0001)
}

func (s *EntityTestSuite) TestTickDotAndExpiry() {
	s.entity.AddDebuff(combat.Debuff{Kind: combat.DebuffDot, Source: "poisoning", Effect: 2, Remaining: 5})

	total := 0
	for i := 0; i < 5; i++ {
		total += s.entity.Tick().DotDamage
	}

	s.Equal(100, total, "two percent of 1000 for 5 seconds")
	s.Empty(s.entity.Debuffs)
	s.Equal(1000, s.entity.CurrentHealth, "tick reports damage without applying it")
}

func (s *EntityTestSuite) TestTickRespectsTickRate() {
	s.entity.AddDebuff(combat.Debuff{Kind: combat.DebuffDot, Source: "time_bomb", Effect: 10, Remaining: 2, TickRate: 2})

	s.Zero(s.entity.Tick().DotDamage)
	s.Equal(100, s.entity.Tick().DotDamage)
	s.Empty(s.entity.Debuffs)
}

func (s *EntityTestSuite) TestTickHealAndRecharge() {
	s.entity.AddBuff(combat.Buff{Kind: combat.BuffHealOverTime, Source: "regeneration", Effect: 2, Remaining: 2})
	s.entity.AddBuff(combat.Buff{Kind: combat.BuffMagicRecharge, Source: "rejuvenation", Effect: 5, Remaining: 1})

	res := s.entity.Tick()
	s.Equal(20, res.Heal)
	s.Equal(5, res.MagicRecharge)
	s.Len(s.entity.Buffs, 1)
}

func (s *EntityTestSuite) TestStacks() {
	s.entity.SetStack("tempest_rage", 3)
	s.Equal(3, s.entity.Stack("tempest_rage"))

	s.entity.SetStack("tempest_rage", 0)
	s.Zero(s.entity.Stack("tempest_rage"))
	s.NotContains(s.entity.Stacks, "tempest_rage")
}

func (s *EntityTestSuite) TestCloneIsDeep() {
	s.entity.SetStack("karma", 2)
	s.entity.AddBuff(combat.Buff{Kind: combat.BuffHealOverTime, Source: "regeneration", Effect: 2, Remaining: 5})

	clone := s.entity.Clone()
	clone.SetStack("karma", 5)
	clone.Buffs[0].Remaining = 1
	clone.TakeDamage(10)

	s.Equal(2, s.entity.Stack("karma"))
	s.Equal(5, s.entity.Buffs[0].Remaining)
	s.Equal(1000, s.entity.CurrentHealth)
}

func TestEntityTestSuite(t *testing.T) {
	suite.Run(t, new(EntityTestSuite))
}
