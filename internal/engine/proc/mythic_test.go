package proc_test

import (
	"github.com/KirkDiggler/rpg-raid/internal/engine/proc"
	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/pkg/roller"
)

func (s *ResolverTestSuite) TestTempestRage() {
	b := binding(enchantment.TempestRage, enchantment.TierMythical)
	r := s.resolver(pass)

	for i := 1; i <= 3; i++ {
		out, err := r.ResolveOnHit(s.attacker, s.defender, 100, b)
		s.Require().NoError(err)
		s.False(out.Triggered)
		s.Equal(100, out.Damage)
		s.Equal(i, s.attacker.Stack(string(enchantment.TempestRage)))
	}

	out, err := r.ResolveOnHit(s.attacker, s.defender, 100, b)
	s.Require().NoError(err)
	s.True(out.Triggered)
	s.Equal(350, out.Damage)
	s.Zero(s.attacker.Stack(string(enchantment.TempestRage)))
}

func (s *ResolverTestSuite) TestTempestRageGainIsSixtyPercent() {
	b := binding(enchantment.TempestRage, enchantment.TierMythical)

	_, err := s.resolver(roller.Face(60)+1).ResolveOnHit(s.attacker, s.defender, 100, b)
	s.Require().NoError(err)
	s.Zero(s.attacker.Stack(string(enchantment.TempestRage)))

	_, err = s.resolver(roller.Face(60)).ResolveOnHit(s.attacker, s.defender, 100, b)
	s.Require().NoError(err)
	s.Equal(1, s.attacker.Stack(string(enchantment.TempestRage)))
}

func (s *ResolverTestSuite) TestTempestRageDecaysOnHitTaken() {
	b := binding(enchantment.TempestRage, enchantment.TierMythical)
	key := string(enchantment.TempestRage)
	s.attacker.SetStack(key, 2)

	_, err := s.resolver(roller.Face(70)).ResolveOnHitTaken(s.attacker, s.defender, 100, b)
	s.Require().NoError(err)
	s.Equal(1, s.attacker.Stack(key))

	_, err = s.resolver(roller.Face(70)+1).ResolveOnHitTaken(s.attacker, s.defender, 100, b)
	s.Require().NoError(err)
	s.Equal(1, s.attacker.Stack(key))

	s.attacker.SetStack(key, 0)
	_, err = s.resolver(pass).ResolveOnHitTaken(s.attacker, s.defender, 100, b)
	s.Require().NoError(err)
	s.Zero(s.attacker.Stack(key), "stacks never go negative")
}

func (s *ResolverTestSuite) TestCrimsonCorruption() {
	b := binding(enchantment.CrimsonCorruption, enchantment.TierMythical)
	key := string(enchantment.CrimsonCorruption)
	r := s.resolver(pass)

	out, err := r.ResolveOnHit(s.attacker, s.defender, 100, b)
	s.Require().NoError(err)
	s.False(out.Triggered, "nothing to discharge")
	s.Empty(s.defender.Debuffs)

	_, err = r.ResolveOnHitTaken(s.attacker, s.defender, 24, b)
	s.Require().NoError(err)
	s.Zero(s.attacker.Stack(key))

	_, err = r.ResolveOnHitTaken(s.attacker, s.defender, 60, b)
	s.Require().NoError(err)
	s.Equal(2, s.attacker.Stack(key))

	out, err = r.ResolveOnHit(s.attacker, s.defender, 100, b)
	s.Require().NoError(err)
	s.True(out.Triggered)
	s.Require().NotNil(out.AppliedDebuff)
	s.InDelta(4.5, out.AppliedDebuff.Effect, 0.0001)
	s.Equal(3, out.AppliedDebuff.Remaining)
	s.Zero(s.attacker.Stack(key))
}

func (s *ResolverTestSuite) TestCrimsonCorruptionCapsAtThree() {
	b := binding(enchantment.CrimsonCorruption, enchantment.TierMythical)
	r := s.resolver(pass)

	_, err := r.ResolveOnHitTaken(s.attacker, s.defender, 500, b)
	s.Require().NoError(err)
	s.Equal(3, s.attacker.Stack(string(enchantment.CrimsonCorruption)))

	out, err := r.ResolveOnHit(s.attacker, s.defender, 100, b)
	s.Require().NoError(err)
	s.InDelta(6.0, out.AppliedDebuff.Effect, 0.0001)
}

func (s *ResolverTestSuite) TestKarma() {
	b := binding(enchantment.Karma, enchantment.TierMythical)
	key := string(enchantment.Karma)

	s.Run("combo below three never procs", func() {
		s.SetupTest()
		r := s.resolver(pass)
		for i := 0; i < 2; i++ {
			out, err := r.ResolveOnHit(s.attacker, s.defender, 100, b)
			s.Require().NoError(err)
			s.False(out.Triggered)
		}
		s.Equal(2, s.attacker.Stack(key))
	})

	s.Run("healthy owner gets a damage multiplier", func() {
		s.SetupTest()
		s.attacker.SetStack(key, 2)
		out, err := s.resolver(pass).ResolveOnHit(s.attacker, s.defender, 100, b)
		s.Require().NoError(err)
		s.True(out.Triggered)
		s.Equal(150, out.Damage)
		s.Contains(out.SpecialEffects, proc.EffectKarmaDamage)
	})

	s.Run("wounded owner is healed", func() {
		s.SetupTest()
		s.attacker.SetStack(key, 2)
		s.attacker.TakeDamage(600)
		out, err := s.resolver(pass).ResolveOnHit(s.attacker, s.defender, 100, b)
		s.Require().NoError(err)
		s.True(out.Triggered)
		s.Equal(100, out.Damage)
		s.Equal(100, out.Heal)
		s.Equal(500, s.attacker.CurrentHealth)
	})

	s.Run("tiers follow the combo", func() {
		testCases := []struct {
			combo int
			want  int
		}{
			{combo: 5, want: 200},
			{combo: 8, want: 300},
			{combo: 9, want: 300},
		}
		for _, tc := range testCases {
			s.SetupTest()
			s.attacker.SetStack(key, tc.combo)
			out, err := s.resolver(pass).ResolveOnHit(s.attacker, s.defender, 100, b)
			s.Require().NoError(err)
			s.Equal(tc.want, out.Damage, "combo %d", tc.combo)
			s.LessOrEqual(s.attacker.Stack(key), 9)
		}
	})

	s.Run("hit taken breaks the combo", func() {
		s.SetupTest()
		s.attacker.SetStack(key, 7)
		_, err := s.resolver(pass).ResolveOnHitTaken(s.attacker, s.defender, 100, b)
		s.Require().NoError(err)
		s.Zero(s.attacker.Stack(key))
	})
}

func (s *ResolverTestSuite) TestMythicsKeepSeparateStacks() {
	r := s.resolver(pass)
	s.attacker.SetStack(string(enchantment.Karma), 4)

	_, err := r.ResolveOnHitTaken(s.attacker, s.defender, 100, binding(enchantment.TempestRage, enchantment.TierMythical))
	s.Require().NoError(err)
	s.Equal(4, s.attacker.Stack(string(enchantment.Karma)))

	entity := combat.NewEntity("other", 100, combat.Stats{})
	s.Empty(entity.Stacks)
}
