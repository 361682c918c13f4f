package enchantments_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/enchantments"
	"github.com/KirkDiggler/rpg-raid/internal/testutils"
)

type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() enchantments.Repository
	repo    enchantments.Repository
	ctx     context.Context
	now     time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
	s.now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) binding(equipmentID string, id enchantment.ID, tier enchantment.Tier) *enchantment.Binding {
	return &enchantment.Binding{
		EquipmentID:   equipmentID,
		Category:      enchantment.CategoryWeapon,
		EnchantmentID: id,
		Tier:          tier,
		Power:         400,
		BoundAt:       s.now,
	}
}

func (s *RepositoryTestSuite) TestGetUnenchanted() {
	out, err := s.repo.Get(s.ctx, &enchantments.GetInput{EquipmentID: "eq_1"})
	s.Require().NoError(err)
	s.Nil(out.Binding)
}

func (s *RepositoryTestSuite) TestPutAndGet() {
	_, err := s.repo.Put(s.ctx, &enchantments.PutInput{Binding: s.binding("eq_1", enchantment.Precision, enchantment.TierSimple)})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &enchantments.GetInput{EquipmentID: "eq_1"})
	s.Require().NoError(err)
	s.Require().NotNil(out.Binding)
	s.Equal(enchantment.Precision, out.Binding.EnchantmentID)
	s.Equal(400, out.Binding.Power)
	s.True(s.now.Equal(out.Binding.BoundAt))
}

func (s *RepositoryTestSuite) TestReplacementRules() {
	testCases := []struct {
		name     string
		existing enchantment.Tier
		incoming enchantment.Tier
		wantErr  bool
	}{
		{name: "simple over simple", existing: enchantment.TierSimple, incoming: enchantment.TierSimple},
		{name: "medium over simple", existing: enchantment.TierSimple, incoming: enchantment.TierMedium},
		{name: "simple over medium", existing: enchantment.TierMedium, incoming: enchantment.TierSimple},
		{name: "mythical over medium", existing: enchantment.TierMedium, incoming: enchantment.TierMythical},
		{name: "mythical over mythical", existing: enchantment.TierMythical, incoming: enchantment.TierMythical},
		{name: "simple over mythical", existing: enchantment.TierMythical, incoming: enchantment.TierSimple, wantErr: true},
		{name: "medium over mythical", existing: enchantment.TierMythical, incoming: enchantment.TierMedium, wantErr: true},
	}

	for i, tc := range testCases {
		s.Run(tc.name, func() {
			id := "eq_" + string(rune('a'+i))
			_, err := s.repo.Put(s.ctx, &enchantments.PutInput{Binding: s.binding(id, enchantment.Karma, tc.existing)})
			s.Require().NoError(err)

			out, err := s.repo.Put(s.ctx, &enchantments.PutInput{Binding: s.binding(id, enchantment.Precision, tc.incoming)})

			got, getErr := s.repo.Get(s.ctx, &enchantments.GetInput{EquipmentID: id})
			s.Require().NoError(getErr)

			if tc.wantErr {
				s.Require().Error(err)
				s.True(errors.IsIneligibleReplacement(err))
				s.Equal(enchantment.Karma, got.Binding.EnchantmentID, "existing binding untouched")
				return
			}
			s.Require().NoError(err)
			s.Require().NotNil(out.Replaced)
			s.Equal(enchantment.Karma, out.Replaced.EnchantmentID)
			s.Equal(enchantment.Precision, got.Binding.EnchantmentID)
		})
	}
}

func (s *RepositoryTestSuite) TestPutValidation() {
	b := s.binding("eq_1", enchantment.Precision, "legendary")
	_, err := s.repo.Put(s.ctx, &enchantments.PutInput{Binding: b})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, &enchantments.PutInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestList() {
	_, err := s.repo.Put(s.ctx, &enchantments.PutInput{Binding: s.binding("eq_1", enchantment.Precision, enchantment.TierSimple)})
	s.Require().NoError(err)
	_, err = s.repo.Put(s.ctx, &enchantments.PutInput{Binding: s.binding("eq_3", enchantment.Karma, enchantment.TierMythical)})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, &enchantments.ListInput{EquipmentIDs: []string{"eq_1", "eq_2", "eq_3"}})
	s.Require().NoError(err)
	s.Len(out.Bindings, 2)
	s.Equal(enchantment.Precision, out.Bindings["eq_1"].EnchantmentID)
	s.Equal(enchantment.Karma, out.Bindings["eq_3"].EnchantmentID)

	out, err = s.repo.List(s.ctx, &enchantments.ListInput{})
	s.Require().NoError(err)
	s.Empty(out.Bindings)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() enchantments.Repository { return enchantments.NewInMemory() },
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() enchantments.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := enchantments.NewRedis(&enchantments.RedisConfig{Client: client})
			require.NoError(t, err)
			return repo
		},
	})
}
