package equipment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	entities "github.com/KirkDiggler/rpg-raid/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/testutils"
)

// LoadoutTestSuite checks loadout behavior shared by every implementation
type LoadoutTestSuite struct {
	suite.Suite
	newRepo func() equipment.Repository
	repo    equipment.Repository
	ctx     context.Context
}

func (s *LoadoutTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()

	for _, item := range []*entities.Item{
		{ID: "eq_sword", OwnerID: testPlayerID, Category: enchantment.CategoryWeapon, Level: 10, Stats: combat.Stats{Damage: 20}},
		{ID: "eq_axe", OwnerID: testPlayerID, Category: enchantment.CategoryWeapon, Level: 12, Stats: combat.Stats{Damage: 30}},
		{ID: "eq_helm", OwnerID: testPlayerID, Category: enchantment.CategoryHelmet, Level: 10, Stats: combat.Stats{Defense: 15}},
		{ID: "eq_other", OwnerID: "player_other", Category: enchantment.CategoryBoots, Level: 1},
	} {
		_, err := s.repo.Save(s.ctx, equipment.SaveInput{Item: item})
		s.Require().NoError(err)
	}
}

func (s *LoadoutTestSuite) TestGetEquippedEmptySlot() {
	out, err := s.repo.GetEquipped(s.ctx, equipment.GetEquippedInput{PlayerID: testPlayerID, Category: enchantment.CategoryArmor})
	s.Require().NoError(err)
	s.Nil(out.Item)
}

func (s *LoadoutTestSuite) TestEquipReplacesSameCategory() {
	out, err := s.repo.Equip(s.ctx, equipment.EquipInput{PlayerID: testPlayerID, EquipmentID: "eq_sword"})
	s.Require().NoError(err)
	s.Equal(enchantment.CategoryWeapon, out.Category)
	s.Empty(out.Replaced)

	out, err = s.repo.Equip(s.ctx, equipment.EquipInput{PlayerID: testPlayerID, EquipmentID: "eq_axe"})
	s.Require().NoError(err)
	s.Equal("eq_sword", out.Replaced)

	equipped, err := s.repo.GetEquipped(s.ctx, equipment.GetEquippedInput{PlayerID: testPlayerID, Category: enchantment.CategoryWeapon})
	s.Require().NoError(err)
	s.Require().NotNil(equipped.Item)
	s.Equal("eq_axe", equipped.Item.ID)
}

func (s *LoadoutTestSuite) TestEquipRejectsForeignItem() {
	_, err := s.repo.Equip(s.ctx, equipment.EquipInput{PlayerID: testPlayerID, EquipmentID: "eq_other"})
	s.Require().Error(err)
	s.True(errors.IsInvalidTarget(err))

	_, err = s.repo.Equip(s.ctx, equipment.EquipInput{PlayerID: testPlayerID, EquipmentID: "eq_missing"})
	s.Require().Error(err)
	s.True(errors.IsInvalidTarget(err))
}

func (s *LoadoutTestSuite) TestLoadoutStats() {
	_, err := s.repo.Equip(s.ctx, equipment.EquipInput{PlayerID: testPlayerID, EquipmentID: "eq_axe"})
	s.Require().NoError(err)
	_, err = s.repo.Equip(s.ctx, equipment.EquipInput{PlayerID: testPlayerID, EquipmentID: "eq_helm"})
	s.Require().NoError(err)

	out, err := s.repo.GetLoadout(s.ctx, equipment.GetLoadoutInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Len(out.Items, 2)
	s.Equal(combat.Stats{Damage: 30, Defense: 15}, out.Stats())
}

func (s *LoadoutTestSuite) TestGetStats() {
	out, err := s.repo.GetStats(s.ctx, equipment.GetStatsInput{EquipmentID: "eq_helm"})
	s.Require().NoError(err)
	s.Equal(15, out.Stats.Defense)

	_, err = s.repo.GetStats(s.ctx, equipment.GetStatsInput{EquipmentID: "eq_missing"})
	s.True(errors.IsInvalidTarget(err))
}

func (s *LoadoutTestSuite) TestUnknownCategory() {
	_, err := s.repo.GetEquipped(s.ctx, equipment.GetEquippedInput{PlayerID: testPlayerID, Category: "ring"})
	s.Require().Error(err)
	s.True(errors.IsInvalidTarget(err))
}

func TestInMemoryLoadout(t *testing.T) {
	suite.Run(t, &LoadoutTestSuite{
		newRepo: func() equipment.Repository { return equipment.NewInMemory() },
	})
}

func TestRedisLoadout(t *testing.T) {
	suite.Run(t, &LoadoutTestSuite{
		newRepo: func() equipment.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := equipment.NewRedis(&equipment.RedisConfig{Client: client})
			require.NoError(t, err)
			return repo
		},
	})
}
