package equipment_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-raid/internal/entities/combat"
	"github.com/KirkDiggler/rpg-raid/internal/entities/enchantment"
	entities "github.com/KirkDiggler/rpg-raid/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/equipment"
	"github.com/KirkDiggler/rpg-raid/internal/testutils"
)

const (
	testPlayerID = "player_test123"
	testSwordID  = "eq_sword"
	testSwordKey = "equipment:item:eq_sword"
)

type RedisEquipmentTestSuite struct {
	suite.Suite
	mr   *miniredis.Miniredis
	repo equipment.Repository
	ctx  context.Context
}

func (s *RedisEquipmentTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.ctx = context.Background()

	repo, err := equipment.NewRedis(&equipment.RedisConfig{
		Client: client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisEquipmentTestSuite) createTestSword() *entities.Item {
	return &entities.Item{
		ID:       testSwordID,
		OwnerID:  testPlayerID,
		Name:     "Ashen Blade",
		Category: enchantment.CategoryWeapon,
		Level:    40,
		Stats:    combat.Stats{Damage: 25, Level: 40},
	}
}

func (s *RedisEquipmentTestSuite) TestNewRedis() {
	testCases := []struct {
		name    string
		config  *equipment.RedisConfig
		wantErr bool
		errMsg  string
	}{
		{
			name:    "error with nil config",
			config:  nil,
			wantErr: true,
			errMsg:  "config cannot be nil",
		},
		{
			name: "error with nil client",
			config: &equipment.RedisConfig{
				Client: nil,
			},
			wantErr: true,
			errMsg:  "client cannot be nil",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := equipment.NewRedis(tc.config)

			if tc.wantErr {
				s.Error(err)
				s.Contains(err.Error(), tc.errMsg)
				s.Nil(repo)
			} else {
				s.NoError(err)
				s.NotNil(repo)
			}
		})
	}
}

func (s *RedisEquipmentTestSuite) TestSaveStoresJSON() {
	_, err := s.repo.Save(s.ctx, equipment.SaveInput{Item: s.createTestSword()})
	s.Require().NoError(err)

	raw, err := s.mr.Get(testSwordKey)
	s.Require().NoError(err)

	var stored entities.Item
	s.Require().NoError(json.Unmarshal([]byte(raw), &stored))
	s.Equal(testSwordID, stored.ID)
	s.Equal(25, stored.Stats.Damage)
}

func (s *RedisEquipmentTestSuite) TestGet() {
	_, err := s.repo.Save(s.ctx, equipment.SaveInput{Item: s.createTestSword()})
	s.Require().NoError(err)

	testCases := []struct {
		name     string
		input    equipment.GetInput
		wantErr  bool
		errMsg   string
		validate func(output *equipment.GetOutput)
	}{
		{
			name:  "success retrieving equipment",
			input: equipment.GetInput{EquipmentID: testSwordID},
			validate: func(output *equipment.GetOutput) {
				s.Equal("Ashen Blade", output.Item.Name)
				s.Equal(enchantment.CategoryWeapon, output.Item.Category)
			},
		},
		{
			name:    "error when equipment ID is empty",
			input:   equipment.GetInput{},
			wantErr: true,
			errMsg:  "equipment ID cannot be empty",
		},
		{
			name:    "error when equipment not found",
			input:   equipment.GetInput{EquipmentID: "eq_missing"},
			wantErr: true,
			errMsg:  "not found",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			output, err := s.repo.Get(s.ctx, tc.input)

			if tc.wantErr {
				s.Error(err)
				s.Contains(err.Error(), tc.errMsg)
				s.Nil(output)
			} else {
				s.NoError(err)
				s.NotNil(output)
				tc.validate(output)
			}
		})
	}
}

func (s *RedisEquipmentTestSuite) TestGetCorruptData() {
	s.Require().NoError(s.mr.Set(testSwordKey, "{not json"))

	_, err := s.repo.Get(s.ctx, equipment.GetInput{EquipmentID: testSwordID})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to unmarshal")
}

func (s *RedisEquipmentTestSuite) TestSaveRejectsInvalidItem() {
	item := s.createTestSword()
	item.Category = "shield"

	_, err := s.repo.Save(s.ctx, equipment.SaveInput{Item: item})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisEquipmentTestSuite(t *testing.T) {
	suite.Run(t, new(RedisEquipmentTestSuite))
}
