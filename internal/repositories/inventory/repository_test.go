package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
	"github.com/KirkDiggler/rpg-raid/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-raid/internal/testutils"
)

const testPlayerID = "player_1"

// RepositoryTestSuite runs the same behavior checks against every implementation
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() inventory.Repository
	repo    inventory.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func (s *RepositoryTestSuite) give(item string, n int) {
	_, err := s.repo.Increment(s.ctx, &inventory.IncrementInput{PlayerID: testPlayerID, ItemID: item, Delta: n})
	s.Require().NoError(err)
}

func (s *RepositoryTestSuite) count(item string) int {
	out, err := s.repo.Get(s.ctx, &inventory.GetInput{PlayerID: testPlayerID, ItemID: item})
	s.Require().NoError(err)
	return out.Count
}

func (s *RepositoryTestSuite) TestGetMissingIsZero() {
	s.Equal(0, s.count(inventory.ItemGreenOrbs))
}

func (s *RepositoryTestSuite) TestIncrement() {
	out, err := s.repo.Increment(s.ctx, &inventory.IncrementInput{PlayerID: testPlayerID, ItemID: "minor-charge", Delta: 3})
	s.Require().NoError(err)
	s.Equal(3, out.Count)

	out, err = s.repo.Increment(s.ctx, &inventory.IncrementInput{PlayerID: testPlayerID, ItemID: "minor-charge", Delta: -2})
	s.Require().NoError(err)
	s.Equal(1, out.Count)
	s.Equal(1, s.count("minor-charge"))
}

func (s *RepositoryTestSuite) TestIncrementBelowZeroIsRejected() {
	s.give("minor-charge", 1)

	_, err := s.repo.Increment(s.ctx, &inventory.IncrementInput{PlayerID: testPlayerID, ItemID: "minor-charge", Delta: -2})
	s.Require().Error(err)
	s.True(errors.IsInsufficientResources(err))
	s.Equal(1, s.count("minor-charge"), "count unchanged after rejected decrement")
}

func (s *RepositoryTestSuite) TestValidation() {
	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "nil get input",
			call: func() error {
				_, err := s.repo.Get(s.ctx, nil)
				return err
			},
		},
		{
			name: "missing player",
			call: func() error {
				_, err := s.repo.Get(s.ctx, &inventory.GetInput{ItemID: "x"})
				return err
			},
		},
		{
			name: "missing item",
			call: func() error {
				_, err := s.repo.Increment(s.ctx, &inventory.IncrementInput{PlayerID: testPlayerID, Delta: 1})
				return err
			},
		},
		{
			name: "negative cost",
			call: func() error {
				_, err := s.repo.Consume(s.ctx, &inventory.ConsumeInput{
					PlayerID: testPlayerID,
					Costs:    map[string]int{inventory.ItemGreenOrbs: -1},
				})
				return err
			},
		},
		{
			name: "list without player",
			call: func() error {
				_, err := s.repo.List(s.ctx, &inventory.ListInput{})
				return err
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.call()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RepositoryTestSuite) TestHasAtLeast() {
	s.give(inventory.ItemBlueOrbs, 2)

	out, err := s.repo.HasAtLeast(s.ctx, &inventory.HasAtLeastInput{PlayerID: testPlayerID, ItemID: inventory.ItemBlueOrbs, N: 2})
	s.Require().NoError(err)
	s.True(out.OK)

	out, err = s.repo.HasAtLeast(s.ctx, &inventory.HasAtLeastInput{PlayerID: testPlayerID, ItemID: inventory.ItemBlueOrbs, N: 3})
	s.Require().NoError(err)
	s.False(out.OK)
	s.Equal(2, out.Count)
}

func (s *RepositoryTestSuite) TestConsumeExactBalance() {
	s.give(inventory.ItemGreenOrbs, 3)

	out, err := s.repo.Consume(s.ctx, &inventory.ConsumeInput{
		PlayerID: testPlayerID,
		Costs:    map[string]int{inventory.ItemGreenOrbs: 3},
	})
	s.Require().NoError(err)
	s.Equal(0, out.Remaining[inventory.ItemGreenOrbs])
	s.Equal(0, s.count(inventory.ItemGreenOrbs))

	_, err = s.repo.Consume(s.ctx, &inventory.ConsumeInput{
		PlayerID: testPlayerID,
		Costs:    map[string]int{inventory.ItemGreenOrbs: 3},
	})
	s.Require().Error(err)
	s.True(errors.IsInsufficientResources(err))
}

func (s *RepositoryTestSuite) TestConsumeIsAllOrNothing() {
	s.give(inventory.ItemPurpleOrbs, 5)
	s.give(inventory.ItemBlueOrbs, 1)

	_, err := s.repo.Consume(s.ctx, &inventory.ConsumeInput{
		PlayerID: testPlayerID,
		Costs:    map[string]int{inventory.ItemPurpleOrbs: 5, inventory.ItemBlueOrbs: 2},
	})
	s.Require().Error(err)
	s.True(errors.IsInsufficientResources(err))
	s.Equal(inventory.ItemBlueOrbs, errors.GetMeta(err)["item_id"])

	s.Equal(5, s.count(inventory.ItemPurpleOrbs), "nothing consumed when any cost is short")
	s.Equal(1, s.count(inventory.ItemBlueOrbs))
}

func (s *RepositoryTestSuite) TestConsumeMultiple() {
	s.give(inventory.ItemPurpleOrbs, 6)
	s.give(inventory.ItemBlueOrbs, 2)

	out, err := s.repo.Consume(s.ctx, &inventory.ConsumeInput{
		PlayerID: testPlayerID,
		Costs:    map[string]int{inventory.ItemPurpleOrbs: 5, inventory.ItemBlueOrbs: 2},
	})
	s.Require().NoError(err)
	s.Equal(map[string]int{inventory.ItemPurpleOrbs: 1, inventory.ItemBlueOrbs: 0}, out.Remaining)
}

func (s *RepositoryTestSuite) TestList() {
	s.give(inventory.ItemCrystals, 40)
	s.give(inventory.StatRating, 156)
	s.give("minor-charge", 1)
	s.give("minor-charge", -1)

	out, err := s.repo.List(s.ctx, &inventory.ListInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Equal(map[string]int{inventory.ItemCrystals: 40, inventory.StatRating: 156}, out.Items)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() inventory.Repository { return inventory.NewInMemory() },
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() inventory.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := inventory.NewRedis(&inventory.RedisConfig{Client: client})
			require.NoError(t, err)
			return repo
		},
	})
}

func TestNewRedis(t *testing.T) {
	_, err := inventory.NewRedis(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config cannot be nil")

	_, err = inventory.NewRedis(&inventory.RedisConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client cannot be nil")
}
