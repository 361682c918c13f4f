package raidresults_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-raid/internal/entities/raid"
	"github.com/KirkDiggler/rpg-raid/internal/errors"
	raidresults "github.com/KirkDiggler/rpg-raid/internal/repositories/raid_results"
)

type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() raidresults.Repository
	repo    raidresults.Repository
	ctx     context.Context
	now     time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
	s.now = time.Date(2025, 4, 2, 18, 30, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) victory(id, raidID string, at time.Time) *raid.Result {
	return &raid.Result{
		ID:          id,
		RaidID:      raidID,
		PlayerID:    "player_1",
		BossID:      "ashen-colossus",
		Victory:     true,
		DamageDealt: 2000,
		RoundsUsed:  2,
		RatingDelta: 156,
		Placement:   1,
		CreatedAt:   at,
	}
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	_, err := s.repo.Create(s.ctx, &raidresults.CreateInput{Result: s.victory("res_1", "raid_1", s.now)})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &raidresults.GetInput{ID: "res_1"})
	s.Require().NoError(err)
	s.Equal(156, out.Result.RatingDelta)
	s.Equal(1, out.Result.Placement)
	s.True(out.Result.Victory)
	s.True(s.now.Equal(out.Result.CreatedAt))
}

func (s *RepositoryTestSuite) TestWriteOnce() {
	_, err := s.repo.Create(s.ctx, &raidresults.CreateInput{Result: s.victory("res_1", "raid_1", s.now)})
	s.Require().NoError(err)

	testCases := []struct {
		name   string
		result *raid.Result
	}{
		{name: "same ID", result: s.victory("res_1", "raid_9", s.now)},
		{name: "same raid and player", result: s.victory("res_2", "raid_1", s.now)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, &raidresults.CreateInput{Result: tc.result})
			s.Require().Error(err)
			s.True(errors.IsAlreadyExists(err))
		})
	}
}

func (s *RepositoryTestSuite) TestValidation() {
	defeat := s.victory("res_1", "raid_1", s.now)
	defeat.Victory = false

	noPlacement := s.victory("res_2", "raid_2", s.now)
	noPlacement.Placement = 0

	testCases := []struct {
		name   string
		result *raid.Result
	}{
		{name: "nil result", result: nil},
		{name: "defeat with rating", result: defeat},
		{name: "victory without placement", result: noPlacement},
		{name: "missing IDs", result: &raid.Result{CreatedAt: s.now}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, &raidresults.CreateInput{Result: tc.result})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, &raidresults.GetInput{ID: "res_missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestListByPlayerNewestFirst() {
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("res_%d", i)
		_, err := s.repo.Create(s.ctx, &raidresults.CreateInput{
			Result: s.victory(id, "raid_"+id, s.now.Add(time.Duration(i)*time.Hour)),
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListByPlayer(s.ctx, &raidresults.ListByPlayerInput{PlayerID: "player_1", Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Results, 2)
	s.Equal("res_2", out.Results[0].ID)
	s.Equal("res_1", out.Results[1].ID)

	out, err = s.repo.ListByPlayer(s.ctx, &raidresults.ListByPlayerInput{PlayerID: "player_2"})
	s.Require().NoError(err)
	s.Empty(out.Results)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() raidresults.Repository { return raidresults.NewInMemory() },
	})
}

func TestSQLiteRepository(t *testing.T) {
	n := 0
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() raidresults.Repository {
			n++
			path := filepath.Join(t.TempDir(), fmt.Sprintf("results_%d.db", n))
			repo, err := raidresults.NewSQLite(context.Background(), &raidresults.SQLiteConfig{Path: path})
			require.NoError(t, err)
			t.Cleanup(func() { _ = repo.Close() })
			return repo
		},
	})
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.db")

	repo, err := raidresults.NewSQLite(ctx, &raidresults.SQLiteConfig{Path: path})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &raidresults.CreateInput{Result: &raid.Result{
		ID: "res_1", RaidID: "raid_1", PlayerID: "player_1", BossID: "frost-wyrm",
		DamageDealt: 300, RoundsUsed: 1, CreatedAt: time.Now(),
	}})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = raidresults.NewSQLite(ctx, &raidresults.SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	out, err := repo.Get(ctx, &raidresults.GetInput{ID: "res_1"})
	require.NoError(t, err)
	require.False(t, out.Result.Victory)
	require.Equal(t, 300, out.Result.DamageDealt)
}

func TestNewSQLiteRequiresPath(t *testing.T) {
	_, err := raidresults.NewSQLite(context.Background(), &raidresults.SQLiteConfig{})
	require.Error(t, err)
	require.True(t, errors.IsInvalidArgument(err))
}
