package match

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newMatch(id, channelID string, offset time.Duration) *models.Match {
	return &models.Match{
		ID:        id,
		ChannelID: channelID,
		GuildID:   "test-guild-id",
		TeamA:     []models.Player{{ID: "a-id", Name: "A"}, {ID: "c-id", Name: "C"}},
		TeamB:     []models.Player{{ID: "b-id", Name: "B"}, {ID: "d-id", Name: "D"}},
		CreatedAt: s.testNow.Add(offset),
		Resources: models.ResourceSet{
			GroupA:    "role-a",
			GroupB:    "role-b",
			Container: "category-id",
		},
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetMatch() {
	match := s.newMatch("test-match-id", "test-channel-id", 0)

	err := s.repo.SaveMatch(context.Background(), &SaveMatchInput{Match: match})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetMatch(context.Background(), &GetMatchInput{MatchID: "test-match-id"})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("test-match-id", retrieved.ID)
	s.Equal("test-channel-id", retrieved.ChannelID)
	s.Equal(match.TeamA, retrieved.TeamA)
	s.Equal(match.TeamB, retrieved.TeamB)
	s.Equal(match.Resources, retrieved.Resources)
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestSaveOverwritesResourceHandles() {
	match := s.newMatch("test-match-id", "test-channel-id", 0)
	s.Require().NoError(s.repo.SaveMatch(context.Background(), &SaveMatchInput{Match: match}))

	match.Resources.Shared = "shared-id"
	match.Resources.GroupA = ""
	s.Require().NoError(s.repo.SaveMatch(context.Background(), &SaveMatchInput{Match: match}))

	retrieved, err := s.repo.GetMatch(context.Background(), &GetMatchInput{MatchID: "test-match-id"})
	s.Require().NoError(err)
	s.Equal("shared-id", retrieved.Resources.Shared)
	s.Empty(retrieved.Resources.GroupA)

	output, err := s.repo.ListMatches(context.Background(), &ListMatchesInput{})
	s.Require().NoError(err)
	s.Len(output.Matches, 1)
}

func (s *RedisRepositoryTestSuite) TestGetMatchNotFound() {
	_, err := s.repo.GetMatch(context.Background(), &GetMatchInput{MatchID: "missing"})
	s.ErrorIs(err, ErrMatchNotFound)
}

func (s *RedisRepositoryTestSuite) TestListMatchesByChannel() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: s.newMatch("second", "channel-1", time.Minute)}))
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: s.newMatch("first", "channel-1", 0)}))
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: s.newMatch("other", "channel-2", 0)}))

	output, err := s.repo.ListMatches(ctx, &ListMatchesInput{ChannelID: "channel-1"})
	s.Require().NoError(err)
	s.Require().Len(output.Matches, 2)
	s.Equal("first", output.Matches[0].ID)
	s.Equal("second", output.Matches[1].ID)

	all, err := s.repo.ListMatches(ctx, &ListMatchesInput{})
	s.Require().NoError(err)
	s.Len(all.Matches, 3)
}

func (s *RedisRepositoryTestSuite) TestListMatchesEmpty() {
	output, err := s.repo.ListMatches(context.Background(), nil)
	s.Require().NoError(err)
	s.Empty(output.Matches)
}

func (s *RedisRepositoryTestSuite) TestListSkipsMatchesDeletedOutOfBand() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: s.newMatch("kept", "channel-1", 0)}))
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: s.newMatch("gone", "channel-1", time.Second)}))
	s.mr.Del(matchKey("gone"))

	output, err := s.repo.ListMatches(ctx, &ListMatchesInput{ChannelID: "channel-1"})
	s.Require().NoError(err)
	s.Require().Len(output.Matches, 1)
	s.Equal("kept", output.Matches[0].ID)
}

func (s *RedisRepositoryTestSuite) TestDeleteMatch() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: s.newMatch("test-match-id", "channel-1", 0)}))

	s.Require().NoError(s.repo.DeleteMatch(ctx, &DeleteMatchInput{MatchID: "test-match-id"}))

	_, err := s.repo.GetMatch(ctx, &GetMatchInput{MatchID: "test-match-id"})
	s.ErrorIs(err, ErrMatchNotFound)

	output, err := s.repo.ListMatches(ctx, &ListMatchesInput{ChannelID: "channel-1"})
	s.Require().NoError(err)
	s.Empty(output.Matches)

	// deleting again is a no-op
	s.NoError(s.repo.DeleteMatch(ctx, &DeleteMatchInput{MatchID: "test-match-id"}))
}
