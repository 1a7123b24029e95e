package round

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/KirkDiggler/starwheel/internal/models"
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
	// Create a new miniredis server for each test
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

func (s *RedisRepositoryTestSuite) seed(r *models.Round) {
	data, err := json.Marshal(r)
	s.Require().NoError(err)
	ctx := context.Background()
	s.Require().NoError(s.client.Set(ctx, Key(r.ID), data, 0).Err())
	z := redis.Z{
		Score:  float64(r.CreatedAt.UnixNano()),
		Member: r.ID,
	}
	s.Require().NoError(s.client.ZAdd(ctx, IndexKey, z).Err())
	s.Require().NoError(s.client.ZAdd(ctx, StatusKey(r.Status), z).Err())
}

func (s *RedisRepositoryTestSuite) TestGetRound() {
	r := models.NewRound("r1", 10, 10, s.testNow)
	r.Entries = append(r.Entries, models.Entry{PlayerID: "p1", Number: 4, Name: "Ann", JoinedAt: s.testNow})
	s.seed(r)

	got, err := s.repo.GetRound(context.Background(), &GetRoundInput{RoundID: "r1"})
	s.Require().NoError(err)
	s.Equal(r, got)
	s.Equal(int64(10), got.Pool())
}

func (s *RedisRepositoryTestSuite) TestGetRoundNotFound() {
	_, err := s.repo.GetRound(context.Background(), &GetRoundInput{RoundID: "missing"})
	s.ErrorIs(err, ErrRoundNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetCurrentRound() {
	_, err := s.repo.GetCurrentRound(context.Background())
	s.ErrorIs(err, ErrRoundNotFound)

	s.seed(models.NewRound("r1", 10, 10, s.testNow))
	s.Require().NoError(s.mr.Set(CurrentKey, "r1"))

	got, err := s.repo.GetCurrentRound(context.Background())
	s.Require().NoError(err)
	s.Equal("r1", got.ID)
}

func (s *RedisRepositoryTestSuite) TestListRoundsNewestFirst() {
	for i, id := range []string{"r1", "r2", "r3"} {
		r := models.NewRound(id, 10, 10, s.testNow.Add(time.Duration(i)*time.Minute))
		if id == "r2" {
			r.Status = models.RoundStatusSettled
		}
		s.seed(r)
	}

	out, err := s.repo.ListRounds(context.Background(), &ListRoundsInput{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Rounds, 2)
	s.Equal("r3", out.Rounds[0].ID)
	s.Equal("r2", out.Rounds[1].ID)

	out, err = s.repo.ListRounds(context.Background(), &ListRoundsInput{Status: models.RoundStatusSettled})
	s.Require().NoError(err)
	s.Require().Len(out.Rounds, 1)
	s.Equal("r2", out.Rounds[0].ID)
}

func (s *RedisRepositoryTestSuite) TestListRoundsByStatusReachesOldRounds() {
	stuck := models.NewRound("stuck", 10, 10, s.testNow)
	stuck.Status = models.RoundStatusDrawing
	s.seed(stuck)

	for i := 1; i <= 150; i++ {
		r := models.NewRound(fmt.Sprintf("r%d", i), 10, 10, s.testNow.Add(time.Duration(i)*time.Minute))
		r.Status = models.RoundStatusSettled
		s.seed(r)
	}

	out, err := s.repo.ListRounds(context.Background(), &ListRoundsInput{Limit: 20, Status: models.RoundStatusDrawing})
	s.Require().NoError(err)
	s.Require().Len(out.Rounds, 1)
	s.Equal("stuck", out.Rounds[0].ID)
}

func (s *RedisRepositoryTestSuite) TestListRoundsSkipsTrailingStatusEntries() {
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		r := models.NewRound(fmt.Sprintf("r%d", i), 10, 10, s.testNow.Add(time.Duration(i)*time.Minute))
		r.Status = models.RoundStatusDrawing
		s.seed(r)
	}

	// r3 moved on but its old status entry was left behind
	moved := models.NewRound("r3", 10, 10, s.testNow.Add(3*time.Minute))
	moved.Status = models.RoundStatusSettled
	data, err := json.Marshal(moved)
	s.Require().NoError(err)
	s.Require().NoError(s.client.Set(ctx, Key("r3"), data, 0).Err())

	out, err := s.repo.ListRounds(ctx, &ListRoundsInput{Limit: 2, Status: models.RoundStatusDrawing})
	s.Require().NoError(err)
	s.Require().Len(out.Rounds, 2)
	s.Equal("r2", out.Rounds[0].ID)
	s.Equal("r1", out.Rounds[1].ID)
}
