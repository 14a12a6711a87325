package stats

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/storage/memory"
	"github.com/odogan/champguess-go/internal/testutil"
)

type StatsSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsSuite))
}

func (s *StatsSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

// record completes a fresh session for the player and folds it into their
// stats
func (s *StatsSuite) record(playerID model.PlayerID, kind model.GameKind, sessionID model.SessionID, won bool, score, attempts int) (*model.PlayerStats, error) {
	session := &model.GameSession{
		ID:           sessionID,
		PlayerID:     playerID,
		Kind:         kind,
		Mode:         model.ModeMedium,
		State:        model.SessionCompleted,
		Won:          won,
		AttemptsUsed: attempts,
	}
	guess := &model.Guess{SessionID: sessionID, Number: attempts, ChampionID: "darius"}
	return s.service.RecordCompletion(s.ctx, session, guess, score)
}

func (s *StatsSuite) TestRecordFirstCompletion() {
	stats, err := s.record("player-1", model.KindChampion, "stats-sess-1", true, 28, 1)
	s.Require().NoError(err)

	s.Equal(1, stats.GamesPlayed)
	s.Equal(1, stats.GamesWon)
	s.Equal(28, stats.TotalScore)
	s.Equal(28, stats.BestScore)
	s.Equal(1.0, stats.AverageAttempts)
}

func (s *StatsSuite) TestRecordLoss() {
	stats, err := s.record("player-1", model.KindChampion, "stats-sess-loss", false, 0, 8)
	s.Require().NoError(err)

	s.Equal(1, stats.GamesPlayed)
	s.Equal(0, stats.GamesWon)
	s.Equal(0, stats.TotalScore)
	s.Equal(8.0, stats.AverageAttempts)
}

func (s *StatsSuite) TestRunningAverageAndBestScore() {
	_, err := s.record("player-1", model.KindChampion, "stats-sess-a", true, 28, 2)
	s.Require().NoError(err)
	_, err = s.record("player-1", model.KindChampion, "stats-sess-b", false, 0, 8)
	s.Require().NoError(err)
	stats, err := s.record("player-1", model.KindChampion, "stats-sess-c", true, 17, 5)
	s.Require().NoError(err)

	s.Equal(3, stats.GamesPlayed)
	s.Equal(2, stats.GamesWon)
	s.Equal(45, stats.TotalScore)
	s.Equal(28, stats.BestScore)
	s.InDelta(5.0, stats.AverageAttempts, 0.001)
}

func (s *StatsSuite) TestKindsTrackedSeparately() {
	_, err := s.record("player-1", model.KindChampion, "stats-sess-1", true, 28, 1)
	s.Require().NoError(err)

	ability, err := s.service.PlayerStats(s.ctx, "player-1", model.KindAbility)
	s.Require().NoError(err)
	s.Equal(0, ability.GamesPlayed)
}

func (s *StatsSuite) TestConcurrentRecordCompletions() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessionID := model.SessionID(fmt.Sprintf("stats-conc-%02d", i))
			_, err := s.record("player-1", model.KindChampion, sessionID, true, 10, 2)
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	stats, err := s.service.PlayerStats(s.ctx, "player-1", model.KindChampion)
	s.Require().NoError(err)
	s.Equal(50, stats.GamesPlayed)
	s.Equal(500, stats.TotalScore)
}

func (s *StatsSuite) TestRecordCompletionConflictLeavesNoTrace() {
	session := &model.GameSession{
		ID:       "stats-conflict",
		PlayerID: "player-1",
		Kind:     model.KindChampion,
		Mode:     model.ModeMedium,
		State:    model.SessionInProgress,
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	// A writer on another instance finished the session first: this copy
	// carries a stale version, so the whole completion must be rejected.
	stale := *session
	stale.Version--
	stale.State = model.SessionCompleted
	stale.Won = true
	stale.AttemptsUsed = 3
	guess := &model.Guess{SessionID: stale.ID, Number: 3, ChampionID: "darius"}

	_, err := s.service.RecordCompletion(s.ctx, &stale, guess, 21)
	s.Require().ErrorIs(err, model.ErrVersionConflict)

	_, err = s.storage.GetStats(s.ctx, "player-1", model.KindChampion)
	s.ErrorIs(err, model.ErrStatsNotFound)
	guesses, err := s.storage.ListGuesses(s.ctx, stale.ID)
	s.Require().NoError(err)
	s.Empty(guesses)
}

func (s *StatsSuite) TestPlayerStatsZeroRow() {
	stats, err := s.service.PlayerStats(s.ctx, "player-1", model.KindChampion)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), stats.PlayerID)
	s.Equal(0, stats.GamesPlayed)
	s.Equal(0.0, stats.WinRate())
}

func (s *StatsSuite) seedPlayers(n int) {
	for i := 1; i <= n; i++ {
		id := model.PlayerID(fmt.Sprintf("player-%02d", i))
		s.Require().NoError(s.storage.SaveIdentity(s.ctx, &model.PlayerIdentity{
			ID:       id,
			Username: fmt.Sprintf("user%02d", i),
		}))
		sessionID := model.SessionID(fmt.Sprintf("stats-seed-%02d", i))
		_, err := s.record(id, model.KindChampion, sessionID, true, i, 1)
		s.Require().NoError(err)
	}
}

func (s *StatsSuite) TestLeaderboardOrderingAndUsernames() {
	s.seedPlayers(5)

	board, err := s.service.Leaderboard(s.ctx, model.KindChampion, "")
	s.Require().NoError(err)
	s.Require().Len(board.Entries, 5)
	s.Equal(1, board.Entries[0].Rank)
	s.Equal(model.PlayerID("player-05"), board.Entries[0].PlayerID)
	s.Equal("user05", board.Entries[0].Username)
	s.Equal(5, board.Entries[0].TotalScore)
	s.Equal(model.PlayerID("player-01"), board.Entries[4].PlayerID)
	s.Equal(0, board.ViewerRank)
}

func (s *StatsSuite) TestLeaderboardCapped() {
	s.seedPlayers(25)

	board, err := s.service.Leaderboard(s.ctx, model.KindChampion, "")
	s.Require().NoError(err)
	s.Len(board.Entries, LeaderboardSize)
}

func (s *StatsSuite) TestLeaderboardViewerRank() {
	s.seedPlayers(5)

	board, err := s.service.Leaderboard(s.ctx, model.KindChampion, "player-03")
	s.Require().NoError(err)
	s.Equal(3, board.ViewerRank)

	board, err = s.service.Leaderboard(s.ctx, model.KindChampion, "player-05")
	s.Require().NoError(err)
	s.Equal(1, board.ViewerRank)
}

func (s *StatsSuite) TestLeaderboardViewerUnranked() {
	s.seedPlayers(3)

	board, err := s.service.Leaderboard(s.ctx, model.KindChampion, "stranger")
	s.Require().NoError(err)
	s.Equal(0, board.ViewerRank)
}
