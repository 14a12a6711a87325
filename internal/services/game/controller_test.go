package game

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/odogan/champguess-go/internal/catalog"
	"github.com/odogan/champguess-go/internal/dependencies/mocks"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/services/guess"
	"github.com/odogan/champguess-go/internal/services/scoring"
	"github.com/odogan/champguess-go/internal/services/stats"
	"github.com/odogan/champguess-go/internal/storage/memory"
	"github.com/odogan/champguess-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage      *memory.Storage
	clock        *mocks.MockClock
	random       *mocks.MockRandom
	statsService *stats.Service
	controller   *Controller
	ctx          context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	s.statsService = stats.New(s.storage, logger)
	s.controller = NewController(
		s.storage,
		catalog.New(s.storage, s.random),
		scoring.New(),
		s.statsService,
		s.clock,
		s.random,
		logger,
	)
	s.ctx = context.Background()

	s.seedCatalog()
}

func (s *ControllerSuite) seedCatalog() {
	champions := []*model.Champion{
		{
			ID:          "darius",
			Name:        "Darius",
			ReleaseYear: 2012,
			Attributes: map[model.Category]*model.CategoryValue{
				model.CategoryPosition: {ID: "top", Name: "Top"},
				model.CategoryRegion:   {ID: "noxus", Name: "Noxus"},
			},
		},
		{
			ID:          "garen",
			Name:        "Garen",
			ReleaseYear: 2010,
			Attributes: map[model.Category]*model.CategoryValue{
				model.CategoryPosition: {ID: "top", Name: "Top"},
				model.CategoryRegion:   {ID: "demacia", Name: "Demacia"},
			},
		},
		{
			ID:          "ahri",
			Name:        "Ahri",
			ReleaseYear: 2011,
			Attributes: map[model.Category]*model.CategoryValue{
				model.CategoryPosition: {ID: "mid", Name: "Mid"},
				model.CategoryRegion:   {ID: "ionia", Name: "Ionia"},
			},
		},
	}
	for _, champion := range champions {
		s.Require().NoError(s.storage.SaveChampion(s.ctx, champion))
	}
	s.Require().NoError(s.storage.SaveAbility(s.ctx, &model.Ability{
		ID:         "darius-q",
		ChampionID: "darius",
		Name:       "Decimate",
		Key:        model.AbilityKeyQ,
	}))
}

// startChampionGame starts a champion round targeting darius (catalog
// insertion order, index 0)
func (s *ControllerSuite) startChampionGame(mode model.Mode) *model.GameSession {
	s.random.QueueString("SESSION00001")
	s.random.QueueIntn(0)
	session, err := s.controller.Start(s.ctx, "player-1", model.KindChampion, mode, false)
	s.Require().NoError(err)
	return session
}

// startAbilityGame starts an ability round targeting darius / darius-q
func (s *ControllerSuite) startAbilityGame(mode model.Mode) *model.GameSession {
	s.random.QueueString("SESSION00002")
	s.random.QueueIntn(0, 0)
	session, err := s.controller.Start(s.ctx, "player-1", model.KindAbility, mode, false)
	s.Require().NoError(err)
	return session
}

func (s *ControllerSuite) TestStartChampionGame() {
	session := s.startChampionGame(model.ModeMedium)

	s.Equal(model.KindChampion, session.Kind)
	s.Equal(model.ChampionID("darius"), session.TargetChampion)
	s.Empty(session.TargetAbility)
	s.Equal(model.SessionInProgress, session.State)
	s.Equal(8, session.AttemptsLeft())

	stored, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.TargetChampion, stored.TargetChampion)
}

func (s *ControllerSuite) TestStartAbilityGame() {
	session := s.startAbilityGame(model.ModeMedium)

	s.Equal(model.KindAbility, session.Kind)
	s.Equal(model.ChampionID("darius"), session.TargetChampion)
	s.Equal(model.AbilityID("darius-q"), session.TargetAbility)
}

func (s *ControllerSuite) TestStartInvalidKind() {
	_, err := s.controller.Start(s.ctx, "player-1", "bogus", model.ModeEasy, false)
	s.ErrorIs(err, model.ErrInvalidGameKind)
}

func (s *ControllerSuite) TestWinningGuessFirstAttempt() {
	session := s.startChampionGame(model.ModeMedium)

	result, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "darius", "en")
	s.Require().NoError(err)

	s.True(result.Session.Won)
	s.Equal(model.SessionCompleted, result.Session.State)
	s.Equal(28, result.Score)
	s.Require().NotNil(result.Feedback)
	s.True(result.Feedback.Correct)
	s.Require().NotNil(result.Target)
	s.Equal(model.ChampionID("darius"), result.Target.ID)
	s.Nil(result.Clue)
}

func (s *ControllerSuite) TestWrongGuessGivesFeedback() {
	session := s.startChampionGame(model.ModeMedium)

	result, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.Require().NoError(err)

	s.False(result.Session.Won)
	s.Equal(model.SessionInProgress, result.Session.State)
	s.Equal(1, result.Session.AttemptsUsed)
	s.Require().NotNil(result.Feedback)
	s.False(result.Feedback.Correct)
	s.Equal(guess.StatusCorrect, result.Feedback.Position.Status)
	s.Equal(guess.StatusWrong, result.Feedback.Region.Status)
	s.Nil(result.Target)
	s.Equal(0, result.Score)
}

func (s *ControllerSuite) TestWinOnLaterAttemptScoresLess() {
	session := s.startChampionGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.Require().NoError(err)

	result, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "darius", "en")
	s.Require().NoError(err)
	s.Equal(24, result.Score)
}

func (s *ControllerSuite) TestDuplicateGuessRejected() {
	session := s.startChampionGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.Require().NoError(err)

	_, err = s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.ErrorIs(err, model.ErrDuplicateGuess)

	stored, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(1, stored.AttemptsUsed)
}

func (s *ControllerSuite) TestAbilityRoundAllowsRepeatGuess() {
	session := s.startAbilityGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.Require().NoError(err)

	result, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.Require().NoError(err)
	s.Equal(2, result.Session.AttemptsUsed)
}

func (s *ControllerSuite) TestLossOnFinalAttempt() {
	// Ability rounds allow repeats, so the small seed catalog can exhaust
	// hard mode's six attempts.
	session := s.startAbilityGame(model.ModeHard)
	var result *GuessResult
	var err error
	for i := 0; i < 6; i++ {
		result, err = s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
		s.Require().NoError(err)
	}

	s.Equal(model.SessionCompleted, result.Session.State)
	s.False(result.Session.Won)
	s.Equal(0, result.Score)
	s.Require().NotNil(result.Target)
	s.Equal(model.ChampionID("darius"), result.Target.ID)
	s.Require().NotNil(result.TargetAbility)
	s.Equal(model.AbilityID("darius-q"), result.TargetAbility.ID)

	_, err = s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "darius", "en")
	s.ErrorIs(err, model.ErrSessionCompleted)
}

func (s *ControllerSuite) TestAbilityRoundCluesCycle() {
	session := s.startAbilityGame(model.ModeMedium)

	result, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.Require().NoError(err)
	s.Nil(result.Feedback)
	s.Require().NotNil(result.Clue)
	s.Equal("position", result.Clue.Kind)
	s.Equal("Champion plays Top position", result.Clue.Text)

	result, err = s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "ahri", "en")
	s.Require().NoError(err)
	s.Require().NotNil(result.Clue)
	s.Equal("region", result.Clue.Kind)
}

func (s *ControllerSuite) TestGuessUnknownChampion() {
	session := s.startChampionGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "teemo", "en")
	s.ErrorIs(err, model.ErrChampionNotFound)

	stored, err := s.storage.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(0, stored.AttemptsUsed)
}

func (s *ControllerSuite) TestGuessWrongPlayer() {
	session := s.startChampionGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-2", "darius", "en")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestGuessUnknownSession() {
	_, err := s.controller.SubmitGuess(s.ctx, "nonexistent", "player-1", "darius", "en")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestCompletionRecordsStatsOnce() {
	session := s.startChampionGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "darius", "en")
	s.Require().NoError(err)

	playerStats, err := s.statsService.PlayerStats(s.ctx, "player-1", model.KindChampion)
	s.Require().NoError(err)
	s.Equal(1, playerStats.GamesPlayed)
	s.Equal(1, playerStats.GamesWon)
	s.Equal(28, playerStats.TotalScore)

	// A further guess must not double-record
	_, err = s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.ErrorIs(err, model.ErrSessionCompleted)

	playerStats, err = s.statsService.PlayerStats(s.ctx, "player-1", model.KindChampion)
	s.Require().NoError(err)
	s.Equal(1, playerStats.GamesPlayed)
}

func (s *ControllerSuite) TestSubmitAbilityKey() {
	session := s.startAbilityGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "darius", "en")
	s.Require().NoError(err)

	result, err := s.controller.SubmitAbilityKey(s.ctx, session.ID, "player-1", model.AbilityKeyQ)
	s.Require().NoError(err)
	s.True(result.Correct)
	s.Equal(model.AbilityID("darius-q"), result.Ability.ID)

	result, err = s.controller.SubmitAbilityKey(s.ctx, session.ID, "player-1", model.AbilityKeyR)
	s.Require().NoError(err)
	s.False(result.Correct)
}

func (s *ControllerSuite) TestSubmitAbilityKeyValidation() {
	session := s.startAbilityGame(model.ModeMedium)

	_, err := s.controller.SubmitAbilityKey(s.ctx, session.ID, "player-1", "x")
	s.ErrorIs(err, model.ErrInvalidAbilityKey)

	// Round not won yet
	_, err = s.controller.SubmitAbilityKey(s.ctx, session.ID, "player-1", model.AbilityKeyQ)
	s.ErrorIs(err, model.ErrNoTargetAbility)

	champSession := s.startChampionGame(model.ModeMedium)
	_, err = s.controller.SubmitGuess(s.ctx, champSession.ID, "player-1", "darius", "en")
	s.Require().NoError(err)
	_, err = s.controller.SubmitAbilityKey(s.ctx, champSession.ID, "player-1", model.AbilityKeyQ)
	s.ErrorIs(err, model.ErrNoTargetAbility)
}

func (s *ControllerSuite) TestHistoryPagination() {
	for i := 0; i < 12; i++ {
		s.random.QueueString(fmt.Sprintf("SESSION%05d", i))
		s.random.QueueIntn(0)
		session, err := s.controller.Start(s.ctx, "player-1", model.KindChampion, model.ModeEasy, false)
		s.Require().NoError(err)

		_, err = s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "darius", "en")
		s.Require().NoError(err)
		s.clock.Advance(time.Minute)
	}

	page, err := s.controller.History(s.ctx, "player-1", model.KindChampion, 1)
	s.Require().NoError(err)
	s.Len(page.Sessions, 10)
	s.True(page.HasMore)
	s.Equal(model.SessionID("SESSION00011"), page.Sessions[0].ID)

	page, err = s.controller.History(s.ctx, "player-1", model.KindChampion, 2)
	s.Require().NoError(err)
	s.Len(page.Sessions, 2)
	s.False(page.HasMore)
}

func (s *ControllerSuite) TestHistoryEmptyPage() {
	page, err := s.controller.History(s.ctx, "player-1", model.KindChampion, 1)
	s.Require().NoError(err)
	s.Empty(page.Sessions)
	s.False(page.HasMore)
}

func (s *ControllerSuite) TestGuessesListing() {
	session := s.startChampionGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.Require().NoError(err)
	_, err = s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "ahri", "en")
	s.Require().NoError(err)

	history, err := s.controller.Guesses(s.ctx, session.ID, "player-1", "en")
	s.Require().NoError(err)
	s.Require().Len(history.Guesses, 2)
	s.Equal(model.ChampionID("garen"), history.Guesses[0].ChampionID)
	s.Equal(2, history.Guesses[1].Number)
	s.Empty(history.Clues)

	_, err = s.controller.Guesses(s.ctx, session.ID, "player-2", "en")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestGuessesListingIncludesAbilityClues() {
	session := s.startAbilityGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "garen", "en")
	s.Require().NoError(err)
	_, err = s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "ahri", "en")
	s.Require().NoError(err)

	history, err := s.controller.Guesses(s.ctx, session.ID, "player-1", "en")
	s.Require().NoError(err)
	s.Require().Len(history.Guesses, 2)
	s.Require().Len(history.Clues, 2)
	s.Equal("position", history.Clues[0].Kind)

	// The winning guess closes the round without another clue
	_, err = s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "darius", "en")
	s.Require().NoError(err)

	history, err = s.controller.Guesses(s.ctx, session.ID, "player-1", "en")
	s.Require().NoError(err)
	s.Require().Len(history.Guesses, 3)
	s.Len(history.Clues, 2)
}

func (s *ControllerSuite) TestAbandon() {
	session := s.startChampionGame(model.ModeMedium)

	s.Require().NoError(s.controller.Abandon(s.ctx, session.ID, "player-1"))

	_, err := s.storage.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)

	playerStats, err := s.statsService.PlayerStats(s.ctx, "player-1", model.KindChampion)
	s.Require().NoError(err)
	s.Equal(0, playerStats.GamesPlayed)
}

func (s *ControllerSuite) TestAbandonCompletedSession() {
	session := s.startChampionGame(model.ModeMedium)

	_, err := s.controller.SubmitGuess(s.ctx, session.ID, "player-1", "darius", "en")
	s.Require().NoError(err)

	err = s.controller.Abandon(s.ctx, session.ID, "player-1")
	s.ErrorIs(err, model.ErrSessionCompleted)
}
