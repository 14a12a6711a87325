package game

import (
	"context"
	"log/slog"

	"github.com/odogan/champguess-go/internal/catalog"
	"github.com/odogan/champguess-go/internal/dependencies/clock"
	"github.com/odogan/champguess-go/internal/dependencies/lock"
	"github.com/odogan/champguess-go/internal/dependencies/random"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/services/clue"
	"github.com/odogan/champguess-go/internal/services/guess"
	"github.com/odogan/champguess-go/internal/services/scoring"
	"github.com/odogan/champguess-go/internal/services/stats"
	"github.com/odogan/champguess-go/internal/storage"
)

const historyPageSize = 10

// Controller manages the guessing game state machine: starting rounds,
// evaluating guesses, and completing sessions.
type Controller struct {
	storage        storage.Storage
	catalog        *catalog.Service
	evaluator      *guess.Evaluator
	clueGenerator  *clue.Generator
	scoringService *scoring.Service
	statsService   *stats.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger

	// Serializes guess handling per session. The storage layer's version
	// check is the backstop for writers on other instances.
	locks *lock.KeyedMutex
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	catalogService *catalog.Service,
	scoringService *scoring.Service,
	statsService *stats.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		catalog:        catalogService,
		evaluator:      guess.NewEvaluator(),
		clueGenerator:  clue.NewGenerator(),
		scoringService: scoringService,
		statsService:   statsService,
		clock:          clock,
		random:         random,
		logger:         logger,
		locks:          lock.New(),
	}
}

// Start begins a new round of the given kind for a player
func (c *Controller) Start(ctx context.Context, playerID model.PlayerID, kind model.GameKind, mode model.Mode, bonus bool) (*model.GameSession, error) {
	if !model.ValidKind(kind) {
		return nil, model.ErrInvalidGameKind
	}

	now := c.clock.Now()
	session := &model.GameSession{
		ID:        model.SessionID(c.random.String(12, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")),
		PlayerID:  playerID,
		Kind:      kind,
		Mode:      mode,
		BonusMode: bonus,
		State:     model.SessionInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch kind {
	case model.KindChampion:
		target, err := c.catalog.RandomChampion(ctx)
		if err != nil {
			return nil, err
		}
		session.TargetChampion = target.ID
	case model.KindAbility:
		champion, ability, err := c.catalog.RandomChampionWithAbility(ctx)
		if err != nil {
			return nil, err
		}
		session.TargetChampion = champion.ID
		session.TargetAbility = ability.ID
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("session_id", string(session.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("kind", string(kind)),
		slog.String("mode", mode.Name),
		slog.Bool("bonus", bonus),
	)

	return session, nil
}

// GuessResult is the outcome of one submitted guess
type GuessResult struct {
	Session  *model.GameSession
	Feedback *guess.Feedback
	// Clue is set after a wrong guess in an ability round that is still in
	// progress
	Clue *clue.Clue
	// Score is the points awarded; nonzero only on a winning guess
	Score int
	// Target is revealed once the session completes
	Target *model.Champion
	// TargetAbility is revealed when an ability round is lost
	TargetAbility *model.Ability
}

// SubmitGuess evaluates a champion guess against the session's target.
// Champion rounds return per-attribute feedback; ability rounds return a
// clue about the hidden champion instead.
func (c *Controller) SubmitGuess(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, championID model.ChampionID, lang model.LanguageCode) (*GuessResult, error) {
	unlock := c.locks.Lock(string(sessionID))
	defer unlock()

	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlayerID != playerID {
		return nil, model.ErrSessionNotFound
	}
	if session.Completed() {
		return nil, model.ErrSessionCompleted
	}
	if session.AttemptsLeft() <= 0 {
		return nil, model.ErrMaxAttemptsReached
	}

	guessed, err := c.storage.GetChampion(ctx, championID)
	if err != nil {
		return nil, err
	}
	target, err := c.storage.GetChampion(ctx, session.TargetChampion)
	if err != nil {
		return nil, err
	}

	previous, err := c.storage.ListGuesses(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// Ability rounds allow re-guessing: players narrow down the champion
	// from clues, so repeating one is a waste, not an abuse.
	if session.Kind == model.KindChampion {
		for _, g := range previous {
			if g.ChampionID == championID {
				return nil, model.ErrDuplicateGuess
			}
		}
	}

	now := c.clock.Now()
	session.AttemptsUsed++
	session.UpdatedAt = now

	guess := &model.Guess{
		SessionID:  sessionID,
		Number:     session.AttemptsUsed,
		ChampionID: championID,
		CreatedAt:  now,
	}

	result := &GuessResult{Session: session}
	correct := guessed.ID == target.ID

	if session.Kind == model.KindChampion {
		result.Feedback = c.evaluator.Evaluate(target, guessed, lang)
	}

	if correct {
		session.State = model.SessionCompleted
		session.Won = true
		result.Score = c.scoringService.Score(session.Mode, session.AttemptsUsed, true, session.BonusMode)
	} else if session.AttemptsLeft() <= 0 {
		session.State = model.SessionCompleted
	}

	// The session, the guess row, and (on completion) the stats row all
	// land in one storage step: a conflicting writer rejects the whole
	// guess, never half of it.
	if session.Completed() {
		if _, err := c.statsService.RecordCompletion(ctx, session, guess, result.Score); err != nil {
			return nil, err
		}
		if err := c.reveal(ctx, session, result); err != nil {
			return nil, err
		}
	} else {
		if err := c.storage.SaveSessionWithGuess(ctx, session, guess, nil); err != nil {
			return nil, err
		}
		if session.Kind == model.KindAbility {
			cl := c.clueGenerator.ForAttempt(target, session.AttemptsUsed, lang)
			result.Clue = &cl
		}
	}

	c.logger.Info("guess submitted",
		slog.String("session_id", string(sessionID)),
		slog.String("champion_id", string(championID)),
		slog.Bool("correct", correct),
		slog.Int("attempts_used", session.AttemptsUsed),
	)

	return result, nil
}

// reveal fills in the target fields once a session is complete
func (c *Controller) reveal(ctx context.Context, session *model.GameSession, result *GuessResult) error {
	target, err := c.storage.GetChampion(ctx, session.TargetChampion)
	if err != nil {
		return err
	}
	result.Target = target

	if session.Kind == model.KindAbility && !session.Won {
		ability, err := c.storage.GetAbility(ctx, session.TargetAbility)
		if err != nil {
			return err
		}
		result.TargetAbility = ability
	}

	c.logger.Info("game completed",
		slog.String("session_id", string(session.ID)),
		slog.Bool("won", session.Won),
		slog.Int("score", result.Score),
	)

	return nil
}

// AbilityKeyResult is the outcome of the final ability key reveal
type AbilityKeyResult struct {
	Correct bool
	Ability *model.Ability
}

// SubmitAbilityKey lets the player of a won ability round guess which slot
// the target ability occupies. It is a flourish after the win: the answer is
// revealed either way and no points change hands.
func (c *Controller) SubmitAbilityKey(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, key model.AbilityKey) (*AbilityKeyResult, error) {
	switch key {
	case model.AbilityKeyPassive, model.AbilityKeyQ, model.AbilityKeyW, model.AbilityKeyE, model.AbilityKeyR:
	default:
		return nil, model.ErrInvalidAbilityKey
	}

	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlayerID != playerID {
		return nil, model.ErrSessionNotFound
	}
	if session.Kind != model.KindAbility || session.TargetAbility == "" {
		return nil, model.ErrNoTargetAbility
	}
	if !session.Completed() || !session.Won {
		return nil, model.ErrNoTargetAbility
	}

	ability, err := c.storage.GetAbility(ctx, session.TargetAbility)
	if err != nil {
		return nil, err
	}

	return &AbilityKeyResult{
		Correct: ability.Key == key,
		Ability: ability,
	}, nil
}

// Session fetches a session, scoped to its owning player
func (c *Controller) Session(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlayerID != playerID {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

// SessionHistory is a round's guesses plus, for ability rounds, the clues
// revealed so far
type SessionHistory struct {
	Guesses []*model.Guess
	Clues   []clue.Clue
}

// Guesses lists the guesses of a session in submission order, scoped to its
// owning player
func (c *Controller) Guesses(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, lang model.LanguageCode) (*SessionHistory, error) {
	session, err := c.Session(ctx, sessionID, playerID)
	if err != nil {
		return nil, err
	}

	guesses, err := c.storage.ListGuesses(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	history := &SessionHistory{Guesses: guesses}

	// Clues accompany wrong guesses while the round is still open; the
	// completing attempt never shows one.
	if session.Kind == model.KindAbility {
		clueCount := session.AttemptsUsed
		if session.State == model.SessionCompleted {
			clueCount--
		}
		if clueCount > 0 {
			target, err := c.storage.GetChampion(ctx, session.TargetChampion)
			if err != nil {
				return nil, err
			}
			for attempt := 1; attempt <= clueCount; attempt++ {
				history.Clues = append(history.Clues, c.clueGenerator.ForAttempt(target, attempt, lang))
			}
		}
	}

	return history, nil
}

// HistoryPage is one page of a player's completed games, newest first
type HistoryPage struct {
	Sessions []*model.GameSession
	Page     int
	HasMore  bool
}

// History returns a page of the player's completed games for a kind.
// Pages are 1-based.
func (c *Controller) History(ctx context.Context, playerID model.PlayerID, kind model.GameKind, page int) (*HistoryPage, error) {
	if !model.ValidKind(kind) {
		return nil, model.ErrInvalidGameKind
	}
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * historyPageSize
	// Fetch one extra row to learn whether another page exists
	sessions, err := c.storage.ListCompletedSessions(ctx, playerID, kind, offset, historyPageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(sessions) > historyPageSize
	if hasMore {
		sessions = sessions[:historyPageSize]
	}

	return &HistoryPage{
		Sessions: sessions,
		Page:     page,
		HasMore:  hasMore,
	}, nil
}

// Abandon deletes an in-progress session without recording stats
func (c *Controller) Abandon(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) error {
	session, err := c.Session(ctx, sessionID, playerID)
	if err != nil {
		return err
	}
	if session.Completed() {
		return model.ErrSessionCompleted
	}
	return c.storage.DeleteSession(ctx, sessionID)
}
