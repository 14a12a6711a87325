package storage

import (
	"context"

	"github.com/odogan/champguess-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Champion catalog operations
	SaveChampion(ctx context.Context, champion *model.Champion) error
	GetChampion(ctx context.Context, id model.ChampionID) (*model.Champion, error)
	ListChampions(ctx context.Context) ([]*model.Champion, error)

	// Ability catalog operations
	SaveAbility(ctx context.Context, ability *model.Ability) error
	GetAbility(ctx context.Context, id model.AbilityID) (*model.Ability, error)
	ListAbilitiesForChampion(ctx context.Context, championID model.ChampionID) ([]*model.Ability, error)

	// Player identity operations
	SaveIdentity(ctx context.Context, identity *model.PlayerIdentity) error
	GetIdentity(ctx context.Context, id model.PlayerID) (*model.PlayerIdentity, error)
	GetIdentityByToken(ctx context.Context, token string) (*model.PlayerIdentity, error)
	GetIdentityByUsername(ctx context.Context, username string) (*model.PlayerIdentity, error)

	// Registered account operations
	SaveAccount(ctx context.Context, account *model.RegisteredAccount) error
	GetAccountByUsername(ctx context.Context, username string) (*model.RegisteredAccount, error)

	// Game session operations. SaveSession performs an optimistic version
	// check: the save fails with model.ErrVersionConflict unless
	// session.Version matches the stored row, and increments the version on
	// success. A session with Version 0 must not already exist.
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	ListCompletedSessions(ctx context.Context, playerID model.PlayerID, kind model.GameKind, offset, limit int) ([]*model.GameSession, error)

	// SaveSessionWithGuess persists the session (same version check as
	// SaveSession), appends the guess, and, when stats is non-nil, writes
	// the stats row, all in one atomic step. On a version conflict nothing
	// is written, so a rejected guess leaves no trace.
	SaveSessionWithGuess(ctx context.Context, session *model.GameSession, guess *model.Guess, stats *model.PlayerStats) error

	// Guess operations. Guesses are owned by their session and removed with it.
	ListGuesses(ctx context.Context, sessionID model.SessionID) ([]*model.Guess, error)

	// Player stats operations. Stats rows are only ever written through
	// SaveSessionWithGuess as part of a completing guess.
	GetStats(ctx context.Context, playerID model.PlayerID, kind model.GameKind) (*model.PlayerStats, error)
	TopStats(ctx context.Context, kind model.GameKind, limit int) ([]*model.PlayerStats, error)
	CountStatsAbove(ctx context.Context, kind model.GameKind, totalScore int) (int, error)
}
