package stats

import (
	"context"
	"errors"
	"log/slog"

	"github.com/odogan/champguess-go/internal/dependencies/lock"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/storage"
)

// LeaderboardSize is how many players a leaderboard page carries
const LeaderboardSize = 20

// Service maintains per-player aggregate stats and the leaderboards derived
// from them
type Service struct {
	storage storage.Storage
	locks   *lock.KeyedMutex
	logger  *slog.Logger
}

// New creates a new StatsService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		locks:   lock.New(),
		logger:  logger,
	}
}

// RecordCompletion folds one completed game into the player's aggregates.
// The terminal session, its final guess, and the updated stats row are
// written in one storage step: a version conflict on the session leaves the
// aggregates untouched, and a completion that lands is never left
// unrecorded. The stats row is read-modify-write, so updates for the same
// player and kind are serialized.
func (s *Service) RecordCompletion(ctx context.Context, session *model.GameSession, guess *model.Guess, score int) (*model.PlayerStats, error) {
	unlock := s.locks.Lock(string(session.PlayerID) + "/" + string(session.Kind))
	defer unlock()

	stats, err := s.storage.GetStats(ctx, session.PlayerID, session.Kind)
	if err != nil {
		if !errors.Is(err, model.ErrStatsNotFound) {
			return nil, err
		}
		stats = &model.PlayerStats{
			PlayerID: session.PlayerID,
			Kind:     session.Kind,
		}
	}

	// Running mean over all completed games, wins or losses
	total := stats.AverageAttempts*float64(stats.GamesPlayed) + float64(session.AttemptsUsed)
	stats.GamesPlayed++
	stats.AverageAttempts = total / float64(stats.GamesPlayed)

	if session.Won {
		stats.GamesWon++
		stats.TotalScore += score
		if score > stats.BestScore {
			stats.BestScore = score
		}
	}

	if err := s.storage.SaveSessionWithGuess(ctx, session, guess, stats); err != nil {
		return nil, err
	}

	s.logger.Debug("recorded game completion",
		"player_id", session.PlayerID,
		"kind", session.Kind,
		"won", session.Won,
		"score", score)

	return stats, nil
}

// PlayerStats returns the player's aggregates for a game kind. Players who
// have not completed a game yet get a zeroed row, not an error.
func (s *Service) PlayerStats(ctx context.Context, playerID model.PlayerID, kind model.GameKind) (*model.PlayerStats, error) {
	stats, err := s.storage.GetStats(ctx, playerID, kind)
	if err != nil {
		if errors.Is(err, model.ErrStatsNotFound) {
			return &model.PlayerStats{PlayerID: playerID, Kind: kind}, nil
		}
		return nil, err
	}
	return stats, nil
}

// LeaderboardEntry is one ranked row of a leaderboard
type LeaderboardEntry struct {
	Rank        int
	PlayerID    model.PlayerID
	Username    string
	GamesPlayed int
	GamesWon    int
	TotalScore  int
	BestScore   int
}

// Leaderboard holds the top players for a game kind plus the viewer's own
// rank (0 when the viewer has no stats row)
type Leaderboard struct {
	Kind       model.GameKind
	Entries    []LeaderboardEntry
	ViewerRank int
}

// Leaderboard returns the top players by total score for a kind, and
// computes the viewer's rank as 1 + the number of players strictly above
// them.
func (s *Service) Leaderboard(ctx context.Context, kind model.GameKind, viewer model.PlayerID) (*Leaderboard, error) {
	top, err := s.storage.TopStats(ctx, kind, LeaderboardSize)
	if err != nil {
		return nil, err
	}

	board := &Leaderboard{Kind: kind}
	for i, stats := range top {
		entry := LeaderboardEntry{
			Rank:        i + 1,
			PlayerID:    stats.PlayerID,
			GamesPlayed: stats.GamesPlayed,
			GamesWon:    stats.GamesWon,
			TotalScore:  stats.TotalScore,
			BestScore:   stats.BestScore,
		}
		identity, err := s.storage.GetIdentity(ctx, stats.PlayerID)
		if err == nil {
			entry.Username = identity.Username
		} else if !errors.Is(err, model.ErrPlayerNotFound) {
			return nil, err
		}
		board.Entries = append(board.Entries, entry)
	}

	if viewer != "" {
		viewerStats, err := s.storage.GetStats(ctx, viewer, kind)
		switch {
		case errors.Is(err, model.ErrStatsNotFound):
			// Viewer unranked
		case err != nil:
			return nil, err
		default:
			above, err := s.storage.CountStatsAbove(ctx, kind, viewerStats.TotalScore)
			if err != nil {
				return nil, err
			}
			board.ViewerRank = above + 1
		}
	}

	return board, nil
}
