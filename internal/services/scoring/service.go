package scoring

import (
	"github.com/odogan/champguess-go/internal/model"
)

// Service calculates scores for completed games
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// Score calculates the score awarded for a completed game.
//
// A lost game scores 0. Bonus rounds raise the base before anything else.
// The score then decays linearly with attempts used: the full base on the
// first attempt, down to base/maxAttempts (rounded down) on the last.
func (s *Service) Score(mode model.Mode, attemptsUsed int, won bool, bonus bool) int {
	if !won {
		return 0
	}
	base := mode.BaseScore
	if bonus {
		base += model.BonusModeScore
	}
	if attemptsUsed <= 1 {
		return base
	}
	if attemptsUsed > mode.MaxAttempts {
		attemptsUsed = mode.MaxAttempts
	}
	return base * (mode.MaxAttempts - attemptsUsed + 1) / mode.MaxAttempts
}
