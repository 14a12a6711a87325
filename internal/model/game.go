package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// GameKind distinguishes the two game variants
type GameKind string

const (
	KindChampion GameKind = "champion" // guess the hidden champion from attribute feedback
	KindAbility  GameKind = "ability"  // guess which champion owns a hidden ability, with clues
)

// ValidKind reports whether k is a known game kind
func ValidKind(k GameKind) bool {
	return k == KindChampion || k == KindAbility
}

// Mode is a difficulty tier. MaxAttempts bounds the session; BaseScore is the
// score awarded for a correct first guess.
type Mode struct {
	Name        string
	MaxAttempts int
	BaseScore   int
}

var (
	ModeEasy   = Mode{Name: "easy", MaxAttempts: 10, BaseScore: 20}
	ModeMedium = Mode{Name: "medium", MaxAttempts: 8, BaseScore: 28}
	ModeHard   = Mode{Name: "hard", MaxAttempts: 6, BaseScore: 36}
)

// BonusModeScore is added to the base score when a session runs in bonus
// (silhouette) mode
const BonusModeScore = 3

// ModeByName resolves a difficulty name to its Mode
func ModeByName(name string) (Mode, error) {
	switch name {
	case ModeEasy.Name:
		return ModeEasy, nil
	case ModeMedium.Name:
		return ModeMedium, nil
	case ModeHard.Name:
		return ModeHard, nil
	default:
		return Mode{}, ErrInvalidMode
	}
}

// SessionState represents the lifecycle phase of a session
type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionCompleted  SessionState = "completed" // terminal
)

// GameSession is one play-through with a hidden target and a bounded number
// of attempts. The target is immutable once the session is created.
type GameSession struct {
	ID        SessionID
	PlayerID  PlayerID
	Kind      GameKind
	Mode      Mode
	BonusMode bool

	TargetChampion ChampionID
	TargetAbility  AbilityID // set only for the ability kind

	State        SessionState
	Won          bool
	AttemptsUsed int

	// Version guards concurrent read-modify-write cycles; storage rejects a
	// save whose Version does not match the stored row.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Completed reports whether the session has reached its terminal state
func (s *GameSession) Completed() bool {
	return s.State == SessionCompleted
}

// AttemptsLeft returns the number of guesses still allowed
func (s *GameSession) AttemptsLeft() int {
	left := s.Mode.MaxAttempts - s.AttemptsUsed
	if left < 0 {
		return 0
	}
	return left
}

// Guess is an append-only record of one attempt within a session.
// Numbers are 1-based, strictly increasing, with no gaps.
type Guess struct {
	SessionID  SessionID
	Number     int
	ChampionID ChampionID
	CreatedAt  time.Time
}
