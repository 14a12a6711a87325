package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PlayerIdentity is a stable player reference, authenticated or
// anonymous-by-token
type PlayerIdentity struct {
	ID        PlayerID
	Username  string
	Anonymous bool
	// Token is the full session token an anonymous identity is keyed by.
	// Empty for registered players.
	Token     string
	CreatedAt time.Time
}

// RegisteredAccount extends PlayerIdentity with credential data.
// Stored separately so the hash never travels with the identity.
type RegisteredAccount struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlayerStats is the cumulative record for one (player, game kind) pair.
// Mutated only at session completion.
type PlayerStats struct {
	PlayerID        PlayerID
	Kind            GameKind
	GamesPlayed     int
	GamesWon        int
	TotalScore      int
	BestScore       int
	AverageAttempts float64
}

// WinRate returns the fraction of games won, 0 when no games were played
func (s *PlayerStats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.GamesWon) / float64(s.GamesPlayed)
}
