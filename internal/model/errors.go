package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Catalog errors
	ErrChampionNotFound = errors.New("champion not found")
	ErrAbilityNotFound  = errors.New("ability not found")
	ErrNoEligibleTarget = errors.New("no eligible target in catalog")

	// Session errors
	ErrSessionNotFound    = errors.New("game session not found")
	ErrSessionCompleted   = errors.New("game session is already completed")
	ErrMaxAttemptsReached = errors.New("max attempts reached")
	ErrDuplicateGuess     = errors.New("champion was already guessed in this session")
	ErrNoTargetAbility    = errors.New("session has no target ability")
	ErrVersionConflict    = errors.New("session was modified concurrently")

	// Input errors
	ErrInvalidMode       = errors.New("invalid difficulty mode")
	ErrInvalidGameKind   = errors.New("invalid game kind")
	ErrInvalidAbilityKey = errors.New("invalid ability key")

	// Stats errors
	ErrStatsNotFound = errors.New("player stats not found")
)
