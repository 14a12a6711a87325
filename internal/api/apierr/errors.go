package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/services/identity"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeChampionNotFound    = "CHAMPION_NOT_FOUND"
	CodeAbilityNotFound     = "ABILITY_NOT_FOUND"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeSessionCompleted    = "SESSION_COMPLETED"
	CodeMaxAttemptsReached  = "MAX_ATTEMPTS_REACHED"
	CodeDuplicateGuess      = "DUPLICATE_GUESS"
	CodeNoTargetAbility     = "NO_TARGET_ABILITY"
	CodeNoEligibleTarget    = "NO_ELIGIBLE_TARGET"
	CodeInvalidMode         = "INVALID_MODE"
	CodeInvalidGameKind     = "INVALID_GAME_KIND"
	CodeInvalidAbilityKey   = "INVALID_ABILITY_KEY"
	CodeConflict            = "CONFLICT"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrChampionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeChampionNotFound, "Champion not found"}}
	case errors.Is(err, model.ErrAbilityNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAbilityNotFound, "Ability not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Game not found"}}
	case errors.Is(err, model.ErrSessionCompleted):
		return &httpError{http.StatusConflict, APIError{CodeSessionCompleted, "Game is already complete"}}
	case errors.Is(err, model.ErrMaxAttemptsReached):
		return &httpError{http.StatusConflict, APIError{CodeMaxAttemptsReached, "No attempts remaining"}}
	case errors.Is(err, model.ErrDuplicateGuess):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateGuess, "Champion already guessed this game"}}
	case errors.Is(err, model.ErrNoTargetAbility):
		return &httpError{http.StatusConflict, APIError{CodeNoTargetAbility, "No ability to reveal for this game"}}
	case errors.Is(err, model.ErrNoEligibleTarget):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeNoEligibleTarget, "Champion catalog is empty"}}
	case errors.Is(err, model.ErrInvalidMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMode, "Mode must be easy, medium or hard"}}
	case errors.Is(err, model.ErrInvalidGameKind):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameKind, "Kind must be champion or ability"}}
	case errors.Is(err, model.ErrInvalidAbilityKey):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAbilityKey, "Key must be passive, q, w, e or r"}}
	case errors.Is(err, model.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Game was modified concurrently, retry"}}

	// Map identity errors
	case errors.Is(err, identity.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, identity.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, identity.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
