package identity

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/odogan/champguess-go/internal/dependencies/clock"
	"github.com/odogan/champguess-go/internal/dependencies/random"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/storage"
)

const (
	// AnonymousTokenTTL is how long an anonymous identity's browser token
	// stays valid. Anonymous players keep their history for as long as they
	// keep the cookie.
	AnonymousTokenTTL = 10 * 365 * 24 * time.Hour

	tokenLength   = 32
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	playerIDLength   = 16
	playerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	anonUsernamePrefix   = "anon_"
	anonUsernameTokenLen = 8
	loginSessionDuration = 24 * time.Hour
	loginTokenLength     = 32
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Resolution is the outcome of resolving a request's identity
type Resolution struct {
	Identity *model.PlayerIdentity
	// Token is the anonymous token the client should carry. Empty for
	// registered players.
	Token string
	// TokenCreated is true when a fresh anonymous identity was minted for
	// this request, so the transport layer must set the cookie.
	TokenCreated bool
}

// LoginSession is an authenticated session for a registered player
type LoginSession struct {
	Token     string
	PlayerID  model.PlayerID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service resolves anonymous identities from tokens and manages registered
// accounts
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*LoginSession
}

// New creates a new IdentityService
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		clock:    clock,
		random:   random,
		logger:   logger,
		sessions: make(map[string]*LoginSession),
	}
}

// Resolve looks up the identity behind an anonymous token, minting a new
// anonymous identity when the token is missing or unknown. The full token is
// the identity key; the visible username only carries its prefix.
func (s *Service) Resolve(ctx context.Context, token string) (*Resolution, error) {
	if token != "" {
		identity, err := s.storage.GetIdentityByToken(ctx, token)
		if err == nil {
			return &Resolution{Identity: identity, Token: token}, nil
		}
		if !errors.Is(err, model.ErrPlayerNotFound) {
			return nil, err
		}
		// Unknown or expired token, fall through and mint a new identity
	}

	newToken := s.random.String(tokenLength, tokenAlphabet)
	now := s.clock.Now()

	identity := &model.PlayerIdentity{
		ID:        model.PlayerID("p_" + s.random.String(playerIDLength, playerIDAlphabet)),
		Username:  anonUsernamePrefix + newToken[:anonUsernameTokenLen],
		Anonymous: true,
		Token:     newToken,
		CreatedAt: now,
	}

	if err := s.storage.SaveIdentity(ctx, identity); err != nil {
		return nil, err
	}

	s.logger.Info("created anonymous identity",
		"player_id", identity.ID,
		"username", identity.Username)

	return &Resolution{
		Identity:     identity,
		Token:        newToken,
		TokenCreated: true,
	}, nil
}

// Register creates a registered account and logs it in
func (s *Service) Register(ctx context.Context, username, password string) (*LoginSession, error) {
	_, err := s.storage.GetAccountByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	identity := &model.PlayerIdentity{
		ID:        model.PlayerID("p_" + s.random.String(playerIDLength, playerIDAlphabet)),
		Username:  username,
		CreatedAt: now,
	}
	account := &model.RegisteredAccount{
		PlayerID:     identity.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveIdentity(ctx, identity); err != nil {
		return nil, err
	}
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("registered account",
		"player_id", identity.ID,
		"username", username)

	return s.createLoginSession(identity.ID), nil
}

// Login authenticates a registered account
func (s *Service) Login(ctx context.Context, username, password string) (*LoginSession, error) {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createLoginSession(account.PlayerID), nil
}

// ValidateLogin returns the identity behind a bearer token
func (s *Service) ValidateLogin(ctx context.Context, token string) (*model.PlayerIdentity, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return s.storage.GetIdentity(ctx, session.PlayerID)
}

// Logout invalidates a login session token
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Identity fetches a player identity by ID
func (s *Service) Identity(ctx context.Context, id model.PlayerID) (*model.PlayerIdentity, error) {
	return s.storage.GetIdentity(ctx, id)
}

func (s *Service) createLoginSession(playerID model.PlayerID) *LoginSession {
	now := s.clock.Now()
	session := &LoginSession{
		Token:     s.random.String(loginTokenLength, tokenAlphabet),
		PlayerID:  playerID,
		CreatedAt: now,
		ExpiresAt: now.Add(loginSessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// CleanExpiredSessions removes expired login sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
