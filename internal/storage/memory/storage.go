package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	champions     map[model.ChampionID]*model.Champion
	championOrder []model.ChampionID
	abilities     map[model.AbilityID]*model.Ability

	identities    map[model.PlayerID]*model.PlayerIdentity
	tokenIndex    map[string]model.PlayerID
	usernameIndex map[string]model.PlayerID
	accounts      map[string]*model.RegisteredAccount

	sessions map[model.SessionID]*model.GameSession
	guesses  map[model.SessionID][]*model.Guess

	stats map[statsKey]*model.PlayerStats
}

type statsKey struct {
	playerID model.PlayerID
	kind     model.GameKind
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		champions:     make(map[model.ChampionID]*model.Champion),
		abilities:     make(map[model.AbilityID]*model.Ability),
		identities:    make(map[model.PlayerID]*model.PlayerIdentity),
		tokenIndex:    make(map[string]model.PlayerID),
		usernameIndex: make(map[string]model.PlayerID),
		accounts:      make(map[string]*model.RegisteredAccount),
		sessions:      make(map[model.SessionID]*model.GameSession),
		guesses:       make(map[model.SessionID][]*model.Guess),
		stats:         make(map[statsKey]*model.PlayerStats),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Champion operations

func (s *Storage) SaveChampion(ctx context.Context, champion *model.Champion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.champions[champion.ID]; !ok {
		s.championOrder = append(s.championOrder, champion.ID)
	}
	s.champions[champion.ID] = champion
	return nil
}

func (s *Storage) GetChampion(ctx context.Context, id model.ChampionID) (*model.Champion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	champion, ok := s.champions[id]
	if !ok {
		return nil, model.ErrChampionNotFound
	}
	return champion, nil
}

func (s *Storage) ListChampions(ctx context.Context) ([]*model.Champion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	champions := make([]*model.Champion, 0, len(s.championOrder))
	for _, id := range s.championOrder {
		champions = append(champions, s.champions[id])
	}
	return champions, nil
}

// Ability operations

func (s *Storage) SaveAbility(ctx context.Context, ability *model.Ability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abilities[ability.ID] = ability
	return nil
}

func (s *Storage) GetAbility(ctx context.Context, id model.AbilityID) (*model.Ability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ability, ok := s.abilities[id]
	if !ok {
		return nil, model.ErrAbilityNotFound
	}
	return ability, nil
}

func (s *Storage) ListAbilitiesForChampion(ctx context.Context, championID model.ChampionID) ([]*model.Ability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var abilities []*model.Ability
	for _, ability := range s.abilities {
		if ability.ChampionID == championID {
			abilities = append(abilities, ability)
		}
	}
	sort.Slice(abilities, func(i, j int) bool {
		return abilities[i].ID < abilities[j].ID
	})
	return abilities, nil
}

// Identity operations

func (s *Storage) SaveIdentity(ctx context.Context, identity *model.PlayerIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[identity.ID] = identity
	s.usernameIndex[identity.Username] = identity.ID
	if identity.Token != "" {
		s.tokenIndex[identity.Token] = identity.ID
	}
	return nil
}

func (s *Storage) GetIdentity(ctx context.Context, id model.PlayerID) (*model.PlayerIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return identity, nil
}

func (s *Storage) GetIdentityByToken(ctx context.Context, token string) (*model.PlayerIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokenIndex[token]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return identity, nil
}

func (s *Storage) GetIdentityByUsername(ctx context.Context, username string) (*model.PlayerIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return identity, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.RegisteredAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Username] = account
	return nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.RegisteredAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return account, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSessionLocked(session)
}

func (s *Storage) SaveSessionWithGuess(ctx context.Context, session *model.GameSession, guess *model.Guess, stats *model.PlayerStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveSessionLocked(session); err != nil {
		return err
	}
	g := *guess
	s.guesses[session.ID] = append(s.guesses[session.ID], &g)
	if stats != nil {
		copied := *stats
		s.stats[statsKey{playerID: stats.PlayerID, kind: stats.Kind}] = &copied
	}
	return nil
}

func (s *Storage) saveSessionLocked(session *model.GameSession) error {
	existing, ok := s.sessions[session.ID]
	if ok {
		if existing.Version != session.Version {
			return model.ErrVersionConflict
		}
	} else if session.Version != 0 {
		return model.ErrVersionConflict
	}

	stored := *session
	stored.Version = session.Version + 1
	s.sessions[session.ID] = &stored
	session.Version = stored.Version
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.guesses, id)
	return nil
}

func (s *Storage) ListCompletedSessions(ctx context.Context, playerID model.PlayerID, kind model.GameKind, offset, limit int) ([]*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var completed []*model.GameSession
	for _, session := range s.sessions {
		if session.PlayerID == playerID && session.Kind == kind && session.State == model.SessionCompleted {
			copied := *session
			completed = append(completed, &copied)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CreatedAt.After(completed[j].CreatedAt)
	})

	if offset >= len(completed) {
		return nil, nil
	}
	completed = completed[offset:]
	if limit > 0 && len(completed) > limit {
		completed = completed[:limit]
	}
	return completed, nil
}

// Guess operations

func (s *Storage) ListGuesses(ctx context.Context, sessionID model.SessionID) ([]*model.Guess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	guesses := s.guesses[sessionID]
	result := make([]*model.Guess, len(guesses))
	copy(result, guesses)
	return result, nil
}

// Stats operations

func (s *Storage) GetStats(ctx context.Context, playerID model.PlayerID, kind model.GameKind) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[statsKey{playerID: playerID, kind: kind}]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	copied := *stats
	return &copied, nil
}

func (s *Storage) TopStats(ctx context.Context, kind model.GameKind, limit int) ([]*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var top []*model.PlayerStats
	for key, stats := range s.stats {
		if key.kind == kind {
			copied := *stats
			top = append(top, &copied)
		}
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].TotalScore != top[j].TotalScore {
			return top[i].TotalScore > top[j].TotalScore
		}
		return top[i].PlayerID < top[j].PlayerID
	})
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func (s *Storage) CountStatsAbove(ctx context.Context, kind model.GameKind, totalScore int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for key, stats := range s.stats {
		if key.kind == kind && stats.TotalScore > totalScore {
			count++
		}
	}
	return count, nil
}
