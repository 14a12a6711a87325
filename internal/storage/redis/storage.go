package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Champion operations

func (s *Storage) SaveChampion(ctx context.Context, champion *model.Champion) error {
	data, err := json.Marshal(champion)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, championKey(champion.ID), data, 0)
	pipe.SAdd(ctx, championsIndexKey(), string(champion.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetChampion(ctx context.Context, id model.ChampionID) (*model.Champion, error) {
	data, err := s.client.Get(ctx, championKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrChampionNotFound
		}
		return nil, err
	}

	var champion model.Champion
	if err := json.Unmarshal(data, &champion); err != nil {
		return nil, err
	}
	return &champion, nil
}

func (s *Storage) ListChampions(ctx context.Context) ([]*model.Champion, error) {
	ids, err := s.client.SMembers(ctx, championsIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = championKey(model.ChampionID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	champions := make([]*model.Champion, 0, len(values))
	for _, value := range values {
		str, ok := value.(string)
		if !ok {
			continue // index entry without a record, skip
		}
		var champion model.Champion
		if err := json.Unmarshal([]byte(str), &champion); err != nil {
			return nil, err
		}
		champions = append(champions, &champion)
	}
	return champions, nil
}

// Ability operations

func (s *Storage) SaveAbility(ctx context.Context, ability *model.Ability) error {
	data, err := json.Marshal(ability)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, abilityKey(ability.ID), data, 0)
	pipe.SAdd(ctx, abilitiesForChampionIndexKey(ability.ChampionID), string(ability.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAbility(ctx context.Context, id model.AbilityID) (*model.Ability, error) {
	data, err := s.client.Get(ctx, abilityKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAbilityNotFound
		}
		return nil, err
	}

	var ability model.Ability
	if err := json.Unmarshal(data, &ability); err != nil {
		return nil, err
	}
	return &ability, nil
}

func (s *Storage) ListAbilitiesForChampion(ctx context.Context, championID model.ChampionID) ([]*model.Ability, error) {
	ids, err := s.client.SMembers(ctx, abilitiesForChampionIndexKey(championID)).Result()
	if err != nil {
		return nil, err
	}

	var abilities []*model.Ability
	for _, id := range ids {
		ability, err := s.GetAbility(ctx, model.AbilityID(id))
		if err != nil {
			if errors.Is(err, model.ErrAbilityNotFound) {
				continue
			}
			return nil, err
		}
		abilities = append(abilities, ability)
	}
	return abilities, nil
}

// Identity operations

func (s *Storage) SaveIdentity(ctx context.Context, identity *model.PlayerIdentity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	// Anonymous identities expire with their token horizon
	var ttl time.Duration
	if identity.Anonymous {
		ttl = s.cfg.AnonIdentityTTL
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, identityKey(identity.ID), data, ttl)
	pipe.Set(ctx, usernameIndexKey(identity.Username), string(identity.ID), ttl)
	if identity.Token != "" {
		pipe.Set(ctx, tokenIndexKey(identity.Token), string(identity.ID), ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetIdentity(ctx context.Context, id model.PlayerID) (*model.PlayerIdentity, error) {
	data, err := s.client.Get(ctx, identityKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var identity model.PlayerIdentity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *Storage) GetIdentityByToken(ctx context.Context, token string) (*model.PlayerIdentity, error) {
	id, err := s.client.Get(ctx, tokenIndexKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.GetIdentity(ctx, model.PlayerID(id))
}

func (s *Storage) GetIdentityByUsername(ctx context.Context, username string) (*model.PlayerIdentity, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.GetIdentity(ctx, model.PlayerID(id))
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.RegisteredAccount) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, accountKey(account.Username), data, 0).Err()
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.RegisteredAccount, error) {
	data, err := s.client.Get(ctx, accountKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var account model.RegisteredAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	return s.saveSessionTx(ctx, session, nil)
}

func (s *Storage) SaveSessionWithGuess(ctx context.Context, session *model.GameSession, guess *model.Guess, stats *model.PlayerStats) error {
	guessData, err := json.Marshal(guess)
	if err != nil {
		return err
	}
	var statsData []byte
	if stats != nil {
		if statsData, err = json.Marshal(stats); err != nil {
			return err
		}
	}

	return s.saveSessionTx(ctx, session, func(pipe redis.Pipeliner) {
		pipe.RPush(ctx, guessesKey(session.ID), guessData)
		pipe.Expire(ctx, guessesKey(session.ID), s.cfg.SessionTTL)
		if stats != nil {
			pipe.Set(ctx, statsKey(stats.PlayerID, stats.Kind), statsData, 0)
			pipe.ZAdd(ctx, leaderboardKey(stats.Kind), redis.Z{
				Score:  float64(stats.TotalScore),
				Member: string(stats.PlayerID),
			})
		}
	})
}

// saveSessionTx is the WATCH-based optimistic save: the transaction aborts
// if another writer touches the session key between the version read and
// the write. extra, when set, queues additional writes that must land in
// the same transaction.
func (s *Storage) saveSessionTx(ctx context.Context, session *model.GameSession, extra func(pipe redis.Pipeliner)) error {
	key := sessionKey(session.ID)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if session.Version != 0 {
				return model.ErrVersionConflict
			}
		case err != nil:
			return err
		default:
			var stored model.GameSession
			if err := json.Unmarshal(data, &stored); err != nil {
				return err
			}
			if stored.Version != session.Version {
				return model.ErrVersionConflict
			}
		}

		next := *session
		next.Version = session.Version + 1
		payload, err := json.Marshal(&next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.cfg.SessionTTL)
			if next.State == model.SessionCompleted {
				pipe.ZAdd(ctx, completedIndexKey(next.PlayerID, next.Kind), redis.Z{
					Score:  float64(next.CreatedAt.UnixNano()),
					Member: string(next.ID),
				})
			}
			if extra != nil {
				extra(pipe)
			}
			return nil
		})
		if err != nil {
			return err
		}

		session.Version = next.Version
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrVersionConflict
	}
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.Del(ctx, guessesKey(id))
	pipe.ZRem(ctx, completedIndexKey(session.PlayerID, session.Kind), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListCompletedSessions(ctx context.Context, playerID model.PlayerID, kind model.GameKind, offset, limit int) ([]*model.GameSession, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(offset + limit - 1)
	}
	ids, err := s.client.ZRevRange(ctx, completedIndexKey(playerID, kind), int64(offset), stop).Result()
	if err != nil {
		return nil, err
	}

	var sessions []*model.GameSession
	for _, id := range ids {
		session, err := s.GetSession(ctx, model.SessionID(id))
		if err != nil {
			if errors.Is(err, model.ErrSessionNotFound) {
				continue // expired session still indexed
			}
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Guess operations

func (s *Storage) ListGuesses(ctx context.Context, sessionID model.SessionID) ([]*model.Guess, error) {
	values, err := s.client.LRange(ctx, guessesKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	guesses := make([]*model.Guess, 0, len(values))
	for _, value := range values {
		var guess model.Guess
		if err := json.Unmarshal([]byte(value), &guess); err != nil {
			return nil, err
		}
		guesses = append(guesses, &guess)
	}
	return guesses, nil
}

// Stats operations

func (s *Storage) GetStats(ctx context.Context, playerID model.PlayerID, kind model.GameKind) (*model.PlayerStats, error) {
	data, err := s.client.Get(ctx, statsKey(playerID, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStatsNotFound
		}
		return nil, err
	}

	var stats model.PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Storage) TopStats(ctx context.Context, kind model.GameKind, limit int) ([]*model.PlayerStats, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := s.client.ZRevRange(ctx, leaderboardKey(kind), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	var top []*model.PlayerStats
	for _, id := range ids {
		stats, err := s.GetStats(ctx, model.PlayerID(id), kind)
		if err != nil {
			if errors.Is(err, model.ErrStatsNotFound) {
				continue
			}
			return nil, err
		}
		top = append(top, stats)
	}
	return top, nil
}

func (s *Storage) CountStatsAbove(ctx context.Context, kind model.GameKind, totalScore int) (int, error) {
	count, err := s.client.ZCount(ctx, leaderboardKey(kind), fmt.Sprintf("(%d", totalScore), "+inf").Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
