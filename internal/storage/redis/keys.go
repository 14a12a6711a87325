package redis

import (
	"fmt"

	"github.com/odogan/champguess-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "champguess"

// championKey returns the Redis key for a Champion
func championKey(id model.ChampionID) string {
	return fmt.Sprintf("%s:champion:%s", keyPrefix, id)
}

// championsIndexKey returns the Redis key for the SET of all champion ids
func championsIndexKey() string {
	return fmt.Sprintf("%s:idx:champions", keyPrefix)
}

// abilityKey returns the Redis key for an Ability
func abilityKey(id model.AbilityID) string {
	return fmt.Sprintf("%s:ability:%s", keyPrefix, id)
}

// abilitiesForChampionIndexKey returns the Redis key for the SET of ability
// ids belonging to a champion
func abilitiesForChampionIndexKey(championID model.ChampionID) string {
	return fmt.Sprintf("%s:idx:abilities_for_champion:%s", keyPrefix, championID)
}

// identityKey returns the Redis key for a PlayerIdentity
func identityKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:identity:%s", keyPrefix, id)
}

// tokenIndexKey returns the Redis key for the token -> player_id index
func tokenIndexKey(token string) string {
	return fmt.Sprintf("%s:idx:token:%s", keyPrefix, token)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// accountKey returns the Redis key for a RegisteredAccount
func accountKey(username string) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, username)
}

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// completedIndexKey returns the Redis key for the ZSET of a player's
// completed sessions of a kind, scored by creation time
func completedIndexKey(playerID model.PlayerID, kind model.GameKind) string {
	return fmt.Sprintf("%s:idx:completed:%s:%s", keyPrefix, playerID, kind)
}

// guessesKey returns the Redis key for the LIST of guesses in a session
func guessesKey(sessionID model.SessionID) string {
	return fmt.Sprintf("%s:guesses:%s", keyPrefix, sessionID)
}

// statsKey returns the Redis key for a PlayerStats row
func statsKey(playerID model.PlayerID, kind model.GameKind) string {
	return fmt.Sprintf("%s:stats:%s:%s", keyPrefix, playerID, kind)
}

// leaderboardKey returns the Redis key for the ZSET of total scores per kind
func leaderboardKey(kind model.GameKind) string {
	return fmt.Sprintf("%s:lb:%s", keyPrefix, kind)
}
