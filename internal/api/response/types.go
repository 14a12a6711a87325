package response

import (
	"time"

	"github.com/odogan/champguess-go/internal/catalog"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/services/clue"
	"github.com/odogan/champguess-go/internal/services/game"
	"github.com/odogan/champguess-go/internal/services/guess"
	"github.com/odogan/champguess-go/internal/services/identity"
	"github.com/odogan/champguess-go/internal/services/stats"
)

// Player represents a player identity in API responses
type Player struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Anonymous bool   `json:"anonymous"`
}

// PlayerFromModel converts a model.PlayerIdentity to a response Player
func PlayerFromModel(p *model.PlayerIdentity) Player {
	return Player{
		ID:        string(p.ID),
		Username:  p.Username,
		Anonymous: p.Anonymous,
	}
}

// AuthResponse is the response for register/login endpoints
type AuthResponse struct {
	PlayerID     string `json:"player_id"`
	SessionToken string `json:"session_token"`
	ExpiresAt    string `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a login session
func AuthResponseFromSession(s *identity.LoginSession) AuthResponse {
	return AuthResponse{
		PlayerID:     string(s.PlayerID),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt.Format(time.RFC3339),
	}
}

// Game represents a game session in API responses. The target is never
// included while the game is in progress.
type Game struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Mode         string `json:"mode"`
	Bonus        bool   `json:"bonus,omitempty"`
	State        string `json:"state"`
	Won          bool   `json:"won"`
	AttemptsUsed int    `json:"attempts_used"`
	AttemptsLeft int    `json:"attempts_left"`
	CreatedAt    string `json:"created_at"`
}

// GameFromModel converts a model.GameSession
func GameFromModel(s *model.GameSession) Game {
	return Game{
		ID:           string(s.ID),
		Kind:         string(s.Kind),
		Mode:         s.Mode.Name,
		Bonus:        s.BonusMode,
		State:        string(s.State),
		Won:          s.Won,
		AttemptsUsed: s.AttemptsUsed,
		AttemptsLeft: s.AttemptsLeft(),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
}

// AttributeFeedback is one compared attribute of a guessed champion
type AttributeFeedback struct {
	Value  string `json:"value"`
	Status string `json:"status"`
}

// YearFeedback is the compared release year of a guessed champion
type YearFeedback struct {
	Value  int    `json:"value"`
	Status string `json:"status"`
}

// Feedback is the per-attribute comparison for one guess. Omitted fields
// mean the attribute could not be compared.
type Feedback struct {
	ChampionID   string             `json:"champion_id"`
	ChampionName string             `json:"champion_name"`
	ImageURL     string             `json:"image_url,omitempty"`
	Correct      bool               `json:"correct"`
	Position     *AttributeFeedback `json:"position,omitempty"`
	Region       *AttributeFeedback `json:"region,omitempty"`
	Species      *AttributeFeedback `json:"species,omitempty"`
	Resource     *AttributeFeedback `json:"resource,omitempty"`
	CombatRange  *AttributeFeedback `json:"combat_range,omitempty"`
	Gender       *AttributeFeedback `json:"gender,omitempty"`
	ReleaseYear  *YearFeedback      `json:"release_year,omitempty"`
}

// FeedbackFromService converts evaluator feedback
func FeedbackFromService(f *guess.Feedback) *Feedback {
	if f == nil {
		return nil
	}
	out := &Feedback{
		ChampionID:   string(f.ChampionID),
		ChampionName: f.ChampionName,
		ImageURL:     f.ImageURL,
		Correct:      f.Correct,
	}
	out.Position = attributeFromService(f.Position)
	out.Region = attributeFromService(f.Region)
	out.Species = attributeFromService(f.Species)
	out.Resource = attributeFromService(f.Resource)
	out.CombatRange = attributeFromService(f.CombatRange)
	out.Gender = attributeFromService(f.Gender)
	if f.ReleaseYear != nil {
		out.ReleaseYear = &YearFeedback{
			Value:  f.ReleaseYear.Value,
			Status: string(f.ReleaseYear.Status),
		}
	}
	return out
}

func attributeFromService(a *guess.AttributeFeedback) *AttributeFeedback {
	if a == nil {
		return nil
	}
	return &AttributeFeedback{
		Value:  a.Value,
		Status: string(a.Status),
	}
}

// Clue is a revealed hint in an ability round
type Clue struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// ClueFromService converts a generated clue
func ClueFromService(c *clue.Clue) *Clue {
	if c == nil {
		return nil
	}
	return &Clue{Kind: c.Kind, Text: c.Text}
}

// Champion represents a fully revealed champion
type Champion struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Title     string `json:"title,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	SplashURL string `json:"splash_url,omitempty"`
}

// ChampionFromModel converts a model.Champion for reveal responses
func ChampionFromModel(c *model.Champion, lang model.LanguageCode) *Champion {
	if c == nil {
		return nil
	}
	out := &Champion{
		ID:        string(c.ID),
		Name:      c.LocalizedName(lang),
		Title:     c.Title,
		ImageURL:  c.ImageURL,
		SplashURL: c.SplashURL,
	}
	if t, ok := c.Translations[lang]; ok && t.Title != "" {
		out.Title = t.Title
	}
	return out
}

// Ability represents a fully revealed ability
type Ability struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// AbilityFromModel converts a model.Ability for reveal responses
func AbilityFromModel(a *model.Ability, lang model.LanguageCode) *Ability {
	if a == nil {
		return nil
	}
	out := &Ability{
		ID:          string(a.ID),
		Name:        a.LocalizedName(lang),
		Key:         string(a.Key),
		Description: a.Description,
		ImageURL:    a.ImageURL,
	}
	if t, ok := a.Translations[lang]; ok && t.Description != "" {
		out.Description = t.Description
	}
	return out
}

// GuessResult is the response for a submitted guess
type GuessResult struct {
	Game          Game      `json:"game"`
	Feedback      *Feedback `json:"feedback,omitempty"`
	Clue          *Clue     `json:"clue,omitempty"`
	Score         int       `json:"score"`
	Target        *Champion `json:"target,omitempty"`
	TargetAbility *Ability  `json:"target_ability,omitempty"`
}

// GuessResultFromService converts a controller guess result
func GuessResultFromService(r *game.GuessResult, lang model.LanguageCode) GuessResult {
	return GuessResult{
		Game:          GameFromModel(r.Session),
		Feedback:      FeedbackFromService(r.Feedback),
		Clue:          ClueFromService(r.Clue),
		Score:         r.Score,
		Target:        ChampionFromModel(r.Target, lang),
		TargetAbility: AbilityFromModel(r.TargetAbility, lang),
	}
}

// AbilityKeyResult is the response for the final ability key reveal
type AbilityKeyResult struct {
	Correct bool     `json:"correct"`
	Ability *Ability `json:"ability"`
}

// SearchResult is one champion autocomplete match
type SearchResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// SearchResultsFromService converts catalog search results
func SearchResultsFromService(results []catalog.SearchResult) []SearchResult {
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, SearchResult{
			ID:       string(r.ID),
			Name:     r.Name,
			ImageURL: r.ImageURL,
		})
	}
	return out
}

// Stats is a player's aggregate stats for one game kind
type Stats struct {
	Kind            string  `json:"kind"`
	GamesPlayed     int     `json:"games_played"`
	GamesWon        int     `json:"games_won"`
	WinRate         float64 `json:"win_rate"`
	TotalScore      int     `json:"total_score"`
	BestScore       int     `json:"best_score"`
	AverageAttempts float64 `json:"average_attempts"`
}

// StatsFromModel converts model.PlayerStats
func StatsFromModel(s *model.PlayerStats) Stats {
	return Stats{
		Kind:            string(s.Kind),
		GamesPlayed:     s.GamesPlayed,
		GamesWon:        s.GamesWon,
		WinRate:         s.WinRate(),
		TotalScore:      s.TotalScore,
		BestScore:       s.BestScore,
		AverageAttempts: s.AverageAttempts,
	}
}

// LeaderboardEntry is one ranked leaderboard row
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	Username    string `json:"username"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	TotalScore  int    `json:"total_score"`
	BestScore   int    `json:"best_score"`
}

// Leaderboard is the leaderboard response
type Leaderboard struct {
	Kind       string             `json:"kind"`
	Entries    []LeaderboardEntry `json:"entries"`
	ViewerRank int                `json:"viewer_rank,omitempty"`
}

// LeaderboardFromService converts a stats leaderboard
func LeaderboardFromService(b *stats.Leaderboard) Leaderboard {
	out := Leaderboard{
		Kind:       string(b.Kind),
		Entries:    make([]LeaderboardEntry, 0, len(b.Entries)),
		ViewerRank: b.ViewerRank,
	}
	for _, e := range b.Entries {
		out.Entries = append(out.Entries, LeaderboardEntry{
			Rank:        e.Rank,
			PlayerID:    string(e.PlayerID),
			Username:    e.Username,
			GamesPlayed: e.GamesPlayed,
			GamesWon:    e.GamesWon,
			TotalScore:  e.TotalScore,
			BestScore:   e.BestScore,
		})
	}
	return out
}

// HistoryPage is one page of completed games
type HistoryPage struct {
	Games   []Game `json:"games"`
	Page    int    `json:"page"`
	HasMore bool   `json:"has_more"`
}

// HistoryPageFromService converts a controller history page
func HistoryPageFromService(p *game.HistoryPage) HistoryPage {
	out := HistoryPage{
		Games:   make([]Game, 0, len(p.Sessions)),
		Page:    p.Page,
		HasMore: p.HasMore,
	}
	for _, s := range p.Sessions {
		out.Games = append(out.Games, GameFromModel(s))
	}
	return out
}

// Guess is one past guess in a game
type Guess struct {
	Number     int    `json:"number"`
	ChampionID string `json:"champion_id"`
	CreatedAt  string `json:"created_at"`
}

// GuessesFromModel converts stored guesses
func GuessesFromModel(guesses []*model.Guess) []Guess {
	out := make([]Guess, 0, len(guesses))
	for _, g := range guesses {
		out = append(out, Guess{
			Number:     g.Number,
			ChampionID: string(g.ChampionID),
			CreatedAt:  g.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

// SessionGuesses is the guess log of one round, with the clues an ability
// round has revealed
type SessionGuesses struct {
	Guesses []Guess `json:"guesses"`
	Clues   []Clue  `json:"clues,omitempty"`
}

// SessionGuessesFromService converts a controller session history
func SessionGuessesFromService(h *game.SessionHistory) SessionGuesses {
	out := SessionGuesses{
		Guesses: GuessesFromModel(h.Guesses),
	}
	for _, c := range h.Clues {
		out.Clues = append(out.Clues, Clue{Kind: c.Kind, Text: c.Text})
	}
	return out
}

// ImportResult is the response for an admin catalog import
type ImportResult struct {
	Champions int `json:"champions"`
	Abilities int `json:"abilities"`
}
