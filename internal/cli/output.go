package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case GuessResult:
		o.printGuessResult(v)
	case SessionGuesses:
		o.printSessionGuesses(v)
	case AbilityKeyResult:
		o.printAbilityKeyResult(v)
	case Champion:
		o.printChampion(v)
	case SearchResultList:
		o.printSearchResults(v)
	case Stats:
		o.printStats(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HistoryPage:
		o.printHistoryPage(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Anonymous bool   `json:"anonymous"`
}

// AuthResult is the register/login response
type AuthResult struct {
	PlayerID     string `json:"player_id"`
	SessionToken string `json:"session_token"`
	ExpiresAt    string `json:"expires_at"`
}

// Game response type
type Game struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Mode         string `json:"mode"`
	Bonus        bool   `json:"bonus"`
	State        string `json:"state"`
	Won          bool   `json:"won"`
	AttemptsUsed int    `json:"attempts_used"`
	AttemptsLeft int    `json:"attempts_left"`
	CreatedAt    string `json:"created_at"`
}

// AttributeFeedback response type
type AttributeFeedback struct {
	Value  string `json:"value"`
	Status string `json:"status"`
}

// YearFeedback response type
type YearFeedback struct {
	Value  int    `json:"value"`
	Status string `json:"status"`
}

// Feedback response type
type Feedback struct {
	ChampionID   string             `json:"champion_id"`
	ChampionName string             `json:"champion_name"`
	Correct      bool               `json:"correct"`
	Position     *AttributeFeedback `json:"position,omitempty"`
	Region       *AttributeFeedback `json:"region,omitempty"`
	Species      *AttributeFeedback `json:"species,omitempty"`
	Resource     *AttributeFeedback `json:"resource,omitempty"`
	CombatRange  *AttributeFeedback `json:"combat_range,omitempty"`
	Gender       *AttributeFeedback `json:"gender,omitempty"`
	ReleaseYear  *YearFeedback      `json:"release_year,omitempty"`
}

// Clue response type
type Clue struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Champion response type
type Champion struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// Ability response type
type Ability struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
}

// GuessResult response type
type GuessResult struct {
	Game          Game      `json:"game"`
	Feedback      *Feedback `json:"feedback,omitempty"`
	Clue          *Clue     `json:"clue,omitempty"`
	Score         int       `json:"score"`
	Target        *Champion `json:"target,omitempty"`
	TargetAbility *Ability  `json:"target_ability,omitempty"`
}

// AbilityKeyResult response type
type AbilityKeyResult struct {
	Correct bool     `json:"correct"`
	Ability *Ability `json:"ability"`
}

// Guess response type
type Guess struct {
	Number     int    `json:"number"`
	ChampionID string `json:"champion_id"`
	CreatedAt  string `json:"created_at"`
}

// SessionGuesses is a round's guess log with any revealed clues
type SessionGuesses struct {
	Guesses []Guess `json:"guesses"`
	Clues   []Clue  `json:"clues,omitempty"`
}

// SearchResult response type
type SearchResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchResultList wraps search results for output dispatch
type SearchResultList []SearchResult

// Stats response type
type Stats struct {
	Kind            string  `json:"kind"`
	GamesPlayed     int     `json:"games_played"`
	GamesWon        int     `json:"games_won"`
	WinRate         float64 `json:"win_rate"`
	TotalScore      int     `json:"total_score"`
	BestScore       int     `json:"best_score"`
	AverageAttempts float64 `json:"average_attempts"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	Username    string `json:"username"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	TotalScore  int    `json:"total_score"`
	BestScore   int    `json:"best_score"`
}

// Leaderboard response type
type Leaderboard struct {
	Kind       string             `json:"kind"`
	Entries    []LeaderboardEntry `json:"entries"`
	ViewerRank int                `json:"viewer_rank,omitempty"`
}

// HistoryPage response type
type HistoryPage struct {
	Games   []Game `json:"games"`
	Page    int    `json:"page"`
	HasMore bool   `json:"has_more"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	anonStr := "no"
	if p.Anonymous {
		anonStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.Username, p.ID)
	fmt.Printf("Anonymous: %s\n", anonStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Player: %s\n", a.PlayerID)
	fmt.Printf("Token: %s\n", a.SessionToken)
	fmt.Printf("Expires: %s\n", a.ExpiresAt)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Kind: %s\n", g.Kind)
	fmt.Printf("Mode: %s\n", g.Mode)
	if g.Bonus {
		fmt.Println("Bonus: yes")
	}
	fmt.Printf("State: %s\n", g.State)
	fmt.Printf("Attempts: %d used, %d left\n", g.AttemptsUsed, g.AttemptsLeft)
	if g.State == "completed" {
		if g.Won {
			fmt.Println("Result: won")
		} else {
			fmt.Println("Result: lost")
		}
	}
}

func (o *Output) printGuessResult(r GuessResult) {
	if r.Feedback != nil {
		o.printFeedback(r.Feedback)
	}

	if r.Clue != nil {
		fmt.Printf("Clue (%s): %s\n", r.Clue.Kind, r.Clue.Text)
	}

	if r.Game.State == "completed" {
		if r.Game.Won {
			fmt.Printf("\nCorrect! Score: %d\n", r.Score)
		} else {
			fmt.Println("\nOut of attempts.")
		}
		if r.Target != nil {
			fmt.Printf("The champion was %s", r.Target.Name)
			if r.Target.Title != "" {
				fmt.Printf(", %s", r.Target.Title)
			}
			fmt.Println()
		}
		if r.TargetAbility != nil {
			fmt.Printf("The ability was %s (%s)\n", r.TargetAbility.Name, r.TargetAbility.Key)
		}
	} else {
		fmt.Printf("\nAttempts left: %d\n", r.Game.AttemptsLeft)
	}
}

func (o *Output) printFeedback(f *Feedback) {
	fmt.Printf("Guess: %s\n", f.ChampionName)

	printAttr := func(label string, a *AttributeFeedback) {
		if a == nil {
			return
		}
		fmt.Printf("  %-12s %s [%s]\n", label+":", a.Value, a.Status)
	}

	printAttr("Position", f.Position)
	printAttr("Region", f.Region)
	printAttr("Species", f.Species)
	printAttr("Resource", f.Resource)
	printAttr("Range", f.CombatRange)
	printAttr("Gender", f.Gender)
	if f.ReleaseYear != nil {
		fmt.Printf("  %-12s %d [%s]\n", "Released:", f.ReleaseYear.Value, f.ReleaseYear.Status)
	}
}

func (o *Output) printSessionGuesses(sg SessionGuesses) {
	fmt.Printf("Guesses (%d):\n", len(sg.Guesses))
	for _, g := range sg.Guesses {
		fmt.Printf("  %d. %s\n", g.Number, g.ChampionID)
	}
	if len(sg.Clues) > 0 {
		fmt.Println("Clues:")
		for _, c := range sg.Clues {
			fmt.Printf("  (%s) %s\n", c.Kind, c.Text)
		}
	}
}

func (o *Output) printAbilityKeyResult(r AbilityKeyResult) {
	if r.Correct {
		fmt.Println("Correct!")
	} else {
		fmt.Println("Wrong slot.")
	}
	if r.Ability != nil {
		fmt.Printf("Ability: %s (%s)\n", r.Ability.Name, r.Ability.Key)
	}
}

func (o *Output) printChampion(c Champion) {
	fmt.Printf("Champion: %s (%s)\n", c.Name, c.ID)
	if c.Title != "" {
		fmt.Printf("Title: %s\n", c.Title)
	}
}

func (o *Output) printSearchResults(results SearchResultList) {
	if len(results) == 0 {
		fmt.Println("No matches")
		return
	}
	for _, r := range results {
		fmt.Printf("  %s (%s)\n", r.Name, r.ID)
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Kind: %s\n", s.Kind)
	fmt.Printf("Played: %d\n", s.GamesPlayed)
	fmt.Printf("Won: %d (%.0f%%)\n", s.GamesWon, s.WinRate*100)
	fmt.Printf("Total Score: %d\n", s.TotalScore)
	fmt.Printf("Best Score: %d\n", s.BestScore)
	fmt.Printf("Avg Attempts: %.1f\n", s.AverageAttempts)
}

func (o *Output) printLeaderboard(b Leaderboard) {
	fmt.Printf("Leaderboard (%s):\n", b.Kind)
	for _, e := range b.Entries {
		fmt.Printf("  %2d. %-20s %d points (%d/%d won)\n",
			e.Rank, e.Username, e.TotalScore, e.GamesWon, e.GamesPlayed)
	}
	if b.ViewerRank > 0 {
		fmt.Printf("Your rank: %d\n", b.ViewerRank)
	}
}

func (o *Output) printHistoryPage(p HistoryPage) {
	fmt.Printf("Page %d:\n", p.Page)
	for _, g := range p.Games {
		result := "lost"
		if g.Won {
			result = "won"
		}
		fmt.Printf("  %s  %s/%s  %s in %d attempts\n", g.ID, g.Kind, g.Mode, result, g.AttemptsUsed)
	}
	if p.HasMore {
		fmt.Println("More pages available")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
