package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odogan/champguess-go/internal/api"
	"github.com/odogan/champguess-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "champguess-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/champguess")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Create application with an in-memory store and a small catalog
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)
	seedCatalog(t, app)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: app.IdentityService,
		GameController:  app.GameController,
		CatalogService:  app.CatalogService,
		StatsService:    app.StatsService,
		Importer:        app.Importer,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func seedCatalog(t *testing.T, app *factory.App) {
	t.Helper()

	seed := map[string]any{
		"champions": []map[string]any{
			{
				"id":   "darius",
				"name": "Darius",
				"abilities": []map[string]any{
					{"id": "darius-q", "name": "Decimate", "key": "q"},
				},
			},
			{
				"id":   "garen",
				"name": "Garen",
				"abilities": []map[string]any{
					{"id": "garen-q", "name": "Decisive Strike", "key": "q"},
				},
			},
			{
				"id":   "ahri",
				"name": "Ahri",
				"abilities": []map[string]any{
					{"id": "ahri-q", "name": "Orb of Deception", "key": "q"},
				},
			},
		},
	}
	data, err := json.Marshal(seed)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	count, err := app.CatalogService.LoadFromFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type playerResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Anonymous bool   `json:"anonymous"`
}

type authResponse struct {
	PlayerID     string `json:"player_id"`
	SessionToken string `json:"session_token"`
}

type gameResponse struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Mode         string `json:"mode"`
	State        string `json:"state"`
	Won          bool   `json:"won"`
	AttemptsUsed int    `json:"attempts_used"`
	AttemptsLeft int    `json:"attempts_left"`
}

type guessResultResponse struct {
	Game   gameResponse `json:"game"`
	Score  int          `json:"score"`
	Target *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"target"`
}

type statsResponse struct {
	Kind        string `json:"kind"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	TotalScore  int    `json:"total_score"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AnonymousIdentityPersists(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// First command mints an anonymous identity and persists the cookie
	output, err := cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var first playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &first))
	assert.True(t, first.Anonymous)
	assert.NotEmpty(t, first.ID)

	// Second command resolves the same identity from the token file
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var second playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &second))
	assert.Equal(t, first.ID, second.ID)
}

func TestCLI_RegisterAndLogin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "register", "--user", "alice", "--pass", "secret12345")
	require.NoError(t, err, "output: %s", output)

	var registered authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &registered))
	assert.NotEmpty(t, registered.SessionToken)

	// Session token works directly
	output, err = cli.runWithToken(registered.SessionToken, "player", "me")
	require.NoError(t, err, "output: %s", output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "alice", player.Username)
	assert.False(t, player.Anonymous)

	// Fresh login issues a new session
	output, err = cli.run("player", "login", "--user", "alice", "--pass", "secret12345")
	require.NoError(t, err, "output: %s", output)

	var loggedIn authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &loggedIn))
	assert.NotEmpty(t, loggedIn.SessionToken)
	assert.NotEqual(t, registered.SessionToken, loggedIn.SessionToken)
}

func TestCLI_ChampionCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("champion", "list")
	require.NoError(t, err, "output: %s", output)

	var results []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "Ahri", results[0].Name)

	output, err = cli.run("champion", "search", "gar")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Garen", results[0].Name)

	output, err = cli.run("champion", "get", "ahri")
	require.NoError(t, err, "output: %s", output)

	var champion struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &champion))
	assert.Equal(t, "Ahri", champion.Name)
}

func TestCLI_FullRound(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "start", "--kind", "champion", "--mode", "easy")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "in_progress", game.State)
	assert.Equal(t, 10, game.AttemptsLeft)

	// The target is random; guessing every champion guarantees a win
	// within the easy-mode attempt limit
	var final guessResultResponse
	for _, id := range []string{"darius", "garen", "ahri"} {
		output, err = cli.run("game", "guess", game.ID, id)
		require.NoError(t, err, "output: %s", output)
		require.NoError(t, json.Unmarshal([]byte(output), &final))
		if final.Game.State == "completed" {
			break
		}
	}

	require.Equal(t, "completed", final.Game.State)
	assert.True(t, final.Game.Won)
	assert.Greater(t, final.Score, 0)
	require.NotNil(t, final.Target)

	// Stats reflect the finished round
	output, err = cli.run("stats", "--kind", "champion")
	require.NoError(t, err, "output: %s", output)

	var stats statsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &stats))
	assert.Equal(t, 1, stats.GamesPlayed)
	assert.Equal(t, 1, stats.GamesWon)
	assert.Equal(t, final.Score, stats.TotalScore)

	// History lists it
	output, err = cli.run("game", "history", "--kind", "champion")
	require.NoError(t, err, "output: %s", output)

	var history struct {
		Games []gameResponse `json:"games"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &history))
	require.Len(t, history.Games, 1)
	assert.Equal(t, game.ID, history.Games[0].ID)

	// Leaderboard ranks this player first
	output, err = cli.run("leaderboard", "--kind", "champion")
	require.NoError(t, err, "output: %s", output)

	var board struct {
		Entries []struct {
			TotalScore int `json:"total_score"`
		} `json:"entries"`
		ViewerRank int `json:"viewer_rank"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.Len(t, board.Entries, 1)
	assert.Equal(t, 1, board.ViewerRank)
}

func TestCLI_AbandonRound(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "start", "--kind", "champion", "--mode", "medium")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	output, err = cli.run("game", "abandon", game.ID)
	require.NoError(t, err, "output: %s", output)

	// The round is gone afterwards
	_, err = cli.run("game", "get", game.ID)
	require.Error(t, err)
}
