package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odogan/champguess-go/internal/api/handler"
	"github.com/odogan/champguess-go/internal/api/middleware"
	"github.com/odogan/champguess-go/internal/catalog"
	"github.com/odogan/champguess-go/internal/importer"
	"github.com/odogan/champguess-go/internal/services/game"
	"github.com/odogan/champguess-go/internal/services/identity"
	"github.com/odogan/champguess-go/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	GameController  *game.Controller
	CatalogService  *catalog.Service
	StatsService    *stats.Service
	Importer        *importer.Importer
	AdminToken      string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.IdentityService)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	championHandler := handler.NewChampionHandler(cfg.CatalogService)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)
	adminHandler := handler.NewAdminHandler(cfg.Importer, cfg.AdminToken)

	// Create middleware
	identityMiddleware := middleware.Identity(cfg.IdentityService)
	languageMiddleware := middleware.Language()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(languageMiddleware)

	// Account routes (no identity resolution needed)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/players/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Player routes
	players := api.PathPrefix("/players").Subrouter()
	players.Use(identityMiddleware)
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	players.HandleFunc("/me/stats", statsHandler.GetMyStats).Methods(http.MethodGet)
	players.HandleFunc("/me/history", gameHandler.History).Methods(http.MethodGet)

	// Game routes
	games := api.PathPrefix("/games").Subrouter()
	games.Use(identityMiddleware)
	games.HandleFunc("", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/guesses", gameHandler.Guess).Methods(http.MethodPost)
	games.HandleFunc("/{id}/guesses", gameHandler.ListGuesses).Methods(http.MethodGet)
	games.HandleFunc("/{id}/ability-key", gameHandler.AbilityKey).Methods(http.MethodPost)

	// Champion catalog routes
	champions := api.PathPrefix("/champions").Subrouter()
	champions.Use(identityMiddleware)
	champions.HandleFunc("", championHandler.List).Methods(http.MethodGet)
	champions.HandleFunc("/search", championHandler.Search).Methods(http.MethodGet)
	champions.HandleFunc("/{id}", championHandler.Get).Methods(http.MethodGet)

	// Leaderboard
	leaderboard := api.PathPrefix("/leaderboard").Subrouter()
	leaderboard.Use(identityMiddleware)
	leaderboard.HandleFunc("", statsHandler.GetLeaderboard).Methods(http.MethodGet)

	// Admin routes (token-guarded, no player identity)
	api.HandleFunc("/admin/import", adminHandler.ImportCatalog).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
