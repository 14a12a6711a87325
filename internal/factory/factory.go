package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/odogan/champguess-go/internal/catalog"
	"github.com/odogan/champguess-go/internal/dependencies/clock"
	"github.com/odogan/champguess-go/internal/dependencies/random"
	"github.com/odogan/champguess-go/internal/importer"
	"github.com/odogan/champguess-go/internal/services/game"
	"github.com/odogan/champguess-go/internal/services/identity"
	"github.com/odogan/champguess-go/internal/services/scoring"
	"github.com/odogan/champguess-go/internal/services/stats"
	"github.com/odogan/champguess-go/internal/storage"
	"github.com/odogan/champguess-go/internal/storage/memory"
	redisstorage "github.com/odogan/champguess-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService  *catalog.Service
	ScoringService  *scoring.Service
	StatsService    *stats.Service
	GameController  *game.Controller
	IdentityService *identity.Service
	Importer        *importer.Importer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	catalogService := catalog.New(store, rnd)
	scoringService := scoring.New()
	statsService := stats.New(store, logger)
	gameController := game.NewController(store, catalogService, scoringService, statsService, clk, rnd, logger)
	identityService := identity.New(store, clk, rnd, logger)
	imp := importer.New(store, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		CatalogService:  catalogService,
		ScoringService:  scoringService,
		StatsService:    statsService,
		GameController:  gameController,
		IdentityService: identityService,
		Importer:        imp,
	}
}
