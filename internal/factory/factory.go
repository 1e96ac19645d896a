package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/competeinator/internal/dependencies/clock"
	"github.com/mcoot/competeinator/internal/services/tournament"
	"github.com/mcoot/competeinator/internal/storage"
	"github.com/mcoot/competeinator/internal/storage/memory"
	redisstorage "github.com/mcoot/competeinator/internal/storage/redis"
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
	Clock clock.Clock

	// Services
	Tournament *tournament.Controller

	closers []io.Closer
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
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	var closers []io.Closer
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
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	app, err := NewWithStorage(ctx, store, clock.New(), logger)
	if err != nil {
		return nil, err
	}
	app.closers = closers
	return app, nil
}

// NewWithStorage wires an App around an existing store. A store that issues
// its own IDs (shared between processes) is used as the ID source; otherwise
// local allocators resume after the highest IDs the store has ever held, so
// a store that outlives the process never sees an ID twice.
func NewWithStorage(ctx context.Context, store storage.Storage, clk clock.Clock, logger *slog.Logger) (*App, error) {
	next, err := store.NextIDs(ctx)
	if err != nil {
		return nil, err
	}

	if next.Player > 0 || next.Match > 0 {
		logger.Info("resuming session",
			slog.Uint64("next_player_id", uint64(next.Player)),
			slog.Uint64("next_match_id", uint64(next.Match)),
		)
	}

	var ids storage.IDSource = tournament.ResumeAllocators(next)
	if shared, ok := store.(storage.IDSource); ok {
		ids = shared
	}

	controller := tournament.NewController(store, ids, clk, logger)

	return &App{
		Storage:    store,
		Clock:      clk,
		Tournament: controller,
	}, nil
}

// Close releases connections held by the storage backend
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
