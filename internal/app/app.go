// Package app wires the service, the snapshot store and the instance
// lock into one application object shared by both front ends.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/mkessler/taskan/internal/db"
	"github.com/mkessler/taskan/internal/service"
)

// App holds the application state and dependencies
type App struct {
	Service  *service.KanbanService
	Store    *db.Store
	DataDir  string
	lockFile *flock.Flock
}

// Config holds application configuration
type Config struct {
	DataDir string
	DBPath  string
	// InMemory skips the snapshot store entirely; state lives for the
	// process only.
	InMemory bool
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	dataDir := db.DefaultDataDir()
	return &Config{
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, "taskan.db"),
	}
}

// New creates a new application instance. Unless configured in-memory,
// the previous snapshot is loaded before returning.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	app := &App{
		Service: service.New(),
		DataDir: cfg.DataDir,
	}

	if cfg.InMemory {
		return app, nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.Store = store

	if err := store.LoadSnapshot(app.Service); err != nil {
		store.Close()
		app.releaseLock()
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return app, nil
}

// Save writes the current state to the snapshot store, a no-op when
// running in-memory.
func (a *App) Save() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.SaveSnapshot(a.Service)
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "taskan.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of taskan is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close saves state and cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.Store != nil {
		if err := a.Store.SaveSnapshot(a.Service); err != nil {
			errs = append(errs, fmt.Errorf("failed to save snapshot: %w", err))
		}
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
