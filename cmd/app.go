package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/marcus/nexaflow/internal/config"
	"github.com/marcus/nexaflow/internal/db"
	"github.com/marcus/nexaflow/internal/logging"
	"github.com/marcus/nexaflow/internal/store"
)

// app bundles what a command needs once the workspace is open.
type app struct {
	baseDir string
	cfg     *config.Config
	log     *slog.Logger
	backend string
	repo    db.Repository
	store   *store.Store
}

// loadConfig reads .env, config.json and the environment, then applies
// the --backend and --ephemeral flags.
func loadConfig(baseDir string) (*config.Config, error) {
	if err := config.LoadEnv(baseDir); err != nil {
		return nil, err
	}
	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if backendFlag != "" {
		cfg.Backend = backendFlag
	}
	if ephemeralFlag {
		cfg.Backend = db.BackendMemory
	}
	if !db.IsValidBackend(cfg.BackendName()) {
		return nil, fmt.Errorf("%w: unknown backend %q (valid: file, sqlite, memory)", errBadArg, cfg.Backend)
	}
	return cfg, nil
}

// openApp opens the store for the current workspace
func openApp() (*app, error) {
	dir := getBaseDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	backend := cfg.BackendName()

	repo, err := db.Open(backend, dir)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(repo,
		store.WithLogger(log.With(logging.Backend(backend))),
		store.WithDeadlineWindow(cfg.DeadlineWindow()),
	)
	if err != nil {
		repo.Close()
		return nil, err
	}
	log.Debug("workspace opened", logging.Path(dir), logging.Backend(backend))

	return &app{baseDir: dir, cfg: cfg, log: log, backend: backend, repo: repo, store: st}, nil
}

// Close releases the store and its repository.
func (a *app) Close() error {
	return a.store.Close()
}

// saved reports a save failure left behind by the last mutation. The
// change stays in memory for this process but did not reach disk.
func (a *app) saved() error {
	if err := a.store.PersistErr(); err != nil {
		return fmt.Errorf("%w: %v", errStorage, err)
	}
	return nil
}
