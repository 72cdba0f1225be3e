package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"fitcoach/internal/auth"
	"fitcoach/internal/config"
	"fitcoach/internal/logging"
	"fitcoach/internal/planning"
	"fitcoach/internal/service"
	"fitcoach/internal/store"
	"fitcoach/internal/strava"
)

// errConfigCreated stops a command after the example config was written.
var errConfigCreated = errors.New("example config created")

var errStravaNotConfigured = errors.New("strava credentials not configured")

// app holds what every command needs.
type app struct {
	cfg    *config.Config
	inputs planning.ProfileInputs
	store  *store.Store
	logger *zap.Logger
	coach  *service.CoachService
}

// openApp loads config, logging and the database. The TUI logs to a file
// so output does not tear the alternate screen.
func openApp(logToFile bool) (*app, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return nil, fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s\n\n", filepath.Join(configDir, "config.toml"))
		fmt.Println("Fill in [profile] with your goal and experience.")
		fmt.Println("Strava import additionally needs API credentials from https://www.strava.com/settings/api")
		return nil, errConfigCreated
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		return nil, fmt.Errorf("config validation failed: %w\n\nPlease edit %s", err, filepath.Join(configDir, "config.toml"))
	}
	inputs, err := cfg.Profile.Inputs()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log, logToFile)
	if err != nil {
		return nil, err
	}

	db, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &app{
		cfg:    cfg,
		inputs: inputs,
		store:  db,
		logger: logger,
		coach:  service.NewCoachService(db, logger),
	}, nil
}

func newLogger(cfg config.LogConfig, toFile bool) (*zap.Logger, error) {
	if !toFile {
		return logging.New(cfg)
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return logging.NewFile(cfg, filepath.Join(dir, "fitcoach.log"))
}

// Close releases the database and flushes logs.
func (a *app) Close() {
	_ = a.logger.Sync()
	a.store.Close()
}

// syncService wires Strava import from stored credentials.
// store.ErrNoAuth means 'fitcoach login' has not run yet.
func (a *app) syncService(ctx context.Context) (*service.SyncService, error) {
	if err := a.cfg.ValidateStrava(); err != nil {
		return nil, fmt.Errorf("%w: %v", errStravaNotConfigured, err)
	}
	ts, err := auth.StoredTokenSource(ctx, auth.NewOAuthConfig(a.cfg.Strava), a.store, a.logger)
	if err != nil {
		return nil, err
	}
	if ts.IsExpired() {
		a.logger.Debug("strava token expired, refreshing on first request")
	}
	client := strava.NewClient(ts)
	return service.NewSyncService(client, a.store, a.cfg.Athlete.MaxHR, a.cfg.Athlete.RestingHR, a.logger), nil
}
