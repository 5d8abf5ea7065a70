package app

import (
	"context"
	"fmt"

	"github.com/jobdeck/jobdeck/internal/board"
	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/creds"
	"github.com/jobdeck/jobdeck/internal/logging"
	"github.com/jobdeck/jobdeck/internal/session"
	"github.com/jobdeck/jobdeck/internal/state"
	"github.com/jobdeck/jobdeck/internal/ui"
)

// Options configure the jobdeck application.
type Options struct {
	ConfigPath string // empty uses ~/.config/jobdeck/config.toml
	APIBase    string // overrides config and environment when set
}

// Run boots the jobdeck TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}

	logger := logging.New(cfg.LogPath)
	defer func() { _ = logger.Sync() }()

	client, err := board.NewClient(cfg.APIBase, logger)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	slot := creds.NewSlot(cfg.TokenPath)
	sess := session.New(client, slot, logger)
	store := &state.Store{}

	return ui.Run(ui.Options{
		Context: ctx,
		API:     client,
		Session: sess,
		Store:   store,
		Theme:   cfg.Theme,
		Log:     logger,
	})
}
