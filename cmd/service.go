package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/EmmanuelCobian/league-wrapped/internal/config"
	"github.com/EmmanuelCobian/league-wrapped/internal/narrative"
	"github.com/EmmanuelCobian/league-wrapped/internal/riot"
	"github.com/EmmanuelCobian/league-wrapped/internal/storage"
	"github.com/EmmanuelCobian/league-wrapped/internal/wrapped"
)

// openStorage opens the match cache, creating its directory if needed.
func openStorage(cfg *config.Config) (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// newService wires the Riot client, cache and narrative collaborators. A
// missing Riot key leaves the upstream unset so recaps fail with a clear
// configuration error; a missing Anthropic key disables enhancement.
func newService(cfg *config.Config, db *storage.DB, log *zap.Logger) *wrapped.Service {
	deps := wrapped.Deps{
		Lore: narrative.NewDataDragon(
			narrative.WithBaseURL(cfg.DataDragonURL),
			narrative.WithLocale(cfg.Locale),
		),
		Logger:     log,
		MatchCount: cfg.MatchCount,
		Location:   cfg.Location(),
	}
	if db != nil {
		deps.Cache = db
	}

	client, err := riot.NewClient(riot.Config{
		APIKey:     cfg.RiotAPIKey,
		BaseURL:    cfg.RiotBaseURL,
		Timeout:    cfg.RequestTimeout,
		BatchSize:  cfg.BatchSize,
		BatchDelay: cfg.BatchDelay,
		Logger:     log,
	})
	if err != nil {
		log.Warn("riot client disabled", zap.Error(err))
	} else {
		deps.Upstream = client
	}

	if cfg.AnthropicAPIKey != "" {
		deps.Enhancer = narrative.NewAnthropicEnhancer(cfg.AnthropicAPIKey, cfg.AnthropicModel, log)
	}
	return wrapped.NewService(deps)
}
