package httpapi

import (
	"context"

	"go.uber.org/zap"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/events"
	"jobmatch-engine/internal/pipeline"
	"jobmatch-engine/internal/scrape"
	"jobmatch-engine/internal/secrets"
	"jobmatch-engine/internal/skills"
	"jobmatch-engine/internal/store"
)

// RunLister reads run history.
type RunLister interface {
	ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error)
}

type Deps struct {
	Log *zap.Logger
	Hub *events.Hub

	// Live config, swapped whole on PUT /config.
	Cfg *config.Holder

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Vocabulary *skills.Vocabulary
	Runs       RunLister

	// NewRunner builds a pipeline for the current config (inject for testability).
	NewRunner func(cfg config.Config) *pipeline.Runner

	// Adapters lists the configured adapters for coverage reporting.
	Adapters func(cfg config.Config) []scrape.Adapter

	// Secret storage; both default to the OS keyring.
	SetSecret    func(k secrets.Kind, cfg config.Config, value string) error
	DeleteSecret func(k secrets.Kind, cfg config.Config) error
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}
