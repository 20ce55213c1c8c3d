package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/logger"
	"jobmatch-engine/internal/notify"
	"jobmatch-engine/internal/pipeline"
	"jobmatch-engine/internal/scrape"
	"jobmatch-engine/internal/secrets"
	"jobmatch-engine/internal/skills"
	"jobmatch-engine/internal/store"
)

// engine holds everything a command needs once flags, env and config are
// resolved.
type engine struct {
	log     *zap.Logger
	dataDir string
	cfgPath string
	cfg     *config.Holder
	vocab   *skills.Vocabulary
	db      *store.DB
}

func setup(ctx context.Context) (*engine, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	// .env in the working dir may itself set JOBMATCH_DATA_DIR.
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("load .env", zap.Error(err))
	}
	dataDir := strings.TrimSpace(viper.GetString("data-dir"))
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	if err := config.LoadDotEnv(config.DataDirEnvFile(dataDir)); err != nil {
		log.Warn("load data dir .env", zap.Error(err))
	}

	cfgPath := viper.GetString("config")
	if cfgPath == "" {
		cfgPath, err = config.EnsureUserConfig(dataDir)
		if err != nil {
			return nil, fmt.Errorf("config bootstrap failed: %w", err)
		}
	}
	cfg, err := loadConfig(cfgPath, dataDir)
	if err != nil {
		return nil, err
	}
	normalized, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Warn("config", zap.String("warning", w))
	}
	if !vr.OK() {
		return nil, fmt.Errorf("config %s is invalid: %s", cfgPath, strings.Join(vr.Errors, "; "))
	}

	vocab, err := skills.Load(normalized.Skills.VocabularyPath)
	if err != nil {
		return nil, err
	}

	e := &engine{
		log:     log,
		dataDir: dataDir,
		cfgPath: cfgPath,
		cfg:     config.NewHolder(normalized),
		vocab:   vocab,
	}

	db, err := store.Open(ctx, filepath.Join(dataDir, store.FileName))
	if err != nil {
		// run history is optional
		log.Warn("run history disabled", zap.Error(err))
	} else {
		e.db = db
	}

	log.Info("engine ready",
		zap.String("version", version),
		zap.String("data_dir", dataDir),
		zap.String("config", cfgPath),
		zap.Int("vocabulary", vocab.Len()))
	return e, nil
}

func loadConfig(path, dataDir string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg = config.ApplyEnv(cfg)
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}
	return cfg, nil
}

func (e *engine) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = e.log.Sync()
}

func (e *engine) reload() (config.Config, error) {
	cfg, err := loadConfig(e.cfgPath, e.dataDir)
	if err != nil {
		return cfg, err
	}
	cfg, _ = config.NormalizeAndValidate(cfg)
	return cfg, nil
}

func (e *engine) adapters(cfg config.Config) []scrape.Adapter {
	return scrape.Build(cfg.Sources, "", e.log)
}

// newRunner builds a pipeline for cfg, resolving secrets at call time so a
// key stored through the API is picked up by the next run.
func (e *engine) newRunner(cfg config.Config) *pipeline.Runner {
	var adzunaKey string
	if cfg.Sources.Adzuna.Enabled {
		k, err := secrets.Get(secrets.AdzunaKey, cfg)
		if err != nil {
			e.log.Debug("adzuna key", zap.Error(err))
		}
		adzunaKey = k
	}

	rn := &pipeline.Runner{
		Vocabulary: e.vocab,
		Aggregator: scrape.Aggregator{
			Fetchers: scrape.Fetchers(scrape.Build(cfg.Sources, adzunaKey, e.log)),
			Parallel: cfg.Sources.Parallel,
		},
		ExportDir: cfg.Export.Dir,
		Log:       e.log,
	}
	if e.db != nil {
		rn.Runs = e.db
	}
	if m := e.mailer(cfg); m != nil {
		rn.Notifier = m
	}
	return rn
}

func (e *engine) mailer(cfg config.Config) *notify.Mailer {
	n := cfg.Notify
	if !n.Enabled {
		return nil
	}
	pw, err := secrets.Get(secrets.SMTPPassword, cfg)
	if err != nil {
		e.log.Warn("notifications enabled but no smtp password", zap.Error(err))
		return nil
	}
	var copier *notify.SentCopier
	if n.IMAPAddr != "" {
		copier = &notify.SentCopier{
			Addr:     n.IMAPAddr,
			Username: n.Username,
			Password: pw,
			Mailbox:  n.SentMailbox,
		}
	}
	return notify.NewMailer(notify.Config{
		Host:     n.SMTPHost,
		Port:     n.SMTPPort,
		Username: n.Username,
		Password: pw,
		From:     n.From,
	}, copier, e.log)
}
