package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/eduvantage/internal/config"
	"github.com/abhisek/eduvantage/internal/llm"
	"github.com/abhisek/eduvantage/internal/logging"
	"github.com/abhisek/eduvantage/internal/store"
	"github.com/abhisek/eduvantage/internal/study"
)

// deps holds everything a command needs. Close releases it.
type deps struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	provider llm.Provider
	study    *study.Service
}

// depsOptions tunes how deps are built for a surface.
type depsOptions struct {
	// console mirrors logs to stderr. The dashboard owns the terminal and
	// only logs to file.
	console bool
	// requireProvider fails when no provider is configured instead of
	// leaving study nil.
	requireProvider bool
}

func buildDeps(ctx context.Context, cmd *cobra.Command, opts depsOptions) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logFile := cfg.Log.File
	if logFile == "" && !opts.console {
		if logFile, err = logging.DefaultFile(); err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
	}
	log, err := logging.New(logging.Options{
		Mode:    cfg.Log.Mode,
		Level:   cfg.Log.Level,
		File:    logFile,
		Console: opts.console,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	d := &deps{cfg: cfg, log: log}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	d.store, err = store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	llmCfg := cfg.ProviderConfig()
	if err := llmCfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			if opts.requireProvider {
				d.Close()
				return nil, fmt.Errorf("LLM provider not configured: %w", err)
			}
			log.Warn("LLM provider not configured", zap.Error(err))
			return d, nil
		}
		llmCfg = discovered
	}

	d.provider, err = llm.NewProvider(ctx, llmCfg, d.store.EventRepo(), log)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.study = study.NewService(d.provider, study.ConfigFor(llmCfg.Provider), log)
	log.Debug("dependencies ready",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", d.provider.ModelID()),
		zap.String("db", dbPath))
	return d, nil
}

// Close releases the store and flushes the logger.
func (d *deps) Close() error {
	var errs []error
	if d.store != nil {
		errs = append(errs, d.store.Close())
	}
	if d.log != nil {
		_ = d.log.Sync()
	}
	return errors.Join(errs...)
}
