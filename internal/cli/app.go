package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/harits/aksi/internal/config"
	"github.com/harits/aksi/internal/history"
	"github.com/harits/aksi/internal/logger"
	"github.com/harits/aksi/pkg/dispatcher"
	"github.com/harits/aksi/pkg/executor"
	"github.com/harits/aksi/pkg/model"
	"github.com/harits/aksi/pkg/registry"
	"github.com/harits/aksi/pkg/tools"
)

// App bundles the wired engine components for a command invocation.
type App struct {
	Config     *config.Config
	Registry   *registry.Registry
	Handle     *model.Handle
	Dispatcher *dispatcher.Dispatcher
	History    *history.Store
	Logger     *logger.Logger
}

// buildApp loads config, configures logging and wires the engine. The
// registry is populated here once and read-only afterwards.
func buildApp() (*App, error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Logging
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	lg, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	if err := os.MkdirAll(cfg.Tools.WorkspaceDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	reg := registry.New()
	if err := tools.RegisterBuiltins(reg, tools.Options{
		WorkspaceRoot:  cfg.Tools.WorkspaceDir,
		WeatherBaseURL: cfg.Tools.WeatherBaseURL,
		SearchBaseURL:  cfg.Tools.SearchBaseURL,
	}); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
	}

	handle := model.NewHandle(cfg.Model)
	exec := executor.New(reg, time.Duration(cfg.Tools.TimeoutSeconds)*time.Second)

	var recorder dispatcher.Recorder
	if store != nil {
		recorder = store
	}

	return &App{
		Config:     cfg,
		Registry:   reg,
		Handle:     handle,
		Dispatcher: dispatcher.New(reg, exec, handle, cfg.Model, recorder),
		History:    store,
		Logger:     lg,
	}, nil
}

// Close releases app resources.
func (a *App) Close() {
	if a.History != nil {
		a.History.Close()
	}
	if a.Logger != nil {
		a.Logger.Close()
	}
}
