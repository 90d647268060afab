package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/procscope/internal/actions"
	"github.com/hugo-lorenzo-mato/procscope/internal/config"
	"github.com/hugo-lorenzo-mato/procscope/internal/dispatch"
	"github.com/hugo-lorenzo-mato/procscope/internal/logging"
	"github.com/hugo-lorenzo-mato/procscope/internal/proc"
)

// app bundles the wired application services.
type app struct {
	cfg        *config.Config
	logger     *logging.Logger
	source     proc.Source
	registry   *actions.Registry
	dispatcher *dispatch.Dispatcher
}

// buildApp loads config, validates it, and wires the services. Config
// problems are the only startup failures besides a dead process table.
func buildApp() (*app, error) {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader = loader.WithConfigFile(cfgFile)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		NoColor: cfg.UI.NoColor,
	})

	source := proc.NewSystemSource(logger)
	registry := actions.NewRegistry(cfg.Tools)
	dispatcher := dispatch.New(source, cfg.DispatchTimeout(), logger)

	return &app{
		cfg:        cfg,
		logger:     logger,
		source:     source,
		registry:   registry,
		dispatcher: dispatcher,
	}, nil
}
