package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vk/blotterkit/internal/blotter"
	"github.com/vk/blotterkit/internal/config"
	"github.com/vk/blotterkit/internal/hcl"
	"github.com/vk/blotterkit/internal/metrics"
	"github.com/vk/blotterkit/internal/registry"
	"github.com/vk/blotterkit/internal/yamlcfg"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	catalog    *blotter.Catalog
	metrics    *metrics.Collector
	loaders    []config.Loader
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It creates the single
// blotter catalog for the process and registers modules into it, or the
// compiled-in core modules when none are given. Report output goes to outW,
// logs to logW.
//
// A module that fails to register is a programming error, so NewApp panics.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...blotter.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	collector := metrics.New(metrics.Config{})
	catalog := blotter.NewCatalog(
		registry.WithObserver(collector),
		registry.WithLogger(logger),
	)

	if len(modules) == 0 {
		modules = coreModules
	}
	var g errgroup.Group
	for _, mod := range modules {
		g.Go(func() error {
			return mod.Register(catalog)
		})
	}
	if err := g.Wait(); err != nil {
		panic(fmt.Errorf("failed to register blotter modules: %w", err))
	}
	logger.Debug("All blotter modules registered.", "modules", len(modules), "blotters", catalog.View().Names())

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		catalog: catalog,
		metrics: collector,
		loaders: []config.Loader{hcl.NewLoader(), yamlcfg.NewLoader()},
	}
}

// Catalog returns a read-only view of the registered blotters.
func (a *App) Catalog() *registry.View[blotter.Factory] {
	return a.catalog.View()
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// List writes the names of all registered blotters to the output, one per line.
func (a *App) List() error {
	for name := range a.catalog.View().All() {
		if _, err := fmt.Fprintln(a.outW, name); err != nil {
			return err
		}
	}
	return nil
}
