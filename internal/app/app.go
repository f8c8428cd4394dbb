package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/infragrid/internal/config"
	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/provider"
	awsprovider "github.com/vk/infragrid/internal/provider/aws"
	"github.com/vk/infragrid/internal/provider/mem"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *provider.Registry
	stack    *config.Stack
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and provider
// registry. Critical startup failures panic; the entrypoint recovers them.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, providers ...provider.Provider) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	stack, err := loader.Load(ctx, appConfig.StackPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.",
		"resources", len(stack.Resources),
		"outputs", len(stack.Outputs),
	)

	if len(providers) == 0 {
		p, err := newProvider(ctx, appConfig)
		if err != nil {
			panic(err)
		}
		providers = []provider.Provider{p}
	}

	reg := provider.NewRegistry()
	for _, p := range providers {
		reg.Register(p)
		logger.Debug("Provider registered.", "provider", p.Name())
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		stack:    stack,
	}
}

// newProvider selects the provider adapter named by the configuration.
func newProvider(ctx context.Context, appConfig *Config) (provider.Provider, error) {
	switch appConfig.Provider {
	case "aws":
		p, err := awsprovider.New(ctx, appConfig.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize aws provider: %w", err)
		}
		return p, nil
	default:
		return mem.New(), nil
	}
}

// Registry returns the application's provider registry. This is primarily
// for testing.
func (a *App) Registry() *provider.Registry {
	return a.registry
}

// Stack returns the loaded configuration model. This is primarily for
// testing.
func (a *App) Stack() *config.Stack {
	return a.stack
}
