package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clubdesk/transferdesk/pkg/logger"
)

// App represents the main application structure.
type App struct {
	serviceProvider *serviceProvider
}

// NewApp initializes the application and its dependencies.
func NewApp(ctx context.Context) (*App, error) {
	a := &App{}

	err := a.initDeps(ctx)
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}

	return a, nil
}

// Run opens the store and blocks until a shutdown signal arrives.
func (a *App) Run() {
	defer a.gracefulShutdown()

	logger.Log.Info("Transfer desk starting")

	// Opening the store eagerly surfaces bad state at startup rather
	// than on first request.
	a.serviceProvider.Store()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Log.Infof("Received signal %v, starting graceful shutdown...", sig)
}

// gracefulShutdown handles cleanup of all resources
func (a *App) gracefulShutdown() {
	logger.Log.Info("Starting graceful shutdown...")

	if a.serviceProvider != nil && a.serviceProvider.store != nil {
		logger.Log.Info("Closing store...")
		if err := a.serviceProvider.store.Close(); err != nil {
			logger.Log.Errorf("Error closing store: %v", err)
		} else {
			logger.Log.Info("Store closed")
		}
	}

	logger.Log.Info("Graceful shutdown completed")

	// Close logger resources last
	if err := logger.Cleanup(); err != nil {
		// Can't log this error as logger is closing
		_ = err
	}
}

// initDeps initializes application dependencies
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initServiceProvider,
		a.initLogger,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return fmt.Errorf("init deps: %w", err)
		}
	}

	return nil
}

func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = newServiceProvider()
	return nil
}

func (a *App) initLogger(_ context.Context) error {
	return logger.Init(logger.Config{
		Debug:     a.serviceProvider.cfg.Logger.Debug(),
		LogToFile: a.serviceProvider.cfg.Logger.LogToFile(),
		LogsDir:   a.serviceProvider.cfg.Logger.LogsDir(),
	})
}
