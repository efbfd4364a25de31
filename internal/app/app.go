package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sbridger/reckon/internal/config"
)

type App struct {
	Config *config.Config
	Log    *zap.Logger
}

// NewApp initializes the rejection log sink and returns the ready App
// plus a cleanup that flushes it.
func NewApp(cfg *config.Config) (*App, func(), error) {
	log, err := newLogger(cfg.Logging.File)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize log file: %w", err)
	}

	cleanup := func() {
		_ = log.Sync()
	}

	return &App{
		Config: cfg,
		Log:    log,
	}, cleanup, nil
}

// newLogger builds a JSON logger appending to path, or a no-op logger
// when no log file is configured.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableCaller = true
	zc.DisableStacktrace = true

	return zc.Build()
}
