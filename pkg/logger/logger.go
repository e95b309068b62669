package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide sugared logger. Init must run before use.
var Log *zap.SugaredLogger

var base *zap.Logger

// Config controls logger initialization.
type Config struct {
	Debug     bool
	LogToFile bool
	LogsDir   string
}

// Init builds the global logger. Console output always, file output
// when LogToFile is set.
func Init(cfg Config) error {
	level := zap.InfoLevel
	if cfg.Debug {
		level = zap.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stdout),
			level,
		),
	}

	if cfg.LogToFile {
		if err := os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
			return fmt.Errorf("create logs dir: %w", err)
		}
		f, err := os.OpenFile(
			filepath.Join(cfg.LogsDir, "transferdesk.log"),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY,
			0o644,
		)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(f),
			level,
		))
	}

	base = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Log = base.Sugar()
	return nil
}

// Named returns a child logger carrying the given name.
func Named(name string) (*zap.SugaredLogger, error) {
	if base == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	return base.Named(name).Sugar(), nil
}

// Cleanup flushes buffered log entries.
func Cleanup() error {
	if base == nil {
		return nil
	}
	return base.Sync()
}
