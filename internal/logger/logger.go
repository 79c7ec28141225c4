// Package logger configures the process-wide zap logger.  The console owns
// stdout, so log output goes to a file.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds a zap logger for the given environment, writes to file and
// installs it as the global logger returned by zap.L().  An empty file
// leaves the no-op global in place.
func Init(env, file string) (func(), error) {
	if file == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.OutputPaths = []string{file}
	cfg.ErrorOutputPaths = []string{file}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("cfg.Build -> %w", err)
	}
	restore := zap.ReplaceGlobals(l)
	return func() {
		_ = l.Sync()
		restore()
	}, nil
}
