// Package logger builds the process logger.
package logger

import (
	"os"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the output format and minimum level.
type Config struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// New builds a logger writing to stderr. stdout is left alone because the
// MCP transport owns it.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	if cfg.JSON {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		return config.Build()
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(os.Stderr),
			level,
		),
	), nil
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return level, errors.InvalidInputf("unknown log level %q", s)
	}
	return level, nil
}
