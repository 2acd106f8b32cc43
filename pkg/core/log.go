package core

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogOptions configures NewLogger.
type LogOptions struct {
	Level  string    // "debug", "info", "warn" or "error" (default "info")
	Format string    // "console" (default) or "json"
	Writer io.Writer // Defaults to stderr
}

// NewLogger builds a logr.Logger backed by zap. The returned cleanup flushes
// buffered entries and should run before the program exits.
func NewLogger(opts LogOptions) (logr.Logger, func() error, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return logr.Discard(), func() error { return nil }, err
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	conf := zap.NewProductionEncoderConfig()
	conf.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)

	var enc zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", "console":
		conf.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(conf)
	case "json":
		enc = zapcore.NewJSONEncoder(conf)
	default:
		return logr.Discard(), func() error { return nil }, fmt.Errorf("unknown log format %q", opts.Format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
	zapLogger := zap.New(core)
	return zapr.NewLogger(zapLogger).WithName("reswob"), zapLogger.Sync, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
