package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// NewLogger builds a zap backed logr.Logger. level is one of trace, debug,
// info, warn or error.
func NewLogger(level string, development bool) (logr.Logger, error) {
	zapLevel, err := parseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.DisableStacktrace = !development

	zapLogger, err := config.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zapLogger), nil
}

// NewTestLogger writes every level, in console format, to writer.
func NewTestLogger(writer io.Writer) logr.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(writer), zapcore.Level(-TRACE))
	return zapr.NewLogger(zap.New(core))
}

func parseLevel(level string) (zapcore.Level, error) {
	// logr verbosity n is zap level -n
	if strings.EqualFold(level, "trace") {
		return zapcore.Level(-TRACE), nil
	}
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zapLevel, nil
}
