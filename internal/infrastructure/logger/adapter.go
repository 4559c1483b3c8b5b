package logger

import (
	"errors"
	"syscall"

	"shopcheck/internal/application/port/output"

	"go.uber.org/zap"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

// LoggerAdapter exposes a zap logger through the key/value LoggerPort.
type LoggerAdapter struct {
	sugar *zap.SugaredLogger
}

func NewLoggerAdapter(cfg Config) *LoggerAdapter {
	return FromZap(NewZap(cfg))
}

func FromZap(l *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{sugar: l.Sugar()}
}

func NewNop() *LoggerAdapter {
	return FromZap(zap.NewNop())
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{sugar: l.sugar.With(key, value)}
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &LoggerAdapter{sugar: l.sugar.With(args...)}
}

// Close flushes buffered entries. Syncing a terminal fails on some
// platforms; that error is ignored.
func (l *LoggerAdapter) Close() error {
	err := l.sugar.Sync()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
