package logger

import (
	"errors"
	"fmt"
	"log/slog"
)

// Logger wraps slog with the package/function scoping convention used across
// the codebase. The Err/Error variants log and return the error so call
// sites can propagate in one statement.
type Logger struct {
	log *slog.Logger
}

func New(pkg string) Logger {
	return Logger{log: slog.Default().With("package", pkg)}
}

func (l Logger) Function(name string) Logger {
	return Logger{log: l.log.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{log: l.log.With("file", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{log: l.log.With(args...)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}

// Er logs an error without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.log.Error(msg, append([]any{"error", err}, args...)...)
}

// ErMsg logs an error-level message without an underlying error.
func (l Logger) ErMsg(msg string, args ...any) {
	l.log.Error(msg, args...)
}

// Err logs the error and returns it wrapped with msg.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs an error-level message and returns it as an error.
func (l Logger) Error(msg string, args ...any) error {
	l.log.Error(msg, args...)
	return errors.New(msg)
}

// ErrMsg is Error without structured arguments.
func (l Logger) ErrMsg(msg string) error {
	l.log.Error(msg)
	return errors.New(msg)
}
