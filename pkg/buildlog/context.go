// Package buildlog routes log lines to the log channel of the build that is active for the current call chain.
//
// The active build is bound to a context.Context with WithBuild; everything called with that context (or a context
// derived from it) logs into the build's channel through Infof and Errorf. A derived context shadows the binding of
// its parent, and the parent keeps its own binding, so leaving a scope restores the previous one without any cleanup.
// Logging without a bound build is a no-op.
package buildlog

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// WithBuild returns a copy of ctx with logName bound as the active build log channel
func WithBuild(ctx context.Context, logName string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, logName)
}

// FromContext returns the name of the build log channel bound to ctx
func FromContext(ctx context.Context) (logName string, ok bool) {
	if ctx == nil {
		return "", false
	}
	logName, ok = ctx.Value(contextKey{}).(string)
	return logName, ok && logName != ""
}

// Run calls fn with logName bound for its whole extent
func Run(ctx context.Context, logName string, fn func(ctx context.Context) error) error {
	return fn(WithBuild(ctx, logName))
}

// Infof formats and writes an info line to the active build log channel
func Infof(ctx context.Context, format string, args ...interface{}) {
	write(ctx, zerolog.InfoLevel, format, args...)
}

// Errorf formats and writes an error line to the active build log channel
func Errorf(ctx context.Context, format string, args ...interface{}) {
	write(ctx, zerolog.ErrorLevel, format, args...)
}

func write(ctx context.Context, level zerolog.Level, format string, args ...interface{}) {
	// an inability to log must never fail a build
	defer func() {
		_ = recover()
	}()

	logName, ok := FromContext(ctx)
	if !ok {
		return
	}

	logger := defaultRegistry.Destination(logName)
	logger.WithLevel(level).Msgf(format, args...)
}
