package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

var sentryLevels = map[LogLevel]sentry.Level{
	LogLevelWarn:  sentry.LevelWarning,
	LogLevelError: sentry.LevelError,
	LogLevelFatal: sentry.LevelFatal,
}

// A SentryLogger prints like its ColorLogger and also reports
// the LogContext.Error of Warn, Error and Fatal logs to Sentry.
//
// Events are tagged with the route, view and load mode from the LogContext
// and grouped per view, so a view whose module keeps failing to load is one issue.
type SentryLogger struct {
	l *ColorLogger
}

// NewSentryLogger initializes Sentry with dsn and wraps l.
// If Sentry cannot be initialized, l is returned as is.
func NewSentryLogger(l *ColorLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  l.env,
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		l.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return l
	}

	// report sits between the caller and the ColorLogger
	return &SentryLogger{l: l.wrapped(1)}
}

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.report(LogLevelDebug, msg, ctx) }
func (sl *SentryLogger) Error(msg string, ctx *LogContext) { sl.report(LogLevelError, msg, ctx) }
func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) { sl.report(LogLevelFatal, msg, ctx) }
func (sl *SentryLogger) Info(msg string, ctx *LogContext)  { sl.report(LogLevelInfo, msg, ctx) }
func (sl *SentryLogger) Warn(msg string, ctx *LogContext)  { sl.report(LogLevelWarn, msg, ctx) }

// LogLevel returns the LogLevel set for the SentryLogger.
func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

func (sl *SentryLogger) report(level LogLevel, msg string, ctx *LogContext) {
	if sl.l.LogLevel() > level {
		return
	}

	sl.l.at(level, msg, ctx)

	sentryLevel, ok := sentryLevels[level]
	if !ok || ctx == nil || ctx.Error == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel)
		for tag, v := range map[string]string{"route": ctx.Route, "view": ctx.View, "load_mode": ctx.LoadMode} {
			if v != "" {
				scope.SetTag(tag, v)
			}
		}

		if ctx.View != "" {
			scope.SetFingerprint([]string{"{{ default }}", ctx.View})
		}

		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		sentry.CaptureException(ctx.Error)
	})
}
