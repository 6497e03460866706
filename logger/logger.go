package logger

import (
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// callerFrames is how far runtime.Caller is from the code calling a Logger method:
// ColorLogger.print, ColorLogger.at, then the method itself.
const callerFrames = 3

var modulePathRegex = regexp.MustCompile("nightshift/.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

var levels = [...]struct {
	name  string
	paint func(string, ...any) string
}{
	LogLevelUnk:   {"UNK", fmt.Sprintf},
	LogLevelDebug: {"DEBUG", color.WhiteString},
	LogLevelInfo:  {"INFO", color.BlueString},
	LogLevelWarn:  {"WARN", color.YellowString},
	LogLevelError: {"ERROR", color.RedString},
	LogLevelFatal: {"FATAL", color.MagentaString},
}

// NewLogLevel parses an upper case level name, e.g., WARN,
// returning LogLevelUnk for anything else.
func NewLogLevel(val string) LogLevel {
	for ll := LogLevelDebug; ll <= LogLevelFatal; ll++ {
		if levels[ll].name == val {
			return ll
		}
	}

	return LogLevelUnk
}

func (ll LogLevel) String() string {
	if ll < LogLevelUnk || ll > LogLevelFatal {
		ll = LogLevelUnk
	}

	return "[" + levels[ll].name + "]"
}

// ColorLogger implements Logger using log,
// colorizing each level.
type ColorLogger struct {
	env  string
	l    *log.Logger
	ll   LogLevel
	skip int
}

// New constructs a ColorLogger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The environment defaults to $ENVIRONMENT, or DEVELOPMENT if that is unset.
// The default log level is INFO.
//
// When SENTRY_DSN is set, New returns a SentryLogger wrapping the ColorLogger.
func New(opts ...LoggerOptFn) Logger {
	l := &ColorLogger{
		env: strings.ToUpper(os.Getenv("ENVIRONMENT")),
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}
	if l.env == "" {
		l.env = "DEVELOPMENT"
	}

	for _, opt := range opts {
		opt(l)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		l.Info("SENTRY_DSN set, reporting to Sentry", nil)
		return NewSentryLogger(l, dsn)
	}

	return l
}

func (l *ColorLogger) Debug(msg string, ctx *LogContext) { l.at(LogLevelDebug, msg, ctx) }
func (l *ColorLogger) Error(msg string, ctx *LogContext) { l.at(LogLevelError, msg, ctx) }
func (l *ColorLogger) Fatal(msg string, ctx *LogContext) { l.at(LogLevelFatal, msg, ctx) }
func (l *ColorLogger) Info(msg string, ctx *LogContext)  { l.at(LogLevelInfo, msg, ctx) }
func (l *ColorLogger) Warn(msg string, ctx *LogContext)  { l.at(LogLevelWarn, msg, ctx) }

// LogLevel returns the LogLevel set for the ColorLogger.
func (l *ColorLogger) LogLevel() LogLevel { return l.ll }

// wrapped returns a copy of l reporting call sites n frames further up the stack,
// for a Logger delegating to it.
func (l *ColorLogger) wrapped(n int) *ColorLogger {
	cp := *l
	cp.skip += n
	return &cp
}

// at prints msg if level is at or above the ColorLogger's LogLevel.
func (l *ColorLogger) at(level LogLevel, msg string, ctx *LogContext) {
	if l.ll > level {
		return
	}

	l.print(level, msg, ctx)
}

// print writes the log line: level, call site, message, then any LogContext.
func (l *ColorLogger) print(level LogLevel, msg string, ctx *LogContext) {
	_, file, line, _ := runtime.Caller(callerFrames + l.skip)

	site := modulePathRegex.FindString(file)
	if site == "" {
		// e.g., /home/dlk/my-project/main.go => my-project/main.go
		dir, name := path.Split(file)
		site = path.Join(path.Base(dir), name)
	}

	msg = levels[level].paint("%s %s:%d '%s'", level, site, line, msg)
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}
