package logger

import (
	"context"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type ContextKey string

const LoggerCtxKey ContextKey = "logger"

var defaultLogger Logger = NewLogger(DefaultConfig())

type (
	LogLevel string
	// Logger defines the interface for structured logging
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
		With(keyvals ...any) Logger
	}

	// loggerImpl fans every entry out to its sinks; each sink filters by its own level.
	loggerImpl struct {
		sinks []*charmlog.Logger
	}
)

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	CriticalLevel LogLevel = "critical"
	DisabledLevel LogLevel = "disabled"
)

// ParseLevel maps an APP_LOGGERLEVEL style name (CRITICAL, DEBUG, ERROR, INFO, WARNING) to a
// LogLevel. Matching is case-insensitive; anything else yields DebugLevel.
func ParseLevel(name string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CRITICAL":
		return CriticalLevel
	case "ERROR":
		return ErrorLevel
	case "WARNING":
		return WarnLevel
	case "INFO":
		return InfoLevel
	default:
		return DebugLevel
	}
}

func (c *LogLevel) String() string {
	return string(*c)
}

func (c *LogLevel) ToCharmlogLevel() charmlog.Level {
	switch *c {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	case CriticalLevel:
		return charmlog.FatalLevel
	case DisabledLevel:
		return charmlog.Level(1000)
	default:
		return charmlog.InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) {
	for _, s := range l.sinks {
		s.Helper()
		s.Debug(msg, keyvals...)
	}
}

func (l *loggerImpl) Info(msg string, keyvals ...any) {
	for _, s := range l.sinks {
		s.Helper()
		s.Info(msg, keyvals...)
	}
}

func (l *loggerImpl) Warn(msg string, keyvals ...any) {
	for _, s := range l.sinks {
		s.Helper()
		s.Warn(msg, keyvals...)
	}
}

func (l *loggerImpl) Error(msg string, keyvals ...any) {
	for _, s := range l.sinks {
		s.Helper()
		s.Error(msg, keyvals...)
	}
}

func (l *loggerImpl) With(keyvals ...any) Logger {
	sinks := make([]*charmlog.Logger, 0, len(l.sinks))
	for _, s := range l.sinks {
		sinks = append(sinks, s.With(keyvals...))
	}
	return &loggerImpl{sinks: sinks}
}

// Config describes both sinks. Level applies to Output only; ErrorOutput, when set, always
// receives error-and-above entries.
type Config struct {
	Level       LogLevel
	Output      io.Writer
	ErrorOutput io.Writer
	Prefix      string
	JSON        bool
	AddSource   bool
	TimeFormat  string
}

func DefaultConfig() *Config {
	return &Config{
		Level:       DebugLevel,
		Output:      os.Stdout,
		ErrorOutput: os.Stderr,
		Prefix:      "app",
		JSON:        false,
		AddSource:   false,
		TimeFormat:  "2006-01-02 15:04:05",
	}
}

func TestConfig() *Config {
	return &Config{
		Level:      DisabledLevel,
		Output:     io.Discard,
		JSON:       false,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}

func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	sinks := []*charmlog.Logger{newSink(cfg, cfg.Output, cfg.Level.ToCharmlogLevel())}
	if cfg.ErrorOutput != nil {
		sinks = append(sinks, newSink(cfg, cfg.ErrorOutput, charmlog.ErrorLevel))
	}
	return &loggerImpl{sinks: sinks}
}

func newSink(cfg *Config, out io.Writer, level charmlog.Level) *charmlog.Logger {
	if out == nil {
		out = io.Discard
	}
	sink := charmlog.NewWithOptions(out, charmlog.Options{
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           level,
		Prefix:          cfg.Prefix,
	})
	if cfg.JSON {
		sink.SetFormatter(charmlog.JSONFormatter)
	} else {
		sink.SetFormatter(charmlog.TextFormatter)
		sink.SetStyles(getDefaultStyles())
	}
	return sink
}

// Init replaces the process-wide default logger.
func Init(cfg *Config) {
	defaultLogger = NewLogger(cfg)
}

func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, l)
}

func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerCtxKey).(Logger); ok && l != nil {
			return l
		}
	}
	return defaultLogger
}

func GetDefault() Logger {
	return defaultLogger
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

func With(args ...any) Logger {
	return defaultLogger.With(args...)
}
