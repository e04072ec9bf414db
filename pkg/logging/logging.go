package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// KeyError is the key for an error attribute.
	KeyError = "err"

	// KeyDal is the key for the data access layer name.
	KeyDal = "dal"

	// KeyGuild is the key for a guild ID.
	KeyGuild = "guild_id"

	// KeyChannel is the key for a channel ID.
	KeyChannel = "channel_id"

	// KeyUser is the key for a user ID.
	KeyUser = "user_id"

	// KeyLabel is the key for the label of a diagnostic record.
	KeyLabel = "label"

	// EnvLogLevel is the environment variable for the log level.
	EnvLogLevel = `LOG_LEVEL`
)

// Name is the name of the application that the logger is for.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// appName is the name of the application.
	appName Name

	// level is the minimum level that is logged.
	level slog.Level

	// w is where the records are written to.
	w io.Writer
}

// NewConfig creates a new logging config for the given application. The level is read from the environment.
func NewConfig(name Name) *Config {
	return &Config{
		appName: name,
		level:   ParseLevel(os.Getenv(EnvLogLevel)),
		w:       os.Stdout,
	}
}

// WithWriter sets the writer of the config.
func (c *Config) WithWriter(w io.Writer) *Config {
	c.w = w
	return c
}

// CommonLogger creates the logger that is shared by the application and sets it as the default.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, fmt.Errorf("logging config is nil")
	} else if c.appName == "" {
		return nil, fmt.Errorf("logging config has no app name")
	}

	w := c.w
	if w == nil {
		w = os.Stdout
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     c.level,
	})

	l := slog.New(h).With(slog.String("app", string(c.appName)))
	slog.SetDefault(l)
	return l, nil
}

// ParseLevel parses a level name. Unknown names default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Diagnostic records an unexpected failure against a label, e.g. the operation that failed.
func Diagnostic(l *slog.Logger, label string, err error, attrs ...any) {
	if err == nil {
		return
	}
	args := append([]any{slog.String(KeyLabel, label), slog.String(KeyError, err.Error())}, attrs...)
	l.Error("Unexpected failure in "+label, args...)
}
