package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"tutorly/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how the service logs.
type Config struct {
	Level  string
	Format string
	// File enables rotated file output in addition to stdout when set.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// LoadConfig reads LOG_LEVEL, LOG_FORMAT and LOG_FILE from the environment.
func LoadConfig() Config {
	return Config{
		Level:      config.GetEnv("LOG_LEVEL", "info"),
		Format:     config.GetEnv("LOG_FORMAT", "json"),
		File:       config.GetEnv("LOG_FILE", ""),
		MaxSizeMB:  config.GetIntEnv("LOG_FILE_MAX_SIZE_MB", 100),
		MaxBackups: config.GetIntEnv("LOG_FILE_MAX_BACKUPS", 5),
		MaxAgeDays: config.GetIntEnv("LOG_FILE_MAX_AGE_DAYS", 30),
	}
}

// New builds the service logger.
func New(cfg Config) *slog.Logger {
	writers := []io.Writer{os.Stdout}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	return NewWithWriter(cfg, io.MultiWriter(writers...))
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: !config.IsProduction() && strings.EqualFold(cfg.Level, "debug"),
	}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h).With(slog.String("service", "tutorly"))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
