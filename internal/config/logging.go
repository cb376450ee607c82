package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logging struct {
	Level       slog.Level
	Development bool
	// File, when set, receives a copy of every record and is rotated by size.
	File string
}

func NewLogging() (*Logging, error) {
	l := &Logging{
		Level:       slog.LevelInfo,
		Development: Development(),
		File:        os.Getenv("LOG_FILE"),
	}
	if l.Development {
		l.Level = slog.LevelDebug
	}

	if levelStr, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if err := l.Level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
			return nil, fmt.Errorf("unable to parse LOG_LEVEL: %w", err)
		}
	}

	return l, nil
}

// NewLogger builds the process logger writing to w and, if configured, the
// log file. The returned func releases the file.
func (l *Logging) NewLogger(w io.Writer) (*slog.Logger, func() error) {
	closer := func() error { return nil }
	if l.File != "" {
		file := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		}
		w = io.MultiWriter(w, file)
		closer = file.Close
	}

	var handler slog.Handler
	if l.Development {
		handler = tint.NewHandler(w, &tint.Options{Level: l.Level, NoColor: l.File != ""})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l.Level})
	}
	return slog.New(handler), closer
}
