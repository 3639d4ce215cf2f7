package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// InitLogger installs a JSON logger on stdout as the default context logger.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log := zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
	zerolog.DefaultContextLogger = &log
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Options mirrors config.LoggingConfig without importing the config package.
type Options struct {
	Level    string
	Console  bool
	FilePath string
}

// Configure rebuilds the default logger from the logging section of a config file.
// An unknown level keeps info.
func Configure(opt Options) error {
	writers := make([]io.Writer, 0, 2)
	if opt.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, os.Stdout)
	}
	if opt.FilePath != "" {
		f, err := os.OpenFile(opt.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Caller().Logger()
	zerolog.DefaultContextLogger = &log

	level, err := zerolog.ParseLevel(strings.ToLower(opt.Level))
	if err != nil || opt.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

// Logger returns the logger attached to ctx, falling back to the default logger.
func Logger(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	return zerolog.Ctx(ctx)
}
