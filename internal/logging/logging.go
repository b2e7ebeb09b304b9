// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string
	// File switches output to JSON lines in a rotating file.
	File string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Setup installs the global logger and returns a closer for the log file.
// The closer is a no-op when logging to stderr.
func Setup(opts Options) (io.Closer, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if opts.File == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return nopCloser{}, nil
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    orDefault(opts.MaxSizeMB, 50),
		MaxBackups: orDefault(opts.MaxBackups, 3),
		MaxAge:     orDefault(opts.MaxAgeDays, 14),
		Compress:   true,
	}
	log.Logger = zerolog.New(rotator).With().Timestamp().Logger()
	return rotator, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
