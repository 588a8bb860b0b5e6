// Package logger configures the global zerolog logger from command line options.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger holds logging options embedded into each binary's flags.
type Logger struct {
	Level      string `long:"log-level"       env:"LOG_LEVEL"       description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Format     string `long:"log-format"      env:"LOG_FORMAT"      description:"Log format" choice:"console" choice:"json" default:"console"`
	File       string `long:"log-file"        env:"LOG_FILE"        description:"Write logs to a rotated file instead of stderr"`
	MaxSize    int    `long:"log-max-size"    env:"LOG_MAX_SIZE"    description:"Log file size in megabytes before rotation" default:"100"`
	MaxBackups int    `long:"log-max-backups" env:"LOG_MAX_BACKUPS" description:"Rotated log files to keep" default:"3"`
	MaxAge     int    `long:"log-max-age"     env:"LOG_MAX_AGE"     description:"Days to keep rotated log files" default:"28"`
	Compress   bool   `long:"log-compress"    env:"LOG_COMPRESS"    description:"Gzip rotated log files"`

	closer io.Closer
}

// Setup replaces the global logger according to the options.
func (l *Logger) Setup() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(l.Level))

	log.Logger = zerolog.New(l.writer()).With().Timestamp().Logger()

	if l.File != "" {
		log.Debug().Str("file", l.File).Int("max_size_mb", l.MaxSize).Msg("Logging to file")
	}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) writer() io.Writer {
	var out io.Writer = os.Stderr

	if l.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.MaxSize,
			MaxBackups: l.MaxBackups,
			MaxAge:     l.MaxAge,
			Compress:   l.Compress,
		}
		l.closer = rotated
		out = rotated
	}

	if strings.EqualFold(l.Format, "json") {
		return out
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    l.File != "",
	}
}

// ParseLevel returns the zerolog level for name, or info when name is unknown.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
