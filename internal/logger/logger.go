package logger

import (
	"os"
	"strings"
	"time"

	"Fluxo/config"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configura o logger global a partir da configuração da aplicação.
func Init(cfg *config.Config) {
	level := parseLevel(cfg.Log.Level)

	var l zerolog.Logger
	if cfg.Log.Pretty && cfg.App.Environment != "production" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		l = zerolog.New(output)
	} else {
		l = zerolog.New(os.Stdout)
	}

	log = l.Level(level).With().
		Timestamp().
		Str("app", cfg.App.Name).
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }
func Fatal() *zerolog.Event { return log.Fatal() }
