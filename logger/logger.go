package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger: JSON lines in prod, a human readable
// console writer everywhere else.
func New(w io.Writer, env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if env != "prod" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	if err != nil {
		l.Warn().Str("value", level).Msg("geçersiz log seviyesi, info kullanılıyor")
	}
	return l
}
