package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures the process-wide logger. Unknown levels fall back to info.
func Init(level string, pretty bool) {
	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	log = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	log = log.Output(w)
}

func Debug(msg string, args ...any) {
	write(log.Debug(), msg, args)
}

func Info(msg string, args ...any) {
	write(log.Info(), msg, args)
}

func Warn(msg string, args ...any) {
	write(log.Warn(), msg, args)
}

func Error(msg string, args ...any) {
	write(log.Error(), msg, args)
}

// write accepts key/value pairs. A bare error or a trailing value without
// a key is still recorded instead of being dropped.
func write(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			e = e.Err(v)
		case string:
			if i+1 < len(args) {
				e = fieldValue(e, v, args[i+1])
				i++
			} else {
				e = e.Str("detail", v)
			}
		default:
			e = e.Interface(fmt.Sprintf("arg%d", i), v)
		}
	}
	e.Msg(msg)
}

func fieldValue(e *zerolog.Event, key string, value any) *zerolog.Event {
	switch v := value.(type) {
	case error:
		if v == nil {
			return e.Str(key, "")
		}
		return e.AnErr(key, v)
	case fmt.Stringer:
		return e.Stringer(key, v)
	default:
		return e.Interface(key, v)
	}
}
