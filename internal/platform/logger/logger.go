// Package logger owns the process zerolog logger and its per request children
package logger

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger under our name
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string
	Format  string // console or json
	Service string
	Caller  bool
	// SampleEvery > 1 keeps one event in N
	SampleEvery int
	Writer      io.Writer
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER and LOG_SAMPLE_EVERY
// it reads os env directly since config logs through this package
func FromEnv() Options {
	env := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv("LOG_" + k)); v != "" {
			return v
		}
		return def
	}
	caller, _ := strconv.ParseBool(env("CALLER", "false"))
	every, _ := strconv.Atoi(env("SAMPLE_EVERY", "0"))
	return Options{
		Level:       env("LEVEL", "debug"),
		Format:      strings.ToLower(env("FORMAT", "console")),
		Service:     env("SERVICE", ""),
		Caller:      caller,
		SampleEvery: every,
	}
}

var (
	once sync.Once
	root zerolog.Logger
)

// Init builds the root logger; only the first call has any effect
func Init(o Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := o.Writer
		if w == nil {
			w = os.Stdout
		}
		if o.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}
		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(o.Level)))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.DebugLevel
		}
		c := zerolog.New(w).Level(lvl).With().Timestamp()
		if o.Service != "" {
			c = c.Str("service", o.Service)
		}
		if o.Caller {
			c = c.Caller()
		}
		root = c.Logger()
		if o.SampleEvery > 1 {
			root = root.Sample(&zerolog.BasicSampler{N: uint32(o.SampleEvery)})
		}
		zerolog.DefaultContextLogger = &root
	})
}

// Get is the root logger, built from FromEnv on first use
func Get() *Logger {
	Init(FromEnv())
	return &root
}

// WithRequest returns ctx carrying a child logger stamped with reqID
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return C(ctx).With().Str("request_id", reqID).Logger().WithContext(ctx)
}

// C is the logger carried by ctx, or the root logger
func C(ctx context.Context) *Logger {
	Init(FromEnv())
	return zerolog.Ctx(ctx)
}

// Named is a root child tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}
