// Package logger owns the process root zerolog logger and the context tags
// request handlers attach to it
package logger

import (
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"chatlens/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type used across the tree
type Logger = zerolog.Logger

// Options shape the root logger. Zero values give debug level console output on stdout
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Writer      io.Writer
	Caller      bool
	SampleEvery int
	Fields      map[string]string
}

// FromEnv reads LOG_* through the raw view, which never logs itself
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Caller:      env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Init builds the root logger. Only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opt.Writer
		if out == nil {
			out = os.Stdout
		}
		if opt.Format != "json" {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		c := zerolog.New(out).Level(levelOf(opt.Level)).With().Timestamp()
		if bi, ok := debug.ReadBuildInfo(); ok {
			c = c.Str("go_version", bi.GoVersion)
		}
		if opt.Service != "" {
			c = c.Str("service", opt.Service)
		}
		for k, v := range opt.Fields {
			c = c.Str(k, v)
		}
		if opt.Caller {
			c = c.Caller()
		}

		l := c.Logger()
		if opt.SampleEvery > 1 {
			l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&l)
	})
}

// Get returns the root logger, initializing it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Named returns a child of the root tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

// levelOf accepts zerolog level names plus "warning". Anything else is debug
func levelOf(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}
