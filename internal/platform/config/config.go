// Package config handles application configuration via environment variables
package config

import (
	"strconv"
	"strings"
	"time"

	"chatlens/internal/platform/config/raw"
	"chatlens/internal/platform/logger"
)

// Conf is a prefixed view over the environment, e.g. "CORE_ANALYSIS_".
// Unlike raw.Conf it warns through the logger when a value does not parse.
// Values are trimmed and empty means unset
type Conf struct{ env raw.Conf }

// New returns the unprefixed view
func New() Conf { return Conf{env: raw.New()} }

// Prefix appends p to the view's prefix
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

func (c Conf) key(k string) string { return c.env.Key(k) }

func (c Conf) lookup(k string) string { return c.env.Lookup(k) }

// may parses key with parse, falling back to def when unset. Invalid values are
// logged and replaced by def, so a typo never takes a process down
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", strconv.Atoi)
}

// MayInt64 returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt64(key string, def int64) int64 {
	return may(c, key, def, "int64", func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
}

// MayFloat64 returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, "float64", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayCSV returns the non-empty items of a comma-separated value; def if none
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value lower-cased when it is one of allowed (case-insensitive),
// def when unset, and def with a warning otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Strs("allowed", allowed).
		Str("default", def).Msg("invalid enum value; using default")
	return def
}
