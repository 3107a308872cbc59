// Package raw reads the environment without logging. The logger bootstraps
// from it, so it must not import anything that logs
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over the environment, e.g. "LOG_"
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix appends p to the view's prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key is the full variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

// Lookup returns the trimmed value of k; empty means unset
func (c Conf) Lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// Get returns the value of k or def when unset
func (c Conf) Get(k, def string) string {
	if v := c.Lookup(k); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true and yes as true in any case. Unset gives def
func (c Conf) GetBool(k string, def bool) bool {
	switch strings.ToLower(c.Lookup(k)) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	}
	return false
}

// GetInt parses a non-negative integer; anything else gives def
func (c Conf) GetInt(k string, def int) int {
	n, err := strconv.Atoi(c.Lookup(k))
	if err != nil || n < 0 {
		return def
	}
	return n
}
