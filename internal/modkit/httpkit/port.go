// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "chatlens/internal/platform/errors"
)

// TokenFunc maps a bearer token to a client name
type TokenFunc func(token string) (client string, err error)

// StaticToken accepts exactly one shared API token, compared in constant time,
// and names the caller client. An empty token rejects everything
func StaticToken(token, client string) TokenFunc {
	want := []byte(token)
	return func(got string) (string, error) {
		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			return "", perrs.Unauthorizedf("invalid bearer token")
		}
		return client, nil
	}
}

// Port implements middleware.AuthPort over the Authorization header
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a token parser
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse reads "Bearer <token>" (scheme case-insensitive) and delegates to the
// TokenFunc. Every failure is Unauthorized
func (p *Port) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const scheme = "bearer"
	if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(scheme):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	client, err := p.parse(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return client, nil
}
