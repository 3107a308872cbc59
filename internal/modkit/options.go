package modkit

import (
	"net/http"

	phttp "chatlens/internal/platform/net/http"
)

// Option adjusts how a module is built
type Option func(*settings)

type settings struct {
	name      string
	prefix    string
	mw        []func(http.Handler) http.Handler
	ports     any
	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)
}

// WithName overrides the module name used for logs and the port registry
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithPrefix overrides the path the module mounts under
func WithPrefix(prefix string) Option {
	return func(s *settings) { s.prefix = prefix }
}

// WithMiddlewares appends module scoped middleware; repeated calls accumulate
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(s *settings) { s.mw = append(s.mw, mw...) }
}

// WithPorts hands the module collaborators whose type the module itself declares
func WithPorts[T any](p T) Option {
	return func(s *settings) { s.ports = p }
}

// WithSubrouter wraps the module router before routes are registered
func WithSubrouter(fn func(phttp.Router) phttp.Router) Option {
	return func(s *settings) { s.subrouter = fn }
}

// WithRegister attaches extra routes after the module's own
func WithRegister(fn func(phttp.Router)) Option {
	return func(s *settings) { s.register = fn }
}
