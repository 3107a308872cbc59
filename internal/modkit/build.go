package modkit

import (
	"net/http"

	phttp "chatlens/internal/platform/net/http"
)

// Built is the resolved result of a set of options
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	Subrouter func(phttp.Router) phttp.Router
	Register  func(phttp.Router)
}

// Build resolves opts in order. Later options win for scalar fields and
// middleware accumulates. Hooks are never nil
func Build(opts ...Option) Built {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	b := Built{
		Name:      s.name,
		Prefix:    s.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), s.mw...),
		Ports:     s.ports,
		Subrouter: s.subrouter,
		Register:  s.register,
	}
	if b.Subrouter == nil {
		b.Subrouter = func(r phttp.Router) phttp.Router { return r }
	}
	if b.Register == nil {
		b.Register = func(phttp.Router) {}
	}
	return b
}

// Ports asserts the WithPorts value to T. A missing value yields the zero T;
// a value of the wrong type panics since that is a wiring bug
func Ports[T any](b Built, module string) T {
	var zero T
	if b.Ports == nil {
		return zero
	}
	p, ok := b.Ports.(T)
	if !ok {
		panic(module + " module: WithPorts got an unexpected type")
	}
	return p
}
