// Package module mounts the meta endpoints: liveness, readiness, version and engine info
package module

import (
	"net/http"
	"time"

	"chatlens/internal/modkit"
	"chatlens/internal/modkit/httpkit"
	str "chatlens/internal/platform/strings"

	metahttp "chatlens/internal/services/api/meta/http"
)

// Ports are optional collaborators passed with modkit.WithPorts
type Ports struct {
	Engine func() any
	Checks []metahttp.Check
}

// Module serves /meta
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	routes func(httpkit.Router)
}

// New builds the meta module. CORE_API_SERVICE_NAME names the service in responses
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	ports := modkit.Ports[Ports](b, "meta")

	hd := metahttp.Deps{
		ServiceName: deps.Cfg.Prefix("CORE_API_").MayString("SERVICE_NAME", "chatlens-api"),
		StartedAt:   time.Now(),
		Engine:      ports.Engine,
		Checks:      ports.Checks,
	}
	deps.Named("meta").Debug().Int("checks", len(hd.Checks)).Msg("meta module built")

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		routes: func(r httpkit.Router) {
			r = b.Subrouter(r)
			metahttp.Register(r, hd)
			b.Register(r)
		},
	}
}

// MountRoutes mounts the meta routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.routes)
}

// Name is the registry key
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Ports is nil: nothing borrows from meta
func (m *Module) Ports() any { return nil }
