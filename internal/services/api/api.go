// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"chatlens/internal/core/segment"
	"chatlens/internal/platform/config"
	perr "chatlens/internal/platform/errors"
	"chatlens/internal/platform/logger"
	"chatlens/internal/platform/metrics"
	phttp "chatlens/internal/platform/net/http"

	"chatlens/internal/modkit"
	"chatlens/internal/modkit/httpkit"
	"chatlens/internal/modkit/module"

	analysisdom "chatlens/internal/services/analysis/domain"
	analysismod "chatlens/internal/services/analysis/module"
	metahttp "chatlens/internal/services/api/meta/http"
	metamod "chatlens/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf // root view; modules pick their own prefixes
	Logger         *logger.Logger
	Summarizer     segment.Summarizer
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	apiCfg := opt.Config.Prefix("CORE_API_")

	// nil disables collection everywhere
	var m *metrics.Metrics
	if apiCfg.MayBool("METRICS", true) {
		m = metrics.New()
		r.Use(m.Middleware)
	}
	// root middleware has to precede every route on the mux
	r.Use(httpkit.Heartbeat("/health"))

	ports := analysisdom.Ports{Summarizer: opt.Summarizer}
	if m != nil {
		ports.Observer = m
	}
	analysisOpts := []modkit.Option{
		modkit.WithPorts(ports),
		modkit.WithMiddlewares(httpkit.Throttle(apiCfg.MayInt("MAX_CONCURRENT", 4))),
	}
	// a shared token guards uploads when configured
	if tok := apiCfg.MayString("TOKEN", ""); tok != "" {
		analysisOpts = append(analysisOpts,
			modkit.WithMiddlewares(httpkit.Auth(httpkit.NewPortFunc(httpkit.StaticToken(tok, "api")))))
	}
	analysis, err := analysismod.New(deps, analysismod.Options{}, analysisOpts...)
	if err != nil {
		return err
	}

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Engine: func() any { return analysis.Engine() },
		Checks: readiness(analysis.Engine(), opt.Summarizer != nil),
	}))

	mods := []module.Module{meta, analysis}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 5*time.Second),
		Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 2*time.Minute),
	})

	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if m != nil {
		r.Get("/metrics", m.Handler().ServeHTTP)
	}

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, mod := range mods {
			// ports first so readiness sees them as soon as routes exist
			module.Register(mod.Name(), mod.Ports())
			mod.MountRoutes(api)
		}
	})
	return nil
}

func readiness(e analysismod.Engine, summarizer bool) []metahttp.Check {
	checks := []metahttp.Check{{
		Name: "analysis",
		Probe: func(context.Context) error {
			// ports are registered while mounting, so this fails until routes exist
			if p, ok := module.PortsAs[analysismod.Ports]("analysis"); !ok || p.Runner == nil {
				return perr.Unavailablef("analysis runner not registered")
			}
			return nil
		},
	}, {
		Name: "indicators",
		Probe: func(context.Context) error {
			for c, n := range e.Phrases {
				if n == 0 {
					return perr.Unavailablef("indicator category %s is empty", c)
				}
			}
			return nil
		},
	}}
	s := metahttp.Check{Name: "summarizer"}
	if summarizer {
		s.Probe = func(context.Context) error { return nil }
	}
	return append(checks, s)
}
