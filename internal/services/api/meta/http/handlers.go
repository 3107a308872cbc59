// Package http serves the meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"chatlens/internal/core/version"
	"chatlens/internal/modkit/httpkit"
)

// probeTimeout bounds one /ready pass over all checks
const probeTimeout = 2 * time.Second

// Check is a named readiness probe. A nil Probe reports as skipped
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// Deps feed the meta handlers
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Engine      func() any
	Checks      []Check
	// Now defaults to time.Now
	Now         func() time.Time
}

// Register mounts health, ready, version, service and engine under r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	m := meta(d)
	httpkit.Get(r, "/health", m.health)
	httpkit.Get(r, "/ready", m.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", m.service)
	httpkit.Get(r, "/engine", m.engine)
}

type meta Deps

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool      `json:"ok"`
	Service string    `json:"service"`
	Started time.Time `json:"started"`
	Now     time.Time `json:"now"`
}

// CheckResult is one probe outcome: ok, fail or skipped
type CheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadyResponse aggregates the probes. Status is fail when any probe failed
type ReadyResponse struct {
	Status string        `json:"status"`
	Checks []CheckResult `json:"checks"`
	Now    time.Time     `json:"now"`
}

// ServiceResponse reports identity and uptime in whole seconds
type ServiceResponse struct {
	Name    string    `json:"name"`
	Started time.Time `json:"started"`
	Uptime  int64     `json:"uptime"`
}

// EngineResponse is the analysis engine settings next to the build info
type EngineResponse struct {
	Engine any               `json:"engine"`
	Build  version.BuildInfo `json:"build"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (m meta) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: m.ServiceName, Started: m.StartedAt.UTC(), Now: m.Now().UTC()}, nil
}

// @Summary Readiness with per dependency probes
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (m meta) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: make([]CheckResult, 0, len(m.Checks)), Now: m.Now().UTC()}
	for _, c := range m.Checks {
		res := CheckResult{Name: c.Name, Status: "skipped"}
		if c.Probe != nil {
			res.Status = "ok"
			if err := c.Probe(ctx); err != nil {
				res.Status, res.Error = "fail", err.Error()
				out.Status = "fail"
			}
		}
		out.Checks = append(out.Checks, res)
	}
	if out.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// @Summary Service identity and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (m meta) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    m.ServiceName,
		Started: m.StartedAt.UTC(),
		Uptime:  int64(m.Now().Sub(m.StartedAt) / time.Second),
	}, nil
}

// @Summary Indicator pack and pipeline settings
// @Tags Meta
// @Produce json
// @Success 200 {object} EngineResponse
// @Router /meta/engine [get]
func (m meta) engine(*http.Request) (any, error) {
	var e any
	if m.Engine != nil {
		e = m.Engine()
	}
	return EngineResponse{Engine: e, Build: version.Info()}, nil
}
