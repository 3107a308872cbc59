// Package module wires the analysis service into the API using modkit
package module

import (
	"net/http"

	"chatlens/internal/adapters/ingest/transcript"
	"chatlens/internal/core/enrich"
	"chatlens/internal/core/indicators"
	"chatlens/internal/modkit"
	"chatlens/internal/modkit/httpkit"
	perr "chatlens/internal/platform/errors"
	str "chatlens/internal/platform/strings"
	"chatlens/internal/services/analysis/domain"
	analysishttp "chatlens/internal/services/analysis/http"
	"chatlens/internal/services/analysis/service"
)

// Ports exposed by the analysis module
type Ports struct {
	Runner domain.RunnerPort
}

// Module serves /analyses and exposes the Runner port
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	opts   Options
	engine Engine
	routes func(httpkit.Router)
	ports  Ports
}

// New constructs the analysis module. Config values are read from deps.Cfg and
// non-zero fields of overrides win. Optional domain.Ports may be passed with
// modkit.WithPorts
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analysis"),
		modkit.WithPrefix("/analyses"),
	}, opts...)...)
	ports := modkit.Ports[domain.Ports](b, "analysis")

	cfg := FromConfig(deps.Cfg).merge(overrides)

	pack, err := loadPack(cfg.IndicatorsFile)
	if err != nil {
		return nil, err
	}
	scorer := indicators.NewScorerWithOptions(pack, indicators.Options{WordBoundary: cfg.WordBoundary})

	runner := service.New(scorer, ports.Summarizer, service.Config{
		Ingest: transcript.Options{
			ChunkSize:            cfg.ChunkSize,
			Workers:              cfg.Workers,
			StreamThresholdBytes: cfg.StreamThresholdBytes,
		},
		Enrich: enrich.Options{
			ConversationGap: minutes(cfg.GapMinutes),
			ResponseCap:     minutes(cfg.ResponseCapMinutes),
		},
		Classify:     cfg.Classify,
		SegmentLimit: cfg.SegmentLimit,
		Topics:       cfg.Topics,
		Stopwords:    cfg.Stopwords,
	})
	runner.Observer = ports.Observer

	engine := engineOf(pack, cfg, ports.Summarizer != nil)
	deps.Named("analysis").Info().
		Int("chunk_size", cfg.ChunkSize).
		Int("workers", cfg.Workers).
		Bool("summarizer", engine.Summarizer).
		Msg("analysis engine ready")

	upload := analysishttp.Config{MaxUploadBytes: int64(cfg.MaxUploadMB) << 20}
	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		opts:   cfg,
		engine: engine,
		ports:  Ports{Runner: runner},
		routes: func(r httpkit.Router) {
			r = b.Subrouter(r)
			analysishttp.Register(r, runner, upload)
			b.Register(r)
		},
	}, nil
}

func loadPack(path string) (*indicators.Pack, error) {
	if path == "" {
		p, err := indicators.Load()
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "analysis: embedded indicators")
		}
		return p, nil
	}
	p, err := indicators.LoadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "analysis: indicators file %s", path)
	}
	return p, nil
}

// Options returns the effective options after config and overrides
func (m *Module) Options() Options { return m.opts }

// Engine describes the loaded indicator pack and effective pipeline settings
func (m *Module) Engine() Engine { return m.engine }

// MountRoutes mounts the upload endpoint under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.routes)
}

// Name is the registry key
func (m *Module) Name() string { return str.MustString(m.name, "analysis") }

// Prefix is the normalized mount path
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports exposes the Runner for the CLI and other modules
func (m *Module) Ports() any { return m.ports }
