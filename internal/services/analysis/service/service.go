// Package service implements the analysis runner: ingest, enrich, then the
// classification, segmentation and temporal consumers over one shared table
package service

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"chatlens/internal/adapters/ingest/transcript"
	"chatlens/internal/core/chat"
	"chatlens/internal/core/classify"
	"chatlens/internal/core/enrich"
	"chatlens/internal/core/indicators"
	"chatlens/internal/core/segment"
	"chatlens/internal/core/temporal"
	perr "chatlens/internal/platform/errors"
	"chatlens/internal/platform/logger"
	"chatlens/internal/services/analysis/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config for the analysis service
type Config struct {
	Ingest       transcript.Options
	Enrich       enrich.Options
	Classify     classify.Config
	SegmentLimit int
	Topics       int
	Stopwords    []string
}

// Service implements domain.RunnerPort
type Service struct {
	Ingestor   *transcript.Ingestor
	Summarizer segment.Summarizer
	Observer   domain.Observer // optional
	Cfg        Config

	now   func() time.Time
	newID func() string
}

// New constructs the service. sum may be nil
func New(scorer *indicators.Scorer, sum segment.Summarizer, cfg Config) *Service {
	if cfg.SegmentLimit <= 0 {
		cfg.SegmentLimit = segment.DefaultLimit
	}
	if cfg.Topics <= 0 {
		cfg.Topics = segment.DefaultThemes
	}
	if cfg.Classify.Weights == nil {
		cfg.Classify = classify.DefaultConfig()
	}
	return &Service{
		Ingestor:   transcript.New(enrich.New(scorer, cfg.Enrich), cfg.Ingest),
		Summarizer: sum,
		Cfg:        cfg,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
}

// AnalyzeFile implements domain.RunnerPort
func (s *Service) AnalyzeFile(ctx context.Context, path string, in domain.Input) (*domain.Report, error) {
	start := s.now()
	res, err := s.Ingestor.IngestFile(ctx, path)
	if err != nil {
		err = perr.WithOp(err, "analysis.file")
		s.observe(start, nil, err)
		return nil, err
	}
	if in.Source == "" {
		in.Source = filepath.Base(path)
	}
	return s.report(ctx, res, in, start)
}

// AnalyzeReader implements domain.RunnerPort
func (s *Service) AnalyzeReader(ctx context.Context, r io.Reader, size int64, in domain.Input) (*domain.Report, error) {
	start := s.now()
	res, err := s.Ingestor.Ingest(ctx, r, size)
	if err != nil {
		err = perr.WithOp(err, "analysis.reader")
		s.observe(start, nil, err)
		return nil, err
	}
	return s.report(ctx, res, in, start)
}

// report runs the independent consumers concurrently over the read-only table
func (s *Service) report(ctx context.Context, res transcript.Result, in domain.Input, start time.Time) (*domain.Report, error) {
	log := logger.C(ctx).With().Str("component", "analysis").Logger()
	records := res.Records

	rep := &domain.Report{
		ID:          s.newID(),
		Source:      in.Source,
		CreatedAt:   start.UTC(),
		Empty:       res.Empty(),
		Diagnostics: res.Diagnostics,
		Segments:    []segment.Segment{},
	}

	segLimit := s.Cfg.SegmentLimit
	if in.SegmentLimit > 0 {
		segLimit = in.SegmentLimit
	}

	var g errgroup.Group
	g.Go(func() error {
		rep.Indicators = indicators.AggregateAll(records)
		if r, ok := classify.Classify(records, s.Cfg.Classify); ok {
			rep.Classification = &r
		}
		return nil
	})
	g.Go(func() error {
		segs := segment.Segments(records, segment.Options{Limit: segLimit, Themes: s.Cfg.Topics, Stopwords: s.Cfg.Stopwords})
		if in.Summaries {
			failures := segment.Summarize(ctx, segs, records, s.Summarizer, s.Cfg.Topics)
			for id, err := range failures {
				log.Warn().Err(err).Int("conversation_id", id).Msg("analysis: summarizer failed; using fallback")
			}
		}
		rep.Segments = segs
		return nil
	})
	g.Go(func() error {
		rep.Temporal = temporal.Summarize(records, temporal.Options{Themes: s.Cfg.Topics, Stopwords: s.Cfg.Stopwords})
		return nil
	})
	g.Go(func() error {
		rep.Stats = tableStats(records)
		return nil
	})
	_ = g.Wait()

	rep.Stats.Ingest = res.Stats
	rep.Stats.Chunks = res.Chunks
	rep.Stats.Streamed = res.Streamed
	rep.Stats.DurationMillis = s.now().Sub(start).Milliseconds()
	if in.IncludeRecords {
		rep.Records = records
		if rep.Records == nil {
			rep.Records = []chat.Record{}
		}
	}

	ev := log.Info().
		Str("report_id", rep.ID).
		Str("source", rep.Source).
		Int("records", len(records)).
		Int("segments", len(rep.Segments)).
		Bool("empty", rep.Empty)
	if rep.Classification != nil {
		ev = ev.Str("classification", rep.Classification.Classification.String()).Int("score", rep.Classification.Score)
	}
	ev.Int64("duration_ms", rep.Stats.DurationMillis).Msg("analysis: done")
	s.observe(start, rep, nil)
	return rep, nil
}

func (s *Service) observe(start time.Time, rep *domain.Report, err error) {
	if s.Observer == nil {
		return
	}
	var messages, diags int
	var class string
	if rep != nil {
		messages, diags = rep.Stats.Records, len(rep.Diagnostics)
		if rep.Classification != nil {
			class = rep.Classification.Classification.String()
		}
	}
	s.Observer.ObserveAnalysis(s.now().Sub(start), messages, diags, class, err)
}
