package transcript

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/enrich"
	"chatlens/internal/core/lineparse"
	perr "chatlens/internal/platform/errors"
	"chatlens/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultChunkSize is the number of messages enriched together
	DefaultChunkSize = 1000
	// DefaultWorkers bounds concurrent chunk enrichment
	DefaultWorkers = 2
	// DefaultStreamThreshold is the byte size from which input is chunked
	DefaultStreamThreshold int64 = 10 * 1024 * 1024
)

// Options configures an Ingestor
type Options struct {
	ChunkSize            int
	Workers              int
	StreamThresholdBytes int64
}

// DefaultOptions returns 1000 message chunks, 2 workers and a 10MiB threshold
func DefaultOptions() Options {
	return Options{
		ChunkSize:            DefaultChunkSize,
		Workers:              DefaultWorkers,
		StreamThresholdBytes: DefaultStreamThreshold,
	}
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.StreamThresholdBytes <= 0 {
		o.StreamThresholdBytes = DefaultStreamThreshold
	}
	return o
}

// Result is the enriched table of one transcript plus what was seen on the way
type Result struct {
	Records     []chat.Record          `json:"records"`
	Stats       Stats                  `json:"stats"`
	Diagnostics []lineparse.Diagnostic `json:"diagnostics"`
	Chunks      int                    `json:"chunks"`
	Streamed    bool                   `json:"streamed"`
}

// Empty reports whether no participant message survived
func (r Result) Empty() bool { return len(r.Records) == 0 }

// Ingestor turns transcripts into enriched record tables. Safe for concurrent use
type Ingestor struct {
	enricher *enrich.Enricher
	opts     Options
}

// New builds an Ingestor around an enricher
func New(e *enrich.Enricher, opts Options) *Ingestor {
	return &Ingestor{enricher: e, opts: opts.withDefaults()}
}

// Options returns the effective options
func (in *Ingestor) Options() Options { return in.opts }

// IngestFile opens path and ingests it. A missing file is ErrorCodeNotFound,
// any other open failure ErrorCodeUnavailable
func (in *Ingestor) IngestFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "transcript: %s not found", path)
		}
		return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "transcript: open %s", path)
	}
	size := int64(-1)
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}
	return in.ingest(ctx, f, size)
}

// Ingest reads r to the end. size is the byte length when known, negative otherwise;
// inputs known to be below the stream threshold are enriched as a single chunk
func (in *Ingestor) Ingest(ctx context.Context, r io.Reader, size int64) (Result, error) {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}
	return in.ingest(ctx, rc, size)
}

func (in *Ingestor) ingest(ctx context.Context, rc io.ReadCloser, size int64) (res Result, err error) {
	log := logger.C(ctx).With().Str("component", "transcript").Logger()
	start := time.Now()

	rd, err := NewReader(rc)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if cerr := rd.Close(); cerr != nil && err == nil {
			err = perr.Wrap(cerr, perr.ErrorCodeUnavailable, "transcript: close")
		}
	}()

	chunkSize := in.opts.ChunkSize
	streamed := size < 0 || size >= in.opts.StreamThresholdBytes
	if !streamed {
		chunkSize = 0 // whole input in one chunk
	}

	var (
		chunks []*[]chat.Record
		batch  []chat.Message
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.opts.Workers)

	dispatch := func(msgs []chat.Message) {
		idx, slot := len(chunks), new([]chat.Record)
		chunks = append(chunks, slot)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			*slot = in.enricher.Enrich(chat.FromMessages(msgs))
			log.Debug().Int("chunk", idx).Int("messages", len(msgs)).Int("records", len(*slot)).Msg("transcript: chunk enriched")
			return nil
		})
	}

	for {
		m, rerr := rd.Next()
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			_ = g.Wait()
			return Result{}, rerr
		}
		batch = append(batch, m)
		if chunkSize > 0 && len(batch) == chunkSize {
			// chunk boundary: the only cancellation point
			if cerr := ctx.Err(); cerr != nil {
				_ = g.Wait()
				return Result{}, cerr
			}
			dispatch(batch)
			batch = make([]chat.Message, 0, chunkSize)
		}
	}
	if len(batch) > 0 {
		dispatch(batch)
	}
	if werr := g.Wait(); werr != nil {
		return Result{}, werr
	}

	records := reconcile(in.enricher, chunks)
	res = Result{
		Records:     records,
		Stats:       rd.Stats(),
		Diagnostics: rd.Diagnostics(),
		Chunks:      len(chunks),
		Streamed:    streamed,
	}
	if res.Diagnostics == nil {
		res.Diagnostics = []lineparse.Diagnostic{}
	}
	for _, d := range res.Diagnostics {
		log.Debug().Int("line", d.LineNo).Str("reason", d.Reason).Msg("transcript: timestamp fallback")
	}
	log.Info().
		Int("lines", res.Stats.Lines).
		Int("messages", res.Stats.Messages).
		Int("records", len(records)).
		Int("chunks", res.Chunks).
		Int("diagnostics", len(res.Diagnostics)).
		Bool("streamed", streamed).
		Dur("took", time.Since(start)).
		Msg("transcript: ingested")
	return res, nil
}

// reconcile concatenates chunk outputs and reruns the ordering dependent fields
// across the whole table
func reconcile(e *enrich.Enricher, chunks []*[]chat.Record) []chat.Record {
	n := 0
	for _, c := range chunks {
		n += len(*c)
	}
	out := make([]chat.Record, 0, n)
	for _, c := range chunks {
		out = append(out, *c...)
	}
	if len(chunks) > 1 {
		e.Sequence(out)
	}
	return out
}
