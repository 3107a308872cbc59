// Command chatlens-analyze analyzes a chat transcript export and prints the report
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"chatlens/internal/adapters/summarize/openai"
	"chatlens/internal/modkit"
	"chatlens/internal/modkit/module"
	"chatlens/internal/platform/config"
	perr "chatlens/internal/platform/errors"
	"chatlens/internal/platform/logger"

	analysisdom "chatlens/internal/services/analysis/domain"
	analysismod "chatlens/internal/services/analysis/module"
	"chatlens/internal/services/analysis/render"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// stdout carries the report
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	logger.Init(opt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Get().Error().Err(err).
			Stringer("code", perr.CodeOf(err)).
			Str("op", perr.OpOf(err)).
			Msg("analysis failed")
		stop()
		os.Exit(1)
	}
}

type flags struct {
	in        string
	format    string
	records   bool
	chunk     int
	workers   int
	segments  int
	summaries bool
}

func parseFlags(args []string, defFormat string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("chatlens-analyze", flag.ContinueOnError)
	fs.StringVar(&f.in, "in", "", "transcript path, or - for stdin (gzip accepted)")
	fs.StringVar(&f.format, "format", defFormat, "output format: json or markdown (default from CORE_ANALYSIS_FORMAT)")
	fs.BoolVar(&f.records, "records", false, "include the enriched message table")
	fs.IntVar(&f.chunk, "chunk", 0, "messages per chunk (default from CORE_ANALYSIS_CHUNK_SIZE)")
	fs.IntVar(&f.workers, "workers", 0, "concurrent chunk workers (default from CORE_ANALYSIS_WORKERS)")
	fs.IntVar(&f.segments, "segments", 0, "maximum conversations in the report")
	fs.BoolVar(&f.summaries, "summaries", false, "fill conversation summaries (openai when OPENAI_API_KEY is set)")
	if err := fs.Parse(args); err != nil {
		return f, perr.Wrap(err, perr.ErrorCodeValidation, "flags")
	}
	if f.in == "" && fs.NArg() == 1 {
		f.in = fs.Arg(0)
	}
	switch {
	case f.in == "":
		return f, perr.New(perr.ErrorCodeValidation, "-in is required")
	case f.format != "json" && f.format != "markdown":
		return f, perr.Newf(perr.ErrorCodeValidation, "unknown -format %q", f.format)
	case f.chunk < 0 || f.workers < 0 || f.segments < 0:
		return f, perr.New(perr.ErrorCodeValidation, "-chunk, -workers and -segments must not be negative")
	}
	return f, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	root := config.New()
	f, err := parseFlags(args, root.Prefix("CORE_ANALYSIS_").MayEnum("FORMAT", "json", "json", "markdown"))
	if err != nil {
		return err
	}

	deps := modkit.Deps{Cfg: root, Log: *logger.Get()}

	var opts []modkit.Option
	if f.summaries {
		s, err := openai.New(openai.FromConfig(root))
		if err != nil {
			return err
		}
		if s != nil {
			opts = append(opts, modkit.WithPorts(analysisdom.Ports{Summarizer: s}))
		}
	}

	m, err := analysismod.New(deps, analysismod.Options{ChunkSize: f.chunk, Workers: f.workers}, opts...)
	if err != nil {
		return err
	}
	module.Register(m.Name(), m.Ports())
	runner := module.MustPortsOf[analysismod.Ports](m).Runner

	in := analysisdom.Input{
		IncludeRecords: f.records,
		SegmentLimit:   f.segments,
		Summaries:      f.summaries,
	}

	var rep *analysisdom.Report
	if f.in == "-" {
		in.Source = "stdin"
		rep, err = runner.AnalyzeReader(ctx, stdin, -1, in)
	} else {
		rep, err = runner.AnalyzeFile(ctx, f.in, in)
	}
	if err != nil {
		return err
	}

	if f.format == "markdown" {
		return render.Markdown(stdout, *rep)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode report")
	}
	return nil
}
