// @title         chatlens API
// @version       0.1.0
// @description   Upload a chat transcript and get an analysis report back

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chatlens/internal/adapters/summarize/openai"
	"chatlens/internal/core/segment"
	"chatlens/internal/platform/config"
	"chatlens/internal/platform/logger"
	phttp "chatlens/internal/platform/net/http"

	"chatlens/internal/services/api"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real env wins
	_ = godotenv.Load()

	// bring up logging early
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	var sum segment.Summarizer
	s, err := openai.New(openai.FromConfig(root))
	if err != nil {
		l.Panic().Err(err).Msg("openai summarizer")
	}
	if s != nil {
		sum = s
		l.Info().Msg("segment summaries via openai enabled")
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	if err := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Logger:         l,
		Summarizer:     sum,
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	}); err != nil {
		l.Panic().Err(err).Msg("api mount failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
