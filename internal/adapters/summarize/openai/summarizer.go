// Package openai implements segment.Summarizer on the OpenAI Responses API
// with a strict JSON-schema structured output
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"chatlens/internal/platform/config"
	perr "chatlens/internal/platform/errors"
	"chatlens/internal/platform/logger"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const instructions = `You summarize one conversation segment from a personal chat export.
Reply with a single neutral sentence of at most 30 words describing what the
participants talked about. Do not quote messages, name no one, add no advice.`

// Config for the summarizer
type Config struct {
	APIKey          string
	Model           string
	MaxOutputTokens int64
	MaxInputBytes   int // bodies beyond this are cut
	Timeout         time.Duration
	// backoff per attempt; len+1 attempts in total
	RateLimitWaits   []time.Duration
	ServerErrorWaits []time.Duration
}

// FromConfig reads OPENAI_* keys
func FromConfig(cfg config.Conf) Config {
	oc := cfg.Prefix("OPENAI_")
	return Config{
		APIKey:           oc.MayString("API_KEY", ""),
		Model:            oc.MayString("MODEL", "gpt-4o-mini"),
		MaxOutputTokens:  int64(oc.MayInt("MAX_OUTPUT_TOKENS", 200)),
		MaxInputBytes:    oc.MayInt("MAX_INPUT_BYTES", 24_000),
		Timeout:          oc.MayDuration("TIMEOUT", 45*time.Second),
		RateLimitWaits:   []time.Duration{20 * time.Second, 60 * time.Second},
		ServerErrorWaits: []time.Duration{5 * time.Second, 30 * time.Second},
	}
}

// Enabled reports whether an API key is configured
func (c Config) Enabled() bool { return strings.TrimSpace(c.APIKey) != "" }

type summaryResponse struct {
	Summary string `json:"summary" jsonschema:"description=One sentence summary of the conversation segment"`
}

// completer sends one request and returns the output text
type completer interface {
	complete(ctx context.Context, params responses.ResponseNewParams) (string, error)
}

type clientCompleter struct{ client *oai.Client }

func (c clientCompleter) complete(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

// Summarizer implements segment.Summarizer. Safe for concurrent use
type Summarizer struct {
	api    completer
	cfg    Config
	schema map[string]any
	sleep  func(context.Context, time.Duration) error
}

// New returns nil, nil when cfg carries no API key so callers fall back to
// the deterministic summary
func New(cfg Config) (*Summarizer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client := oai.NewClient(option.WithAPIKey(cfg.APIKey))
	return newWith(clientCompleter{client: &client}, cfg)
}

func newWith(api completer, cfg Config) (*Summarizer, error) {
	schema, err := GenerateSchema[summaryResponse]()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "openai: summary schema")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &Summarizer{api: api, cfg: cfg, schema: schema, sleep: sleepCtx}, nil
}

// Summarize implements segment.Summarizer
func (s *Summarizer) Summarize(ctx context.Context, bodies []string) (string, error) {
	if len(bodies) == 0 {
		return "", nil
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	params := responses.ResponseNewParams{
		Model:           s.cfg.Model,
		Instructions:    oai.String(instructions),
		MaxOutputTokens: oai.Int(s.cfg.MaxOutputTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(transcript(bodies, s.cfg.MaxInputBytes), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "SegmentSummary",
					Schema:      s.schema,
					Strict:      oai.Bool(true),
					Description: oai.String("Conversation segment summary"),
					Type:        "json_schema",
				},
			},
		},
	}

	text, err := s.callWithRetry(ctx, params)
	if err != nil {
		return "", err
	}
	var out summaryResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &out); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeJSON, "openai: decode summary")
	}
	return strings.TrimSpace(out.Summary), nil
}

func (s *Summarizer) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	log := logger.Named("openai")
	rl, se := 0, 0
	for {
		text, err := s.api.complete(ctx, params)
		if err == nil {
			return text, nil
		}
		err = classify(err)
		if !perr.IsRetryable(err) {
			return "", err
		}

		var wait time.Duration
		switch {
		case perr.IsCode(err, perr.ErrorCodeTooManyRequests) && rl < len(s.cfg.RateLimitWaits):
			wait = s.cfg.RateLimitWaits[rl]
			rl++
		case perr.IsCode(err, perr.ErrorCodeUnavailable) && se < len(s.cfg.ServerErrorWaits):
			wait = s.cfg.ServerErrorWaits[se]
			se++
		default:
			return "", err
		}
		log.Warn().Err(err).Dur("wait", wait).Msg("openai: retrying")
		if serr := s.sleep(ctx, wait); serr != nil {
			return "", serr
		}
	}
}

// classify maps API failures onto project error codes
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			return perr.Wrap(err, perr.ErrorCodeTooManyRequests, "openai: rate limited")
		case apiErr.StatusCode >= 500:
			return perr.Wrap(err, perr.ErrorCodeUnavailable, "openai: server error")
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return perr.Wrap(err, perr.ErrorCodeUnauthorized, "openai: rejected credentials")
		}
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "openai: request rejected")
	}
	if _, ok := perr.As(err); ok {
		return err
	}
	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "429"), strings.Contains(s, "rate limit"), strings.Contains(s, "too many requests"):
		return perr.Wrap(err, perr.ErrorCodeTooManyRequests, "openai: rate limited")
	case strings.Contains(s, "500"), strings.Contains(s, "internal server error"), strings.Contains(s, "server_error"):
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "openai: server error")
	}
	return perr.Wrap(err, perr.ErrorCodeUnavailable, "openai: request failed")
}

// transcript joins bodies one per line, cut at max bytes on a line boundary
func transcript(bodies []string, max int) string {
	var b strings.Builder
	for _, body := range bodies {
		line := strings.ReplaceAll(body, "\n", " ")
		if max > 0 && b.Len()+len(line)+1 > max {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if b.Len() == 0 && len(bodies) > 0 {
		first := bodies[0]
		if max > 0 && len(first) > max {
			first = strings.ToValidUTF8(first[:max], "")
		}
		return first
	}
	return b.String()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
