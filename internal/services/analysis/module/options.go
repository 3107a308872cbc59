package module

import (
	"strings"
	"time"

	"chatlens/internal/core/classify"
	"chatlens/internal/platform/config"
)

// Options holds configuration settings for the analysis module
type Options struct {
	ChunkSize            int
	Workers              int
	StreamThresholdBytes int64
	SegmentLimit         int
	Topics               int
	GapMinutes           int
	ResponseCapMinutes   int
	IndicatorsFile       string // empty selects the embedded pack
	WordBoundary         bool
	MaxUploadMB          int
	Stopwords            []string // extra theme stopwords
	Classify             classify.Config
}

// FromConfig extracts Options from CORE_ANALYSIS_*, CORE_CLASSIFY_* and CORE_API_MAX_UPLOAD_MB
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("CORE_ANALYSIS_")
	return Options{
		ChunkSize:            ac.MayInt("CHUNK_SIZE", 1000),
		Workers:              ac.MayInt("WORKERS", 2),
		StreamThresholdBytes: ac.MayInt64("STREAM_THRESHOLD_BYTES", 10<<20),
		SegmentLimit:         ac.MayInt("SEGMENT_LIMIT", 50),
		Topics:               ac.MayInt("TOPICS", 5),
		GapMinutes:           ac.MayInt("GAP_MINUTES", 60),
		ResponseCapMinutes:   ac.MayInt("RESPONSE_CAP_MINUTES", 1440),
		IndicatorsFile:       ac.MayString("INDICATORS_FILE", ""),
		WordBoundary:         ac.MayBool("WORD_BOUNDARY", false),
		MaxUploadMB:          cfg.Prefix("CORE_API_").MayInt("MAX_UPLOAD_MB", 32),
		Stopwords:            ac.MayCSV("STOPWORDS", nil),
		Classify:             classifyFromConfig(cfg.Prefix("CORE_CLASSIFY_")),
	}
}

func classifyFromConfig(cc config.Conf) classify.Config {
	d := classify.DefaultConfig()
	weights := make(map[classify.Factor]float64, len(d.Weights))
	for f, w := range d.Weights {
		weights[f] = cc.MayFloat64("WEIGHT_"+envName(f), w)
	}
	return classify.Config{
		Weights:               weights,
		RomanticMultiplier:    cc.MayFloat64("ROMANTIC_MULTIPLIER", d.RomanticMultiplier),
		IntimacyMultiplier:    cc.MayFloat64("INTIMACY_MULTIPLIER", d.IntimacyMultiplier),
		FutureMultiplier:      cc.MayFloat64("FUTURE_MULTIPLIER", d.FutureMultiplier),
		FrequencySaturation:   cc.MayFloat64("FREQUENCY_SATURATION", d.FrequencySaturation),
		ResponsivenessPenalty: cc.MayFloat64("RESPONSIVENESS_PENALTY", d.ResponsivenessPenalty),
		NeutralResponsiveness: cc.MayFloat64("NEUTRAL_RESPONSIVENESS", d.NeutralResponsiveness),
		RomanticThreshold:     cc.MayInt("ROMANTIC_THRESHOLD", d.RomanticThreshold),
		CloseFriendThreshold:  cc.MayInt("CLOSE_FRIEND_THRESHOLD", d.CloseFriendThreshold),
		FriendThreshold:       cc.MayInt("FRIEND_THRESHOLD", d.FriendThreshold),
	}
}

func envName(f classify.Factor) string { return strings.ToUpper(string(f)) }

// merge lays non-zero overrides over o
func (o Options) merge(ov Options) Options {
	if ov.ChunkSize != 0 {
		o.ChunkSize = ov.ChunkSize
	}
	if ov.Workers != 0 {
		o.Workers = ov.Workers
	}
	if ov.StreamThresholdBytes != 0 {
		o.StreamThresholdBytes = ov.StreamThresholdBytes
	}
	if ov.SegmentLimit != 0 {
		o.SegmentLimit = ov.SegmentLimit
	}
	if ov.Topics != 0 {
		o.Topics = ov.Topics
	}
	if ov.GapMinutes != 0 {
		o.GapMinutes = ov.GapMinutes
	}
	if ov.ResponseCapMinutes != 0 {
		o.ResponseCapMinutes = ov.ResponseCapMinutes
	}
	if ov.IndicatorsFile != "" {
		o.IndicatorsFile = ov.IndicatorsFile
	}
	if ov.WordBoundary {
		o.WordBoundary = true
	}
	if ov.MaxUploadMB != 0 {
		o.MaxUploadMB = ov.MaxUploadMB
	}
	if len(ov.Stopwords) > 0 {
		o.Stopwords = ov.Stopwords
	}
	if ov.Classify.Weights != nil {
		o.Classify = ov.Classify
	}
	return o
}

func minutes(n int) time.Duration { return time.Duration(n) * time.Minute }
