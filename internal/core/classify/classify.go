// Package classify turns an enriched record table into a weighted
// relationship verdict. Every weight, multiplier and threshold lives in
// Config so tuning never touches the algorithm
package classify

import (
	"math"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/indicators"
)

// Level is the relationship verdict
type Level uint8

const (
	// Acquaintance is below every threshold
	Acquaintance Level = iota
	// Friend meets the friend threshold
	Friend
	// CloseFriend meets the close-friend threshold
	CloseFriend
	// Romantic meets the romantic threshold
	Romantic
)

func (l Level) String() string {
	switch l {
	case Friend:
		return "Friend"
	case CloseFriend:
		return "CloseFriend"
	case Romantic:
		return "Romantic"
	default:
		return "Acquaintance"
	}
}

// MarshalText encodes the level by name
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Factor names one component score
type Factor string

// Component factors
const (
	FactorRomantic       Factor = "romantic"
	FactorIntimacy       Factor = "intimacy"
	FactorFuture         Factor = "future"
	FactorFrequency      Factor = "frequency"
	FactorResponsiveness Factor = "responsiveness"
)

// Factors lists the components in report order
var Factors = []Factor{FactorRomantic, FactorIntimacy, FactorFuture, FactorFrequency, FactorResponsiveness}

// Config holds the tunable constants of the model
type Config struct {
	Weights map[Factor]float64

	RomanticMultiplier float64 // per percentage point
	IntimacyMultiplier float64
	FutureMultiplier   float64

	// FrequencySaturation is the messages/day that scores 100
	FrequencySaturation float64
	// ResponsivenessPenalty is subtracted from 100 per average response minute
	ResponsivenessPenalty float64
	// NeutralResponsiveness is used when no response time exists
	NeutralResponsiveness float64

	// inclusive lower bounds
	RomanticThreshold    int
	CloseFriendThreshold int
	FriendThreshold      int
}

// DefaultConfig returns the reference tuning
func DefaultConfig() Config {
	return Config{
		Weights: map[Factor]float64{
			FactorRomantic:       0.35,
			FactorIntimacy:       0.25,
			FactorFuture:         0.15,
			FactorFrequency:      0.15,
			FactorResponsiveness: 0.10,
		},
		RomanticMultiplier:    5,
		IntimacyMultiplier:    5,
		FutureMultiplier:      10,
		FrequencySaturation:   20,
		ResponsivenessPenalty: 2,
		NeutralResponsiveness: 50,
		RomanticThreshold:     70,
		CloseFriendThreshold:  40,
		FriendThreshold:       20,
	}
}

// Inputs are the table-level statistics the model consumes
type Inputs struct {
	RomanticPct    float64  `json:"romantic_pct"`
	IntimacyPct    float64  `json:"intimacy_pct"`
	FuturePct      float64  `json:"future_pct"`
	MessagesPerDay float64  `json:"messages_per_day"`
	AvgResponseMin *float64 `json:"avg_response_minutes"`
}

// Result is the verdict with its components
type Result struct {
	Classification  Level              `json:"classification"`
	Score           int                `json:"score"`
	ComponentScores map[Factor]float64 `json:"component_scores"`
	Inputs          Inputs             `json:"inputs"`
}

// Classify derives Inputs from records and scores them. ok is false for an
// empty table: there is nothing to classify
func Classify(records []chat.Record, cfg Config) (Result, bool) {
	if len(records) == 0 {
		return Result{}, false
	}
	return Score(InputsOf(records), cfg), true
}

// InputsOf computes indicator percentages, messages per calendar day over the
// inclusive day span, and the overall mean response time
func InputsOf(records []chat.Record) Inputs {
	var in Inputs
	if len(records) == 0 {
		return in
	}
	in.RomanticPct = float64(indicators.Aggregate(records, indicators.Romantic).PercentageOfMessages)
	in.IntimacyPct = float64(indicators.Aggregate(records, indicators.Intimacy).PercentageOfMessages)
	in.FuturePct = float64(indicators.Aggregate(records, indicators.FuturePlanning).PercentageOfMessages)

	first, last := records[0].Day(), records[0].Day()
	var sum float64
	var n int
	for _, r := range records {
		d := r.Day()
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
		if r.ResponseTimeMinutes != nil {
			sum += *r.ResponseTimeMinutes
			n++
		}
	}
	days := int(last.Sub(first).Hours()/24) + 1
	in.MessagesPerDay = float64(len(records)) / float64(days)
	if n > 0 {
		avg := sum / float64(n)
		in.AvgResponseMin = &avg
	}
	return in
}

// Score applies the weighted model to precomputed inputs
func Score(in Inputs, cfg Config) Result {
	comp := map[Factor]float64{
		FactorRomantic:  clamp(in.RomanticPct * cfg.RomanticMultiplier),
		FactorIntimacy:  clamp(in.IntimacyPct * cfg.IntimacyMultiplier),
		FactorFuture:    clamp(in.FuturePct * cfg.FutureMultiplier),
		FactorFrequency: clamp(in.MessagesPerDay / nonZero(cfg.FrequencySaturation) * 100),
	}
	if in.AvgResponseMin != nil {
		comp[FactorResponsiveness] = clamp(100 - *in.AvgResponseMin*cfg.ResponsivenessPenalty)
	} else {
		comp[FactorResponsiveness] = clamp(cfg.NeutralResponsiveness)
	}

	var weighted float64
	for _, f := range Factors {
		weighted += cfg.Weights[f] * comp[f]
	}
	score := int(math.Round(weighted))

	return Result{
		Classification:  cfg.Level(score),
		Score:           score,
		ComponentScores: comp,
		Inputs:          in,
	}
}

// Level maps a weighted score to a verdict
func (c Config) Level(score int) Level {
	switch {
	case score >= c.RomanticThreshold:
		return Romantic
	case score >= c.CloseFriendThreshold:
		return CloseFriend
	case score >= c.FriendThreshold:
		return Friend
	default:
		return Acquaintance
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
