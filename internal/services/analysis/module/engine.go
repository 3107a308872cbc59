package module

import (
	"chatlens/internal/core/indicators"
)

// Engine is a read-only description of how analyses are run
type Engine struct {
	Phrases      map[indicators.Category]int `json:"phrases"`
	WordBoundary bool                        `json:"word_boundary"`
	ChunkSize    int                         `json:"chunk_size"`
	Workers      int                         `json:"workers"`
	SegmentLimit int                         `json:"segment_limit"`
	Topics       int                         `json:"topics"`
	Summarizer   bool                        `json:"summarizer"`
}

func engineOf(p *indicators.Pack, o Options, summarizer bool) Engine {
	phrases := make(map[indicators.Category]int, len(indicators.Categories))
	for _, c := range indicators.Categories {
		phrases[c] = len(p.Terms(c))
	}
	return Engine{
		Phrases:      phrases,
		WordBoundary: o.WordBoundary,
		ChunkSize:    o.ChunkSize,
		Workers:      o.Workers,
		SegmentLimit: o.SegmentLimit,
		Topics:       o.Topics,
		Summarizer:   summarizer,
	}
}
