package domain

import (
	"context"
	"io"
	"time"

	"chatlens/internal/core/segment"
)

// RunnerPort is the external port of the analysis service
type RunnerPort interface {
	// AnalyzeFile ingests a transcript from disk. Only I/O failures are errors
	AnalyzeFile(ctx context.Context, path string, in Input) (*Report, error)

	// AnalyzeReader ingests r; size is its byte length or negative when unknown
	AnalyzeReader(ctx context.Context, r io.Reader, size int64, in Input) (*Report, error)
}

// Observer is told about every analysis once it finishes or fails.
// classification is empty when there was nothing to classify
type Observer interface {
	ObserveAnalysis(d time.Duration, messages, diagnostics int, classification string, err error)
}

// Ports are optional dependencies injected into the analysis module
type Ports struct {
	Summarizer segment.Summarizer // nil selects the built-in fallback text
	Observer   Observer
}
