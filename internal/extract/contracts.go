package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: document -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	// Text is the concatenation of every page's text layer in page order.
	// No separator is inserted between pages.
	Text     string
	Pages    int
	Duration time.Duration
	Warnings []string
}
