package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vijaybala/invoice-tracker/constants"
	"github.com/vijaybala/invoice-tracker/internal/extract"
	"github.com/vijaybala/invoice-tracker/internal/llm"
)

// Config holds behavior knobs for the extraction pipeline.
type Config struct {
	// MaxPromptRunes caps how much extracted text is interpolated into the
	// prompt. 0 means the default. Documents over the cap are truncated,
	// not chunked; the truncation is logged.
	MaxPromptRunes int
}

// Orchestrator runs one document through the full extraction pipeline:
// text -> prompt -> inference -> parse. Each invocation is single-threaded
// and shares no mutable state with concurrent invocations.
type Orchestrator struct {
	logger    *slog.Logger
	cfg       Config
	extractor extract.TextExtractor
	inferrer  llm.Inferencer
}

func NewOrchestrator(logger *slog.Logger, cfg Config, tx extract.TextExtractor, inf llm.Inferencer) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxPromptRunes <= 0 {
		cfg.MaxPromptRunes = 120000
	}
	return &Orchestrator{logger: logger, cfg: cfg, extractor: tx, inferrer: inf}
}

// ExtractInvoice runs the pipeline for the document at path.
//
// Expected model failures (garbled or missing JSON) come back as a tagged
// Outcome, never an error. Errors are reserved for the two fatal cases:
// the document cannot be read (common.ErrDocumentUnreadable) or the model
// cannot be reached (common.ErrInferenceUnavailable). Nothing is persisted
// here; the caller hands the outcome to a human reviewer first.
func (o *Orchestrator) ExtractInvoice(ctx context.Context, path string) (llm.Outcome, error) {
	rid := uuid.New().String()
	start := time.Now()
	log := o.logger.With("req_id", rid, "path", path)

	log.Info("pipeline.start", "state", constants.StateIdle)

	res, err := o.extractor.Extract(ctx, path)
	if err != nil {
		log.Error("pipeline.text_extract_failed", "error", err)
		return llm.Outcome{}, err
	}
	log.Info("pipeline.text_extracted",
		"state", constants.StateTextExtracted,
		"pages", res.Pages,
		"chars", len(res.Text),
		"warnings", len(res.Warnings),
	)

	text := res.Text
	if runes := []rune(text); len(runes) > o.cfg.MaxPromptRunes {
		text = string(runes[:o.cfg.MaxPromptRunes])
		log.Warn("pipeline.text_truncated",
			"limit_runes", o.cfg.MaxPromptRunes,
			"original_chars", len(res.Text),
		)
	}

	prompt := llm.BuildExtractionPrompt(text)
	log.Info("pipeline.prompt_built",
		"state", constants.StatePromptBuilt,
		"prompt_len", len(prompt),
	)

	raw, err := o.inferrer.Infer(ctx, prompt)
	if err != nil {
		log.Error("pipeline.inference_failed", "error", err)
		return llm.Outcome{}, err
	}
	log.Info("pipeline.response_received",
		"state", constants.StateResponseReceived,
		"response_len", len(raw),
	)

	outcome := llm.Parse(raw)
	log.Info("pipeline.done",
		"state", constants.StateDone,
		"status", outcome.Status,
		"schema_ok", outcome.SchemaOK,
		"products", len(outcome.Fields.Products),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return outcome, nil
}
