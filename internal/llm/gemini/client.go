package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/vijaybala/invoice-tracker/internal/common"
	"github.com/vijaybala/invoice-tracker/internal/llm"
)

// Config for the Gemini client.
type Config struct {
	APIKey      string
	Model       string        // e.g., "gemini-2.0-flash"
	Timeout     time.Duration // per-attempt deadline
	MaxAttempts int           // total attempts, including the first
	Backoff     time.Duration // initial backoff, doubled per retry
}

type Client struct {
	cfg    Config
	client *genai.Client
	model  *genai.GenerativeModel
	logger *slog.Logger
}

// NewClient builds a Gemini-backed Inferencer. The configuration is
// constructed once here and passed explicitly; nothing is read from ambient
// state at call time.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{
		cfg:    cfg,
		client: cl,
		model:  cl.GenerativeModel(cfg.Model),
		logger: logger,
	}, nil
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

var _ llm.Inferencer = (*Client)(nil)

// Infer sends the prompt and returns the model's raw text. Each attempt runs
// under its own deadline; attempts are retried with doubling backoff up to
// MaxAttempts, and exhaustion surfaces as common.ErrInferenceUnavailable.
// A failed call is never converted into an empty response.
func (c *Client) Infer(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.infer.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"prompt_len", len(prompt),
		"max_attempts", c.cfg.MaxAttempts,
	)

	var lastErr error
	backoff := c.cfg.Backoff
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		text, err := c.generate(ctx, prompt)
		if err == nil {
			c.logger.Info("llm.infer.ok",
				"req_id", rid,
				"attempt", attempt,
				"response_len", len(text),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return text, nil
		}
		lastErr = err
		c.logger.Warn("llm.infer.attempt_failed",
			"req_id", rid,
			"attempt", attempt,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		if ctx.Err() != nil {
			break
		}
		if attempt < c.cfg.MaxAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				lastErr = ctx.Err()
			}
			backoff *= 2
		}
	}

	c.logger.Error("llm.infer.exhausted",
		"req_id", rid,
		"attempts", c.cfg.MaxAttempts,
		"error", lastErr,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return "", fmt.Errorf("%w: %w", common.ErrInferenceUnavailable, lastErr)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in response")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}
