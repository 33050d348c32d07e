package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/vijaybala/invoice-tracker/internal/common"
)

// PDFExtractor reads the text layer of a PDF, page by page.
// Scanned PDFs without a text layer yield empty text, not an error.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

var _ TextExtractor = (*PDFExtractor)(nil)

// Extract concatenates the plain text of every page in page order.
// A document that cannot be opened or parsed fails with
// common.ErrDocumentUnreadable; a zero-page or text-free document returns
// an empty string.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()

	f, r, err := pdf.Open(path)
	if err != nil {
		e.logger.Error("extract.pdf.open_failed", "path", path, "error", err)
		return TextExtractionResult{}, fmt.Errorf("open pdf %q: %w: %w", path, common.ErrDocumentUnreadable, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("extract.pdf.close_failed", "path", path, "error", cerr)
		}
	}()

	var (
		b     strings.Builder
		warns []string
	)
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			warns = append(warns, fmt.Sprintf("page %d: missing page object", i))
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// skip broken pages; partial text is still useful for review
			warns = append(warns, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		b.WriteString(text)
	}

	res := TextExtractionResult{
		Text:     b.String(),
		Pages:    total,
		Duration: time.Since(start),
		Warnings: warns,
	}
	e.logger.Debug("extract.pdf.ok",
		"path", path,
		"pages", total,
		"bytes", len(res.Text),
		"warnings", len(warns),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
