package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vijaybala/invoice-tracker/internal/common"
)

func TestExtractConcatenatesPagesInOrder(t *testing.T) {
	e := NewPDFExtractor(nil)
	res, err := e.Extract(context.Background(), filepath.Join("testdata", "two_page.pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const page1 = "Alpha shipment manifest"
	const page2 = "Beta weight totals"
	if res.Text != page1+page2 {
		t.Errorf("Text = %q, want page texts concatenated in page order with no separator", res.Text)
	}
	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2", res.Pages)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
}

func TestExtractEmptyTextDocument(t *testing.T) {
	// A page with no text layer yields empty text, not an error.
	e := NewPDFExtractor(nil)
	res, err := e.Extract(context.Background(), filepath.Join("testdata", "empty_page.pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "" {
		t.Errorf("Text = %q, want empty", res.Text)
	}
	if res.Pages != 1 {
		t.Errorf("Pages = %d, want 1", res.Pages)
	}
}

func TestExtractMissingFile(t *testing.T) {
	e := NewPDFExtractor(nil)
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	if !errors.Is(err, common.ErrDocumentUnreadable) {
		t.Fatalf("err = %v, want ErrDocumentUnreadable", err)
	}
}

func TestExtractNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.pdf")
	if err := os.WriteFile(path, []byte("plain text, not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := NewPDFExtractor(nil)
	_, err := e.Extract(context.Background(), path)
	if !errors.Is(err, common.ErrDocumentUnreadable) {
		t.Fatalf("err = %v, want ErrDocumentUnreadable", err)
	}
}

func TestExtractCancelledContext(t *testing.T) {
	// A cancelled context is a caller decision, not a document problem.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewPDFExtractor(nil)
	_, err := e.Extract(ctx, filepath.Join("testdata", "two_page.pdf"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if errors.Is(err, common.ErrDocumentUnreadable) {
		t.Error("cancellation must not be reported as an unreadable document")
	}
}
