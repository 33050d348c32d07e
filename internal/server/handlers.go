package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vijaybala/invoice-tracker/constants"
	"github.com/vijaybala/invoice-tracker/internal/common"
	"github.com/vijaybala/invoice-tracker/internal/entity"
	"github.com/vijaybala/invoice-tracker/internal/export"
	"github.com/vijaybala/invoice-tracker/internal/llm"
	"github.com/vijaybala/invoice-tracker/internal/repository"
)

// Extractor runs the extraction pipeline for an uploaded document.
type Extractor interface {
	ExtractInvoice(ctx context.Context, path string) (llm.Outcome, error)
}

// Handlers holds the HTTP handlers for the review API.
type Handlers struct {
	logger   *slog.Logger
	cfg      common.ServerConfig
	pipeline Extractor
	invoices repository.InvoiceRepository
	exporter *export.Service
}

func NewHandlers(logger *slog.Logger, cfg common.ServerConfig, p Extractor, repo repository.InvoiceRepository, exp *export.Service) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{logger: logger, cfg: cfg, pipeline: p, invoices: repo, exporter: exp}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractResponse is the outcome surfaced to the review UI. The raw model
// response rides along on every non-success status so the reviewer can
// transcribe fields by hand.
type extractResponse struct {
	Status      constants.OutcomeStatus `json:"status"`
	Fields      *llm.InvoiceFields      `json:"fields,omitempty"`
	SchemaOK    bool                    `json:"schema_ok"`
	RawResponse string                  `json:"raw_response,omitempty"`
}

// ExtractInvoice accepts a multipart PDF upload, runs the pipeline, and
// returns the tagged outcome. Nothing is persisted here: the caller reviews
// the fields and posts them back via SaveInvoice.
func (h *Handlers) ExtractInvoice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing pdf file")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	if !constants.IsAllowedExt(filepath.Ext(header.Filename)) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type: %s (supported: %s)",
			filepath.Ext(header.Filename), strings.Join(constants.FileTypes, ", ")))
		return
	}

	path, err := h.spool(file)
	if err != nil {
		h.logger.Error("spool upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	defer func() {
		if rerr := os.Remove(path); rerr != nil {
			h.logger.Warn("spool cleanup failed", "path", path, "error", rerr)
		}
	}()

	outcome, err := h.pipeline.ExtractInvoice(r.Context(), path)
	switch {
	case errors.Is(err, common.ErrDocumentUnreadable):
		writeError(w, http.StatusUnprocessableEntity, "document could not be read")
		return
	case errors.Is(err, common.ErrInferenceUnavailable):
		writeError(w, http.StatusBadGateway, "extraction service unavailable")
		return
	case err != nil:
		h.logger.Error("extract failed", "error", err)
		writeError(w, http.StatusInternalServerError, "extraction failed")
		return
	}

	resp := extractResponse{Status: outcome.Status, SchemaOK: outcome.SchemaOK}
	if outcome.Status == constants.OutcomeSuccess {
		resp.Fields = &outcome.Fields
	} else {
		resp.RawResponse = outcome.RawResponse
	}
	writeJSON(w, http.StatusOK, resp)
}

// spool writes the upload to a unique file under the upload dir.
func (h *Handlers) spool(file io.Reader) (string, error) {
	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(h.cfg.UploadDir, uuid.NewString()+".pdf")
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, file); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", err
	}
	return path, dst.Close()
}

// SaveInvoice persists a reviewed record. Duplicates on the natural key are
// reported as 409, distinct from generic storage failures.
func (h *Handlers) SaveInvoice(w http.ResponseWriter, r *http.Request) {
	var fields llm.InvoiceFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.invoices.Save(r.Context(), entity.FromFields(fields))
	switch {
	case errors.Is(err, common.ErrDuplicateInvoice):
		writeError(w, http.StatusConflict, "duplicate invoice: this invoice number and date already exist")
		return
	case err != nil:
		h.logger.Error("save invoice failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save invoice")
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *Handlers) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	inv, err := h.invoices.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "invoice not found")
		return
	case err != nil:
		h.logger.Error("get invoice failed", "invoice_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load invoice")
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handlers) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context())
	if err != nil {
		h.logger.Error("list invoices failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list invoices")
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *Handlers) ExportInvoices(w http.ResponseWriter, r *http.Request) {
	data, err := h.exporter.ExportInvoicesXLSX(r.Context())
	if err != nil {
		h.logger.Error("export invoices failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not export invoices")
		return
	}
	name := "invoices-" + time.Now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
