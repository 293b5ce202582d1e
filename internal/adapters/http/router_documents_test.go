package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/officemate/office-mate-backend/internal/config"
	"github.com/officemate/office-mate-backend/internal/core/domain"
)

type ingestFake struct {
	err error
}

func (f ingestFake) Upload(_ context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.ReadAll(body); err != nil {
		return nil, err
	}
	return &domain.Document{
		ID:        "doc-1",
		Filename:  filename,
		MimeType:  mimeType,
		Category:  "finance",
		Tags:      []string{"invoice"},
		CreatedAt: time.Now().UTC(),
	}, nil
}

type searchFake struct {
	docs       []domain.Document
	lastFilter domain.SearchFilter
	err        error
	getErr     error
}

func (f *searchFake) Search(_ context.Context, filter domain.SearchFilter) ([]domain.Document, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func (f *searchFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.Document{ID: id, Filename: "a.pdf", Category: "hr"}, nil
}

type exporterFake struct {
	err error
}

func (f exporterFake) ExportXLSX([]domain.Document) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("workbook"), nil
}

func newDocumentTestRouter(search *searchFake, ingest ingestFake) http.Handler {
	return NewRouter(ingest, search, &taskServiceFake{}, exporterFake{}, nil, config.Config{}).Handler()
}

func TestHealthzEndpoint(t *testing.T) {
	handler := newDocumentTestRouter(&searchFake{}, ingestFake{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestUploadDocumentSuccess(t *testing.T) {
	handler := newDocumentTestRouter(&searchFake{}, ingestFake{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "invoice.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.Code)
	}

	var docResp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&docResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if docResp["id"] != "doc-1" || docResp["category"] != "finance" {
		t.Fatalf("unexpected response: %+v", docResp)
	}
}

func TestUploadDocumentMissingMultipartField(t *testing.T) {
	handler := newDocumentTestRouter(&searchFake{}, ingestFake{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString("plain-text"))
	req.Header.Set("Content-Type", "text/plain")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestSearchDocumentsComposesFilter(t *testing.T) {
	search := &searchFake{docs: []domain.Document{{ID: "doc-1"}}}
	handler := newDocumentTestRouter(search, ingestFake{})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/documents?query=resume&category=hr&date_from=2026-05-01&date_to=2026-05-30", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if search.lastFilter.Query != "resume" || search.lastFilter.Category != "hr" {
		t.Fatalf("unexpected filter: %+v", search.lastFilter)
	}
	if search.lastFilter.DateFrom == nil || search.lastFilter.DateTo == nil {
		t.Fatalf("expected both date bounds set")
	}
	wantFrom := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if !search.lastFilter.DateFrom.Equal(wantFrom) {
		t.Fatalf("unexpected date_from: %v", search.lastFilter.DateFrom)
	}
	if search.lastFilter.DateTo.Before(time.Date(2026, 5, 30, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("date_to must cover the whole named day, got %v", search.lastFilter.DateTo)
	}
}

func TestSearchDocumentsRejectsMalformedDate(t *testing.T) {
	handler := newDocumentTestRouter(&searchFake{}, ingestFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents?date_from=05-01-2026", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestSearchDocumentsEmptyResultIsJSONArray(t *testing.T) {
	handler := newDocumentTestRouter(&searchFake{}, ingestFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents?query=nothing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if body := bytes.TrimSpace(res.Body.Bytes()); !bytes.Equal(body, []byte("[]")) {
		t.Fatalf("expected empty JSON array, got %s", body)
	}
}

func TestGetDocumentByIDReturns404ForNotFound(t *testing.T) {
	search := &searchFake{
		getErr: domain.WrapError(domain.ErrNotFound, "get document", errors.New("id=missing")),
	}
	handler := newDocumentTestRouter(search, ingestFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestUploadMapsTemporaryErrorTo503(t *testing.T) {
	ingest := ingestFake{
		err: domain.WrapError(domain.ErrTemporary, "upload", errors.New("db down")),
	}
	handler := newDocumentTestRouter(&searchFake{}, ingest)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("file", "a.txt")
	_, _ = part.Write([]byte("x"))
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestExportDocumentsReturnsWorkbook(t *testing.T) {
	search := &searchFake{docs: []domain.Document{{ID: "doc-1"}}}
	handler := newDocumentTestRouter(search, ingestFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/export?category=finance", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if got := res.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %q", got)
	}
	if res.Header().Get("Content-Disposition") == "" {
		t.Fatalf("expected attachment disposition")
	}
	if search.lastFilter.Category != "finance" {
		t.Fatalf("export must reuse search filters, got %+v", search.lastFilter)
	}
}
