package httpadapter

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/officemate/office-mate-backend/internal/core/domain"
)

const dateLayout = "2006-01-02"

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.searchDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if rt.metrics != nil {
		fallback := doc != nil && doc.Category == domain.CategoryUnknown
		rt.metrics.RecordIngest(serviceName, time.Since(start), fallback, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

func (rt *Router) searchDocuments(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSearchFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	docs, err := rt.search.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordSearchResults(serviceName, len(docs))
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (rt *Router) exportDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	filter, err := parseSearchFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	docs, err := rt.search.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := rt.exporter.ExportXLSX(docs)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("documents-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.search.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func parseSearchFilter(r *http.Request) (domain.SearchFilter, error) {
	q := r.URL.Query()
	filter := domain.SearchFilter{
		Query:    strings.TrimSpace(q.Get("query")),
		Category: strings.TrimSpace(q.Get("category")),
	}

	if raw := strings.TrimSpace(q.Get("date_from")); raw != "" {
		from, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return domain.SearchFilter{}, fmt.Errorf("date_from must be YYYY-MM-DD")
		}
		filter.DateFrom = &from
	}
	if raw := strings.TrimSpace(q.Get("date_to")); raw != "" {
		to, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return domain.SearchFilter{}, fmt.Errorf("date_to must be YYYY-MM-DD")
		}
		// Inclusive upper bound: cover the whole named day.
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.DateTo = &to
	}
	return filter, nil
}
