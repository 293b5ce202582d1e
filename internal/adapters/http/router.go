// Package httpadapter exposes the document and task services over REST.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/officemate/office-mate-backend/internal/config"
	"github.com/officemate/office-mate-backend/internal/core/ports"
	"github.com/officemate/office-mate-backend/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	ingest   ports.DocumentIngestor
	search   ports.DocumentSearcher
	tasks    ports.TaskService
	exporter ports.DocumentExporter
	metrics  *metrics.HTTPServerMetrics
	cfg      config.Config
}

func NewRouter(
	ingest ports.DocumentIngestor,
	search ports.DocumentSearcher,
	tasks ports.TaskService,
	exporter ports.DocumentExporter,
	serverMetrics *metrics.HTTPServerMetrics,
	cfg config.Config,
) *Router {
	return &Router{
		ingest:   ingest,
		search:   search,
		tasks:    tasks,
		exporter: exporter,
		metrics:  serverMetrics,
		cfg:      cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/export", rt.exportDocuments)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/tasks", rt.taskCollection)
	mux.HandleFunc("/v1/tasks/", rt.taskItem)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 50*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = corsHandler(rt.cfg.CORSAllowedOrigins).Handler(handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func corsHandler(allowedOrigins string) *cors.Cors {
	origins := []string{"*"}
	if trimmed := strings.TrimSpace(allowedOrigins); trimmed != "" && trimmed != "*" {
		origins = strings.Split(trimmed, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
	})
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
