package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/officemate/office-mate-backend/internal/core/domain"
)

type taskCreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DocumentID  *string `json:"document_id"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
}

type taskPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DocumentID  *string `json:"document_id"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
}

func (rt *Router) taskCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.createTask(w, r)
	case http.MethodGet:
		rt.listTasks(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) taskItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/tasks/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "task id is required"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		rt.getTask(w, r, id)
	case http.MethodPatch:
		rt.updateTask(w, r, id)
	case http.MethodDelete:
		rt.deleteTask(w, r, id)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		DocumentID:  req.DocumentID,
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     dueDate,
		Status:      domain.TaskStatus(req.Status),
	}

	created, err := rt.tasks.Create(r.Context(), task)
	if rt.metrics != nil {
		rt.metrics.RecordTaskOperation(serviceName, "create", err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (rt *Router) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.TaskFilter{
		Status:  strings.TrimSpace(q.Get("status")),
		Overdue: q.Get("overdue") == "true",
	}
	if raw := strings.TrimSpace(q.Get("upcoming_days")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "upcoming_days must be an integer"})
			return
		}
		filter.UpcomingDays = &days
	}

	tasks, err := rt.tasks.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (rt *Router) getTask(w http.ResponseWriter, r *http.Request, id string) {
	task, err := rt.tasks.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (rt *Router) updateTask(w http.ResponseWriter, r *http.Request, id string) {
	var req taskPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		DocumentID:  req.DocumentID,
		DueDate:     dueDate,
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		patch.Status = &s
	}

	updated, err := rt.tasks.Update(r.Context(), id, patch)
	if rt.metrics != nil {
		rt.metrics.RecordTaskOperation(serviceName, "update", err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (rt *Router) deleteTask(w http.ResponseWriter, r *http.Request, id string) {
	err := rt.tasks.Delete(r.Context(), id)
	if rt.metrics != nil {
		rt.metrics.RecordTaskOperation(serviceName, "delete", err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseDueDate accepts a bare date or a full RFC 3339 timestamp.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if t, err := time.ParseInLocation(dateLayout, value, time.UTC); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("due_date must be YYYY-MM-DD or RFC 3339")
}
