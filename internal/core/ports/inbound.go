package ports

import (
	"context"
	"io"

	"github.com/officemate/office-mate-backend/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentSearcher is the inbound read model for stored documents.
type DocumentSearcher interface {
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Document, error)
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// TaskService is the inbound contract for task tracking.
type TaskService interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// DocumentExporter renders a document listing into a spreadsheet.
type DocumentExporter interface {
	ExportXLSX(docs []domain.Document) ([]byte, error)
}
