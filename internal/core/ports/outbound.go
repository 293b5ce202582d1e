package ports

import (
	"context"
	"io"

	"github.com/officemate/office-mate-backend/internal/core/domain"
)

// DocumentRepository persists and reads document records.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Document, error)
}

// TaskRepository persists and reads task records.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// ObjectStorage retains the raw uploaded bytes.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor converts raw document bytes into plain text. It never
// fails: undecodable input yields an empty string.
type TextExtractor interface {
	Extract(ctx context.Context, filename, contentType string, data []byte) string
}

// CategoryClassifier predicts a category label for extracted text.
// Callers decide how to degrade when it returns an error.
type CategoryClassifier interface {
	Predict(ctx context.Context, text string) (string, error)
}

// Tagger derives a bounded, frequency-ranked tag list from text.
type Tagger interface {
	Derive(text string) []string
}
