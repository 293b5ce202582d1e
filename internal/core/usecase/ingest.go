package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/officemate/office-mate-backend/internal/core/domain"
	"github.com/officemate/office-mate-backend/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo       ports.DocumentRepository
	storage    ports.ObjectStorage
	queue      ports.MessageQueue
	extractor  ports.TextExtractor
	classifier ports.CategoryClassifier
	tagger     ports.Tagger
	logger     *slog.Logger
}

func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	extractor ports.TextExtractor,
	classifier ports.CategoryClassifier,
	tagger ports.Tagger,
	logger *slog.Logger,
) *IngestDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestDocumentUseCase{
		repo:       repo,
		storage:    storage,
		queue:      queue,
		extractor:  extractor,
		classifier: classifier,
		tagger:     tagger,
		logger:     logger,
	}
}

// Upload runs the full ingestion pipeline: extract text, classify and
// tag it, retain the raw bytes, then persist the document exactly once.
// Extraction and classification degradation never fail the upload; the
// post-insert event publication is best-effort as well.
func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Document, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read upload body", err)
	}

	id := uuid.NewString()
	text := uc.extractor.Extract(ctx, filename, mimeType, raw)

	// Classification and tagging both depend only on the extracted
	// text, not on each other.
	categoryCh := make(chan string, 1)
	go func() {
		categoryCh <- uc.classifyOrSentinel(ctx, id, text)
	}()
	tags := uc.tagger.Derive(text)
	category := <-categoryCh

	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	if err := uc.storage.Save(ctx, storageKey, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.Document{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Category:    category,
		Tags:        tags,
		Content:     text,
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document record: %w", err)
	}

	if err := uc.queue.PublishDocumentIngested(ctx, doc.ID); err != nil {
		uc.logger.Warn("publish ingestion event failed", "document_id", doc.ID, "error", err)
	}

	return doc, nil
}

func (uc *IngestDocumentUseCase) classifyOrSentinel(ctx context.Context, documentID, text string) string {
	label, err := uc.classifier.Predict(ctx, text)
	if err != nil {
		uc.logger.Warn("classification unavailable, using sentinel category",
			"document_id", documentID, "error", err)
		return domain.CategoryUnknown
	}
	return label
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "document.bin"
	}
	return base
}
