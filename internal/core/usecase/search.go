package usecase

import (
	"context"
	"fmt"

	"github.com/officemate/office-mate-backend/internal/core/domain"
	"github.com/officemate/office-mate-backend/internal/core/ports"
)

type SearchDocumentsUseCase struct {
	repo ports.DocumentRepository
}

func NewSearchDocumentsUseCase(repo ports.DocumentRepository) *SearchDocumentsUseCase {
	return &SearchDocumentsUseCase{repo: repo}
}

// Search returns documents matching every supplied predicate. An empty
// filter returns the full collection.
func (uc *SearchDocumentsUseCase) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Document, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "search documents",
			fmt.Errorf("date_to precedes date_from"))
	}
	docs, err := uc.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return docs, nil
}

func (uc *SearchDocumentsUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
