package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/officemate/office-mate-backend/internal/core/domain"
)

type searchRepoFake struct {
	gotFilter domain.SearchFilter
	docs      []domain.Document
}

func (f *searchRepoFake) Create(context.Context, *domain.Document) error { return nil }

func (f *searchRepoFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	for _, doc := range f.docs {
		if doc.ID == id {
			copyDoc := doc
			return &copyDoc, nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get document", errors.New(id))
}

func (f *searchRepoFake) Search(_ context.Context, filter domain.SearchFilter) ([]domain.Document, error) {
	f.gotFilter = filter
	return f.docs, nil
}

func TestSearchPassesFilterThrough(t *testing.T) {
	repo := &searchRepoFake{docs: []domain.Document{{ID: "d-1"}}}
	uc := NewSearchDocumentsUseCase(repo)

	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	docs, err := uc.Search(context.Background(), domain.SearchFilter{
		Query:    "invoice",
		Category: "finance",
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if repo.gotFilter.Query != "invoice" || repo.gotFilter.Category != "finance" {
		t.Fatalf("filter not passed through: %+v", repo.gotFilter)
	}
}

func TestSearchRejectsInvertedDateRange(t *testing.T) {
	uc := NewSearchDocumentsUseCase(&searchRepoFake{})

	from := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err := uc.Search(context.Background(), domain.SearchFilter{DateFrom: &from, DateTo: &to})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input kind, got %v", err)
	}
}

func TestGetByIDNotFoundPropagates(t *testing.T) {
	uc := NewSearchDocumentsUseCase(&searchRepoFake{})

	_, err := uc.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
}
