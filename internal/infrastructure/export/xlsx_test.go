package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/officemate/office-mate-backend/internal/core/domain"
)

func TestExportXLSXWritesHeaderAndRows(t *testing.T) {
	exporter := NewXLSXExporter()

	docs := []domain.Document{
		{
			ID:        "doc-1",
			Filename:  "invoice.pdf",
			Category:  "finance",
			Tags:      []string{"invoice", "total"},
			Content:   "invoice total 120.50",
			CreatedAt: time.Date(2026, 5, 30, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "doc-2",
			Filename:  "scan.png",
			Category:  domain.CategoryUnknown,
			CreatedAt: time.Date(2026, 5, 29, 9, 0, 0, 0, time.UTC),
		},
	}

	data, err := exporter.ExportXLSX(docs)
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Documents")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][2] != "Category" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "doc-1" {
		t.Fatalf("expected doc-1 first, got %q", rows[1][0])
	}
	if rows[1][3] != "invoice, total" {
		t.Fatalf("expected joined tags, got %q", rows[1][3])
	}
	if rows[2][2] != domain.CategoryUnknown {
		t.Fatalf("expected unknown category preserved, got %q", rows[2][2])
	}
}

func TestExportXLSXTruncatesLongContent(t *testing.T) {
	exporter := NewXLSXExporter()

	docs := []domain.Document{
		{
			ID:       "doc-1",
			Filename: "big.pdf",
			Category: "it",
			Content:  strings.Repeat("x", 500),
		},
	}

	data, err := exporter.ExportXLSX(docs)
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	preview, err := f.GetCellValue("Documents", "F2")
	if err != nil {
		t.Fatalf("read preview cell: %v", err)
	}
	if len(preview) != 200 {
		t.Fatalf("expected 200-char preview, got %d", len(preview))
	}
}

func TestExportXLSXEmptyListing(t *testing.T) {
	exporter := NewXLSXExporter()

	data, err := exporter.ExportXLSX(nil)
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Documents")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
