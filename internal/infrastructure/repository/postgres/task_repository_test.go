package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/officemate/office-mate-backend/internal/core/domain"
)

func taskRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "document_id", "priority", "due_date", "status", "created_at",
	})
	for _, id := range ids {
		rows.AddRow(id, "title", "", nil, string(domain.TaskPriorityLow), nil,
			string(domain.TaskStatusTodo), time.Now().UTC())
	}
	return rows
}

func TestTaskRepositoryListOverduePredicates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewTaskRepository(db)
	repo.now = func() time.Time {
		return time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)
	}
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`status <> 'Done' AND due_date < \$1`).
		WithArgs(today).
		WillReturnRows(taskRows("t-1"))

	tasks, err := repo.List(context.Background(), domain.TaskFilter{Overdue: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskRepositoryListUpcomingWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewTaskRepository(db)
	repo.now = func() time.Time {
		return time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	}
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	days := 7
	mock.ExpectQuery(`due_date >= \$1 AND due_date <= \$2`).
		WithArgs(today, end).
		WillReturnRows(taskRows("t-1", "t-2"))

	tasks, err := repo.List(context.Background(), domain.TaskFilter{UpcomingDays: &days})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskRepositoryListCombinesStatusAndOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewTaskRepository(db)
	mock.ExpectQuery(`status = \$1 AND status <> 'Done' AND due_date < \$2`).
		WithArgs("Todo", sqlmock.AnyArg()).
		WillReturnRows(taskRows())

	if _, err := repo.List(context.Background(), domain.TaskFilter{Status: "Todo", Overdue: true}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskRepositoryUpdatePartialFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewTaskRepository(db)
	status := domain.TaskStatusDone
	mock.ExpectQuery("UPDATE tasks").
		WithArgs("t-1", nil, nil, nil, nil, nil, "Done").
		WillReturnRows(taskRows("t-1"))

	task, err := repo.Update(context.Background(), "t-1", domain.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if task.ID != "t-1" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskRepositoryUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewTaskRepository(db)
	mock.ExpectQuery("UPDATE tasks").
		WillReturnRows(taskRows())

	_, err = repo.Update(context.Background(), "missing", domain.TaskPatch{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
}

func TestTaskRepositoryDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewTaskRepository(db)
	mock.ExpectExec("DELETE FROM tasks").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
