package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/officemate/office-mate-backend/internal/core/domain"
)

type TaskRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

const taskColumns = `id, title, description, document_id, priority, due_date, status, created_at`

// Create inserts the task and assigns its creation timestamp.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	task.CreatedAt = r.now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (id, title, description, document_id, priority, due_date, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, task.ID, task.Title, task.Description, task.DocumentID, string(task.Priority), task.DueDate, string(task.Status), task.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+taskColumns+`
FROM tasks
WHERE id = $1
`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get task", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return task, nil
}

// List applies the three optional predicate groups conjunctively:
// status equality, overdue (not done and due before today) and upcoming
// (due within [today, today+N]).
func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	var conds []string
	var args []any

	today := dateOnly(r.now().UTC())

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Overdue {
		args = append(args, today)
		conds = append(conds, fmt.Sprintf("status <> 'Done' AND due_date < $%d", len(args)))
	}
	if filter.UpcomingDays != nil {
		end := today.AddDate(0, 0, *filter.UpcomingDays)
		args = append(args, today, end)
		conds = append(conds, fmt.Sprintf("due_date >= $%d AND due_date <= $%d", len(args)-1, len(args)))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += "\nORDER BY created_at DESC, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

// Update applies only the supplied patch fields; unset fields keep
// their stored values.
func (r *TaskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE tasks
SET title = COALESCE($2, title),
	description = COALESCE($3, description),
	document_id = COALESCE($4, document_id),
	priority = COALESCE($5, priority),
	due_date = COALESCE($6, due_date),
	status = COALESCE($7, status)
WHERE id = $1
RETURNING `+taskColumns+`
`, id, patch.Title, patch.Description, patch.DocumentID, priorityArg(patch.Priority), patch.DueDate, statusArg(patch.Status))

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "update task", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete task", fmt.Errorf("id=%s", id))
	}
	return nil
}

func priorityArg(p *domain.TaskPriority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

func statusArg(s *domain.TaskStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var priority, status string
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DocumentID,
		&priority,
		&task.DueDate,
		&status,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Priority = domain.TaskPriority(priority)
	task.Status = domain.TaskStatus(status)
	return &task, nil
}
