package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/officemate/office-mate-backend/internal/core/domain"
	"github.com/officemate/office-mate-backend/internal/core/ports"
)

type TaskUseCase struct {
	repo ports.TaskRepository
}

func NewTaskUseCase(repo ports.TaskRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo}
}

// Create validates the task and applies defaults before any store
// mutation: a rejected task leaves no partial state behind.
func (uc *TaskUseCase) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create task", fmt.Errorf("title is required"))
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityLow
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	if !task.Priority.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create task",
			fmt.Errorf("unknown priority %q", task.Priority))
	}
	if !task.Status.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create task",
			fmt.Errorf("unknown status %q", task.Status))
	}

	task.ID = uuid.NewString()
	if err := uc.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (uc *TaskUseCase) Get(ctx context.Context, id string) (*domain.Task, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *TaskUseCase) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if filter.UpcomingDays != nil && *filter.UpcomingDays < 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "list tasks",
			fmt.Errorf("upcoming_days must not be negative"))
	}
	tasks, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial patch: nil fields are left untouched.
func (uc *TaskUseCase) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update task", fmt.Errorf("title must not be empty"))
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update task",
			fmt.Errorf("unknown priority %q", *patch.Priority))
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "update task",
			fmt.Errorf("unknown status %q", *patch.Status))
	}
	return uc.repo.Update(ctx, id, patch)
}

func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
