package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/repository"
)

// CreateInput carries the fields for a new task. OrderID empty means a
// general task, unattached to any order.
type CreateInput struct {
	Description string
	Deadline    time.Time
	OrderID     string
}

// UpdateInput carries partial-update fields; nil means "leave unchanged".
type UpdateInput struct {
	Description *string
	Deadline    *time.Time
	Completed   *bool
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// ListPending returns incomplete tasks sorted by deadline, each with its
// owning order attached when there is one.
func (uc *UseCase) ListPending(ctx context.Context, limit int) ([]domain.Task, error) {
	completed := false
	return uc.tasks.List(ctx, repository.TaskFilter{
		Completed: &completed,
		WithOrder: true,
		Limit:     limit,
	})
}

// CreateTask validates the input and persists a new task. An unknown OrderID
// is rejected by the persistence layer before the task is written.
func (uc *UseCase) CreateTask(ctx context.Context, input CreateInput) (*domain.Task, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Description: input.Description,
		Deadline:    input.Deadline,
		OrderID:     input.OrderID,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("task created", zap.String("task_id", created.ID))
	return created, nil
}

// UpdateTask applies a partial update. Completing a task stamps completedAt
// with the current instant; re-completing simply refreshes the stamp, and
// un-completing clears it so completedAt is non-null exactly when the task
// is completed.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, input UpdateInput) (*domain.Task, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	patch := repository.TaskPatch{
		Description: input.Description,
		Deadline:    input.Deadline,
		Completed:   input.Completed,
		CompletedAt: uc.now(),
	}

	updated, err := uc.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if input.Completed != nil && *input.Completed {
		uc.logger.Info("task completed", zap.String("task_id", id))
	}
	return updated, nil
}

// CompleteTask marks the task done now.
func (uc *UseCase) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	completed := true
	return uc.UpdateTask(ctx, id, UpdateInput{Completed: &completed})
}

// DeleteTask removes a single task; orders are never affected.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("task deleted", zap.String("task_id", id))
	return nil
}

func validateCreate(input CreateInput) error {
	fields := make(map[string]string)

	if input.Description == "" {
		fields["description"] = "Task description is required"
	}
	if input.Deadline.IsZero() {
		fields["deadline"] = "Deadline is required"
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func validateUpdate(input UpdateInput) error {
	fields := make(map[string]string)

	if input.Description != nil && *input.Description == "" {
		fields["description"] = "Task description cannot be empty"
	}
	if input.Deadline != nil && input.Deadline.IsZero() {
		fields["deadline"] = "Deadline cannot be empty"
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
