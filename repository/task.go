package repository

import (
	"context"
	"time"

	"github.com/revtrack/backend/domain"
)

// TaskFilter narrows task listings. Tasks are always returned by deadline,
// soonest first.
type TaskFilter struct {
	Completed *bool
	WithOrder bool
	Limit     int
}

// TaskPatch carries partial-update fields; nil pointers leave the column
// untouched. Setting Completed drives CompletedAt: true stamps it with
// CompletedAt (re-stamping on repeat), false clears it.
type TaskPatch struct {
	Description *string
	Deadline    *time.Time
	Completed   *bool
	CompletedAt time.Time
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
