package repository

import (
	"context"
	"time"

	"github.com/revtrack/backend/domain"
)

// OrderFilter narrows order listings. Orders are always returned newest first.
type OrderFilter struct {
	WithTasks bool
	Status    domain.Status
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	// UpdateMeeting overwrites the meeting state of an order. Idempotent: the
	// same action applied twice leaves the same row.
	UpdateMeeting(ctx context.Context, id string, doneToday bool, lastMeetingDate time.Time) error
	// Delete removes the order and, through the schema's cascade rule, all of
	// its tasks in the same transaction.
	Delete(ctx context.Context, id string) error
}
