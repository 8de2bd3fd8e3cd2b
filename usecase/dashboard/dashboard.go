package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/repository"
)

// PendingTaskLimit caps the "what's next" list the dashboard shows.
const PendingTaskLimit = 20

// View bundles everything the dashboard renders in one fetch.
type View struct {
	Orders []domain.Order       `json:"orders"`
	Tasks  []domain.Task        `json:"tasks"`
	Stats  domain.DashboardStats `json:"stats"`
}

type UseCase struct {
	orders repository.OrderRepository
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(orders repository.OrderRepository, tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		orders: orders,
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// Load fetches orders and pending tasks and computes the aggregate
// statistics against the current instant. Overdue counts are derived on
// every read; nothing is cached.
func (uc *UseCase) Load(ctx context.Context) (*View, error) {
	orders, err := uc.orders.List(ctx, repository.OrderFilter{WithTasks: true})
	if err != nil {
		return nil, err
	}

	completed := false
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{
		Completed: &completed,
		WithOrder: true,
		Limit:     PendingTaskLimit,
	})
	if err != nil {
		return nil, err
	}

	return &View{
		Orders: orders,
		Tasks:  tasks,
		Stats:  domain.AggregateStats(orders, tasks, uc.now()),
	}, nil
}
