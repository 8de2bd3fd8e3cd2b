package handler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/repository"
)

func newRequestCtx(method, uri string, body []byte) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != nil {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBody(body)
	}
	return ctx
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	seq    int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) List(_ context.Context, _ repository.OrderFilter) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.seq++
	copied := *order
	copied.ID = fmt.Sprintf("order-%d", r.seq)
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.orders[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) UpdateMeeting(_ context.Context, id string, doneToday bool, lastMeetingDate time.Time) error {
	order, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.MeetingDoneToday = doneToday
	order.LastMeetingDate = &lastMeetingDate
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeTaskRepo struct {
	tasks  map[string]*domain.Task
	orders *fakeOrderRepo
	seq    int
}

func newFakeTaskRepo(orders *fakeOrderRepo) *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task), orders: orders}
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		copied := *task
		if filter.WithOrder && copied.OrderID != "" && r.orders != nil {
			if order, ok := r.orders.orders[copied.OrderID]; ok {
				attached := *order
				copied.Order = &attached
			}
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.Before(out[j].Deadline) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task.OrderID != "" && r.orders != nil {
		if _, ok := r.orders.orders[task.OrderID]; !ok {
			return nil, domain.NewValidationError(map[string]string{"orderId": "referenced order does not exist"})
		}
	}
	r.seq++
	copied := *task
	copied.ID = fmt.Sprintf("task-%d", r.seq)
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.tasks[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, id string, patch repository.TaskPatch) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Deadline != nil {
		task.Deadline = *patch.Deadline
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
		if *patch.Completed {
			stamp := patch.CompletedAt
			task.CompletedAt = &stamp
		} else {
			task.CompletedAt = nil
		}
	}
	task.UpdatedAt = time.Now()
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}
