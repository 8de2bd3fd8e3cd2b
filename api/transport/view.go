package transport

import (
	"time"

	"github.com/revtrack/backend/domain"
)

// OrderView is an order enriched with its meeting status, computed freshly
// against the instant of the request.
type OrderView struct {
	domain.Order
	MeetingStatus domain.MeetingStatus `json:"meetingStatus"`
}

// TaskView is a task enriched with the deadline-derived dashboard fields.
type TaskView struct {
	domain.Task
	TimeRemaining string `json:"timeRemaining"`
	IsUrgent      bool   `json:"isUrgent"`
}

// NewOrderView derives the presentation fields for one order.
func NewOrderView(order domain.Order, now time.Time) OrderView {
	return OrderView{
		Order:         order,
		MeetingStatus: domain.EvaluateMeeting(&order, now),
	}
}

// NewOrderViews derives presentation fields for a list of orders.
func NewOrderViews(orders []domain.Order, now time.Time) []OrderView {
	views := make([]OrderView, len(orders))
	for i, order := range orders {
		views[i] = NewOrderView(order, now)
	}
	return views
}

// NewTaskView derives the presentation fields for one task.
func NewTaskView(task domain.Task, now time.Time) TaskView {
	return TaskView{
		Task:          task,
		TimeRemaining: domain.TimeRemaining(task.Deadline, now),
		IsUrgent:      domain.IsUrgent(task.Deadline, now),
	}
}

// NewTaskViews derives presentation fields for a list of tasks.
func NewTaskViews(tasks []domain.Task, now time.Time) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, task := range tasks {
		views[i] = NewTaskView(task, now)
	}
	return views
}

// OrderEnvelope wraps a single order response.
type OrderEnvelope struct {
	Order OrderView `json:"order"`
}

// OrdersEnvelope wraps an order listing.
type OrdersEnvelope struct {
	Orders []OrderView `json:"orders"`
}

// TaskEnvelope wraps a single task response.
type TaskEnvelope struct {
	Task TaskView `json:"task"`
}

// TasksEnvelope wraps a task listing.
type TasksEnvelope struct {
	Tasks []TaskView `json:"tasks"`
}
