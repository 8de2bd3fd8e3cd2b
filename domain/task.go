package domain

import (
	"fmt"
	"time"
)

// Task is a deadline-bound unit of work. OrderID links it to an order when
// set; a task without one is a general task.
type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Deadline    time.Time  `json:"deadline"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	OrderID     string     `json:"orderId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Order *Order `json:"order,omitempty"`
}

func (t *Task) IsGeneral() bool {
	return t != nil && t.OrderID == ""
}

// UrgencyWindow is the horizon under which a task counts as urgent.
const UrgencyWindow = 24 * time.Hour

// TimeRemaining renders the span until a deadline as a dashboard label:
// "OVERDUE" once the deadline has passed, whole days or whole hours while
// they remain, and "Due soon" inside the final hour.
func TimeRemaining(deadline, now time.Time) string {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return "OVERDUE"
	}

	hours := int(diff.Hours())
	days := hours / 24

	if days > 0 {
		return fmt.Sprintf("%d day%s", days, plural(days))
	}
	if hours > 0 {
		return fmt.Sprintf("%d hour%s", hours, plural(hours))
	}
	return "Due soon"
}

// IsUrgent reports whether less than 24 hours remain before the deadline.
// Already-overdue tasks are urgent too; there is no separate tier for them.
func IsUrgent(deadline, now time.Time) bool {
	return deadline.Sub(now) < UrgencyWindow
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
