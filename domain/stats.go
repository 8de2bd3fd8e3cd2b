package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the aggregate view rendered at the top of the dashboard.
// TotalValue is an exact decimal sum; amounts carry cents.
type DashboardStats struct {
	TotalOrders     int             `json:"totalOrders"`
	ActiveOrders    int             `json:"activeOrders"`
	PendingTasks    int             `json:"pendingTasks"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	OverdueMessages int             `json:"overdueMessages"`
}

// AggregateStats computes dashboard statistics from the current orders and
// the pending task list. Pure and order-independent: every component is a
// count or a commutative sum.
func AggregateStats(orders []Order, pendingTasks []Task, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalOrders:  len(orders),
		PendingTasks: len(pendingTasks),
		TotalValue:   decimal.Zero,
	}

	for i := range orders {
		order := &orders[i]
		if order.IsActive() {
			stats.ActiveOrders++
		}
		stats.TotalValue = stats.TotalValue.Add(order.Amount)
		if EvaluateMeeting(order, now) == MeetingOverdue {
			stats.OverdueMessages++
		}
	}
	return stats
}
