package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAggregateStats(t *testing.T) {
	now := time.Date(2026, 3, 2, 16, 0, 0, 0, time.Local)

	orders := []Order{
		{ID: "o1", Status: StatusActive, Amount: money("500.00"), MeetingTime: "09:00"},
		{ID: "o2", Status: StatusWaiting, Amount: money("120.50"), MeetingTime: "15:45"},
		{ID: "o3", Status: StatusActive, Amount: money("0.01")},
	}
	pending := []Task{
		{ID: "t1", Deadline: now.Add(2 * time.Hour)},
		{ID: "t2", Deadline: now.Add(48 * time.Hour)},
	}

	stats := AggregateStats(orders, pending, now)

	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.ActiveOrders)
	assert.Equal(t, 2, stats.PendingTasks)
	assert.True(t, stats.TotalValue.Equal(money("620.51")), "got %s", stats.TotalValue)
	// o1 is past 09:30, o2 is inside its grace window, o3 has no meeting.
	assert.Equal(t, 1, stats.OverdueMessages)
}

func TestAggregateStatsExactDecimalSum(t *testing.T) {
	// 0.1 + 0.2 repeated: drifts under binary floats, exact under decimal.
	var orders []Order
	for i := 0; i < 100; i++ {
		orders = append(orders, Order{Amount: money("0.10")})
		orders = append(orders, Order{Amount: money("0.20")})
	}

	stats := AggregateStats(orders, nil, time.Now())
	assert.True(t, stats.TotalValue.Equal(money("30.00")), "got %s", stats.TotalValue)
}

func TestAggregateStatsOrderIndependent(t *testing.T) {
	now := time.Date(2026, 3, 2, 16, 0, 0, 0, time.Local)

	orders := []Order{
		{ID: "o1", Status: StatusActive, Amount: money("10.10"), MeetingTime: "08:00"},
		{ID: "o2", Status: StatusCompleted, Amount: money("20.20")},
		{ID: "o3", Status: StatusActive, Amount: money("30.30"), MeetingTime: "15:50"},
	}
	reversed := []Order{orders[2], orders[1], orders[0]}

	tasks := []Task{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}
	shuffled := []Task{tasks[1], tasks[2], tasks[0]}

	a := AggregateStats(orders, tasks, now)
	b := AggregateStats(reversed, shuffled, now)

	assert.Equal(t, a.TotalOrders, b.TotalOrders)
	assert.Equal(t, a.ActiveOrders, b.ActiveOrders)
	assert.Equal(t, a.PendingTasks, b.PendingTasks)
	assert.Equal(t, a.OverdueMessages, b.OverdueMessages)
	assert.True(t, a.TotalValue.Equal(b.TotalValue))
}

func TestAggregateStatsEmpty(t *testing.T) {
	stats := AggregateStats(nil, nil, time.Now())

	assert.Equal(t, 0, stats.TotalOrders)
	assert.True(t, stats.TotalValue.Equal(decimal.Zero))
}
