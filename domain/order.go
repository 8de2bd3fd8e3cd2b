package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the lifecycle states of a revision order.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusWaiting   Status = "WAITING"
	StatusCompleted Status = "COMPLETED"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusWaiting, StatusCompleted:
		return true
	}
	return false
}

// Order represents a billable client engagement with an optional recurring
// daily meeting. OrderCode is the business-facing external code, distinct
// from the internal ID.
type Order struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"clientName"`
	OrderCode   string          `json:"orderId"`
	ProjectName string          `json:"projectName"`
	Amount      decimal.Decimal `json:"amount"`
	Status      Status          `json:"status"`

	// MeetingTime is a wall-clock HH:MM value; empty means the order has no
	// recurring daily meeting.
	MeetingTime      string     `json:"meetingTime,omitempty"`
	MeetingDoneToday bool       `json:"meetingDoneToday"`
	LastMeetingDate  *time.Time `json:"lastMeetingDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Tasks []Task `json:"tasks,omitempty"`
}

func (o *Order) IsActive() bool {
	return o != nil && o.Status == StatusActive
}

// MeetingCompletedToday reports whether today's meeting instance has been
// marked done. MeetingDoneToday on its own is not trustworthy: it survives
// day rollover, so it only counts when LastMeetingDate falls on the same
// calendar date as now.
func (o *Order) MeetingCompletedToday(now time.Time) bool {
	if o == nil || !o.MeetingDoneToday || o.LastMeetingDate == nil {
		return false
	}
	return sameCalendarDay(*o.LastMeetingDate, now)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
