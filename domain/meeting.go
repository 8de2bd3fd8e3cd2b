package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MeetingStatus classifies an order's daily meeting relative to an instant.
type MeetingStatus string

const (
	MeetingNotApplicable  MeetingStatus = "not_applicable"
	MeetingPending        MeetingStatus = "pending"
	MeetingOverdue        MeetingStatus = "overdue"
	MeetingCompletedToday MeetingStatus = "completed_today"
)

// MeetingAction is a user decision about today's meeting instance.
type MeetingAction string

const (
	MeetingMarkDone MeetingAction = "mark_done"
	MeetingSkip     MeetingAction = "skip"
)

// ValidMeetingAction reports whether a is a known meeting action.
func ValidMeetingAction(a MeetingAction) bool {
	return a == MeetingMarkDone || a == MeetingSkip
}

// MeetingGracePeriod is how far past the scheduled time a meeting may run
// before it counts as overdue. The threshold is strict: exactly 30 minutes
// late is still pending.
const MeetingGracePeriod = 30 * time.Minute

// EvaluateMeeting decides the meeting status of an order at the given instant.
// Orders without a meeting time (or with one that fails to parse, which the
// input boundary should have rejected) are not applicable.
func EvaluateMeeting(order *Order, now time.Time) MeetingStatus {
	if order == nil || order.MeetingTime == "" {
		return MeetingNotApplicable
	}
	if order.MeetingCompletedToday(now) {
		return MeetingCompletedToday
	}

	hour, minute, err := ParseMeetingTime(order.MeetingTime)
	if err != nil {
		return MeetingNotApplicable
	}

	scheduled := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if now.After(scheduled.Add(MeetingGracePeriod)) {
		return MeetingOverdue
	}
	return MeetingPending
}

// ParseMeetingTime parses a 24-hour HH:MM wall-clock value.
func ParseMeetingTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("meeting time %q is not in HH:MM format", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("meeting time %q has an invalid hour", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("meeting time %q has an invalid minute", value)
	}
	return hour, minute, nil
}
