package bookingflow

import (
	"time"

	"churchcms/internal/domain"
)

const weekdaysShown = 5

// Navigator is the week window of the date picker: Monday to Friday starting
// at a movable anchor.
type Navigator struct {
	weekStart time.Time
}

// NewNavigator anchors the window on the most recent Monday relative to now.
func NewNavigator(now time.Time) *Navigator {
	return &Navigator{weekStart: MostRecentMonday(now)}
}

// MostRecentMonday returns midnight of the Monday on or before t, in t's location.
func MostRecentMonday(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (n *Navigator) WeekStart() time.Time {
	return n.weekStart
}

// Days returns the weekdays of the current window.
func (n *Navigator) Days() []time.Time {
	days := make([]time.Time, 0, weekdaysShown)
	for i := 0; i < weekdaysShown; i++ {
		days = append(days, n.weekStart.AddDate(0, 0, i))
	}
	return days
}

// Dates returns Days formatted as YYYY-MM-DD.
func (n *Navigator) Dates() []string {
	days := n.Days()
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(domain.DateLayout)
	}
	return out
}

func (n *Navigator) NextWeek() {
	n.weekStart = n.weekStart.AddDate(0, 0, 7)
}

func (n *Navigator) PrevWeek() {
	n.weekStart = n.weekStart.AddDate(0, 0, -7)
}

// CanGoBack reports whether the previous week still contains today or later.
func (n *Navigator) CanGoBack(now time.Time) bool {
	return n.weekStart.After(MostRecentMonday(now))
}

// Selectable reports whether day can be picked: it is not in the past and the
// index has at least one available slot on it.
func Selectable(day, now time.Time, index SlotIndex) bool {
	if startOfDay(day).Before(startOfDay(now)) {
		return false
	}
	return index.HasAvailable(day.Format(domain.DateLayout))
}
