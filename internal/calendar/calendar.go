// Package calendar derives the monthly attendance grid and goal progress from
// session history. Everything here is recomputed on each call; nothing is
// cached between calls.
package calendar

import (
	"time"

	"gymclock/internal/session"
	"gymclock/internal/timelog"
)

const DefaultGoalSessions = 20

// AttendedDays is the set of days on which a recorded or open session started.
func AttendedDays(h *timelog.History, open *session.Session) timelog.DaySet {
	days := h.SessionDays()
	if open != nil {
		days.Add(h.DayOf(open.StartedAt))
	}
	return days
}

// Progress returns the percentage of goal reached, clamped to 100.
func Progress(attended timelog.DaySet, goal int) float64 {
	if goal <= 0 {
		goal = DefaultGoalSessions
	}
	pct := float64(attended.Len()) * 100 / float64(goal)
	if pct > 100 {
		pct = 100
	}
	return pct
}

type DayStatus struct {
	Day      int
	Attended bool
	Today    bool
	Future   bool
}

func Classify(day int, attended timelog.DaySet, today int) DayStatus {
	return DayStatus{
		Day:      day,
		Attended: attended.Has(day),
		Today:    day == today,
		Future:   day > today,
	}
}

// Month classifies days 1..length.
func Month(length int, attended timelog.DaySet, today int) []DayStatus {
	if length < 0 {
		length = 0
	}
	grid := make([]DayStatus, 0, length)
	for day := 1; day <= length; day++ {
		grid = append(grid, Classify(day, attended, today))
	}
	return grid
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
