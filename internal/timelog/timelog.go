package timelog

import (
	"fmt"
	"sort"
	"time"
)

// Record is a completed check-in/check-out session.
type Record struct {
	ID    string
	Start time.Time
	End   time.Time
}

func (r Record) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if !r.End.After(r.Start) {
		return fmt.Errorf("record %s: end %s is not after start %s", r.ID, r.End.Format(time.RFC3339), r.Start.Format(time.RFC3339))
	}
	return nil
}

// DurationMinutes rounds the record's length to whole minutes, half up.
func DurationMinutes(r Record) int {
	ms := r.Duration().Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return int((ms + 30000) / 60000)
}

// DayFunc extracts the calendar day of month from a timestamp.
type DayFunc func(time.Time) int

func DayOfMonth(t time.Time) int {
	return t.Day()
}

// DaySet is a set of days of the month.
type DaySet map[int]struct{}

func NewDaySet(days ...int) DaySet {
	s := make(DaySet, len(days))
	for _, d := range days {
		s.Add(d)
	}
	return s
}

func (s DaySet) Add(day int) {
	s[day] = struct{}{}
}

func (s DaySet) Has(day int) bool {
	_, ok := s[day]
	return ok
}

func (s DaySet) Len() int {
	return len(s)
}

func (s DaySet) Sorted() []int {
	days := make([]int, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
