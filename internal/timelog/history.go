package timelog

import "time"

// History is the append-only log of completed sessions, newest first.
// It has a single owner and is not safe for concurrent use.
type History struct {
	records []Record
	dayOf   DayFunc
}

func NewHistory(dayOf DayFunc) *History {
	if dayOf == nil {
		dayOf = DayOfMonth
	}
	return &History{dayOf: dayOf}
}

// Append puts r at the head of the history.
func (h *History) Append(r Record) {
	h.records = append([]Record{r}, h.records...)
}

func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

func (h *History) Latest() (Record, bool) {
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[0], true
}

func (h *History) Count() int {
	return len(h.records)
}

func (h *History) DayOf(t time.Time) int {
	return h.dayOf(t)
}

// SessionDays returns the days of month on which a recorded session started.
func (h *History) SessionDays() DaySet {
	days := make(DaySet, len(h.records))
	for _, r := range h.records {
		days.Add(h.dayOf(r.Start))
	}
	return days
}

func (h *History) TotalDuration() time.Duration {
	var total time.Duration
	for _, r := range h.records {
		total += r.Duration()
	}
	return total
}
