package timelog

import (
	"reflect"
	"testing"
	"time"
)

var base = time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC)

func rec(id string, start time.Time, d time.Duration) Record {
	return Record{ID: id, Start: start, End: start.Add(d)}
}

func TestAppendKeepsNewestFirst(t *testing.T) {
	t.Parallel()
	h := NewHistory(nil)
	r1 := rec("r1", base, time.Hour)
	r2 := rec("r2", base.AddDate(0, 0, 1), 30*time.Minute)

	h.Append(r1)
	h.Append(r2)

	got := h.Records()
	if !reflect.DeepEqual(got, []Record{r2, r1}) {
		t.Fatalf("expected [r2 r1], got %+v", got)
	}
	if h.Count() != 2 {
		t.Fatalf("expected count 2, got %d", h.Count())
	}
	latest, ok := h.Latest()
	if !ok || latest.ID != "r2" {
		t.Fatalf("expected latest r2, got %+v (ok=%v)", latest, ok)
	}

	got[0] = Record{}
	if again := h.Records(); again[0].ID != "r2" {
		t.Fatalf("Records must return a copy, history was mutated: %+v", again)
	}
}

func TestEmptyHistory(t *testing.T) {
	t.Parallel()
	h := NewHistory(nil)
	if _, ok := h.Latest(); ok {
		t.Fatalf("empty history should have no latest record")
	}
	if h.SessionDays().Len() != 0 || h.TotalDuration() != 0 {
		t.Fatalf("empty history should have no days or duration")
	}
}

func TestDurationMinutesRounding(t *testing.T) {
	t.Parallel()
	cases := []struct {
		span time.Duration
		want int
	}{
		{0, 0},
		{29999 * time.Millisecond, 0},
		{30000 * time.Millisecond, 1},
		{89999 * time.Millisecond, 1},
		{90000 * time.Millisecond, 2},
		{45 * time.Minute, 45},
		{25 * time.Hour, 1500},
	}
	for _, tc := range cases {
		if got := DurationMinutes(rec("x", base, tc.span)); got != tc.want {
			t.Fatalf("DurationMinutes(%v): expected %d, got %d", tc.span, tc.want, got)
		}
	}
}

func TestSessionDaysAndTotals(t *testing.T) {
	t.Parallel()
	h := NewHistory(nil)
	h.Append(rec("a", time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC), time.Hour))
	h.Append(rec("b", time.Date(2026, 3, 17, 7, 0, 0, 0, time.UTC), 30*time.Minute))
	h.Append(rec("c", time.Date(2026, 3, 17, 19, 0, 0, 0, time.UTC), 15*time.Minute))

	if got := h.SessionDays().Sorted(); !reflect.DeepEqual(got, []int{3, 17}) {
		t.Fatalf("expected days [3 17], got %v", got)
	}
	if h.TotalDuration() != 105*time.Minute {
		t.Fatalf("expected total 105m, got %v", h.TotalDuration())
	}
}

func TestCustomDayFunc(t *testing.T) {
	t.Parallel()
	tz := time.FixedZone("UTC+10", 10*3600)
	h := NewHistory(func(ts time.Time) int { return ts.In(tz).Day() })
	h.Append(rec("late", time.Date(2026, 3, 3, 20, 0, 0, 0, time.UTC), time.Hour))

	if !h.SessionDays().Has(4) {
		t.Fatalf("expected day 4 in UTC+10, got %v", h.SessionDays().Sorted())
	}
	if h.DayOf(time.Date(2026, 3, 3, 20, 0, 0, 0, time.UTC)) != 4 {
		t.Fatalf("DayOf should use the configured extractor")
	}
}

func TestRecordValidate(t *testing.T) {
	t.Parallel()
	if err := rec("ok", base, time.Second).Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
	if err := rec("", base, time.Second).Validate(); err == nil {
		t.Fatalf("record without id must fail")
	}
	if err := rec("zero", base, 0).Validate(); err == nil {
		t.Fatalf("zero-length record must fail")
	}
}
