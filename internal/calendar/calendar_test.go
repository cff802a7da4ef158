package calendar

import (
	"reflect"
	"testing"
	"time"

	"gymclock/internal/session"
	"gymclock/internal/timelog"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 18, 0, 0, 0, time.UTC)
}

func historyOn(days ...int) *timelog.History {
	h := timelog.NewHistory(nil)
	for i, d := range days {
		start := day(d)
		h.Append(timelog.Record{ID: string(rune('a' + i)), Start: start, End: start.Add(time.Hour)})
	}
	return h
}

func TestAttendedDaysIncludesOpenSession(t *testing.T) {
	t.Parallel()
	h := historyOn(3, 17)
	open := &session.Session{StartedAt: day(20)}

	got := AttendedDays(h, open)
	if !reflect.DeepEqual(got.Sorted(), []int{3, 17, 20}) {
		t.Fatalf("expected {3 17 20}, got %v", got.Sorted())
	}
	again := AttendedDays(h, open)
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("repeated projection differs: %v vs %v", got.Sorted(), again.Sorted())
	}
}

func TestAttendedDaysWithoutOpenSession(t *testing.T) {
	t.Parallel()
	h := historyOn(3, 3, 17)
	if got := AttendedDays(h, nil).Sorted(); !reflect.DeepEqual(got, []int{3, 17}) {
		t.Fatalf("expected {3 17}, got %v", got)
	}
	if AttendedDays(timelog.NewHistory(nil), nil).Len() != 0 {
		t.Fatalf("empty history should project no days")
	}
}

func TestAttendedDaysTracksHistoryChanges(t *testing.T) {
	t.Parallel()
	h := historyOn(3)
	before := AttendedDays(h, nil)
	h.Append(timelog.Record{ID: "new", Start: day(9), End: day(9).Add(time.Hour)})
	after := AttendedDays(h, nil)
	if before.Has(9) || !after.Has(9) {
		t.Fatalf("projection must reflect history at call time: before=%v after=%v", before.Sorted(), after.Sorted())
	}
}

func TestProgressClampsAtGoal(t *testing.T) {
	t.Parallel()
	many := timelog.NewDaySet()
	for d := 1; d <= 25; d++ {
		many.Add(d)
	}
	cases := []struct {
		name string
		set  timelog.DaySet
		goal int
		want float64
	}{
		{"empty", timelog.NewDaySet(), 20, 0},
		{"half", timelog.NewDaySet(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 20, 50},
		{"over goal", many, 20, 100},
		{"small goal", timelog.NewDaySet(1), 4, 25},
		{"invalid goal falls back", timelog.NewDaySet(1, 2), 0, 10},
	}
	for _, tc := range cases {
		if got := Progress(tc.set, tc.goal); got != tc.want {
			t.Fatalf("%s: expected %.1f, got %.1f", tc.name, tc.want, got)
		}
	}
}

func TestClassifyFlagsAreIndependent(t *testing.T) {
	t.Parallel()
	attended := timelog.NewDaySet(5, 12, 20)

	cases := []struct {
		day  int
		want DayStatus
	}{
		{5, DayStatus{Day: 5, Attended: true}},
		{12, DayStatus{Day: 12, Attended: true, Today: true}},
		{13, DayStatus{Day: 13, Future: true}},
		{20, DayStatus{Day: 20, Attended: true, Future: true}},
		{1, DayStatus{Day: 1}},
	}
	for _, tc := range cases {
		if got := Classify(tc.day, attended, 12); got != tc.want {
			t.Fatalf("Classify(%d): expected %+v, got %+v", tc.day, tc.want, got)
		}
	}
}

func TestMonthGrid(t *testing.T) {
	t.Parallel()
	grid := Month(30, timelog.NewDaySet(2), 15)
	if len(grid) != 30 {
		t.Fatalf("expected 30 cells, got %d", len(grid))
	}
	if grid[0].Day != 1 || grid[29].Day != 30 {
		t.Fatalf("grid should cover days 1..30")
	}
	if !grid[1].Attended || !grid[14].Today || !grid[15].Future {
		t.Fatalf("unexpected classification: %+v %+v %+v", grid[1], grid[14], grid[15])
	}
	if len(Month(-1, nil, 1)) != 0 {
		t.Fatalf("negative length should produce an empty grid")
	}
}

func TestDaysIn(t *testing.T) {
	t.Parallel()
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysIn(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysIn(%d, %s): expected %d, got %d", tc.year, tc.month, tc.want, got)
		}
	}
}

func TestCycleGrid(t *testing.T) {
	t.Parallel()
	grid := DefaultCycle.Grid(14)
	if len(grid) != 28 {
		t.Fatalf("expected 28 cycle days, got %d", len(grid))
	}
	for _, st := range grid {
		wantPeriod := st.Day <= 5
		wantFertile := st.Day >= 13 && st.Day <= 17
		if st.Period != wantPeriod || st.Fertile != wantFertile {
			t.Fatalf("day %d: unexpected status %+v", st.Day, st)
		}
		if st.Current != (st.Day == 14) {
			t.Fatalf("day %d: current flag wrong", st.Day)
		}
	}
}
