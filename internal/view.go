package internal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"gymclock/internal/calendar"
	"gymclock/internal/timelog"
	"gymclock/internal/timer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Align(lipgloss.Center)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	attendedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Bold(true)

	todayStyle = lipgloss.NewStyle().
			Underline(true).
			Bold(true)

	futureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	periodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160"))

	fertileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

const historyPageSize = 5

func (m *Model) attendanceView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(60).Render("Attendance"))
	sb.WriteString("\n\n")

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.membershipView(),
		"  ",
		m.checkInView(),
	)
	sb.WriteString(boxes)
	sb.WriteString("\n\n")

	now := m.clock.Now()
	grid := calendar.Month(calendar.DaysIn(now.Year(), now.Month()), m.AttendedDays(), now.Day())
	sb.WriteString(logHeaderStyle.Render("Calendar Log"))
	sb.WriteString("\n")
	sb.WriteString(RenderMonth(grid))
	sb.WriteString("\n")
	sb.WriteString(m.historyView(now))

	if m.Err != nil {
		sb.WriteString("\n")
		sb.WriteString(errStyle.Render("Error: " + m.Err.Error()))
	}
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("Check in/out: Enter | Scroll history: Up/Down | Quit: q"))

	return sb.String()
}

func (m *Model) membershipView() string {
	status := inactiveStyle.Render("Off-Duty")
	if _, ok := m.Active(); ok {
		status = runningStyle.Render("Session Active")
	}
	pct := calendar.Progress(m.AttendedDays(), m.Goal)

	var sb strings.Builder
	sb.WriteString("Current Membership\n\n")
	sb.WriteString(fmt.Sprintf("Status: %s\n", status))
	sb.WriteString(ProgressBar(pct, 24))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Goal: %d Sessions  %s", m.Goal, FormatPercent(pct)))

	return boxStyle.Width(32).Height(7).Render(sb.String())
}

func (m *Model) checkInView() string {
	var sb strings.Builder
	if open, ok := m.Active(); ok {
		sb.WriteString("Session Active\n")
		sb.WriteString(logTimeStyle.Render("Started at " + open.StartedAt.Format("15:04")))
		sb.WriteString("\n\n")
		sb.WriteString(timerRunningStyle.Render(timer.FormatDuration(m.Elapsed)))
		sb.WriteString("\n\n")
		sb.WriteString(helpStyle.Render("Enter: Check out"))
	} else {
		sb.WriteString("Ready to Train?\n")
		sb.WriteString(logTimeStyle.Render("Manual entrance log"))
		sb.WriteString("\n\n")
		sb.WriteString(timerDisplayStyle.Render(timer.FormatDuration(0)))
		sb.WriteString("\n\n")
		sb.WriteString(helpStyle.Render("Enter: Check in"))
	}
	return boxStyle.Width(24).Height(7).Render(sb.String())
}

func (m *Model) historyView(now time.Time) string {
	var sb strings.Builder
	sb.WriteString(logHeaderStyle.Render("Session History"))
	sb.WriteString("\n")

	records := m.History.Records()
	if len(records) == 0 {
		if _, ok := m.Active(); !ok {
			sb.WriteString(inactiveStyle.Render("  No sessions logged yet"))
			sb.WriteString("\n")
		}
		return sb.String()
	}

	start := min(m.HistoryScroll, len(records)-1)
	end := min(start+historyPageSize, len(records))
	for _, r := range records[start:end] {
		sb.WriteString(FormatRecord(r, now))
		sb.WriteString("\n")
	}
	sb.WriteString(logTimeStyle.Render(fmt.Sprintf("  %d sessions, %s total", m.History.Count(), timer.FormatDuration(m.History.TotalDuration()))))
	sb.WriteString("\n")
	return sb.String()
}

// FormatRecord renders one history line relative to now.
func FormatRecord(r timelog.Record, now time.Time) string {
	when := logTimeStyle.Render(r.Start.Format("Jan 02 15:04"))
	ago := logTimeStyle.Render("(" + humanize.RelTime(r.Start, now, "ago", "from now") + ")")
	return fmt.Sprintf("  Gym Session  %s %s  %dm", when, ago, timelog.DurationMinutes(r))
}

func FormatPercent(pct float64) string {
	return fmt.Sprintf("%d%% Progress", int(math.Round(pct)))
}

func ProgressBar(pct float64, width int) string {
	filled := int(math.Round(pct / 100 * float64(width)))
	filled = max(0, min(filled, width))
	return progressStyle.Render(strings.Repeat("█", filled)) + inactiveStyle.Render(strings.Repeat("░", width-filled))
}

// RenderMonth lays the grid out in rows of seven.
func RenderMonth(grid []calendar.DayStatus) string {
	var sb strings.Builder
	for i, d := range grid {
		cell := fmt.Sprintf("%3d", d.Day)
		if d.Attended {
			cell = "  ✓"
		}
		style := lipgloss.NewStyle()
		switch {
		case d.Attended:
			style = attendedStyle
		case d.Future:
			style = futureStyle
		}
		if d.Today {
			style = style.Inherit(todayStyle)
		}
		sb.WriteString(style.Render(cell))
		sb.WriteString(" ")
		if (i+1)%7 == 0 {
			sb.WriteString("\n")
		}
	}
	if len(grid)%7 != 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

func RenderCycle(grid []calendar.CycleStatus) string {
	var sb strings.Builder
	sb.WriteString("  M   T   W   T   F   S   S\n")
	for i, d := range grid {
		cell := fmt.Sprintf("%3d", d.Day)
		style := lipgloss.NewStyle()
		switch {
		case d.Period:
			style = periodStyle
		case d.Fertile:
			style = fertileStyle
		}
		if d.Current {
			cell = fmt.Sprintf("[%2d]", d.Day)
			style = style.Inherit(todayStyle)
		} else {
			cell += " "
		}
		sb.WriteString(style.Render(cell))
		if (i+1)%7 == 0 {
			sb.WriteString("\n")
		}
	}
	if len(grid)%7 != 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}
