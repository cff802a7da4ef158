package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gymclock/internal"
	"gymclock/internal/calendar"
	"gymclock/internal/session"
	"gymclock/internal/timelog"
)

func newTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the check-in terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), *configPath)
		},
	}
}

type recordView struct {
	ID      string    `yaml:"id"`
	Start   time.Time `yaml:"start"`
	End     time.Time `yaml:"end"`
	Minutes int       `yaml:"minutes"`
	Day     int       `yaml:"day"`
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unknown format %q: want text|yaml", format)
			}
			a, err := loadApp(ctxOf(cmd), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			h, err := a.repo.LoadHistory(ctxOf(cmd), nil)
			if err != nil {
				return err
			}
			return writeHistory(cmd.OutOrStdout(), h, format, time.Now())
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text|yaml")
	return cmd
}

func writeHistory(w io.Writer, h *timelog.History, format string, now time.Time) error {
	records := h.Records()
	if format == "yaml" {
		views := make([]recordView, 0, len(records))
		for _, r := range records {
			views = append(views, recordView{
				ID:      r.ID,
				Start:   r.Start,
				End:     r.End,
				Minutes: timelog.DurationMinutes(r),
				Day:     h.DayOf(r.Start),
			})
		}
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(views)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "no sessions logged yet")
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(w, internal.FormatRecord(r, now)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d sessions\n", h.Count())
	return err
}

func newCalendarCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Show this month's attendance and goal progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(ctxOf(cmd), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			h, err := a.repo.LoadHistory(ctxOf(cmd), nil)
			if err != nil {
				return err
			}
			return writeCalendar(cmd.OutOrStdout(), h, nil, a.cfg.Goal.Sessions, time.Now())
		},
	}
}

func writeCalendar(w io.Writer, h *timelog.History, open *session.Session, goal int, now time.Time) error {
	attended := calendar.AttendedDays(h, open)
	grid := calendar.Month(calendar.DaysIn(now.Year(), now.Month()), attended, h.DayOf(now))
	pct := calendar.Progress(attended, goal)

	_, err := fmt.Fprintf(w, "%s\n%s\nGoal: %d Sessions  %s\n",
		now.Format("January 2006"), internal.RenderMonth(grid), goal, internal.FormatPercent(pct))
	return err
}

func newCycleCmd() *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Show the cycle calendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := calendar.DefaultCycle
			if day < 1 || day > c.Length {
				return fmt.Errorf("day must be between 1 and %d, got %d", c.Length, day)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Cycle day %d of %d\n%s", day, c.Length, internal.RenderCycle(c.Grid(day)))
			return err
		},
	}
	cmd.Flags().IntVar(&day, "day", 14, "current cycle day")
	return cmd
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
