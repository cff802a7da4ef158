package internal

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"gymclock/internal/calendar"
	"gymclock/internal/session"
	"gymclock/internal/store"
	"gymclock/internal/timelog"
)

// MsgTick carries the elapsed time of the open session. Session numbers the
// check-in that produced it.
type MsgTick struct {
	Session uint64
	Elapsed time.Duration
}

var errModelClosed = errors.New("model closed")

type Options struct {
	Repo         *store.Repository
	Clock        clock.Clock
	Goal         int
	TickInterval time.Duration
	Logger       zerolog.Logger
}

type Model struct {
	History       *timelog.History
	Goal          int
	Elapsed       time.Duration
	HistoryScroll int
	Err           error

	tracker *session.Tracker
	repo    *store.Repository
	clock   clock.Clock
	ticks   chan MsgTick
	seq     atomic.Uint64
	closed  bool
	logger  zerolog.Logger
}

func NewModel(ctx context.Context, opts Options) (*Model, error) {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Goal <= 0 {
		opts.Goal = calendar.DefaultGoalSessions
	}

	history, err := opts.Repo.LoadHistory(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	m := &Model{
		History: history,
		Goal:    opts.Goal,
		repo:    opts.Repo,
		clock:   opts.Clock,
		ticks:   make(chan MsgTick, 1),
		logger:  opts.Logger.With().Str("component", "tui").Logger(),
	}
	m.tracker = session.NewTracker(session.Config{
		Clock:        opts.Clock,
		TickInterval: opts.TickInterval,
		OnTick:       m.pushTick,
	}, opts.Logger)

	return m, nil
}

// pushTick keeps only the newest elapsed value for the UI.
func (m *Model) pushTick(d time.Duration) {
	msg := MsgTick{Session: m.seq.Load(), Elapsed: d}
	select {
	case m.ticks <- msg:
		return
	default:
	}
	select {
	case <-m.ticks:
	default:
	}
	select {
	case m.ticks <- msg:
	default:
	}
}

func (m *Model) drainTicks() {
	for {
		select {
		case <-m.ticks:
		default:
			return
		}
	}
}

func waitForTick(ch <-chan MsgTick) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) Init() tea.Cmd {
	return waitForTick(m.ticks)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		// Ticks queued by an earlier session may still arrive; ignore them.
		if m.tracker.State() == session.Active && msg.Session == m.seq.Load() {
			m.Elapsed = msg.Elapsed
		}
		return m, waitForTick(m.ticks)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	return m.attendanceView()
}

func (m *Model) Active() (session.Session, bool) {
	return m.tracker.Active()
}

// AttendedDays projects the current history and open session.
func (m *Model) AttendedDays() timelog.DaySet {
	var open *session.Session
	if s, ok := m.tracker.Active(); ok {
		open = &s
	}
	return calendar.AttendedDays(m.History, open)
}

// Toggle checks in when idle and checks out when a session is open.
func (m *Model) Toggle() error {
	if m.closed {
		return errModelClosed
	}
	if open, ok := m.tracker.Active(); ok {
		return m.checkOut(open)
	}
	m.seq.Add(1)
	if _, err := m.tracker.CheckIn(); err != nil {
		return err
	}
	m.Elapsed = 0
	return nil
}

func (m *Model) checkOut(open session.Session) error {
	rec, err := m.tracker.CheckOut(open)
	if err != nil {
		return err
	}
	m.drainTicks()
	m.History.Append(rec)
	m.Elapsed = 0
	m.HistoryScroll = 0
	if err := m.repo.CreateRecord(context.Background(), rec); err != nil {
		m.logger.Error().Err(err).Str("record_id", rec.ID).Msg("Failed to archive session")
		return fmt.Errorf("failed to archive session: %w", err)
	}
	return nil
}

// Close records any open session, stops the tick and closes the store.
func (m *Model) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	var archiveErr error
	if open, ok := m.tracker.Active(); ok {
		archiveErr = m.checkOut(open)
	}
	m.tracker.Close()
	// No tick can be pushed once the tracker is closed.
	close(m.ticks)
	if err := m.repo.Close(); err != nil {
		return err
	}
	return archiveErr
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter", " ", "space":
		m.Err = m.Toggle()
	case "up", "k":
		if m.HistoryScroll > 0 {
			m.HistoryScroll--
		}
	case "down", "j":
		if m.HistoryScroll < m.History.Count()-1 {
			m.HistoryScroll++
		}
	}
	return m, nil
}
