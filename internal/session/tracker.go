package session

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gymclock/internal/metrics"
	"gymclock/internal/timelog"
	"gymclock/internal/timer"
)

// Config holds tracker dependencies. Zero values select the real clock, a one
// second tick and random UUIDs. OnTick must not block or call back into the
// Tracker.
type Config struct {
	Clock        clock.Clock
	TickInterval time.Duration
	OnTick       func(elapsed time.Duration)
	NewID        func() string
}

// Tracker owns the open session and its tick.
type Tracker struct {
	mu     sync.Mutex
	timer  *timer.Timer
	newID  func() string
	open   *Session
	logger zerolog.Logger
}

func NewTracker(cfg Config, logger zerolog.Logger) *Tracker {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Tracker{
		timer:  timer.New(cfg.Clock, cfg.TickInterval, cfg.OnTick),
		newID:  cfg.NewID,
		logger: logger.With().Str("component", "session-tracker").Logger(),
	}
}

// CheckIn opens a session and starts the tick.
func (t *Tracker) CheckIn() (Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open != nil {
		metrics.RejectedTransitions.WithLabelValues("already_active").Inc()
		t.logger.Warn().
			Time("started_at", t.open.StartedAt).
			Msg("Check-in rejected, session already active")
		return Session{}, ErrAlreadyActive
	}

	startedAt, err := t.timer.Start()
	if err != nil {
		return Session{}, ErrAlreadyActive
	}
	t.open = &Session{StartedAt: startedAt}

	metrics.CheckInsTotal.Inc()
	metrics.SessionActive.Set(1)
	t.logger.Info().Time("started_at", startedAt).Msg("Checked in")

	return *t.open, nil
}

// CheckOut closes s, which must be the open session. The tick is stopped
// before CheckOut returns.
func (t *Tracker) CheckOut(s Session) (timelog.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open == nil || !t.open.StartedAt.Equal(s.StartedAt) {
		metrics.RejectedTransitions.WithLabelValues("no_active_session").Inc()
		t.logger.Warn().Msg("Check-out rejected, no matching active session")
		return timelog.Record{}, ErrNoActiveSession
	}

	end, err := t.timer.Stop()
	if err != nil {
		return timelog.Record{}, ErrNoActiveSession
	}
	start := t.open.StartedAt
	// Records always span a positive interval.
	if !end.After(start) {
		end = start.Add(time.Nanosecond)
	}
	t.open = nil

	record := timelog.Record{
		ID:    t.newID(),
		Start: start,
		End:   end,
	}

	metrics.CheckOutsTotal.Inc()
	metrics.SessionActive.Set(0)
	metrics.SessionDuration.Observe(record.Duration().Seconds())
	t.logger.Info().
		Str("record_id", record.ID).
		Dur("duration", record.Duration()).
		Int("minutes", timelog.DurationMinutes(record)).
		Msg("Checked out")

	return record, nil
}

func (t *Tracker) Active() (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open == nil {
		return Session{}, false
	}
	return *t.open, true
}

func (t *Tracker) State() State {
	if _, ok := t.Active(); ok {
		return Active
	}
	return Idle
}

// Elapsed is the live duration of the open session, zero when idle.
func (t *Tracker) Elapsed() time.Duration {
	return t.timer.Elapsed()
}

// Close stops the tick and drops any open session without recording it.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open != nil {
		t.logger.Info().Time("started_at", t.open.StartedAt).Msg("Discarding open session on close")
		metrics.SessionActive.Set(0)
		t.open = nil
	}
	t.timer.Close()
}
