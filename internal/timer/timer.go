package timer

import (
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

var (
	ErrRunning    = errors.New("timer already running")
	ErrNotRunning = errors.New("timer not running")
)

// Timer measures one open interval and reports its elapsed time on every tick.
// Stop does not return until the tick loop has exited, so onTick is never
// called after Stop or Close returns.
type Timer struct {
	mu        sync.RWMutex
	clock     clock.Clock
	interval  time.Duration
	onTick    func(time.Duration)
	startedAt time.Time
	last      time.Duration
	running   bool
	stopChan  chan struct{}
	done      chan struct{}
}

// New returns an idle timer. onTick must not block; it runs on the tick
// goroutine.
func New(clk clock.Clock, interval time.Duration, onTick func(time.Duration)) *Timer {
	if clk == nil {
		clk = clock.New()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{
		clock:    clk,
		interval: interval,
		onTick:   onTick,
	}
}

func (t *Timer) Start() (time.Time, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return time.Time{}, ErrRunning
	}

	t.running = true
	t.startedAt = t.clock.Now()
	t.last = 0
	t.stopChan = make(chan struct{})
	t.done = make(chan struct{})

	ticker := t.clock.Ticker(t.interval)
	go t.loop(ticker, t.stopChan, t.done)

	return t.startedAt, nil
}

func (t *Timer) loop(ticker *clock.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A tick and a stop can be ready together; stop wins.
			select {
			case <-stop:
				return
			default:
			}
			elapsed := t.observe()
			if t.onTick != nil {
				t.onTick(elapsed)
			}
		}
	}
}

// observe reads the clock and keeps the reported value non-decreasing.
func (t *Timer) observe() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := t.clock.Since(t.startedAt)
	if elapsed < t.last {
		elapsed = t.last
	}
	t.last = elapsed
	return elapsed
}

// Stop cancels the tick loop and returns the time the interval ended.
func (t *Timer) Stop() (time.Time, error) {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return time.Time{}, ErrNotRunning
	}
	t.running = false
	end := t.clock.Now()
	stop, done := t.stopChan, t.done
	t.mu.Unlock()

	close(stop)
	<-done
	return end, nil
}

// Close stops the timer if it is running. It is safe to call more than once.
func (t *Timer) Close() {
	_, _ = t.Stop()
}

// Elapsed returns the live elapsed time, or zero when the timer is idle.
func (t *Timer) Elapsed() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.running {
		return 0
	}
	elapsed := t.clock.Since(t.startedAt)
	if elapsed < t.last {
		elapsed = t.last
	}
	return elapsed
}

func (t *Timer) StartedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.startedAt
}

func (t *Timer) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}
