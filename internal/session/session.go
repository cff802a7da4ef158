package session

import (
	"errors"
	"time"
)

var (
	ErrAlreadyActive   = errors.New("session already active")
	ErrNoActiveSession = errors.New("no active session")
)

// Session is the open check-in period.
type Session struct {
	StartedAt time.Time
}

type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	default:
		return "idle"
	}
}
