// Package feedback tracks the submission lifecycle shown to the user.
//
// The lifecycle is Idle -> Submitting -> {Success, Failed} -> Idle. Success
// opens a notification that hides itself after a fixed duration or on
// dismissal; Failed keeps the error visible until the next attempt.
package feedback

import (
	"sync"
	"time"

	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
)

type State int

const (
	Idle State = iota
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// DismissReason says why the notification is being closed.
type DismissReason int

const (
	// ReasonClickAway is an interaction elsewhere on the form. It never
	// closes the notification.
	ReasonClickAway DismissReason = iota
	ReasonExplicit
	ReasonTimeout
)

const DefaultAutoHide = 4 * time.Second

// Snapshot is a consistent view of the machine at one instant.
type Snapshot struct {
	State            State
	NotificationOpen bool
	Notification     string
	Err              error
}

// Machine is safe for concurrent use.
type Machine struct {
	mu       sync.Mutex
	state    State
	autoHide time.Duration
	now      func() time.Time

	notification string
	openedAt     time.Time
	open         bool
	err          error
}

type Option func(*Machine)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

func WithAutoHide(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.autoHide = d
		}
	}
}

func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		state:    Idle,
		autoHide: DefaultAutoHide,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin enters Submitting. A previous outcome is cleared. While a
// submission is in flight it returns ErrSubmissionInFlight.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Submitting {
		return domainErrors.ErrSubmissionInFlight
	}

	m.state = Submitting
	m.open = false
	m.notification = ""
	m.err = nil
	return nil
}

// Succeed moves Submitting -> Success and opens the notification.
func (m *Machine) Succeed(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Submitting {
		return
	}
	m.state = Success
	m.notification = message
	m.openedAt = m.now()
	m.open = true
}

// Fail moves Submitting -> Failed and records err.
func (m *Machine) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Submitting {
		return
	}
	m.state = Failed
	m.err = err
}

// Settle returns from an outcome to Idle. The notification and error stay
// visible.
func (m *Machine) Settle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Success || m.state == Failed {
		m.state = Idle
	}
}

func (m *Machine) Dismiss(reason DismissReason) {
	if reason == ReasonClickAway {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

// ClearError hides the inline error, e.g. once the user starts correcting
// the draft.
func (m *Machine) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = nil
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// AutoHide is how long the notification stays open on its own.
func (m *Machine) AutoHide() time.Duration {
	return m.autoHide
}

// Snapshot reports the machine state; the notification is closed once
// autoHide has elapsed since it opened.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open && m.now().Sub(m.openedAt) >= m.autoHide {
		m.open = false
	}

	s := Snapshot{
		State:            m.state,
		NotificationOpen: m.open,
		Err:              m.err,
	}
	if m.open {
		s.Notification = m.notification
	}
	return s
}
