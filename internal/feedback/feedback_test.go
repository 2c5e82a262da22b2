package feedback

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMachine() (*Machine, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return NewMachine(WithClock(clock.Now)), clock
}

func TestMachine_SuccessFlow(t *testing.T) {
	m, _ := newTestMachine()
	assert.Equal(t, Idle, m.State())

	require.NoError(t, m.Begin())
	assert.Equal(t, Submitting, m.State())

	m.Succeed("Recipe has been successfully saved!")
	snap := m.Snapshot()
	assert.Equal(t, Success, snap.State)
	assert.True(t, snap.NotificationOpen)
	assert.Equal(t, "Recipe has been successfully saved!", snap.Notification)
	assert.NoError(t, snap.Err)

	m.Settle()
	snap = m.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.True(t, snap.NotificationOpen, "settling keeps the notification visible")
}

func TestMachine_FailureFlow(t *testing.T) {
	m, _ := newTestMachine()
	boom := errors.New("500 Internal Server Error")

	require.NoError(t, m.Begin())
	m.Fail(boom)

	snap := m.Snapshot()
	assert.Equal(t, Failed, snap.State)
	assert.False(t, snap.NotificationOpen)
	assert.Equal(t, boom, snap.Err)

	m.Settle()
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, boom, m.Snapshot().Err)

	require.NoError(t, m.Begin(), "a failed submission can be retried")
	assert.NoError(t, m.Snapshot().Err, "a new attempt clears the previous error")
}

func TestMachine_BeginWhileSubmitting(t *testing.T) {
	m, _ := newTestMachine()
	require.NoError(t, m.Begin())

	err := m.Begin()

	assert.ErrorIs(t, err, domainErrors.ErrSubmissionInFlight)
	assert.Equal(t, Submitting, m.State())
}

func TestMachine_OutcomesOutsideSubmittingAreIgnored(t *testing.T) {
	m, _ := newTestMachine()

	m.Succeed("saved")
	m.Fail(errors.New("late"))

	snap := m.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.False(t, snap.NotificationOpen)
	assert.NoError(t, snap.Err)
}

func TestMachine_NotificationAutoHide(t *testing.T) {
	m, clock := newTestMachine()
	require.NoError(t, m.Begin())
	m.Succeed("saved")

	clock.Advance(DefaultAutoHide - time.Millisecond)
	assert.True(t, m.Snapshot().NotificationOpen)

	clock.Advance(time.Millisecond)
	snap := m.Snapshot()
	assert.False(t, snap.NotificationOpen)
	assert.Empty(t, snap.Notification)
}

func TestMachine_CustomAutoHide(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := NewMachine(WithClock(clock.Now), WithAutoHide(10*time.Second))
	require.NoError(t, m.Begin())
	m.Succeed("saved")

	clock.Advance(5 * time.Second)

	assert.True(t, m.Snapshot().NotificationOpen)
	assert.Equal(t, 10*time.Second, m.AutoHide())
}

func TestMachine_Dismiss(t *testing.T) {
	tests := []struct {
		name     string
		reason   DismissReason
		wantOpen bool
	}{
		{name: "click away keeps it open", reason: ReasonClickAway, wantOpen: true},
		{name: "explicit close hides it", reason: ReasonExplicit, wantOpen: false},
		{name: "timeout hides it", reason: ReasonTimeout, wantOpen: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine()
			require.NoError(t, m.Begin())
			m.Succeed("saved")

			m.Dismiss(tt.reason)

			assert.Equal(t, tt.wantOpen, m.Snapshot().NotificationOpen)
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())
}
