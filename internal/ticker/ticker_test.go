package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/nexaflow/internal/db"
	"github.com/marcus/nexaflow/internal/store"
)

const testInterval = 20 * time.Millisecond

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(db.NewMemoryRepository())
	require.NoError(t, err)
	return s
}

func TestDriver_TicksOnlyWhileRunning(t *testing.T) {
	s := newStore(t)
	t.Cleanup(func() { _ = s.Close() })

	d, err := New(s, WithInterval(testInterval))
	require.NoError(t, err)
	require.NoError(t, d.Start())
	t.Cleanup(func() { _ = d.Stop() })

	assert.False(t, d.Armed(), "idle timer should not arm the job")

	require.NoError(t, s.StartTimer("Deep work"))
	require.Eventually(t, func() bool { return s.Timer().ElapsedSeconds >= 3 },
		2*time.Second, 5*time.Millisecond)
	assert.True(t, d.Armed())

	require.NoError(t, s.PauseTimer())
	assert.False(t, d.Armed(), "pause should remove the job")
	paused := s.Timer().ElapsedSeconds
	time.Sleep(5 * testInterval)
	assert.Equal(t, paused, s.Timer().ElapsedSeconds)
	assert.Equal(t, "Deep work", s.Timer().CurrentActivity)

	require.NoError(t, s.ResumeTimer())
	require.Eventually(t, func() bool { return s.Timer().ElapsedSeconds > paused },
		2*time.Second, 5*time.Millisecond)

	require.NoError(t, s.StopTimer())
	assert.False(t, d.Armed())
}

func TestDriver_ArmsForAlreadyRunningTimer(t *testing.T) {
	s := newStore(t)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.StartTimer("Email"))

	d, err := New(s, WithInterval(testInterval))
	require.NoError(t, err)
	require.NoError(t, d.Start())
	t.Cleanup(func() { _ = d.Stop() })

	assert.True(t, d.Armed())
	require.Eventually(t, func() bool { return s.Timer().ElapsedSeconds >= 1 },
		2*time.Second, 5*time.Millisecond)
}

func TestDriver_StopsWhenStoreCloses(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.StartTimer("Review"))

	d, err := New(s, WithInterval(testInterval))
	require.NoError(t, err)
	require.NoError(t, d.Start())

	require.NoError(t, s.Close())
	require.Eventually(t, func() bool { return !d.Armed() },
		2*time.Second, 5*time.Millisecond)
	assert.NoError(t, d.Stop(), "Stop after shutdown should be a no-op")
}
