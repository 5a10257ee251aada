package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tick(t *Tracker, n int) {
	for i := 0; i < n; i++ {
		t.Tick()
	}
}

func TestTrackerStartResetsToZero(t *testing.T) {
	tr := New()
	tr.Start()
	defer tr.Stop()
	tick(tr, 42)
	assert.Equal(t, int64(42), tr.Seconds())

	tr.Start()
	assert.Equal(t, int64(0), tr.Seconds())
}

func TestTrackerNoTicksAfterStop(t *testing.T) {
	tr := New()
	tr.Start()
	tick(tr, 10)
	tr.Stop()

	// Simulated ticks after stopping must not move the counter.
	tick(tr, 5)
	assert.Equal(t, int64(10), tr.Seconds())
	assert.False(t, tr.Running())
}

func TestTrackerPauseResume(t *testing.T) {
	tr := New()
	tr.Start()
	tick(tr, 90)
	tr.Pause()
	tick(tr, 30)
	assert.Equal(t, int64(90), tr.Seconds())

	tr.Resume()
	tick(tr, 30)
	tr.Stop()
	assert.Equal(t, int64(120), tr.Seconds())
}

func TestTrackerStopIdempotent(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Stop()
	tr.Stop()
	assert.False(t, tr.Running())
}

func TestFormatHMS(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{90, "00:01:30"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},  // hours are not wrapped at 24
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatHMS(c.seconds), "FormatHMS(%d)", c.seconds)
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	tr := m.StartFor("emp-1")
	assert.True(t, tr.Running())
	assert.Same(t, tr, m.Get("emp-1"))

	m.PauseFor("emp-1")
	assert.False(t, tr.Running())
	m.ResumeFor("emp-1")
	assert.True(t, tr.Running())

	m.StopFor("emp-1")
	assert.False(t, tr.Running())
	assert.Nil(t, m.Get("emp-1"))
}

func TestManagerStartForReplacesOldTracker(t *testing.T) {
	m := NewManager()
	old := m.StartFor("emp-1")
	replacement := m.StartFor("emp-1")

	assert.False(t, old.Running())
	assert.True(t, replacement.Running())
	assert.Same(t, replacement, m.Get("emp-1"))

	m.StopAll()
	assert.False(t, replacement.Running())
}
