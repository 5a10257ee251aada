// Package tracker implements the live elapsed-time counter shown next to an
// open attendance session. The counter is display state only; the persisted
// timer_start column remains the source of truth for reloads.
package tracker

import (
	"fmt"
	"sync"
	"time"
)

// Tracker counts whole elapsed seconds while running. Start resets the
// counter, Pause and Resume bracket breaks, Stop ends the session. Every
// transition out of the running state cancels the tick goroutine; a tick
// source left running after its session is gone is a leak.
type Tracker struct {
	mu       sync.Mutex
	seconds  int64
	running  bool
	interval time.Duration
	stopChan chan struct{}
}

func New() *Tracker {
	return &Tracker{
		interval: time.Second,
	}
}

// Start resets the counter to zero and begins ticking.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seconds = 0
	t.startLocked()
}

// Resume continues ticking from the current value, e.g. after a break.
func (t *Tracker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startLocked()
}

func (t *Tracker) startLocked() {
	if t.running {
		return
	}
	t.running = true
	t.stopChan = make(chan struct{})

	go func(stop chan struct{}) {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.Tick()
			}
		}
	}(t.stopChan)
}

// Pause stops ticking but keeps the accumulated value.
func (t *Tracker) Pause() {
	t.stop()
}

// Stop cancels the tick goroutine. Idempotent; safe on every exit path.
func (t *Tracker) Stop() {
	t.stop()
}

func (t *Tracker) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.stopChan)
	t.stopChan = nil
}

// Tick advances the counter by one second if the tracker is running. Called
// by the internal ticker; exported so tests can drive time deterministically.
func (t *Tracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.seconds++
}

// Seconds returns the accumulated elapsed seconds.
func (t *Tracker) Seconds() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

// Running reports whether the tracker is currently ticking.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// FormatHMS renders whole seconds as "HH:MM:SS" with zero-padded fields.
// Hours are unbounded, not wrapped at 24.
func FormatHMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
