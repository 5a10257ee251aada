package tracker

import "sync"

// Manager owns at most one live Tracker per employee, kept in lockstep with
// attendance transitions by the attendance service.
type Manager struct {
	mu       sync.Mutex
	trackers map[string]*Tracker
}

func NewManager() *Manager {
	return &Manager{
		trackers: make(map[string]*Tracker),
	}
}

// StartFor begins a fresh counter for the employee, replacing (and stopping)
// any previous one.
func (m *Manager) StartFor(employeeID string) *Tracker {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.trackers[employeeID]; ok {
		old.Stop()
	}
	t := New()
	t.Start()
	m.trackers[employeeID] = t
	return t
}

// PauseFor pauses the employee's counter if one is live.
func (m *Manager) PauseFor(employeeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.trackers[employeeID]; ok {
		t.Pause()
	}
}

// ResumeFor resumes the employee's counter if one is live.
func (m *Manager) ResumeFor(employeeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.trackers[employeeID]; ok {
		t.Resume()
	}
}

// StopFor stops and removes the employee's counter.
func (m *Manager) StopFor(employeeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.trackers[employeeID]; ok {
		t.Stop()
		delete(m.trackers, employeeID)
	}
}

// Get returns the employee's live tracker, or nil when none exists (e.g.
// after a process restart; callers fall back to recomputing from the
// persisted timer_start).
func (m *Manager) Get(employeeID string) *Tracker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trackers[employeeID]
}

// StopAll stops every live tracker, used on shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.trackers {
		t.Stop()
		delete(m.trackers, id)
	}
}
