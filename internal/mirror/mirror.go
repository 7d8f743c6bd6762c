// Package mirror is the observer side of replication: a read-only replica
// of one station's state fed by snapshots. Because every snapshot is a full
// replace, convergence only needs the monotonic-version rule — apply the
// newest, discard anything older than what was already applied.
package mirror

import (
	"sync"

	"github.com/courtside/hoopshot-backend/internal/engine"
	"github.com/courtside/hoopshot-backend/internal/session"
)

type Mirror struct {
	mu      sync.Mutex
	applied bool
	version int
	owner   session.ParticipantID
	state   engine.State
}

// Apply installs a snapshot. Returns false when the snapshot is older than
// (or the same as) the last one applied; staleness is expected under
// reordered delivery and is never an error.
func (m *Mirror) Apply(snap session.Snapshot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.applied && snap.Version <= m.version {
		return false
	}
	m.applied = true
	m.version = snap.Version
	m.owner = snap.Owner
	m.state = snap.State
	return true
}

// State returns the current replica and its version.
func (m *Mirror) State() (engine.State, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.version
}

func (m *Mirror) Owner() (session.ParticipantID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner == "" {
		return "", false
	}
	return m.owner, true
}

// TakeFlash consumes the flash payload: returns it once and clears the
// local copy so UI effects fire a single time per outcome.
func (m *Mirror) TakeFlash() (engine.Flash, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Flash.PointsEarned == engine.NoFlash {
		return engine.Flash{}, false
	}
	f := m.state.Flash
	m.state = engine.ClearFlash(m.state)
	return f, true
}
