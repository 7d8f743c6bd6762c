// Package registry holds the process-wide set of hoop stations. Stations
// are created once at startup and never removed during a run, so lookups
// and iteration are safe from any goroutine without locking.
package registry

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/courtside/hoopshot-backend/internal/session"
)

var ErrNotFound = errors.New("station not found")

type Registry struct {
	stations map[session.StationID]*session.Session
	ordered  []*session.Session // creation order, stable for discovery UIs
	log      *zap.Logger
}

// New builds count stations up front. Must be called before any concurrent
// access begins; the registry is immutable afterwards.
func New(ctx context.Context, count int, opts session.Options, log *zap.Logger) *Registry {
	r := &Registry{
		stations: make(map[session.StationID]*session.Session, count),
		log:      log,
	}
	for i := 1; i <= count; i++ {
		id := session.StationID(fmt.Sprintf("station-%d", i))
		s := session.New(ctx, id, opts, log)
		r.stations[id] = s
		r.ordered = append(r.ordered, s)
	}
	log.Info("stations created", zap.Int("count", count))
	return r
}

// Get looks up a station by id. An unknown id is a caller bug, not a
// transient condition.
func (r *Registry) Get(id session.StationID) (*session.Session, error) {
	s, ok := r.stations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// All returns every station in creation order.
func (r *Registry) All() []*session.Session {
	out := make([]*session.Session, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// FindAvailable is a lazy, restartable walk over unowned stations in
// creation order. Availability is read per step, so a station claimed
// mid-iteration simply stops appearing.
func (r *Registry) FindAvailable() iter.Seq[*session.Session] {
	return func(yield func(*session.Session) bool) {
		for _, s := range r.ordered {
			if !s.IsAvailable() {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// FindOwnedBy returns the station currently owned by p, if any. A
// participant can own at most one station at a time in practice, but the
// registry only promises to return the first in creation order.
func (r *Registry) FindOwnedBy(p session.ParticipantID) (*session.Session, bool) {
	for _, s := range r.ordered {
		if owner, ok := s.Owner(); ok && owner == p {
			return s, true
		}
	}
	return nil, false
}

// HandleDisconnect routes a vanished participant to the station they own,
// if any. No-op otherwise.
func (r *Registry) HandleDisconnect(p session.ParticipantID) {
	s, ok := r.FindOwnedBy(p)
	if !ok {
		return
	}
	r.log.Info("routing disconnect", zap.String("participant", string(p)),
		zap.String("station", string(s.ID())))
	s.Inbox() <- session.Disconnect{Participant: p}
}

// Shutdown stops every station loop.
func (r *Registry) Shutdown() {
	for _, s := range r.ordered {
		s.Inbox() <- session.Shutdown{}
	}
}
