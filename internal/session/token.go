package session

import "sync/atomic"

// ParticipantID identifies one player across all stations.
type ParticipantID string

// Token is the ownership slot of one station. It is the only piece of
// session state touched from more than one goroutine, so claim and release
// are compare-and-swap loops: of any set of racing TryAcquire calls for an
// unowned station, exactly one wins, with no window where two callers can
// both observe themselves as the owner.
type Token struct {
	owner atomic.Pointer[ParticipantID]
}

func (t *Token) IsAvailable() bool {
	return t.owner.Load() == nil
}

func (t *Token) Owner() (ParticipantID, bool) {
	p := t.owner.Load()
	if p == nil {
		return "", false
	}
	return *p, true
}

// TryAcquire claims the token for p. Succeeds when the token is unowned or
// already held by p (re-claim by the current owner is idempotent).
func (t *Token) TryAcquire(p ParticipantID) bool {
	for {
		cur := t.owner.Load()
		if cur != nil {
			return *cur == p
		}
		if t.owner.CompareAndSwap(nil, &p) {
			return true
		}
	}
}

// Release clears the token iff p holds it.
func (t *Token) Release(p ParticipantID) bool {
	for {
		cur := t.owner.Load()
		if cur == nil || *cur != p {
			return false
		}
		if t.owner.CompareAndSwap(cur, nil) {
			return true
		}
	}
}

// ForceRelease clears the token regardless of holder and reports the
// previous owner. Used by the cooldown and disconnect paths.
func (t *Token) ForceRelease() (ParticipantID, bool) {
	for {
		cur := t.owner.Load()
		if cur == nil {
			return "", false
		}
		if t.owner.CompareAndSwap(cur, nil) {
			return *cur, true
		}
	}
}
