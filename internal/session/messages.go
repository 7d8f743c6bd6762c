package session

import (
	"errors"

	"github.com/courtside/hoopshot-backend/internal/engine"
)

var ErrAlreadyOwned = errors.New("station already owned")
var ErrNotOwner = errors.New("not the station owner")

type Msg interface{ isSessionMsg() }

// Join registers an observer. The session immediately sends the current
// snapshot to Outbox, so late joiners converge without replaying history.
type Join struct {
	ObserverID string
	Outbox     chan Snapshot // where this observer wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ObserverID string }

func (Leave) isSessionMsg() {}

// Claim asks for ownership of the station. Reply receives nil on success or
// ErrAlreadyOwned when another participant holds it. Claims are arbitrated
// in receipt order; a re-claim by the current owner succeeds and is a no-op.
// Reply must be buffered (or nil): the session never blocks on a reply.
type Claim struct {
	Participant ParticipantID
	Reply       chan error
}

func (Claim) isSessionMsg() {}

// Release gives up ownership. ToPregame additionally resets the station so
// it is immediately presentable to the next player; otherwise the game
// state is left as-is.
type Release struct {
	Participant ParticipantID
	ToPregame   bool
}

func (Release) isSessionMsg() {}

// Shot reports one detected shot outcome. Only the current owner may report
// while a game is in progress; anything else is rejected without a state
// change. Reply is optional — pass nil for fire-and-forget.
type Shot struct {
	Participant ParticipantID
	Scored      bool
	HitRim      bool
	MoneyBall   bool
	Reply       chan error
}

func (Shot) isSessionMsg() {}

// Disconnect reports that a participant vanished. If they own this station
// the configured DisconnectPolicy decides what observers see.
type Disconnect struct{ Participant ParticipantID }

func (Disconnect) isSessionMsg() {}

// GetView reflects the session's internal state without data races. Reply
// must be buffered (or nil): the session never blocks on a reply.
type GetView struct {
	Reply chan View
}

func (GetView) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

// cooldownFired is posted by the game-over timer. gen lets the loop drop
// fires armed against a state that has since changed.
type cooldownFired struct{ gen int }

func (cooldownFired) isSessionMsg() {}

// Snapshot is a full-state replace, never a delta. Observers must apply
// snapshots in Version order and discard anything older than the last one
// applied; a reordered snapshot is then at worst a momentarily stale view.
type Snapshot struct {
	Version int
	Owner   ParticipantID
	State   engine.State
	Events  []engine.Event
}

type View struct {
	Version      int
	NumObservers int
	Owner        ParticipantID
	State        engine.State
}
