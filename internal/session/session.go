package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/courtside/hoopshot-backend/internal/engine"
)

// StationID identifies one hoop station.
type StationID string

// DisconnectPolicy decides what observers see when the owner of a station
// vanishes mid-game.
type DisconnectPolicy string

const (
	// PolicyReset releases the station and wipes it back to pregame.
	PolicyReset DisconnectPolicy = "reset"
	// PolicyGameOver drives playing -> game over first, so observers see a
	// terminal scoreboard, then the normal cooldown frees the station.
	PolicyGameOver DisconnectPolicy = "gameover"
)

type Options struct {
	Rules            engine.Rules
	GameOverCooldown time.Duration
	DisconnectPolicy DisconnectPolicy
}

// Session is one hoop station: ownership token, game state, and the
// replication fan-out to observers. All state except the token is owned by
// the session goroutine; everything reaches it through the inbox, so
// mutations are applied by exactly one writer in receipt order.
type Session struct {
	id        StationID
	inbox     chan Msg
	token     Token
	state     engine.State
	version   int
	observers map[string]chan Snapshot
	opts      Options
	timerGen  int // bumped whenever a pending cooldown must not fire
	log       *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func New(parent context.Context, id StationID, opts Options, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)

	if opts.DisconnectPolicy == "" {
		opts.DisconnectPolicy = PolicyReset
	}

	s := &Session{
		id:        id,
		inbox:     make(chan Msg, 64), // small buffer
		state:     engine.NewPregameState(opts.Rules),
		observers: make(map[string]chan Snapshot),
		opts:      opts,
		log:       log.With(zap.String("station", string(id))),
		ctx:       ctx,
		cancel:    cancel,
	}

	go s.loop()
	return s
}

func (s *Session) ID() StationID { return s.id }

// Inbox exposes the message channel to the transport layer and tests.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// IsAvailable reports whether the station is unowned. Safe from any
// goroutine; the token is the one atomically shared piece of state.
func (s *Session) IsAvailable() bool { return s.token.IsAvailable() }

// Owner reports the current owner, if any. Safe from any goroutine.
func (s *Session) Owner() (ParticipantID, bool) { return s.token.Owner() }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.observers[msg.ObserverID] = msg.Outbox
				msg.Outbox <- s.snapshot(nil)

			case Leave:
				// Close as well as delete: the transport's writer goroutine
				// ranges over the outbox and would otherwise block forever.
				if ch, ok := s.observers[msg.ObserverID]; ok {
					close(ch)
					delete(s.observers, msg.ObserverID)
				}

			case Claim:
				s.handleClaim(msg)

			case Release:
				s.handleRelease(msg)

			case Shot:
				s.handleShot(msg)

			case Disconnect:
				s.handleDisconnect(msg.Participant)

			case cooldownFired:
				s.handleCooldown(msg.gen)

			case GetView:
				s.replyView(msg.Reply, View{
					Version:      s.version,
					NumObservers: len(s.observers),
					Owner:        s.ownerOrEmpty(),
					State:        s.state,
				})

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) handleClaim(msg Claim) {
	owner, owned := s.token.Owner()
	if !s.token.TryAcquire(msg.Participant) {
		// Contention is a normal result, not a fault.
		s.reply(msg.Reply, ErrAlreadyOwned)
		return
	}

	// A re-claim by the current owner mid-game is an idempotent no-op.
	if owned && owner == msg.Participant && s.state.Game == engine.StatePlaying {
		s.reply(msg.Reply, nil)
		return
	}

	// The claim can land during the game-over cooldown (winning that race)
	// or on a station released without a reset. Either way the previous
	// game is wiped first and any pending cooldown is now stale.
	if s.state.Game != engine.StatePregame {
		s.timerGen++
		s.apply(engine.Command{Type: engine.CmdResetToPregame})
	}

	s.apply(engine.Command{Type: engine.CmdBeginGame})
	s.log.Info("station claimed", zap.String("participant", string(msg.Participant)))
	s.reply(msg.Reply, nil)
}

func (s *Session) handleRelease(msg Release) {
	if !s.token.Release(msg.Participant) {
		s.log.Warn("release from non-owner ignored",
			zap.String("participant", string(msg.Participant)))
		return
	}
	s.log.Info("station released", zap.String("participant", string(msg.Participant)))
	if msg.ToPregame && s.state.Game != engine.StatePregame {
		s.timerGen++
		s.apply(engine.Command{Type: engine.CmdResetToPregame})
	}
}

func (s *Session) handleShot(msg Shot) {
	owner, owned := s.token.Owner()
	if !owned || owner != msg.Participant {
		s.reply(msg.Reply, ErrNotOwner)
		s.log.Warn("shot from non-owner rejected",
			zap.String("participant", string(msg.Participant)))
		return
	}

	cmd := engine.Command{
		Type:      engine.CmdShotOutcome,
		Scored:    msg.Scored,
		HitRim:    msg.HitRim,
		MoneyBall: msg.MoneyBall,
	}
	events, err := s.apply(cmd)
	s.reply(msg.Reply, err)
	if err != nil {
		return
	}

	if engine.ContainsEvent(events, engine.EvtGameStateChanged) &&
		s.state.Game == engine.StateGameOver {
		s.armCooldown()
	}
}

func (s *Session) handleDisconnect(p ParticipantID) {
	owner, owned := s.token.Owner()
	if !owned || owner != p {
		return
	}

	if s.opts.DisconnectPolicy == PolicyGameOver && s.state.Game == engine.StatePlaying {
		s.token.ForceRelease()
		s.apply(engine.Command{Type: engine.CmdEndGame})
		s.armCooldown()
		s.log.Info("owner disconnected, game over", zap.String("participant", string(p)))
		return
	}

	s.token.ForceRelease()
	if s.state.Game != engine.StatePregame {
		s.timerGen++
		s.apply(engine.Command{Type: engine.CmdResetToPregame})
	}
	s.log.Info("owner disconnected, station reset", zap.String("participant", string(p)))
}

func (s *Session) handleCooldown(gen int) {
	if gen != s.timerGen {
		return // armed against a state that no longer exists
	}
	if s.state.Game != engine.StateGameOver {
		return
	}
	s.token.ForceRelease()
	s.apply(engine.Command{Type: engine.CmdResetToPregame})
	s.log.Info("cooldown elapsed, station available")
}

// armCooldown schedules the game-over -> pregame transition. The generation
// stamp makes a racing claim or reset safe: it invalidates the pending fire
// rather than cancelling the timer itself.
func (s *Session) armCooldown() {
	s.timerGen++
	gen := s.timerGen
	time.AfterFunc(s.opts.GameOverCooldown, func() {
		select {
		case s.inbox <- cooldownFired{gen: gen}:
		case <-s.ctx.Done():
		}
	})
}

// apply runs a command, bumps the version, and broadcasts on success.
func (s *Session) apply(cmd engine.Command) ([]engine.Event, error) {
	events, newState, err := engine.Apply(s.state, cmd)
	if err != nil {
		return nil, err
	}
	s.state = newState
	s.version++
	s.broadcast(s.snapshot(events))
	return events, nil
}

func (s *Session) snapshot(events []engine.Event) Snapshot {
	return Snapshot{
		Version: s.version,
		Owner:   s.ownerOrEmpty(),
		State:   s.state,
		Events:  events,
	}
}

func (s *Session) ownerOrEmpty() ParticipantID {
	owner, _ := s.token.Owner()
	return owner
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.observers {
		select {
		case ch <- snap:
			// ok
		default:
			// Observer is slow/full - drop them.
			close(ch)
			delete(s.observers, id)
		}
	}
}

// reply and replyView never block the loop: a nil or abandoned channel is
// the caller's loss, not the station's.
func (s *Session) reply(ch chan error, err error) {
	if ch == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}

func (s *Session) replyView(ch chan View, v View) {
	if ch == nil {
		return
	}
	select {
	case ch <- v:
	default:
	}
}

func (s *Session) shutdown() {
	for id, ch := range s.observers {
		close(ch) // tell observer no more snapshots
		delete(s.observers, id)
	}
	s.cancel()
}
