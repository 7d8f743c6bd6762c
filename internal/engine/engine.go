package engine

import "errors"

var ErrNotPlaying = errors.New("no game in progress")
var ErrAlreadyStarted = errors.New("game already started")
var ErrNotActive = errors.New("nothing to reset")
var ErrGameNotOver = errors.New("game is not over")
var ErrUnsupportedCommand = errors.New("unsupported command")

type CommandType string

const (
	CmdBeginGame      CommandType = "BeginGame"
	CmdShotOutcome    CommandType = "ShotOutcome"
	CmdEndGame        CommandType = "EndGame"
	CmdResetToPregame CommandType = "ResetToPregame"
)

// Command is one requested mutation of a station's state. Shot fields are
// only meaningful for CmdShotOutcome.
//
// Callers must de-duplicate shot outcomes by ball identity before applying:
// the engine registers every CmdShotOutcome it is handed exactly once and
// has no notion of which ball produced it.
type Command struct {
	Type      CommandType
	Scored    bool
	HitRim    bool
	MoneyBall bool
}

type EventType string

const (
	EvtGameStateChanged EventType = "GameStateChanged"
	EvtScoreChanged     EventType = "ScoreChanged"
	EvtFireStateChanged EventType = "FireStateChanged"
	EvtPositionAdvanced EventType = "PositionAdvanced"
	EvtShotRegistered   EventType = "ShotRegistered"
)

// Event is a notification for output collaborators (audio, VFX, UI).
// FireStateChanged is edge-triggered: emitted once per transition, never
// repeated while the flag holds its value.
type Event struct {
	Type       EventType `json:"type"`
	Game       GameState `json:"game,omitempty"`        // GameStateChanged
	OnFire     bool      `json:"on_fire,omitempty"`     // FireStateChanged
	Position   int       `json:"position,omitempty"`    // PositionAdvanced
	ShotNumber int       `json:"shot_number,omitempty"` // ShotRegistered
}

// Apply runs one command against a station's state and returns the events
// it produced plus the successor state. The input state is never mutated;
// on error it is returned unchanged with no events.
func Apply(s State, cmd Command) ([]Event, State, error) {
	switch cmd.Type {
	case CmdBeginGame:
		if s.Game != StatePregame {
			return nil, s, ErrAlreadyStarted
		}
		ns := NewPregameState(s.Rules)
		ns.Game = StatePlaying
		events := []Event{
			{Type: EvtGameStateChanged, Game: StatePlaying},
			{Type: EvtScoreChanged},
		}
		return events, ns, nil

	case CmdShotOutcome:
		if s.Game != StatePlaying {
			return nil, s, ErrNotPlaying
		}
		return applyShot(s, cmd)

	case CmdEndGame:
		if s.Game != StatePlaying {
			return nil, s, ErrNotPlaying
		}
		ns := s
		ns.Game = StateGameOver
		events := []Event{}
		// Fire never survives leaving Playing.
		if ns.OnFire {
			ns.OnFire = false
			ns.Streak = 0
			events = append(events, Event{Type: EvtFireStateChanged, OnFire: false})
		}
		events = append(events, Event{Type: EvtGameStateChanged, Game: StateGameOver})
		return events, ns, nil

	case CmdResetToPregame:
		if s.Game == StatePregame {
			return nil, s, ErrNotActive
		}
		ns := NewPregameState(s.Rules)
		return []Event{{Type: EvtGameStateChanged, Game: StatePregame}}, ns, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func applyShot(s State, cmd Command) ([]Event, State, error) {
	ns := s
	ns.TotalShots++
	ns.ShotsSinceAdvance++

	events := []Event{{Type: EvtShotRegistered, ShotNumber: ns.TotalShots}}

	// Position advance: money balls move the hoop immediately, regular shots
	// move it every Nth make-or-miss. Never both for the same shot.
	if cmd.MoneyBall {
		ns = advanceHoop(ns)
		events = append(events, Event{Type: EvtPositionAdvanced, Position: ns.HoopPosition})
	} else if ns.Rules.ShotsPerAdvance > 0 && ns.TotalShots%ns.Rules.ShotsPerAdvance == 0 {
		ns = advanceHoop(ns)
		events = append(events, Event{Type: EvtPositionAdvanced, Position: ns.HoopPosition})
	}

	switch {
	case cmd.Scored:
		pts := ns.Rules.BasePoints
		if cmd.MoneyBall {
			pts = ns.Rules.MoneyBallPoints
		}
		ns.Score += pts
		ns.Streak++
		if !ns.OnFire && ns.Streak >= ns.Rules.FireThreshold {
			ns.OnFire = true
			events = append(events, Event{Type: EvtFireStateChanged, OnFire: true})
		}
		ns.Flash = Flash{PointsEarned: pts, MoneyBall: cmd.MoneyBall, OnFire: ns.OnFire}
		events = append(events, Event{Type: EvtScoreChanged})

	case !cmd.HitRim:
		// Clean miss: costs a life, breaks the streak.
		ns.Lives = max(0, ns.Lives-1)
		ns.Streak = 0
		if ns.OnFire {
			ns.OnFire = false
			events = append(events, Event{Type: EvtFireStateChanged, OnFire: false})
		}
		ns.Flash = Flash{PointsEarned: 0, MoneyBall: cmd.MoneyBall}
		events = append(events, Event{Type: EvtScoreChanged})
		if ns.Lives == 0 {
			ns.Game = StateGameOver
			events = append(events, Event{Type: EvtGameStateChanged, Game: StateGameOver})
		}

	default:
		// Rim graze: no life lost, streak survives.
		ns.Flash = Flash{PointsEarned: 0, MoneyBall: cmd.MoneyBall, OnFire: ns.OnFire}
		events = append(events, Event{Type: EvtScoreChanged})
	}

	return events, ns, nil
}

func advanceHoop(s State) State {
	s.ShotsSinceAdvance = 0
	if s.Rules.HoopPositions > 0 {
		s.HoopPosition = (s.HoopPosition + 1) % s.Rules.HoopPositions
	}
	return s
}
