package engine

type GameState string

const (
	StatePregame  GameState = "pregame"
	StatePlaying  GameState = "playing"
	StateGameOver GameState = "gameover"
)

// NoFlash is the sentinel for "no shot outcome to display".
const NoFlash = -1

// Flash describes the most recent shot outcome for UI purposes. It is
// overwritten on every shot and consumed (cleared) by the observer side.
type Flash struct {
	PointsEarned int  `json:"points_earned"` // NoFlash when nothing to show
	MoneyBall    bool `json:"money_ball"`
	OnFire       bool `json:"on_fire"`
}

type Rules struct {
	StartingLives   int `json:"starting_lives"`
	FireThreshold   int `json:"fire_threshold"`    // consecutive scores to ignite
	ShotsPerAdvance int `json:"shots_per_advance"` // hoop moves every Nth shot
	BasePoints      int `json:"base_points"`
	MoneyBallPoints int `json:"money_ball_points"`
	HoopPositions   int `json:"hoop_positions"` // size of the position cycle
}

// State is the full replicated state of one hoop station. It is a value
// type: Apply never mutates its input, it returns a new State.
type State struct {
	Game              GameState `json:"game"`
	Score             int       `json:"score"`
	Lives             int       `json:"lives"`
	Streak            int       `json:"streak"` // consecutive scoring shots
	OnFire            bool      `json:"on_fire"`
	Flash             Flash     `json:"flash"`
	TotalShots        int       `json:"total_shots"`
	ShotsSinceAdvance int       `json:"shots_since_advance"`
	HoopPosition      int       `json:"hoop_position"`
	Rules             Rules     `json:"rules"`
}

func DefaultRules() Rules {
	return Rules{
		StartingLives:   3,
		FireThreshold:   3,
		ShotsPerAdvance: 3,
		BasePoints:      2,
		MoneyBallPoints: 3,
		HoopPositions:   5,
	}
}

// NewPregameState is the state a station carries between games: unclaimed,
// nothing on the scoreboard.
func NewPregameState(rules Rules) State {
	return State{
		Game:  StatePregame,
		Lives: rules.StartingLives,
		Flash: Flash{PointsEarned: NoFlash},
		Rules: rules,
	}
}
