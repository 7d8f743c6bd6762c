package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testRules() Rules {
	return Rules{
		StartingLives:   3,
		FireThreshold:   3,
		ShotsPerAdvance: 3,
		BasePoints:      2,
		MoneyBallPoints: 3,
		HoopPositions:   5,
	}
}

func mustApply(t *testing.T, s State, cmd Command) ([]Event, State) {
	t.Helper()
	events, ns, err := Apply(s, cmd)
	require.NoError(t, err)
	return events, ns
}

func playing(t *testing.T) State {
	t.Helper()
	_, s := mustApply(t, NewPregameState(testRules()), Command{Type: CmdBeginGame})
	return s
}

func shot(scored, hitRim, moneyBall bool) Command {
	return Command{Type: CmdShotOutcome, Scored: scored, HitRim: hitRim, MoneyBall: moneyBall}
}

func TestBeginGame_ResetsEverything(t *testing.T) {
	events, s := mustApply(t, NewPregameState(testRules()), Command{Type: CmdBeginGame})

	require.Equal(t, StatePlaying, s.Game)
	require.Equal(t, 0, s.Score)
	require.Equal(t, 3, s.Lives)
	require.False(t, s.OnFire)
	require.Equal(t, 0, s.TotalShots)
	require.Equal(t, NoFlash, s.Flash.PointsEarned)

	ev, ok := FindEvent(events, EvtGameStateChanged)
	require.True(t, ok)
	require.Equal(t, StatePlaying, ev.Game)
}

func TestBeginGame_OnlyFromPregame(t *testing.T) {
	s := playing(t)
	_, _, err := Apply(s, Command{Type: CmdBeginGame})
	require.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestShot_RejectedOutsidePlaying(t *testing.T) {
	s := NewPregameState(testRules())
	_, _, err := Apply(s, shot(true, false, false))
	require.ErrorIs(t, err, ErrNotPlaying)

	_, over := mustApply(t, playing(t), Command{Type: CmdEndGame})
	_, _, err = Apply(over, shot(true, false, false))
	require.ErrorIs(t, err, ErrNotPlaying)
}

func TestShot_ScoredAddsPointsAndFlash(t *testing.T) {
	events, s := mustApply(t, playing(t), shot(true, false, false))

	require.Equal(t, 2, s.Score)
	require.Equal(t, 1, s.Streak)
	require.Equal(t, 2, s.Flash.PointsEarned)
	require.False(t, s.Flash.MoneyBall)
	require.True(t, ContainsEvent(events, EvtScoreChanged))
	require.True(t, ContainsEvent(events, EvtShotRegistered))
}

func TestShot_MoneyBallScoresBonus(t *testing.T) {
	_, s := mustApply(t, playing(t), shot(true, false, true))
	require.Equal(t, 3, s.Score)
	require.True(t, s.Flash.MoneyBall)
}

func TestFire_ActivatesOnThresholdExactlyOnce(t *testing.T) {
	s := playing(t)

	_, s = mustApply(t, s, shot(true, false, false))
	_, s = mustApply(t, s, shot(true, false, false))
	require.False(t, s.OnFire)

	events, s := mustApply(t, s, shot(true, false, false))
	require.True(t, s.OnFire)
	ev, ok := FindEvent(events, EvtFireStateChanged)
	require.True(t, ok)
	require.True(t, ev.OnFire)

	// A fourth score keeps the flag but must not re-emit the edge.
	events, s = mustApply(t, s, shot(true, false, false))
	require.True(t, s.OnFire)
	require.False(t, ContainsEvent(events, EvtFireStateChanged))
	require.True(t, s.Flash.OnFire)
}

func TestFire_ClearedByCleanMiss(t *testing.T) {
	s := playing(t)
	for i := 0; i < 3; i++ {
		_, s = mustApply(t, s, shot(true, false, false))
	}
	require.True(t, s.OnFire)

	events, s := mustApply(t, s, shot(false, false, false))
	require.False(t, s.OnFire)
	require.Equal(t, 0, s.Streak)
	require.Equal(t, 2, s.Lives)
	ev, ok := FindEvent(events, EvtFireStateChanged)
	require.True(t, ok)
	require.False(t, ev.OnFire)
}

func TestShot_RimGrazeIsGraceful(t *testing.T) {
	s := playing(t)
	_, s = mustApply(t, s, shot(true, false, false))
	_, s = mustApply(t, s, shot(true, false, false))

	// Near miss: no life lost, streak survives.
	events, s := mustApply(t, s, shot(false, true, false))
	require.Equal(t, 3, s.Lives)
	require.Equal(t, 2, s.Streak)
	require.False(t, ContainsEvent(events, EvtFireStateChanged))

	// Streak continues to the threshold on the next make.
	_, s = mustApply(t, s, shot(true, false, false))
	require.True(t, s.OnFire)
}

func TestLives_NeverNegative_ZeroMeansGameOver(t *testing.T) {
	s := playing(t)
	var events []Event
	for i := 0; i < 3; i++ {
		require.Equal(t, StatePlaying, s.Game)
		events, s = mustApply(t, s, shot(false, false, false))
		require.GreaterOrEqual(t, s.Lives, 0)
	}

	require.Equal(t, 0, s.Lives)
	require.Equal(t, StateGameOver, s.Game)
	ev, ok := FindEvent(events, EvtGameStateChanged)
	require.True(t, ok)
	require.Equal(t, StateGameOver, ev.Game)
}

func TestShotCounter_MonotonicWithinEpisode(t *testing.T) {
	s := playing(t)
	prev := 0
	for i := 0; i < 5; i++ {
		_, s = mustApply(t, s, shot(i%2 == 0, false, false))
		require.Greater(t, s.TotalShots, prev)
		prev = s.TotalShots
	}

	// Resets only on the next pregame -> playing transition.
	_, s = mustApply(t, s, Command{Type: CmdEndGame})
	require.Equal(t, 5, s.TotalShots)
	_, s = mustApply(t, s, Command{Type: CmdResetToPregame})
	_, s = mustApply(t, s, Command{Type: CmdBeginGame})
	require.Equal(t, 0, s.TotalShots)
}

func TestPositionAdvance_EveryThirdShot(t *testing.T) {
	s := playing(t)

	events, s := mustApply(t, s, shot(true, false, false))
	require.False(t, ContainsEvent(events, EvtPositionAdvanced))
	events, s = mustApply(t, s, shot(false, true, false))
	require.False(t, ContainsEvent(events, EvtPositionAdvanced))

	events, s = mustApply(t, s, shot(false, false, false))
	ev, ok := FindEvent(events, EvtPositionAdvanced)
	require.True(t, ok)
	require.Equal(t, 1, ev.Position)
	require.Equal(t, 0, s.ShotsSinceAdvance)
}

func TestPositionAdvance_MoneyBallImmediate_NeverBoth(t *testing.T) {
	s := playing(t)

	// Money ball on the first shot advances immediately.
	events, s := mustApply(t, s, shot(true, false, true))
	require.True(t, ContainsEvent(events, EvtPositionAdvanced))
	require.Equal(t, 1, s.HoopPosition)

	_, s = mustApply(t, s, shot(true, false, false))

	// Third shot is also a money ball: exactly one advance, not two.
	events, s = mustApply(t, s, shot(true, false, true))
	count := 0
	for _, ev := range events {
		if ev.Type == EvtPositionAdvanced {
			count++
		}
	}
	require.Equal(t, 1, count)
	require.Equal(t, 2, s.HoopPosition)
}

func TestPositionAdvance_WrapsAround(t *testing.T) {
	s := playing(t)
	for i := 0; i < 5; i++ {
		_, s = mustApply(t, s, shot(true, false, true))
	}
	require.Equal(t, 0, s.HoopPosition)
}

func TestEndGame_ClearsFire(t *testing.T) {
	s := playing(t)
	for i := 0; i < 3; i++ {
		_, s = mustApply(t, s, shot(true, false, false))
	}
	require.True(t, s.OnFire)

	events, s := mustApply(t, s, Command{Type: CmdEndGame})
	require.False(t, s.OnFire)
	ev, ok := FindEvent(events, EvtFireStateChanged)
	require.True(t, ok)
	require.False(t, ev.OnFire)
}

func TestResetToPregame_FromPregameRejected(t *testing.T) {
	_, _, err := Apply(NewPregameState(testRules()), Command{Type: CmdResetToPregame})
	require.ErrorIs(t, err, ErrNotActive)
}

// The full happy-path episode: claim, heat up, flame out, lose, cool down,
// hand over.
func TestFullEpisode(t *testing.T) {
	events, s := mustApply(t, NewPregameState(testRules()), Command{Type: CmdBeginGame})
	require.Equal(t, StatePlaying, s.Game)
	require.Equal(t, 0, s.Score)
	require.Equal(t, 3, s.Lives)
	require.True(t, ContainsEvent(events, EvtGameStateChanged))

	_, s = mustApply(t, s, shot(true, false, false))
	require.Equal(t, 2, s.Score)
	require.Equal(t, 1, s.Streak)

	_, s = mustApply(t, s, shot(true, false, false))
	events, s = mustApply(t, s, shot(true, false, false))
	require.True(t, s.OnFire)
	require.True(t, ContainsEvent(events, EvtFireStateChanged))

	events, s = mustApply(t, s, shot(false, false, false))
	require.Equal(t, 2, s.Lives)
	require.False(t, s.OnFire)
	require.Equal(t, 0, s.Streak)
	require.True(t, ContainsEvent(events, EvtFireStateChanged))

	_, s = mustApply(t, s, shot(false, false, false))
	events, s = mustApply(t, s, shot(false, false, false))
	require.Equal(t, 0, s.Lives)
	require.Equal(t, StateGameOver, s.Game)
	require.True(t, ContainsEvent(events, EvtGameStateChanged))

	events, s = mustApply(t, s, Command{Type: CmdResetToPregame})
	require.Equal(t, StatePregame, s.Game)
	require.True(t, ContainsEvent(events, EvtGameStateChanged))

	// The next claimant starts clean.
	_, s = mustApply(t, s, Command{Type: CmdBeginGame})
	require.Equal(t, 0, s.Score)
	require.Equal(t, 3, s.Lives)
}
