package game

import (
	"testing"
)

// Regression tests for the defects that motivated the transactional rewrite
// of this package: partial touchdown/conversion application, points credited
// to the wrong scoreboard slot, and invalid down/distance after goal-line
// plays.

// TestNoGhostPointsFromPartialConversion reproduces the old "ghost point"
// bug: the touchdown landed, the conversion step blew up, and the game went
// on with six points that were half of an unfinished transition. With the
// transactional applicator the whole play must vanish.
func TestNoGhostPointsFromPartialConversion(t *testing.T) {
	state := NewTestState(WithFieldPosition(100), WithDownAndDistance(2, 1), WithScores(10, 14))
	a := newTestApplicator()

	result := a.ApplyPlay(state, PlayOutcome{
		Category:   PlayRush,
		Outcome:    OutcomeTouchdown,
		IsScore:    true,
		Points:     6,
		Elapsed:    6,
		Conversion: ConversionTag("drop_kick"), // unknown attempt, fails mid-step
	})

	if result.Committed() {
		t.Fatal("transition with a broken conversion must not commit")
	}
	if state.Score.HomeScore != 10 || state.Score.AwayScore != 14 {
		t.Errorf("ghost points: scoreboard moved to %d-%d despite rollback",
			state.Score.HomeScore, state.Score.AwayScore)
	}
	if state.Field.Position != 100 || state.Field.Down != 2 {
		t.Errorf("field state leaked from rolled-back transition: pos=%d down=%d",
			state.Field.Position, state.Field.Down)
	}
}

// TestNoSilentHomeCredit reproduces the misattribution bug: an unresolvable
// scoring-team reference used to fall through to the home slot. It must now
// fail the transition instead.
func TestNoSilentHomeCredit(t *testing.T) {
	state := NewTestState(WithFieldPosition(100), WithDownAndDistance(3, 1), WithPossession(SlotAway))
	a := newTestApplicator()

	result := a.ApplyPlay(state, PlayOutcome{
		Category:    PlayPass,
		Outcome:     OutcomeTouchdown,
		IsScore:     true,
		Points:      6,
		Elapsed:     5,
		ScoringTeam: LegacyRef("???"),
	})

	if result.Committed() {
		t.Fatal("unresolvable scoring team must fail the transition")
	}
	if state.Score.HomeScore != 0 {
		t.Errorf("home slot silently credited %d points", state.Score.HomeScore)
	}
	if state.Score.AwayScore != 0 {
		t.Errorf("away slot silently credited %d points", state.Score.AwayScore)
	}
}

// TestDownDistanceValidAfterGoalLineStand walks a goal-line sequence and
// checks the down/distance invariant after every committed play. The old
// engine produced 4th-and-12-from-the-3 states here.
func TestDownDistanceValidAfterGoalLineStand(t *testing.T) {
	state := NewTestState(WithFieldPosition(97), WithDownAndDistance(1, 3))
	a := newTestApplicator()

	plays := []PlayOutcome{
		{Category: PlayRush, Outcome: OutcomeRun, Yards: 1, Elapsed: 30},
		{Category: PlayRush, Outcome: OutcomeRun, Yards: 0, Elapsed: 28},
		{Category: PlayPass, Outcome: OutcomeIncompletion, Yards: 0, Elapsed: 5},
		{Category: PlayRush, Outcome: OutcomeRun, Yards: 1, Elapsed: 31},
	}

	for i, play := range plays {
		result := a.ApplyPlay(state, play)
		if !result.Committed() {
			t.Fatalf("play %d rolled back: %v", i, result.Err)
		}
		if state.Field.Down < 1 || state.Field.Down > 4 {
			t.Errorf("play %d left down=%d", i, state.Field.Down)
		}
		if state.Field.YardsToGo > FieldLength-state.Field.Position {
			t.Errorf("play %d left %d to go from position %d, overshooting the goal line",
				i, state.Field.YardsToGo, state.Field.Position)
		}
	}

	// Four failed downs at the goal line must end in a turnover on downs.
	if state.Possession.Slot != SlotAway {
		t.Errorf("goal-line stand did not flip possession, still %s", state.Possession.Slot)
	}
}

// TestExactlyOneSlotPerScore sweeps scoring outcomes and asserts the points
// land in exactly one accumulator.
func TestExactlyOneSlotPerScore(t *testing.T) {
	outcomes := []PlayOutcome{
		{Category: PlayRush, Outcome: OutcomeTouchdown, IsScore: true, Points: 6, Elapsed: 5, Conversion: ConversionExtraPoint},
		{Category: PlayFieldGoal, Outcome: OutcomeFieldGoalGood, IsScore: true, Points: 3, Elapsed: 5},
		{Category: PlayRush, Outcome: OutcomeSafety, IsScore: true, Points: 2, Yards: -2, Elapsed: 4},
	}

	for _, possession := range []Slot{SlotHome, SlotAway} {
		for _, outcome := range outcomes {
			pos := 100
			if outcome.Outcome == OutcomeSafety {
				pos = 2
			}
			state := NewTestState(
				WithFieldPosition(pos),
				WithDownAndDistance(2, 1),
				WithPossession(possession),
			)
			a := newTestApplicator()

			result := a.ApplyPlay(state, outcome)
			if !result.Committed() {
				t.Fatalf("%s by %s rolled back: %v", outcome.Outcome, possession, result.Err)
			}

			credited := 0
			if state.Score.HomeScore > 0 {
				credited++
			}
			if state.Score.AwayScore > 0 {
				credited++
			}
			if credited != 1 {
				t.Errorf("%s by %s credited %d slots (home=%d away=%d)",
					outcome.Outcome, possession, credited,
					state.Score.HomeScore, state.Score.AwayScore)
			}
		}
	}
}
