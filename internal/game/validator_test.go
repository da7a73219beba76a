package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTouchdown(t *testing.T) {
	v := NewScoreValidator()

	t.Run("clean touchdown", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeTouchdown,
			Category:      PlayPass,
			FieldPosition: 100,
			ScoringSlot:   SlotHome,
			HomeBefore:    7, HomeAfter: 13,
			AwayBefore: 3, AwayAfter: 3,
		})
		assert.True(t, result.Valid())
		assert.Empty(t, result.Issues)
	})

	t.Run("short of the goal line", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeTouchdown,
			FieldPosition: 97,
			ScoringSlot:   SlotHome,
			HomeAfter:     6,
		})
		assert.False(t, result.Valid())
		require.NotEmpty(t, result.Errors())
		assert.Equal(t, RuleTouchdownSpot, result.Errors()[0].Rule)
	})

	t.Run("wrong point delta", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeTouchdown,
			FieldPosition: 100,
			ScoringSlot:   SlotAway,
			AwayBefore:    0, AwayAfter: 7,
		})
		assert.False(t, result.Valid())
	})

	t.Run("opponent slot moved", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeTouchdown,
			FieldPosition: 100,
			ScoringSlot:   SlotHome,
			HomeAfter:     6,
			AwayBefore:    0, AwayAfter: 6,
		})
		assert.False(t, result.Valid())
	})

	t.Run("odd play type warns but passes", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeTouchdown,
			Category:      PlayPunt,
			FieldPosition: 100,
			ScoringSlot:   SlotHome,
			HomeAfter:     6,
		})
		assert.True(t, result.Valid(), "warnings never block")
		assert.NotEmpty(t, result.Warnings())
	})
}

func TestValidateFieldGoal(t *testing.T) {
	v := NewScoreValidator()

	t.Run("routine make", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeFieldGoalGood,
			Category:      PlayFieldGoal,
			FieldPosition: 75, // 42-yard attempt
			Down:          4,
			ScoringSlot:   SlotAway,
			AwayBefore:    0, AwayAfter: 3,
		})
		assert.True(t, result.Valid())
		assert.Empty(t, result.Issues)
	})

	t.Run("unrealistic distance warns", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeFieldGoalGood,
			FieldPosition: 40, // 77-yard attempt
			Down:          4,
			ScoringSlot:   SlotHome,
			HomeAfter:     3,
		})
		assert.True(t, result.Valid())
		require.NotEmpty(t, result.Warnings())
		assert.Equal(t, RuleFieldGoalDistance, result.Warnings()[0].Rule)
	})

	t.Run("chip shot warns", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeFieldGoalGood,
			FieldPosition: 99, // 18-yard attempt
			Down:          4,
			ScoringSlot:   SlotHome,
			HomeAfter:     3,
		})
		assert.True(t, result.Valid())
		assert.NotEmpty(t, result.Warnings())
	})

	t.Run("early-down attempt warns", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeFieldGoalGood,
			FieldPosition: 70,
			Down:          2,
			ScoringSlot:   SlotHome,
			HomeAfter:     3,
		})
		assert.True(t, result.Valid())
		require.NotEmpty(t, result.Warnings())
		assert.Equal(t, RuleFieldGoalDown, result.Warnings()[0].Rule)
	})

	t.Run("non-kicking slot moved", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeFieldGoalGood,
			FieldPosition: 70,
			Down:          4,
			ScoringSlot:   SlotHome,
			HomeAfter:     3,
			AwayAfter:     1,
		})
		assert.False(t, result.Valid())
	})
}

func TestValidateSafety(t *testing.T) {
	v := NewScoreValidator()

	t.Run("clean safety", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeSafety,
			FieldPosition: 0,
			ScoringSlot:   SlotAway,
			AwayAfter:     2,
		})
		assert.True(t, result.Valid())
	})

	t.Run("ball not at the goal line", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeSafety,
			FieldPosition: 4,
			ScoringSlot:   SlotAway,
			AwayAfter:     2,
		})
		assert.False(t, result.Valid())
	})
}

func TestValidateConversions(t *testing.T) {
	v := NewScoreValidator()

	t.Run("extra point after touchdown", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:         OutcomeExtraPoint,
			ScoringSlot:     SlotHome,
			HomeBefore:      6, HomeAfter: 7,
			PreviousOutcome: OutcomeTouchdown,
		})
		assert.True(t, result.Valid())
	})

	t.Run("two-point after touchdown", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:         OutcomeTwoPoint,
			ScoringSlot:     SlotAway,
			AwayBefore:      12, AwayAfter: 14,
			PreviousOutcome: OutcomeTouchdown,
		})
		assert.True(t, result.Valid())
	})

	t.Run("conversion out of sequence", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:         OutcomeExtraPoint,
			ScoringSlot:     SlotHome,
			HomeBefore:      6, HomeAfter: 7,
			PreviousOutcome: OutcomeCompletion,
		})
		assert.False(t, result.Valid())
		require.NotEmpty(t, result.Errors())
		assert.Equal(t, RuleConversionSequence, result.Errors()[0].Rule)
	})

	t.Run("wrong value for attempt type", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:         OutcomeTwoPoint,
			ScoringSlot:     SlotHome,
			HomeBefore:      6, HomeAfter: 7,
			PreviousOutcome: OutcomeTouchdown,
		})
		assert.False(t, result.Valid())
	})
}

func TestValidateScoreBounds(t *testing.T) {
	v := NewScoreValidator()

	t.Run("negative score is an error", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeTouchdown,
			FieldPosition: 100,
			ScoringSlot:   SlotHome,
			HomeBefore:    -8, HomeAfter: -2,
		})
		assert.False(t, result.Valid())
	})

	t.Run("absurd total warns", func(t *testing.T) {
		result := v.Check(ScoreCheck{
			Outcome:       OutcomeTouchdown,
			FieldPosition: 100,
			ScoringSlot:   SlotHome,
			HomeBefore:    98, HomeAfter: 104,
		})
		assert.True(t, result.Valid())
		assert.NotEmpty(t, result.Warnings())
	})
}

func TestValidatorIsDeterministic(t *testing.T) {
	v := NewScoreValidator()
	check := ScoreCheck{
		Outcome:       OutcomeFieldGoalGood,
		FieldPosition: 40,
		Down:          2,
		ScoringSlot:   SlotHome,
		HomeBefore:    0, HomeAfter: 4,
		AwayAfter: -1,
	}

	first := v.Check(check)
	second := v.Check(check)
	assert.Equal(t, first, second, "identical inputs must yield identical results")
}
