package game

import "fmt"

// Severity grades a validation issue. Only error-severity issues make a
// result invalid; warnings and info never block.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rule reference codes attached to validation issues, so audit tooling can
// group findings without parsing messages.
const (
	RuleTouchdownSpot      = "TD01"
	RuleTouchdownPoints    = "TD02"
	RuleTouchdownPlayType  = "TD03"
	RuleFieldGoalPoints    = "FG01"
	RuleFieldGoalDistance  = "FG02"
	RuleFieldGoalDown      = "FG03"
	RuleSafetySpot         = "SF01"
	RuleSafetyPoints       = "SF02"
	RuleConversionPoints   = "CV01"
	RuleConversionSequence = "CV02"
	RuleScoreNegative      = "SC01"
	RuleScoreCeiling       = "SC02"
	RuleOpponentUnchanged  = "SC03"
)

// scoreSanityCeiling is the point total above which a score is flagged as
// suspicious. Nothing in league history comes close.
const scoreSanityCeiling = 100

// fieldGoalDistance converts a field position into kick distance: the yards
// to the goal line plus the end zone and the snap depth.
func fieldGoalDistance(position int) int {
	return (FieldLength - position) + 17
}

// ValidationIssue describes one rule violation or oddity, as data.
type ValidationIssue struct {
	Category string
	Severity Severity
	Message  string
	Field    string
	Expected string
	Rule     string
}

// String formats the issue for audit logs.
func (vi ValidationIssue) String() string {
	return fmt.Sprintf("[%s/%s] %s: %s", vi.Rule, vi.Severity, vi.Field, vi.Message)
}

// ValidationResult is the full set of issues found for one scoring
// transition.
type ValidationResult struct {
	Issues []ValidationIssue
}

// Valid reports whether the result contains no error-severity issues.
func (vr ValidationResult) Valid() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns only the error-severity issues.
func (vr ValidationResult) Errors() []ValidationIssue {
	return vr.filter(SeverityError)
}

// Warnings returns only the warning-severity issues.
func (vr ValidationResult) Warnings() []ValidationIssue {
	return vr.filter(SeverityWarning)
}

func (vr ValidationResult) filter(sev Severity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

func (vr *ValidationResult) add(category string, sev Severity, field, expected, rule, format string, args ...any) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Category: category,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Field:    field,
		Expected: expected,
		Rule:     rule,
	})
}

// ScoreCheck describes one scoring transition for independent verification:
// the scoring moment plus the scoreboard before and after.
type ScoreCheck struct {
	Outcome       OutcomeTag
	Category      PlayCategory
	FieldPosition int
	Down          int
	ScoringSlot   Slot

	HomeBefore int
	HomeAfter  int
	AwayBefore int
	AwayAfter  int

	// PreviousOutcome is the outcome of the immediately preceding play,
	// consulted only for conversion attempts.
	PreviousOutcome OutcomeTag
}

// delta returns the point change for the given slot.
func (c ScoreCheck) delta(slot Slot) int {
	if slot == SlotHome {
		return c.HomeAfter - c.HomeBefore
	}
	return c.AwayAfter - c.AwayBefore
}

// ScoreValidator independently checks scoring transitions against the
// rulebook. It is pure and stateless: checking the same input twice yields
// the same result. It never mutates game state and is meant for tests and
// audit tooling, not the apply hot path.
type ScoreValidator struct{}

// NewScoreValidator creates a score validator.
func NewScoreValidator() *ScoreValidator {
	return &ScoreValidator{}
}

// Check validates one scoring transition and returns every issue found.
func (v *ScoreValidator) Check(c ScoreCheck) ValidationResult {
	var result ValidationResult

	switch c.Outcome {
	case OutcomeTouchdown:
		v.checkTouchdown(c, &result)
	case OutcomeFieldGoalGood:
		v.checkFieldGoal(c, &result)
	case OutcomeSafety:
		v.checkSafety(c, &result)
	case OutcomeExtraPoint:
		v.checkConversion(c, PointsExtraPoint, &result)
	case OutcomeTwoPoint:
		v.checkConversion(c, PointsTwoPoint, &result)
	}

	v.checkBounds(c, &result)
	return result
}

func (v *ScoreValidator) checkTouchdown(c ScoreCheck, result *ValidationResult) {
	if c.FieldPosition != FieldLength {
		result.add("touchdown", SeverityError, "field_position", fmt.Sprint(FieldLength), RuleTouchdownSpot,
			"touchdown recorded at field position %d, ball must be at the goal line", c.FieldPosition)
	}
	v.checkDeltas(c, PointsTouchdown, "touchdown", RuleTouchdownPoints, result)

	switch c.Category {
	case PlayRush, PlayPass, "":
	default:
		result.add("touchdown", SeverityWarning, "category", "", RuleTouchdownPlayType,
			"touchdown from unusual play type %q", c.Category)
	}
}

func (v *ScoreValidator) checkFieldGoal(c ScoreCheck, result *ValidationResult) {
	v.checkDeltas(c, PointsFieldGoal, "field_goal", RuleFieldGoalPoints, result)

	dist := fieldGoalDistance(c.FieldPosition)
	if dist > 70 {
		result.add("field_goal", SeverityWarning, "field_position", "<= 70 yard attempt", RuleFieldGoalDistance,
			"%d-yard field goal is beyond any realistic range", dist)
	} else if dist < 20 {
		result.add("field_goal", SeverityWarning, "field_position", ">= 20 yard attempt", RuleFieldGoalDistance,
			"%d-yard field goal from the %d; this is touchdown territory", dist, FieldLength-c.FieldPosition)
	}
	if c.Down != 0 && c.Down != 4 {
		result.add("field_goal", SeverityWarning, "down", "4", RuleFieldGoalDown,
			"field goal attempted on down %d", c.Down)
	}
}

func (v *ScoreValidator) checkSafety(c ScoreCheck, result *ValidationResult) {
	if c.FieldPosition != 0 {
		result.add("safety", SeverityError, "field_position", "0", RuleSafetySpot,
			"safety recorded at field position %d, ball must be at the offense's goal line", c.FieldPosition)
	}
	v.checkDeltas(c, PointsSafety, "safety", RuleSafetyPoints, result)
}

func (v *ScoreValidator) checkConversion(c ScoreCheck, want int, result *ValidationResult) {
	if delta := c.delta(c.ScoringSlot); delta != want {
		result.add("conversion", SeverityError, "points", fmt.Sprint(want), RuleConversionPoints,
			"conversion credited %d points, attempt is worth %d", delta, want)
	}
	if opp := c.delta(c.ScoringSlot.Opponent()); opp != 0 {
		result.add("conversion", SeverityError, "points", "0", RuleOpponentUnchanged,
			"conversion changed the opponent's score by %d", opp)
	}
	if c.PreviousOutcome != OutcomeTouchdown {
		result.add("conversion", SeverityError, "previous_outcome", string(OutcomeTouchdown), RuleConversionSequence,
			"conversion attempt follows %q, not a touchdown", c.PreviousOutcome)
	}
}

// checkDeltas verifies the scorer gained exactly want points and the
// opponent's slot did not move.
func (v *ScoreValidator) checkDeltas(c ScoreCheck, want int, category, rule string, result *ValidationResult) {
	if delta := c.delta(c.ScoringSlot); delta != want {
		result.add(category, SeverityError, "points", fmt.Sprint(want), rule,
			"%s credited %d points to %s", category, delta, c.ScoringSlot)
	}
	if opp := c.delta(c.ScoringSlot.Opponent()); opp != 0 {
		result.add(category, SeverityError, "points", "0", RuleOpponentUnchanged,
			"%s changed the %s score by %d", category, c.ScoringSlot.Opponent(), opp)
	}
}

func (v *ScoreValidator) checkBounds(c ScoreCheck, result *ValidationResult) {
	for _, side := range []struct {
		field string
		score int
	}{
		{"home_score", c.HomeAfter},
		{"away_score", c.AwayAfter},
	} {
		if side.score < 0 {
			result.add("bounds", SeverityError, side.field, ">= 0", RuleScoreNegative,
				"%s is negative (%d)", side.field, side.score)
		}
		if side.score > scoreSanityCeiling {
			result.add("bounds", SeverityWarning, side.field, fmt.Sprintf("<= %d", scoreSanityCeiling), RuleScoreCeiling,
				"%s of %d exceeds the sanity ceiling", side.field, side.score)
		}
	}
}
