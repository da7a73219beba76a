package game

// PlayCategory classifies what kind of play was called. The engine makes no
// assumptions about how the upstream simulator picked it.
type PlayCategory string

const (
	PlayRush      PlayCategory = "rush"
	PlayPass      PlayCategory = "pass"
	PlayPunt      PlayCategory = "punt"
	PlayFieldGoal PlayCategory = "field_goal"
	PlayKneel     PlayCategory = "kneel"
)

// OutcomeTag classifies how a play ended.
type OutcomeTag string

const (
	OutcomeRun             OutcomeTag = "run"
	OutcomeCompletion      OutcomeTag = "completion"
	OutcomeIncompletion    OutcomeTag = "incompletion"
	OutcomeSack            OutcomeTag = "sack"
	OutcomeOutOfBounds     OutcomeTag = "out_of_bounds"
	OutcomePenalty         OutcomeTag = "penalty"
	OutcomeTouchdown       OutcomeTag = "touchdown"
	OutcomeFieldGoalGood   OutcomeTag = "field_goal_good"
	OutcomeFieldGoalMissed OutcomeTag = "field_goal_missed"
	OutcomeInterception    OutcomeTag = "interception"
	OutcomeFumbleLost      OutcomeTag = "fumble_lost"
	OutcomeSafety          OutcomeTag = "safety"
	OutcomePuntAway        OutcomeTag = "punt_away"
	OutcomeKneelDown       OutcomeTag = "kneel_down"

	// Conversion tries appear as standalone outcomes only in audit logs;
	// the applicator resolves them inside the touchdown transition.
	OutcomeExtraPoint OutcomeTag = "extra_point"
	OutcomeTwoPoint   OutcomeTag = "two_point"
)

// String returns the string representation of the outcome tag
func (o OutcomeTag) String() string {
	return string(o)
}

// ConversionTag names the try attempted after a touchdown.
type ConversionTag string

const (
	ConversionNone       ConversionTag = ""
	ConversionExtraPoint ConversionTag = "extra_point"
	ConversionTwoPoint   ConversionTag = "two_point"
)

// Canonical point values for each scoring outcome.
const (
	PointsTouchdown  = 6
	PointsFieldGoal  = 3
	PointsSafety     = 2
	PointsExtraPoint = 1
	PointsTwoPoint   = 2
)

// PlayOutcome describes everything the simulator decided about one play. It
// is immutable for the duration of an ApplyPlay call.
type PlayOutcome struct {
	Category PlayCategory
	Outcome  OutcomeTag

	// Yards is the net yardage gained by the offense. Negative for sacks
	// and losses. Zero for punts; the kick itself is PuntDistance.
	Yards int

	// PuntDistance is the gross kick distance of a punt, measured from the
	// line of scrimmage.
	PuntDistance int

	// Elapsed is how many game-clock seconds the play consumed.
	Elapsed int

	IsScore    bool
	Points     int
	IsTurnover bool

	// ScoringTeam optionally names the team to credit for a score. When
	// zero, the possessing team is credited (the non-possessing team for a
	// safety).
	ScoringTeam TeamRef

	// Conversion is the try attempted after a touchdown, if any.
	Conversion ConversionTag
}

// StopsClock reports whether the play ends with an administratively dead
// ball, which freezes the game clock until the next snap.
func (po PlayOutcome) StopsClock() bool {
	switch po.Outcome {
	case OutcomeIncompletion, OutcomeOutOfBounds, OutcomePenalty:
		return true
	}
	return po.IsScore || po.IsTurnover
}

// IsTouchdown reports whether the outcome is a touchdown.
func (po PlayOutcome) IsTouchdown() bool {
	return po.Outcome == OutcomeTouchdown
}

// CanonicalPoints returns the rulebook point value for the outcome, or 0 for
// non-scoring outcomes.
func (po PlayOutcome) CanonicalPoints() int {
	switch po.Outcome {
	case OutcomeTouchdown:
		return PointsTouchdown
	case OutcomeFieldGoalGood:
		return PointsFieldGoal
	case OutcomeSafety:
		return PointsSafety
	}
	return 0
}
