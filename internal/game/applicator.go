package game

import (
	"fmt"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/gridironlabs/gridiron/internal/gameid"
	"github.com/gridironlabs/gridiron/internal/randutil"
)

// Conversion success rates used when resolving the try after a touchdown.
const (
	ExtraPointSuccessRate = 0.95
	TwoPointSuccessRate   = 0.48
)

// kickSpotOffset is how far behind the line of scrimmage a field goal is
// kicked from. A missed attempt hands the ball over at the spot of the kick.
const kickSpotOffset = 7

// TransitionState tracks where a transition is in its lifecycle. Committed
// and RolledBack are the only terminal states.
type TransitionState string

const (
	StateNotStarted        TransitionState = "not_started"
	StateFieldApplied      TransitionState = "field_applied"
	StateScoreApplied      TransitionState = "score_applied"
	StateSpecialApplied    TransitionState = "special_applied"
	StatePossessionApplied TransitionState = "possession_applied"
	StateQuarterApplied    TransitionState = "quarter_applied"
	StateCommitted         TransitionState = "committed"
	StateRolledBack        TransitionState = "rolled_back"
)

// String returns the string representation of the transition state
func (ts TransitionState) String() string {
	return string(ts)
}

// TransitionResult reports the outcome of one ApplyPlay call as data. A
// rolled-back transition carries the reason in Err and an empty change list;
// no partial mutation is ever observable either way.
type TransitionResult struct {
	ID      string
	State   TransitionState
	Changes []ChangeRecord
	Err     error
}

// Committed reports whether the transition landed.
func (r TransitionResult) Committed() bool {
	return r.State == StateCommitted
}

// transitionContext bundles everything one ApplyPlay call needs. It is
// created per play and discarded when the call returns.
type transitionContext struct {
	outcome PlayOutcome
	state   *GameState
	tx      *Tx

	// offense/defense are the slots as of the snap, before any possession
	// flip this play causes.
	offense Slot
	defense Slot
	before  FieldState

	id                string
	phase             TransitionState
	log               changeLog
	events            []GameEvent
	scored            bool
	possessionChanged bool
}

// Applicator applies one play's full effect to a GameState as a single
// atomic unit. It is strictly synchronous: it assumes exclusive ownership of
// the state for the duration of one ApplyPlay call and holds no reference
// afterwards.
type Applicator struct {
	resolver *Resolver
	logger   *log.Logger
	clock    quartz.Clock
	rng      *rand.Rand
	bus      EventBus
	newID    func() string
}

// ApplicatorOption configures an Applicator.
type ApplicatorOption func(*Applicator)

// WithResolver replaces the default team resolver.
func WithResolver(r *Resolver) ApplicatorOption {
	return func(a *Applicator) { a.resolver = r }
}

// WithEventBus replaces the default event bus.
func WithEventBus(bus EventBus) ApplicatorOption {
	return func(a *Applicator) { a.bus = bus }
}

// WithClock injects the wall clock used for event timestamps.
func WithClock(clock quartz.Clock) ApplicatorOption {
	return func(a *Applicator) { a.clock = clock }
}

// WithRNG injects the random source used for conversion rolls.
func WithRNG(rng *rand.Rand) ApplicatorOption {
	return func(a *Applicator) { a.rng = rng }
}

// WithIDFunc replaces the transition id generator.
func WithIDFunc(newID func() string) ApplicatorOption {
	return func(a *Applicator) { a.newID = newID }
}

// NewApplicator creates an applicator with the given logger.
func NewApplicator(logger *log.Logger, opts ...ApplicatorOption) *Applicator {
	a := &Applicator{
		logger: logger.WithPrefix("applicator"),
		clock:  quartz.NewReal(),
		rng:    randutil.New(time.Now().UnixNano()),
		bus:    NewEventBus(),
		newID:  gameid.New,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.resolver == nil {
		a.resolver = NewResolver(logger)
	}
	return a
}

// EventBus returns the bus transition events are published on.
func (a *Applicator) EventBus() EventBus {
	return a.bus
}

// ApplyPlay applies outcome to state atomically. On any failure the state is
// rolled back to its pre-call snapshot before the result is returned, so the
// caller never observes a partially applied play.
func (a *Applicator) ApplyPlay(state *GameState, outcome PlayOutcome) TransitionResult {
	ctx := &transitionContext{
		outcome: outcome,
		state:   state,
		offense: state.Offense(),
		defense: state.Defense(),
		before:  state.Field,
		id:      a.newID(),
		phase:   StateNotStarted,
	}

	a.logger.Debug("begin transition",
		"id", ctx.id,
		"category", outcome.Category,
		"outcome", outcome.Outcome,
		"yards", outcome.Yards)

	ctx.tx = BeginTx(state)
	if err := a.apply(ctx); err != nil {
		reached := ctx.phase
		ctx.tx.Rollback()
		ctx.phase = StateRolledBack
		a.logger.Error("transition rolled back",
			"id", ctx.id,
			"phase_reached", reached,
			"error", err)
		return TransitionResult{
			ID:    ctx.id,
			State: StateRolledBack,
			Err:   fmt.Errorf("transition %s: %w", ctx.id, err),
		}
	}
	ctx.tx.Commit()
	ctx.phase = StateCommitted

	now := a.clock.Now()
	a.bus.Publish(NewPlayAppliedEvent(ctx.id, outcome, ctx.log.records, state.Clock.Quarter, state.Clock.Remaining, now))
	for _, ev := range ctx.events {
		a.bus.Publish(ev)
	}

	return TransitionResult{
		ID:      ctx.id,
		State:   StateCommitted,
		Changes: ctx.log.records,
	}
}

// apply runs the fixed-order mutation steps. Any error aborts the remaining
// steps; the caller rolls back.
func (a *Applicator) apply(ctx *transitionContext) error {
	// Step 2: a pending post-score field reset takes the place of the
	// generic field/clock update.
	if a.pendingFieldReset(ctx) {
		a.applyKickoffReset(ctx, ctx.outcome.Outcome)
	} else {
		a.applyFieldAndClock(ctx)
	}
	ctx.phase = StateFieldApplied

	// Step 4: scoring, including the atomically resolved conversion.
	if ctx.outcome.IsScore {
		if err := a.applyScore(ctx); err != nil {
			return err
		}
		ctx.phase = StateScoreApplied
	}

	// Step 5: turnovers, punts, post-score kickoffs.
	a.applySpecial(ctx)
	ctx.phase = StateSpecialApplied

	// Step 6: turnover on downs.
	a.applyDownsOverflow(ctx)
	ctx.phase = StatePossessionApplied

	// Step 7: quarter boundary bookkeeping.
	a.applyQuarterRollover(ctx)
	ctx.phase = StateQuarterApplied

	return a.checkInvariants(ctx)
}

// pendingFieldReset detects a score applied on a previous play whose field
// reset has not happened yet: ball at or past the goal line on a fresh first
// down, and the current play is not itself a score.
func (a *Applicator) pendingFieldReset(ctx *transitionContext) bool {
	f := ctx.before
	return f.Position >= FieldLength && f.Down == 1 && !ctx.outcome.IsScore
}

// applyKickoffReset flips possession and restarts the drive at the standard
// return spot.
func (a *Applicator) applyKickoffReset(ctx *transitionContext, reason OutcomeTag) {
	a.flipPossession(ctx, reason)
	a.placeBall(ctx, KickoffReturnSpot)
}

// applyFieldAndClock is the generic step-3 update: ball movement,
// down/distance, and the game clock.
func (a *Applicator) applyFieldAndClock(ctx *transitionContext) {
	f := &ctx.state.Field
	out := ctx.outcome

	pos := f.Position + out.Yards
	if pos < 0 {
		pos = 0
	}
	if pos > FieldLength {
		pos = FieldLength
	}
	ctx.log.record(ChangeFieldPosition, f.Position, pos)
	f.Position = pos

	if out.Yards >= f.YardsToGo {
		// Fresh set of downs.
		ctx.log.record(ChangeDown, f.Down, 1)
		f.Down = 1
		dist := min(FirstDownDistance, FieldLength-pos)
		ctx.log.record(ChangeYardsToGo, f.YardsToGo, dist)
		f.YardsToGo = dist
	} else {
		ctx.log.record(ChangeDown, f.Down, f.Down+1)
		f.Down++
		dist := max(1, f.YardsToGo-out.Yards)
		ctx.log.record(ChangeYardsToGo, f.YardsToGo, dist)
		f.YardsToGo = dist
	}

	c := &ctx.state.Clock
	rem := c.Remaining - out.Elapsed
	ctx.log.record(ChangeClock, c.Remaining, rem)
	c.Remaining = rem

	running := !out.StopsClock()
	ctx.log.recordBool(ChangeClockRunning, c.Running, running)
	c.Running = running
}

// applyScore credits the scoring team's slot. For touchdowns the conversion
// attempt resolves inside the same step, so the touchdown and its conversion
// either both land or neither does.
func (a *Applicator) applyScore(ctx *transitionContext) error {
	out := ctx.outcome

	ref := out.ScoringTeam
	if ref.IsZero() {
		if out.Outcome == OutcomeSafety {
			ref = SlotRef(ctx.defense)
		} else {
			ref = SlotRef(ctx.offense)
		}
	}
	slot, err := a.resolver.Resolve(ref, ctx.state)
	if err != nil {
		return fmt.Errorf("resolve scoring team: %w", err)
	}

	points := out.CanonicalPoints()
	if points == 0 {
		return fmt.Errorf("outcome %q is flagged as a score but has no point value", out.Outcome)
	}
	if out.Points != 0 && out.Points != points {
		return fmt.Errorf("outcome %q carries %d points, rules require %d", out.Outcome, out.Points, points)
	}

	a.creditPoints(ctx, slot, points, out.Outcome)

	if out.IsTouchdown() && out.Conversion != ConversionNone {
		if err := a.resolveConversion(ctx, slot); err != nil {
			return err
		}
	}
	ctx.scored = true
	return nil
}

// resolveConversion rolls the try after a touchdown and credits the points
// on success. An unknown conversion tag fails the whole transition, taking
// the touchdown back with it.
func (a *Applicator) resolveConversion(ctx *transitionContext, slot Slot) error {
	var points int
	var rate float64

	switch ctx.outcome.Conversion {
	case ConversionExtraPoint:
		points, rate = PointsExtraPoint, ExtraPointSuccessRate
	case ConversionTwoPoint:
		points, rate = PointsTwoPoint, TwoPointSuccessRate
	default:
		return fmt.Errorf("unknown conversion attempt %q", ctx.outcome.Conversion)
	}

	if a.rng.Float64() < rate {
		a.creditPoints(ctx, slot, points, ctx.outcome.Outcome)
		a.logger.Debug("conversion good", "id", ctx.id, "attempt", ctx.outcome.Conversion, "points", points)
	} else {
		a.logger.Debug("conversion no good", "id", ctx.id, "attempt", ctx.outcome.Conversion)
	}
	return nil
}

// creditPoints adds points to exactly one scoreboard slot and queues the
// score event.
func (a *Applicator) creditPoints(ctx *transitionContext, slot Slot, points int, outcome OutcomeTag) {
	sb := &ctx.state.Score
	if slot == SlotHome {
		ctx.log.record(ChangeHomeScore, sb.HomeScore, sb.HomeScore+points)
	} else {
		ctx.log.record(ChangeAwayScore, sb.AwayScore, sb.AwayScore+points)
	}
	ctx.state.addPoints(slot, points)
	ctx.events = append(ctx.events,
		NewScoreEvent(ctx.id, slot, points, outcome, sb.HomeScore, sb.AwayScore, a.clock.Now()))
}

// applySpecial handles the situations that move the ball outside the generic
// down-and-distance flow: turnovers, punts, and the kickoff after a score.
func (a *Applicator) applySpecial(ctx *transitionContext) {
	out := ctx.outcome

	switch {
	case out.IsTurnover && out.Outcome == OutcomeFieldGoalMissed:
		// Opponent takes over at the spot of the kick, not the original
		// line of scrimmage.
		a.flipPossession(ctx, out.Outcome)
		spot := max(0, ctx.before.Position-kickSpotOffset)
		a.placeBall(ctx, FieldLength-spot)

	case out.IsTurnover && !out.IsScore:
		a.flipPossession(ctx, out.Outcome)
		a.placeBall(ctx, PostTurnoverSpot)

	case out.Outcome == OutcomePuntAway:
		a.flipPossession(ctx, out.Outcome)
		landing := min(FieldLength, ctx.before.Position+out.PuntDistance)
		a.placeBall(ctx, max(TouchbackSpot, FieldLength-landing))

	case ctx.scored:
		// Kickoff to the non-scoring team. After a safety the conceding
		// team free-kicks away, which is the same possession flip.
		a.applyKickoffReset(ctx, out.Outcome)
	}
}

// applyDownsOverflow converts a failed fourth down into a turnover on downs,
// unless a possession change already happened this play.
func (a *Applicator) applyDownsOverflow(ctx *transitionContext) {
	f := &ctx.state.Field
	if f.Down <= 4 || ctx.possessionChanged {
		return
	}
	a.flipPossession(ctx, ctx.outcome.Outcome)
	a.placeBall(ctx, FieldLength-f.Position)
}

// applyQuarterRollover carries leftover elapsed time into the next period.
func (a *Applicator) applyQuarterRollover(ctx *transitionContext) {
	c := &ctx.state.Clock
	for c.Remaining <= 0 && c.Quarter < FinalQuarter && c.QuarterLength > 0 {
		ctx.log.record(ChangeQuarter, c.Quarter, c.Quarter+1)
		ctx.events = append(ctx.events, NewQuarterEndEvent(c.Quarter, c.Quarter+1, a.clock.Now()))
		rem := c.QuarterLength + c.Remaining
		ctx.log.record(ChangeClock, c.Remaining, rem)
		c.Quarter++
		c.Remaining = rem
	}
	if c.Quarter >= FinalQuarter && c.Remaining < 0 {
		ctx.log.record(ChangeClock, c.Remaining, 0)
		c.Remaining = 0
	}
}

// flipPossession hands the ball to the other team and queues the event.
func (a *Applicator) flipPossession(ctx *transitionContext, reason OutcomeTag) {
	from := ctx.state.Possession.Slot
	to := from.Opponent()
	ctx.log.record(ChangePossession, int(from), int(to))
	ctx.state.Possession.Slot = to
	ctx.possessionChanged = true
	ctx.events = append(ctx.events, NewPossessionChangeEvent(ctx.id, from, to, reason, a.clock.Now()))
}

// placeBall spots the ball for a fresh first down at the given position.
func (a *Applicator) placeBall(ctx *transitionContext, position int) {
	f := &ctx.state.Field
	ctx.log.record(ChangeFieldPosition, f.Position, position)
	f.Position = position
	ctx.log.record(ChangeDown, f.Down, 1)
	f.Down = 1
	dist := min(FirstDownDistance, FieldLength-position)
	ctx.log.record(ChangeYardsToGo, f.YardsToGo, dist)
	f.YardsToGo = dist
}

// checkInvariants verifies the committed-state invariants before the
// transaction is allowed to land.
func (a *Applicator) checkInvariants(ctx *transitionContext) error {
	s := ctx.state

	if s.Score.HomeScore < 0 || s.Score.AwayScore < 0 {
		return fmt.Errorf("negative score: home=%d away=%d", s.Score.HomeScore, s.Score.AwayScore)
	}
	if s.Field.Position < 0 || s.Field.Position > FieldLength {
		return fmt.Errorf("field position %d out of range", s.Field.Position)
	}
	if s.Field.Down < 1 || s.Field.Down > 4 {
		return fmt.Errorf("down %d out of range", s.Field.Down)
	}
	if s.Field.YardsToGo > FieldLength-s.Field.Position {
		return fmt.Errorf("yards to go %d overshoots the goal line at position %d",
			s.Field.YardsToGo, s.Field.Position)
	}
	if s.Field.YardsToGo < 0 {
		return fmt.Errorf("negative yards to go %d", s.Field.YardsToGo)
	}
	return nil
}
