package sim

import (
	rand "math/rand/v2"

	"github.com/gridironlabs/gridiron/internal/game"
	"github.com/gridironlabs/gridiron/internal/randutil"
)

// Tendencies are the play-calling and outcome knobs for the generator. All
// probabilities are in [0,1].
type Tendencies struct {
	PassRate         float64 `hcl:"pass_rate,optional"`
	CompletionRate   float64 `hcl:"completion_rate,optional"`
	SackRate         float64 `hcl:"sack_rate,optional"`
	InterceptionRate float64 `hcl:"interception_rate,optional"`
	FumbleRate       float64 `hcl:"fumble_rate,optional"`
	TwoPointRate     float64 `hcl:"two_point_rate,optional"`

	// MaxFieldGoal is the longest attempt, in kick yards, the coach will
	// send the kicker out for on fourth down.
	MaxFieldGoal int `hcl:"max_field_goal,optional"`
}

// DefaultTendencies returns league-average play-calling knobs.
func DefaultTendencies() Tendencies {
	return Tendencies{
		PassRate:         0.55,
		CompletionRate:   0.62,
		SackRate:         0.06,
		InterceptionRate: 0.025,
		FumbleRate:       0.012,
		TwoPointRate:     0.08,
		MaxFieldGoal:     58,
	}
}

// Playbook generates play outcomes for the current game situation. It is the
// upstream collaborator of the transition engine: it only decides what
// happened, never touches the state itself.
type Playbook struct {
	rng *rand.Rand
	t   Tendencies
}

// NewPlaybook creates a playbook driven by the given random source.
func NewPlaybook(rng *rand.Rand, t Tendencies) *Playbook {
	return &Playbook{rng: rng, t: t}
}

// Call picks and resolves the next play for the offense.
func (p *Playbook) Call(state *game.GameState) game.PlayOutcome {
	f := state.Field

	if p.shouldKneel(state) {
		return game.PlayOutcome{
			Category: game.PlayKneel,
			Outcome:  game.OutcomeKneelDown,
			Yards:    -1,
			Elapsed:  40,
		}
	}

	if f.Down == 4 {
		kick := game.FieldLength - f.Position + 17
		if kick <= p.t.MaxFieldGoal {
			return p.fieldGoal(kick)
		}
		if f.Position < 60 {
			return p.punt()
		}
		// Too close to punt, too far to kick: go for it.
	}

	if randutil.Chance(p.rng, p.t.PassRate) {
		return p.pass(f)
	}
	return p.rush(f)
}

// shouldKneel is the victory formation: ahead in the final minute of the
// fourth quarter.
func (p *Playbook) shouldKneel(state *game.GameState) bool {
	c := state.Clock
	if c.Quarter != game.FinalQuarter || c.Remaining > 60 {
		return false
	}
	lead := state.Score.Points(state.Offense()) - state.Score.Points(state.Defense())
	return lead > 0
}

func (p *Playbook) fieldGoal(kick int) game.PlayOutcome {
	// Make probability decays roughly a point per yard past the easy range.
	prob := 1.08 - 0.013*float64(kick)
	if randutil.Chance(p.rng, prob) {
		return game.PlayOutcome{
			Category: game.PlayFieldGoal,
			Outcome:  game.OutcomeFieldGoalGood,
			Elapsed:  5,
			IsScore:  true,
			Points:   game.PointsFieldGoal,
		}
	}
	return game.PlayOutcome{
		Category:   game.PlayFieldGoal,
		Outcome:    game.OutcomeFieldGoalMissed,
		Elapsed:    5,
		IsTurnover: true,
	}
}

func (p *Playbook) punt() game.PlayOutcome {
	return game.PlayOutcome{
		Category:     game.PlayPunt,
		Outcome:      game.OutcomePuntAway,
		PuntDistance: 35 + p.rng.IntN(21),
		Elapsed:      6 + p.rng.IntN(4),
	}
}

func (p *Playbook) rush(f game.FieldState) game.PlayOutcome {
	if randutil.Chance(p.rng, p.t.FumbleRate) {
		return game.PlayOutcome{
			Category:   game.PlayRush,
			Outcome:    game.OutcomeFumbleLost,
			Elapsed:    5 + p.rng.IntN(3),
			IsTurnover: true,
		}
	}

	yards := p.rng.IntN(9) - 2 // -2..6
	if p.rng.IntN(20) == 0 {
		yards += p.rng.IntN(40) // breakaway
	}
	return p.finishScrimmage(game.PlayRush, game.OutcomeRun, f, yards, 25+p.rng.IntN(16))
}

func (p *Playbook) pass(f game.FieldState) game.PlayOutcome {
	switch {
	case randutil.Chance(p.rng, p.t.SackRate):
		return p.finishScrimmage(game.PlayPass, game.OutcomeSack, f, -(3 + p.rng.IntN(6)), 28+p.rng.IntN(10))
	case randutil.Chance(p.rng, p.t.InterceptionRate):
		return game.PlayOutcome{
			Category:   game.PlayPass,
			Outcome:    game.OutcomeInterception,
			Elapsed:    5 + p.rng.IntN(3),
			IsTurnover: true,
		}
	case randutil.Chance(p.rng, p.t.CompletionRate):
		yards := 3 + p.rng.IntN(13)
		if p.rng.IntN(10) == 0 {
			yards += p.rng.IntN(30) // deep shot
		}
		outcome := game.OutcomeCompletion
		if p.rng.IntN(100) < 15 {
			outcome = game.OutcomeOutOfBounds // receiver steps out, clock stops
		}
		return p.finishScrimmage(game.PlayPass, outcome, f, yards, 24+p.rng.IntN(14))
	default:
		return game.PlayOutcome{
			Category: game.PlayPass,
			Outcome:  game.OutcomeIncompletion,
			Elapsed:  5 + p.rng.IntN(3),
		}
	}
}

// finishScrimmage turns a raw yardage result into its terminal outcome:
// crossing the goal line makes it a touchdown, getting driven back into the
// end zone makes it a safety.
func (p *Playbook) finishScrimmage(category game.PlayCategory, outcome game.OutcomeTag, f game.FieldState, yards, elapsed int) game.PlayOutcome {
	switch {
	case f.Position+yards >= game.FieldLength:
		conversion := game.ConversionExtraPoint
		if randutil.Chance(p.rng, p.t.TwoPointRate) {
			conversion = game.ConversionTwoPoint
		}
		return game.PlayOutcome{
			Category:   category,
			Outcome:    game.OutcomeTouchdown,
			Yards:      game.FieldLength - f.Position,
			Elapsed:    elapsed,
			IsScore:    true,
			Points:     game.PointsTouchdown,
			Conversion: conversion,
		}
	case f.Position+yards <= 0:
		return game.PlayOutcome{
			Category: category,
			Outcome:  game.OutcomeSafety,
			Yards:    -f.Position,
			Elapsed:  elapsed,
			IsScore:  true,
			Points:   game.PointsSafety,
		}
	default:
		return game.PlayOutcome{
			Category: category,
			Outcome:  outcome,
			Yards:    yards,
			Elapsed:  elapsed,
		}
	}
}
