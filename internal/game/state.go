package game

import "fmt"

// Field geometry and reset spots. Field position is always measured from the
// offense's own goal line, so 100 means the ball is on the opponent's goal line.
const (
	FieldLength       = 100
	FirstDownDistance = 10

	// KickoffReturnSpot is where the receiving team starts after a score.
	KickoffReturnSpot = 25

	// PostTurnoverSpot is where the new offense starts after an interception
	// or lost fumble.
	PostTurnoverSpot = 25

	// TouchbackSpot floors punt results: a punt into the end zone comes out
	// to the 20.
	TouchbackSpot = 20

	// DefaultQuarterSeconds is the regulation quarter length.
	DefaultQuarterSeconds = 900

	// FinalQuarter is the last regulation period.
	FinalQuarter = 4
)

// Slot identifies one of the two fixed scoreboard slots.
type Slot int

const (
	SlotHome Slot = iota
	SlotAway
)

// String returns the string representation of the slot
func (s Slot) String() string {
	switch s {
	case SlotHome:
		return "home"
	case SlotAway:
		return "away"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// Opponent returns the other scoreboard slot.
func (s Slot) Opponent() Slot {
	if s == SlotHome {
		return SlotAway
	}
	return SlotHome
}

// TeamInfo identifies one of the two participating teams. The engine never
// looks at rosters or ratings, only at identity.
type TeamInfo struct {
	ID   int
	Name string
	Abbr string
}

// FieldState is the ball-placement sub-state of a game.
type FieldState struct {
	Position  int // 0-100, offense's distance from its own goal line
	Down      int // 1-4
	YardsToGo int
}

// ClockState is the time sub-state of a game. Remaining counts down within
// the current quarter.
type ClockState struct {
	Remaining     int // seconds left in the current quarter
	Quarter       int // 1-4
	QuarterLength int // seconds per quarter
	Running       bool
}

// Expired reports whether regulation time has run out.
func (c ClockState) Expired() bool {
	return c.Quarter >= FinalQuarter && c.Remaining <= 0
}

// Scoreboard holds the two cumulative point accumulators and the identity of
// the team occupying each slot.
type Scoreboard struct {
	HomeScore int
	AwayScore int
	Home      TeamInfo
	Away      TeamInfo
}

// Points returns the score in the given slot.
func (sb Scoreboard) Points(slot Slot) int {
	if slot == SlotHome {
		return sb.HomeScore
	}
	return sb.AwayScore
}

// Team returns the team record occupying the given slot.
func (sb Scoreboard) Team(slot Slot) TeamInfo {
	if slot == SlotHome {
		return sb.Home
	}
	return sb.Away
}

// Possession is the ball-ownership sub-state of a game.
type Possession struct {
	Slot Slot
}

// GameState is the authoritative mutable state of one simulated game. It is
// owned by the simulation loop and mutated in place by exactly one
// Applicator.ApplyPlay call at a time; the engine keeps no reference to it
// between calls.
type GameState struct {
	Field      FieldState
	Clock      ClockState
	Score      Scoreboard
	Possession Possession
}

// NewGameState creates the kickoff state for a game between the two teams,
// with the home team receiving first.
func NewGameState(home, away TeamInfo) *GameState {
	return NewGameStateWithQuarterLength(home, away, DefaultQuarterSeconds)
}

// NewGameStateWithQuarterLength creates a kickoff state with a custom quarter
// length, used by short-game tests and accelerated simulations.
func NewGameStateWithQuarterLength(home, away TeamInfo, quarterSeconds int) *GameState {
	return &GameState{
		Field: FieldState{
			Position:  KickoffReturnSpot,
			Down:      1,
			YardsToGo: FirstDownDistance,
		},
		Clock: ClockState{
			Remaining:     quarterSeconds,
			Quarter:       1,
			QuarterLength: quarterSeconds,
			Running:       false,
		},
		Score: Scoreboard{
			Home: home,
			Away: away,
		},
		Possession: Possession{Slot: SlotHome},
	}
}

// addPoints credits points to one scoreboard slot. Callers are responsible
// for recording the change; this helper never touches the other slot.
func (gs *GameState) addPoints(slot Slot, points int) {
	if slot == SlotHome {
		gs.Score.HomeScore += points
	} else {
		gs.Score.AwayScore += points
	}
}

// Offense returns the slot currently in possession.
func (gs *GameState) Offense() Slot {
	return gs.Possession.Slot
}

// Defense returns the slot not in possession.
func (gs *GameState) Defense() Slot {
	return gs.Possession.Slot.Opponent()
}
