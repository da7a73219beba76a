package game

import (
	"fmt"
	"io"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// TestStateOption configures test game-state creation
type TestStateOption func(*GameState)

// Test state options
func WithFieldPosition(position int) TestStateOption {
	return func(s *GameState) { s.Field.Position = position }
}

func WithDownAndDistance(down, yardsToGo int) TestStateOption {
	return func(s *GameState) {
		s.Field.Down = down
		s.Field.YardsToGo = yardsToGo
	}
}

func WithPossession(slot Slot) TestStateOption {
	return func(s *GameState) { s.Possession.Slot = slot }
}

func WithScores(home, away int) TestStateOption {
	return func(s *GameState) {
		s.Score.HomeScore = home
		s.Score.AwayScore = away
	}
}

func WithGameClock(quarter, remaining int) TestStateOption {
	return func(s *GameState) {
		s.Clock.Quarter = quarter
		s.Clock.Remaining = remaining
	}
}

func WithQuarterLength(seconds int) TestStateOption {
	return func(s *GameState) { s.Clock.QuarterLength = seconds }
}

// NewTestState creates a game state for testing with sensible defaults: the
// Atoms at home against the Sharks, first quarter, first and ten from the 25.
func NewTestState(opts ...TestStateOption) *GameState {
	state := NewGameState(
		TeamInfo{ID: 1, Name: "Springfield Atoms", Abbr: "SPR"},
		TeamInfo{ID: 2, Name: "Shelbyville Sharks", Abbr: "SHV"},
	)
	for _, opt := range opts {
		opt(state)
	}
	return state
}

// testLogger returns a logger that discards everything.
func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// fixedSource is a rand source that always yields the same value, used to
// force conversion rolls one way or the other.
type fixedSource struct{ v uint64 }

func (s fixedSource) Uint64() uint64 { return s.v }

// alwaysRNG returns a random source whose Float64 is always 0, so every
// probability roll succeeds.
func alwaysRNG() *rand.Rand {
	return rand.New(fixedSource{0})
}

// neverRNG returns a random source whose Float64 is just under 1, so every
// probability roll fails.
func neverRNG() *rand.Rand {
	return rand.New(fixedSource{^uint64(0)})
}

// sequentialIDs returns an id generator producing t1, t2, t3, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

// newTestApplicator builds an applicator wired for deterministic tests.
func newTestApplicator(opts ...ApplicatorOption) *Applicator {
	base := []ApplicatorOption{
		WithRNG(alwaysRNG()),
		WithIDFunc(sequentialIDs()),
	}
	return NewApplicator(testLogger(), append(base, opts...)...)
}
