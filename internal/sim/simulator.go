// Package sim drives full games through the transition engine: a seeded
// playbook generates outcomes and the applicator commits them play by play.
package sim

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gridironlabs/gridiron/internal/game"
	"github.com/gridironlabs/gridiron/internal/randutil"
	"github.com/gridironlabs/gridiron/internal/statistics"
)

// maxPlays guards against a play generator that stops consuming clock.
const maxPlays = 500

// maxConsecutiveDrops bounds how many rolled-back plays in a row the driver
// skips before it aborts the game.
const maxConsecutiveDrops = 3

// Config holds configuration for running simulations
type Config struct {
	Games          int
	Seed           int64
	QuarterSeconds int
	Home           game.TeamInfo
	Away           game.TeamInfo
	Tendencies     Tendencies
	Logger         *log.Logger
}

// Simulator runs seeded game simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	return &Simulator{config: config}
}

// Run simulates the configured number of games and returns aggregate
// statistics. Each game derives its own seed so individual games replay
// independently.
func (s *Simulator) Run() (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}

	for i := 0; i < s.config.Games; i++ {
		seed := s.config.Seed + int64(i)
		result, err := s.PlayGame(seed, nil)
		if err != nil {
			return nil, fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
		}
		stats.Add(result)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// PlayGame simulates one full game from the given seed. When bus is non-nil
// every transition's events are published to it, ending with a GameEndEvent.
func (s *Simulator) PlayGame(seed int64, bus game.EventBus) (statistics.GameResult, error) {
	logger := s.config.Logger.With("seed", seed)
	rng := randutil.New(seed)

	state := game.NewGameStateWithQuarterLength(s.config.Home, s.config.Away, s.config.QuarterSeconds)
	playbook := NewPlaybook(rng, s.config.Tendencies)

	opts := []game.ApplicatorOption{game.WithRNG(rng)}
	if bus != nil {
		opts = append(opts, game.WithEventBus(bus))
	}
	applicator := game.NewApplicator(logger, opts...)

	result := statistics.GameResult{Seed: seed}
	drops := 0

	for !state.Clock.Expired() {
		if result.Plays >= maxPlays {
			return result, fmt.Errorf("game did not terminate after %d plays", maxPlays)
		}

		outcome := playbook.Call(state)
		tr := applicator.ApplyPlay(state, outcome)
		if !tr.Committed() {
			// The state rolled back cleanly; drop the play and move on.
			result.Dropped++
			drops++
			logger.Warn("play dropped", "transition", tr.ID, "error", tr.Err)
			if drops >= maxConsecutiveDrops {
				return result, fmt.Errorf("aborting after %d consecutive dropped plays: %w", drops, tr.Err)
			}
			continue
		}
		drops = 0
		result.Plays++
		if outcome.IsTurnover {
			result.Turnovers++
		}
	}

	result.HomeScore = state.Score.HomeScore
	result.AwayScore = state.Score.AwayScore

	logger.Debug("game complete",
		"home", result.HomeScore,
		"away", result.AwayScore,
		"plays", result.Plays,
		"turnovers", result.Turnovers)

	if bus != nil {
		bus.Publish(game.NewGameEndEvent(state.Score, time.Now()))
	}
	return result, nil
}
