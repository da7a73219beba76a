package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed      int64 // RNG seed for this game (for replay)
	HomeScore int
	AwayScore int
	Plays     int // Transitions committed
	Turnovers int
	Dropped   int // Transitions rolled back and skipped
}

// Diff returns the home-minus-away point differential.
func (g GameResult) Diff() float64 {
	return float64(g.HomeScore - g.AwayScore)
}

// Statistics tracks aggregate results across simulated games. The central
// series is the home-minus-away point differential per game.
type Statistics struct {
	Games    int
	SumDiff  float64
	SumDiff2 float64   // Sum of squares for variance calculation
	Values   []float64 // All differentials for median/percentile calculation

	HomeWins int
	AwayWins int
	Ties     int

	TotalPoints int
	TotalPlays  int
	Turnovers   int
	Dropped     int

	MaxTotal     int   // Highest combined score observed
	MaxTotalSeed int64 // Seed that produced it (for replay)
}

// Mean returns the mean point differential per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumDiff / float64(s.Games)
}

// Variance returns the sample variance of the differentials
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumDiff2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the differentials
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	diff := result.Diff()
	s.Games++
	s.SumDiff += diff
	s.SumDiff2 += diff * diff
	s.Values = append(s.Values, diff)

	switch {
	case diff > 0:
		s.HomeWins++
	case diff < 0:
		s.AwayWins++
	default:
		s.Ties++
	}

	total := result.HomeScore + result.AwayScore
	s.TotalPoints += total
	s.TotalPlays += result.Plays
	s.Turnovers += result.Turnovers
	s.Dropped += result.Dropped

	if total > s.MaxTotal {
		s.MaxTotal = total
		s.MaxTotalSeed = result.Seed
	}
}

// Median returns the median point differential
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// HomeWinRate returns the fraction of games the home slot won
func (s *Statistics) HomeWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.HomeWins) / float64(s.Games)
}

// PointsPerGame returns the mean combined score
func (s *Statistics) PointsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalPoints) / float64(s.Games)
}

// Validate performs consistency checks on the accumulated statistics
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}
	if s.HomeWins+s.AwayWins+s.Ties != s.Games {
		return fmt.Errorf("outcome buckets (%d+%d+%d) do not sum to games count (%d)",
			s.HomeWins, s.AwayWins, s.Ties, s.Games)
	}
	if s.TotalPoints < 0 {
		return fmt.Errorf("negative total points: %d", s.TotalPoints)
	}
	if s.Dropped > s.TotalPlays+s.Dropped {
		return fmt.Errorf("dropped plays (%d) exceed attempted plays", s.Dropped)
	}
	return nil
}

// Summary formats the statistics for CLI output
func (s *Statistics) Summary() string {
	lo, hi := s.ConfidenceInterval95()
	return fmt.Sprintf(
		"games=%d home=%d away=%d ties=%d | diff mean=%.2f median=%.1f sd=%.2f 95%%CI=[%.2f, %.2f] | pts/game=%.1f turnovers=%d dropped=%d",
		s.Games, s.HomeWins, s.AwayWins, s.Ties,
		s.Mean(), s.Median(), s.StdDev(), lo, hi,
		s.PointsPerGame(), s.Turnovers, s.Dropped,
	)
}
