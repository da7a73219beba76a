package statistics

import (
	"math"
	"testing"
)

func TestAddAccumulates(t *testing.T) {
	var s Statistics
	s.Add(GameResult{Seed: 1, HomeScore: 24, AwayScore: 17, Plays: 120, Turnovers: 2})
	s.Add(GameResult{Seed: 2, HomeScore: 10, AwayScore: 31, Plays: 118, Turnovers: 4})
	s.Add(GameResult{Seed: 3, HomeScore: 20, AwayScore: 20, Plays: 125})

	if s.Games != 3 {
		t.Errorf("Games = %d, want 3", s.Games)
	}
	if s.HomeWins != 1 || s.AwayWins != 1 || s.Ties != 1 {
		t.Errorf("buckets = %d/%d/%d, want 1/1/1", s.HomeWins, s.AwayWins, s.Ties)
	}
	if s.Turnovers != 6 {
		t.Errorf("Turnovers = %d, want 6", s.Turnovers)
	}
	if s.MaxTotal != 41 || s.MaxTotalSeed != 2 {
		t.Errorf("MaxTotal = %d (seed %d), want 41 (seed 2)", s.MaxTotal, s.MaxTotalSeed)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMeanAndMedian(t *testing.T) {
	var s Statistics
	for _, diff := range []struct{ home, away int }{
		{14, 0}, {0, 7}, {21, 0},
	} {
		s.Add(GameResult{HomeScore: diff.home, AwayScore: diff.away})
	}

	if got := s.Mean(); math.Abs(got-9.333) > 0.001 {
		t.Errorf("Mean() = %f, want ~9.333", got)
	}
	if got := s.Median(); got != 14 {
		t.Errorf("Median() = %f, want 14", got)
	}
}

func TestEmptyStatisticsAreSafe(t *testing.T) {
	var s Statistics
	if s.Mean() != 0 || s.StdDev() != 0 || s.Median() != 0 || s.HomeWinRate() != 0 {
		t.Error("empty statistics must return zeros, not NaN")
	}
	if err := s.Validate(); err == nil {
		t.Error("Validate() must reject an empty run")
	}
}

func TestValidateCatchesCorruption(t *testing.T) {
	var s Statistics
	s.Add(GameResult{HomeScore: 7, AwayScore: 3})
	s.HomeWins = 5 // corrupt the buckets

	if err := s.Validate(); err == nil {
		t.Error("Validate() must catch inconsistent outcome buckets")
	}
}

func TestVarianceMatchesHandComputation(t *testing.T) {
	var s Statistics
	diffs := []int{3, -7, 10, 0}
	for _, d := range diffs {
		s.Add(GameResult{HomeScore: d, AwayScore: 0})
	}

	mean := s.Mean()
	var want float64
	for _, d := range diffs {
		want += (float64(d) - mean) * (float64(d) - mean)
	}
	want /= float64(len(diffs) - 1)

	if got := s.Variance(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Variance() = %f, want %f", got, want)
	}
}
