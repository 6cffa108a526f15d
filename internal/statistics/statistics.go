package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult is the outcome of one simulated gift exchange
type GameResult struct {
	Seed         int64 // RNG seed for this game (for replay)
	Valid        bool  // Every player ended with a gift and every gift was opened
	Steals       int   // Steal events across all turns
	LockedGifts  int   // Gifts locked by the end
	Actions      int   // Snapshots after the initial state
	LongestChain int   // Most steals inside a single turn
	SeatValues   []int // Final gift value per seat, in turn order
}

// SeatStats tracks the final gift value for one seat in turn order
type SeatStats struct {
	Games     int
	SumValue  float64
	SumValue2 float64
}

// Statistics aggregates many games. Steal counts are the primary sample.
type Statistics struct {
	Games      int
	ValidGames int
	SumSteals  float64
	SumSteals2 float64   // Sum of squares for variance calculation
	Values     []float64 // Steals per game, for median/percentile

	TotalLocked    int
	TotalActions   int
	ZeroStealGames int

	LongestChain     int
	LongestChainSeed int64

	// Index 0 is the first seat to act
	Seats []SeatStats
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	steals := float64(result.Steals)
	s.Games++
	if result.Valid {
		s.ValidGames++
	}
	s.SumSteals += steals
	s.SumSteals2 += steals * steals
	s.Values = append(s.Values, steals)

	s.TotalLocked += result.LockedGifts
	s.TotalActions += result.Actions
	if result.Steals == 0 {
		s.ZeroStealGames++
	}

	if result.LongestChain > s.LongestChain {
		s.LongestChain = result.LongestChain
		s.LongestChainSeed = result.Seed
	}

	for len(s.Seats) < len(result.SeatValues) {
		s.Seats = append(s.Seats, SeatStats{})
	}
	for seat, v := range result.SeatValues {
		value := float64(v)
		s.Seats[seat].Games++
		s.Seats[seat].SumValue += value
		s.Seats[seat].SumValue2 += value * value
	}
}

// Mean returns the mean number of steals per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumSteals / float64(s.Games)
}

// Variance returns the sample variance of steals per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSteals2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of steals per game
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

// Median returns the median steals per game
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sortedValues()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the steals per game at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sortedValues()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sortedValues() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// MeanLocked returns the mean number of locked gifts per game
func (s *Statistics) MeanLocked() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalLocked) / float64(s.Games)
}

// MeanActions returns the mean snapshot count per game
func (s *Statistics) MeanActions() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalActions) / float64(s.Games)
}

// SeatMean returns the mean final gift value for a seat (1-based)
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 1 || seat > len(s.Seats) {
		return 0
	}
	ss := s.Seats[seat-1]
	if ss.Games == 0 {
		return 0
	}
	return ss.SumValue / float64(ss.Games)
}

// Validate performs consistency checks over the accumulated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if s.ValidGames != s.Games {
		return fmt.Errorf("%d of %d games ended in an invalid state", s.Games-s.ValidGames, s.Games)
	}

	if s.ZeroStealGames > s.Games {
		return fmt.Errorf("zero-steal games (%d) exceeds total games (%d)", s.ZeroStealGames, s.Games)
	}

	for i, seat := range s.Seats {
		if seat.Games > s.Games {
			return fmt.Errorf("seat %d saw %d games out of %d", i+1, seat.Games, s.Games)
		}
	}

	return nil
}
