package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
)

// HandResult represents the outcome of a single simulated round
type HandResult struct {
	Hand          int           // Index of the hand within the run
	Seed          int64         // RNG seed of the run (for replay with Hand)
	FirstToMove   int           // Seat that acted first
	Showdown      bool          // Did the round reach a showdown?
	StreetReached holdem.Street // Last street with community cards dealt
	PotSize       int           // Chips distributed at the end of the round
	Pots          int           // Number of pots, main pot included
	SplitPots     int           // Pots shared by more than one winner
	Actions       int           // Voluntary actions taken
}

// Statistics aggregates simulated rounds
type Statistics struct {
	Hands   int
	SumPot  float64
	SumPot2 float64 // Sum of squares for variance calculation
	Values  []float64

	Showdowns   int
	NoShowdowns int
	SidePots    int // Pots beyond the main pot
	SplitPots   int
	Actions     int

	// Streets counts hands by the furthest street reached
	Streets [holdem.StreetRiver + 1]int
	// FirstToMove counts hands by the seat that opened the action
	FirstToMove [holdem.MaxSeats + 1]int

	MaxPot int
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	pot := float64(result.PotSize)
	s.Hands++
	s.SumPot += pot
	s.SumPot2 += pot * pot
	s.Values = append(s.Values, pot)

	if result.Showdown {
		s.Showdowns++
	} else {
		s.NoShowdowns++
	}
	if result.Pots > 1 {
		s.SidePots += result.Pots - 1
	}
	s.SplitPots += result.SplitPots
	s.Actions += result.Actions

	if result.StreetReached >= holdem.StreetPreFlop && result.StreetReached <= holdem.StreetRiver {
		s.Streets[result.StreetReached]++
	}
	if seat := result.FirstToMove; seat >= 1 && seat <= holdem.MaxSeats {
		s.FirstToMove[seat]++
	}
	if result.PotSize > s.MaxPot {
		s.MaxPot = result.PotSize
	}
}

// Mean returns the average pot size
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumPot / float64(s.Hands)
}

// Variance returns the sample variance of pot sizes
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumPot2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of pot sizes
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// ShowdownRate returns the fraction of hands that reached a showdown
func (s *Statistics) ShowdownRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Showdowns) / float64(s.Hands)
}

// Median returns the median pot size
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the pot size at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if s.Showdowns+s.NoShowdowns != s.Hands {
		return fmt.Errorf("showdowns (%d) and no-showdowns (%d) do not add up to %d hands",
			s.Showdowns, s.NoShowdowns, s.Hands)
	}

	streets := 0
	for _, n := range s.Streets {
		streets += n
	}
	if streets != s.Hands {
		return fmt.Errorf("street totals (%d) do not match total hands (%d)", streets, s.Hands)
	}

	seats := 0
	for _, n := range s.FirstToMove {
		seats += n
	}
	if seats != s.Hands {
		return fmt.Errorf("first-to-move totals (%d) do not match total hands (%d)", seats, s.Hands)
	}
	return nil
}
