package statistics

import (
	"math"
	"testing"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.ShowdownRate() != 0 {
		t.Errorf("Expected showdown rate of 0 for empty stats, got %f", stats.ShowdownRate())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	results := []HandResult{
		{Hand: 0, FirstToMove: 1, Showdown: false, StreetReached: holdem.StreetPreFlop, PotSize: 30, Pots: 1, Actions: 1},
		{Hand: 1, FirstToMove: 2, Showdown: true, StreetReached: holdem.StreetRiver, PotSize: 120, Pots: 2, Actions: 9},
		{Hand: 2, FirstToMove: 3, Showdown: true, StreetReached: holdem.StreetRiver, PotSize: 60, Pots: 1, SplitPots: 1, Actions: 8},
		{Hand: 3, FirstToMove: 1, Showdown: false, StreetReached: holdem.StreetFlop, PotSize: 90, Pots: 1, Actions: 4},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if stats.Hands != 4 {
		t.Errorf("Expected 4 hands, got %d", stats.Hands)
	}
	if stats.Mean() != 75 {
		t.Errorf("Expected mean pot of 75, got %f", stats.Mean())
	}
	// Pots 30, 60, 90, 120: sample variance is 1500.
	if math.Abs(stats.Variance()-1500) > 1e-9 {
		t.Errorf("Expected variance of 1500, got %f", stats.Variance())
	}
	if stats.Median() != 75 {
		t.Errorf("Expected median of 75, got %f", stats.Median())
	}
	if stats.Percentile(1) != 120 {
		t.Errorf("Expected 100th percentile of 120, got %f", stats.Percentile(1))
	}
	if stats.Percentile(0) != 30 {
		t.Errorf("Expected 0th percentile of 30, got %f", stats.Percentile(0))
	}
	if stats.ShowdownRate() != 0.5 {
		t.Errorf("Expected showdown rate of 0.5, got %f", stats.ShowdownRate())
	}
	if stats.SidePots != 1 {
		t.Errorf("Expected 1 side pot, got %d", stats.SidePots)
	}
	if stats.SplitPots != 1 {
		t.Errorf("Expected 1 split pot, got %d", stats.SplitPots)
	}
	if stats.Actions != 22 {
		t.Errorf("Expected 22 actions, got %d", stats.Actions)
	}
	if stats.Streets[holdem.StreetRiver] != 2 {
		t.Errorf("Expected 2 hands reaching the river, got %d", stats.Streets[holdem.StreetRiver])
	}
	if stats.FirstToMove[1] != 2 {
		t.Errorf("Expected seat 1 to open 2 hands, got %d", stats.FirstToMove[1])
	}
	if stats.MaxPot != 120 {
		t.Errorf("Expected max pot of 120, got %d", stats.MaxPot)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_ValidateDetectsMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{FirstToMove: 1, StreetReached: holdem.StreetFlop, PotSize: 10})

	broken := *stats
	broken.Showdowns++
	if err := broken.Validate(); err == nil {
		t.Error("Expected showdown mismatch to fail validation")
	}

	broken = *stats
	broken.Streets[holdem.StreetTurn]++
	if err := broken.Validate(); err == nil {
		t.Error("Expected street mismatch to fail validation")
	}

	broken = *stats
	broken.Values = nil
	if err := broken.Validate(); err == nil {
		t.Error("Expected values mismatch to fail validation")
	}
}
