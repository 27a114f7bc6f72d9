package holdem

import (
	"fmt"
	"slices"

	"github.com/YonatanNemtsov/holdem-core/poker"
)

// PotResult records who won a pot and how it was split. Shares is parallel
// to Winners.
type PotResult struct {
	Pot     Pot
	Winners []int
	Shares  []int
}

// Result summarises a finished round.
type Result struct {
	Showdown bool
	Board    []poker.Card
	Pots     []PotResult
	// Payouts is the total won per seat.
	Payouts map[int]int
	// Ranks holds the evaluated hand of every seat that reached showdown.
	Ranks map[int]poker.HandRank
}

// Winners returns every seat that won chips, in ascending seat order.
func (r Result) Winners() []int {
	seats := make([]int, 0, len(r.Payouts))
	for seat, amount := range r.Payouts {
		if amount > 0 {
			seats = append(seats, seat)
		}
	}
	slices.Sort(seats)
	return seats
}

// SplitPot divides amount evenly among winners. Winners must be in move
// order; remainder chips go one each to the earliest winners.
func SplitPot(amount int, winners []int) []int {
	shares := make([]int, len(winners))
	if len(winners) == 0 {
		return shares
	}
	each, rem := amount/len(winners), amount%len(winners)
	for i := range shares {
		shares[i] = each
		if i < rem {
			shares[i]++
		}
	}
	return shares
}

// resolvePots picks the winners of every pot and splits it. live lists the
// non-folded seats in move order. With a nil rank function the single live
// seat takes everything without an evaluation. A pot nobody live reached is
// contested by every live seat.
func resolvePots(pots []Pot, live []int, rank func(seat int) poker.HandRank) ([]PotResult, error) {
	if rank == nil && len(live) != 1 {
		return nil, fmt.Errorf("%w: %d live seats without showdown", ErrInvariant, len(live))
	}

	results := make([]PotResult, 0, len(pots))
	for _, pot := range pots {
		var winners []int
		if rank == nil {
			winners = []int{live[0]}
		} else {
			candidates := pot.Eligible
			if len(candidates) == 0 {
				candidates = live
			}
			winners = bestSeats(candidates, rank)
		}
		slices.SortStableFunc(winners, func(a, b int) int {
			return slices.Index(live, a) - slices.Index(live, b)
		})
		results = append(results, PotResult{
			Pot:     pot,
			Winners: winners,
			Shares:  SplitPot(pot.Amount, winners),
		})
	}
	return results, nil
}

// bestSeats returns every seat holding the strongest (lowest) rank.
func bestSeats(seats []int, rank func(seat int) poker.HandRank) []int {
	var best []int
	bestRank := poker.WorstRank + 1
	for _, seat := range seats {
		switch r := rank(seat); {
		case r < bestRank:
			bestRank = r
			best = append(best[:0], seat)
		case r == bestRank:
			best = append(best, seat)
		}
	}
	return best
}
