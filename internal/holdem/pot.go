package holdem

import (
	"fmt"
	"slices"
)

// Pot is one tier of the pot: chips contributed up to Threshold by every
// player who reached it. Only Eligible seats can win it.
type Pot struct {
	Threshold int
	Amount    int
	Eligible  []int
}

// Contribution is a player's total commitment to the round.
type Contribution struct {
	Seat   int
	Amount int
	Folded bool
}

// BuildPots splits contributions into a main pot and side pots, one per
// distinct contribution level. Adjacent tiers with the same eligible seats
// are merged. Tiers above every live player's contribution hold only folded
// chips and are folded into the last tier that has eligible seats. Eligible
// seats keep the order of contribs.
func BuildPots(contribs []Contribution) ([]Pot, error) {
	levels := make([]int, 0, len(contribs))
	want := 0
	for _, c := range contribs {
		if c.Amount < 0 {
			return nil, fmt.Errorf("%w: seat %d contributed %d", ErrInvariant, c.Seat, c.Amount)
		}
		want += c.Amount
		if c.Amount > 0 {
			levels = append(levels, c.Amount)
		}
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)

	var pots []Pot
	floor := 0
	for _, level := range levels {
		var eligible []int
		count := 0
		for _, c := range contribs {
			if c.Amount < level {
				continue
			}
			count++
			if !c.Folded {
				eligible = append(eligible, c.Seat)
			}
		}
		size := (level - floor) * count
		floor = level

		if n := len(pots); n > 0 && (len(eligible) == 0 || slices.Equal(pots[n-1].Eligible, eligible)) {
			pots[n-1].Amount += size
			pots[n-1].Threshold = level
			continue
		}
		pots = append(pots, Pot{Threshold: level, Amount: size, Eligible: eligible})
	}

	got := 0
	for _, p := range pots {
		got += p.Amount
	}
	if got != want {
		return nil, fmt.Errorf("%w: pots hold %d, contributions total %d", ErrInvariant, got, want)
	}
	return pots, nil
}

// PotTotal sums the pots.
func PotTotal(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

func clonePots(pots []Pot) []Pot {
	out := make([]Pot, len(pots))
	for i, p := range pots {
		out[i] = Pot{Threshold: p.Threshold, Amount: p.Amount, Eligible: slices.Clone(p.Eligible)}
	}
	return out
}
