package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/YonatanNemtsov/holdem-core/internal/display"
	"github.com/YonatanNemtsov/holdem-core/poker"
)

// EvalCmd ranks cards given as two character codes.
type EvalCmd struct {
	Cards []string `arg:"" name:"cards" help:"Five to seven card codes, e.g. As Kd 7c 7h 2s (spaces optional)"`

	out io.Writer `kong:"-"`
}

func (c *EvalCmd) Run() error {
	cards, err := parseCardArgs(c.Cards)
	if err != nil {
		return err
	}
	hand := poker.NewHand(cards...)
	if hand.CountCards() != len(cards) {
		return fmt.Errorf("%w: %s", poker.ErrDuplicateCards, strings.Join(c.Cards, " "))
	}
	rank, err := poker.EvaluateHand(hand)
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", strings.Join(c.Cards, " "), err)
	}
	_, err = fmt.Fprintln(c.writer(), display.NewRenderer(nil).HandRank(cards, rank))
	return err
}

// parseCardArgs accepts codes split across arguments or run together, so
// "AsKd" and "As Kd" both parse.
func parseCardArgs(args []string) ([]poker.Card, error) {
	var codes []string
	for _, arg := range args {
		for _, field := range strings.Fields(arg) {
			if len(field)%2 != 0 {
				return nil, fmt.Errorf("invalid card codes %q", field)
			}
			for i := 0; i < len(field); i += 2 {
				codes = append(codes, field[i:i+2])
			}
		}
	}
	return poker.ParseCards(codes...)
}

func (c *EvalCmd) writer() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}
