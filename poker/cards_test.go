package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()

	aceSpades := NewCard(Ace, Spades)
	assert.Equal(t, Ace, aceSpades.Rank())
	assert.Equal(t, Spades, aceSpades.Suit())
	assert.Equal(t, "As", aceSpades.String())
	assert.True(t, aceSpades.Valid())

	// lowest card
	assert.Equal(t, "2c", NewCard(Two, Clubs).String())
}

func TestCardValid(t *testing.T) {
	t.Parallel()

	assert.False(t, Card(0).Valid())
	assert.False(t, Card(3).Valid(), "two bits set")
	assert.False(t, Card(1<<52).Valid(), "beyond the deck")
	assert.Equal(t, "??", Card(0).String())
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{input: "As", want: NewCard(Ace, Spades)},
		{input: "2h", want: NewCard(Two, Hearts)},
		{input: "Td", want: NewCard(Ten, Diamonds)},
		{input: "9c", want: NewCard(Nine, Clubs)},
		{input: "", wantErr: true},
		{input: "A", wantErr: true},
		{input: "Asd", wantErr: true},
		{input: "1s", wantErr: true},
		{input: "Ax", wantErr: true},
		{input: "as", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	cards, err := ParseCards("Ah", "Kd", "2c")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ah", "Kd", "2c"}, CardStrings(cards))

	_, err = ParseCards("Ah", "zz")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParseCards("Xx") })
}

func TestHandOperations(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("As", "Ks", "2c")
	h := NewHand(cards[0], cards[1])
	assert.Equal(t, 2, h.CountCards())
	assert.True(t, h.HasCard(cards[0]))
	assert.False(t, h.HasCard(cards[2]))

	h.AddCard(cards[2])
	assert.Equal(t, 3, h.CountCards())
	assert.Equal(t, uint16(1<<Ace|1<<King), h.GetSuitMask(Spades))
	assert.Equal(t, uint16(1<<Two), h.GetSuitMask(Clubs))
	assert.Zero(t, h.GetSuitMask(Hearts))

	assert.ElementsMatch(t, cards, h.Cards())
}

func TestCardIsRed(t *testing.T) {
	t.Parallel()

	for code, red := range map[string]bool{"Ah": true, "Td": true, "2c": false, "Ks": false} {
		c, err := ParseCard(code)
		require.NoError(t, err)
		assert.Equal(t, red, c.IsRed(), code)
	}
}
