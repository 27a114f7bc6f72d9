package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YonatanNemtsov/holdem-core/poker"
)

const testConfig = `
log_level = "error"

round {
  small_blind = 5
  ante        = 1
}

seat {
  number = 1
  stack  = 300
}

seat {
  number = 2
  stack  = 150
}

seat {
  number = 5
  stack  = 40
}

simulation {
  hands   = 30
  workers = 2
  seed    = 9
}
`

func writeConfig(t *testing.T) *Globals {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return &Globals{Config: path}
}

func TestParseCardArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected int
		hasError bool
	}{
		{name: "separate codes", input: []string{"As", "Kd", "7c", "7h", "2s"}, expected: 5},
		{name: "run together", input: []string{"AsKd7c7h2s"}, expected: 5},
		{name: "with spaces", input: []string{"As Kd", "7c 7h 2s Qd"}, expected: 6},
		{name: "odd length", input: []string{"AsK"}, hasError: true},
		{name: "bad card", input: []string{"AsXy"}, hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := parseCardArgs(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, cards, tt.expected)
		})
	}
}

func TestEvalCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &EvalCmd{Cards: []string{"7c7d7h", "Ks", "Kd", "2c"}, out: &out}
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "Full House")

	cmd = &EvalCmd{Cards: []string{"As", "As", "Kd", "Qh", "Jc"}, out: &out}
	assert.ErrorIs(t, cmd.Run(), poker.ErrDuplicateCards)

	cmd = &EvalCmd{Cards: []string{"As", "Kd", "Qh"}, out: &out}
	assert.ErrorIs(t, cmd.Run(), poker.ErrTooFewCards)
}

func TestHandCmd(t *testing.T) {
	g := writeConfig(t)
	dir := filepath.Join(t.TempDir(), "histories")
	seed := int64(4)

	var out bytes.Buffer
	cmd := &HandCmd{Seed: &seed, HistoryDir: dir, out: &out}
	require.NoError(t, cmd.Run(g))

	text := out.String()
	assert.Contains(t, text, "=== HAND ")
	assert.Contains(t, text, "=== END HAND ===")
	assert.Contains(t, text, "ENDED")

	files, err := filepath.Glob(filepath.Join(dir, "hand_*.txt"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestHandCmdRejectsUnknownFirstSeat(t *testing.T) {
	g := writeConfig(t)
	cmd := &HandCmd{First: 7, out: &bytes.Buffer{}}
	assert.Error(t, cmd.Run(g))
}

func TestSimCmd(t *testing.T) {
	g := writeConfig(t)
	dir := filepath.Join(t.TempDir(), "histories")

	var out bytes.Buffer
	cmd := &SimCmd{Hands: 12, HistoryDir: dir, out: &out}
	require.NoError(t, cmd.Run(g))
	assert.Contains(t, out.String(), "SIMULATION")

	files, err := filepath.Glob(filepath.Join(dir, "hand_*.txt"))
	require.NoError(t, err)
	assert.Len(t, files, 12)
}

func TestInvalidLogLevel(t *testing.T) {
	g := writeConfig(t)
	g.LogLevel = "chatty"
	_, _, err := g.load()
	assert.ErrorContains(t, err, "invalid log level")
}
