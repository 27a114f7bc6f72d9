package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
	"github.com/YonatanNemtsov/holdem-core/poker"
)

// HistoryWriter persists a finished hand history.
type HistoryWriter interface {
	WriteHandHistory(roundID string, content string) error
}

// FileHistoryWriter writes one text file per hand into a directory.
type FileHistoryWriter struct {
	directory string
}

// NewFileHistoryWriter creates a file-based hand history writer
func NewFileHistoryWriter(directory string) *FileHistoryWriter {
	return &FileHistoryWriter{directory: directory}
}

// WriteHandHistory writes content to hand_<roundID>.txt.
func (w *FileHistoryWriter) WriteHandHistory(roundID string, content string) error {
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return fmt.Errorf("failed to create hand history directory: %w", err)
	}
	filename := filepath.Join(w.directory, fmt.Sprintf("hand_%s.txt", roundID))
	if err := writeAtomic(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write hand history file: %w", err)
	}
	return nil
}

// writeAtomic writes through a temporary file in the same directory and
// renames it into place, so readers never see a partial history.
func writeAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

// History builds a human readable record of one round from its events and
// hands it to a writer when the round ends.
type History struct {
	mu     sync.Mutex
	b      strings.Builder
	street holdem.Street
	opened bool
	done   bool

	writer HistoryWriter
	logger *log.Logger
}

// NewHistory returns a history that flushes to writer. A nil writer keeps the
// text in memory only.
func NewHistory(writer HistoryWriter, logger *log.Logger) *History {
	return &History{writer: writer, logger: logger}
}

// Text returns the history written so far.
func (h *History) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.b.String()
}

// OnEvent implements holdem.EventSink.
func (h *History) OnEvent(event holdem.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch e := event.(type) {
	case holdem.RoundStartedEvent:
		h.header(e)
	case holdem.ActionAppliedEvent:
		if !h.opened || e.Action.Street != h.street {
			h.openStreet(e.Action.Street, nil)
		}
		fmt.Fprintf(&h.b, "%s (pot %d)\n", describe(e.Action), e.PotAfter)
	case holdem.StageChangedEvent:
		switch e.To {
		case holdem.Flop:
			h.openStreet(holdem.StreetFlop, e.Community)
		case holdem.Turn:
			h.openStreet(holdem.StreetTurn, e.Community)
		case holdem.River:
			h.openStreet(holdem.StreetRiver, e.Community)
		case holdem.Showdown:
			h.b.WriteString("\n*** SHOWDOWN ***\n")
		}
	case holdem.PotAwardedEvent:
		for i, seat := range e.Result.Winners {
			fmt.Fprintf(&h.b, "Seat %d wins %d from pot %d\n", seat, e.Result.Shares[i], e.Index+1)
		}
	case holdem.RoundEndedEvent:
		h.summary(e)
		h.flush(e.RoundID())
	}
}

func (h *History) header(e holdem.RoundStartedEvent) {
	fmt.Fprintf(&h.b, "=== HAND %s ===\n", e.RoundID())
	fmt.Fprintf(&h.b, "Date: %s\n", e.Timestamp().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&h.b, "Blinds: %d/%d", e.SmallBlind, 2*e.SmallBlind)
	if e.Ante > 0 {
		fmt.Fprintf(&h.b, " Ante: %d", e.Ante)
	}
	fmt.Fprintf(&h.b, "\nPlayers: %d\n\nSTARTING STACKS:\n", len(e.Order))
	seats := slices.Clone(e.Order)
	slices.Sort(seats)
	for _, seat := range seats {
		fmt.Fprintf(&h.b, "Seat %d: %d chips\n", seat, e.Stacks[seat])
	}
}

func (h *History) openStreet(street holdem.Street, board []poker.Card) {
	h.street, h.opened = street, true
	fmt.Fprintf(&h.b, "\n*** %s ***", strings.ToUpper(street.String()))
	if len(board) > 0 {
		fmt.Fprintf(&h.b, " [%s]", strings.Join(poker.CardStrings(board), " "))
	}
	h.b.WriteString("\n")
}

func (h *History) summary(e holdem.RoundEndedEvent) {
	res := e.Result
	h.b.WriteString("\n*** SUMMARY ***\n")
	if len(res.Board) > 0 {
		fmt.Fprintf(&h.b, "Board: [%s]\n", strings.Join(poker.CardStrings(res.Board), " "))
	}
	for i, pot := range res.Pots {
		fmt.Fprintf(&h.b, "Pot %d: %d, eligible %v\n", i+1, pot.Pot.Amount, pot.Pot.Eligible)
	}
	seats := make([]int, 0, len(res.Ranks))
	for seat := range res.Ranks {
		seats = append(seats, seat)
	}
	slices.Sort(seats)
	for _, seat := range seats {
		fmt.Fprintf(&h.b, "Seat %d shows %s\n", seat, res.Ranks[seat])
	}
	h.b.WriteString("=== END HAND ===\n")
}

func (h *History) flush(roundID string) {
	if h.done || h.writer == nil {
		return
	}
	h.done = true
	if err := h.writer.WriteHandHistory(roundID, h.b.String()); err != nil && h.logger != nil {
		h.logger.Error("Failed to write hand history", "round", roundID, "error", err)
	}
}

func describe(a holdem.Action) string {
	switch {
	case a.Forced && a.Street == holdem.StreetAnte:
		return fmt.Sprintf("Seat %d posts ante %d", a.Seat, a.Total())
	case a.Forced:
		return fmt.Sprintf("Seat %d posts blind %d", a.Seat, a.Total())
	}
	switch a.Kind {
	case holdem.Fold:
		return fmt.Sprintf("Seat %d folds", a.Seat)
	case holdem.Check:
		return fmt.Sprintf("Seat %d checks", a.Seat)
	case holdem.Call:
		return fmt.Sprintf("Seat %d calls %d", a.Seat, a.CallAmount)
	}
	return fmt.Sprintf("Seat %d raises %d (calling %d)", a.Seat, a.RaiseAmount, a.CallAmount)
}
