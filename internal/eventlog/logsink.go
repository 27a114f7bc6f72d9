package eventlog

import (
	"github.com/charmbracelet/log"

	"github.com/YonatanNemtsov/holdem-core/internal/holdem"
	"github.com/YonatanNemtsov/holdem-core/poker"
)

// LogSink writes round events as structured log lines.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink returns a sink logging through logger with a "round" prefix.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger.WithPrefix("round")}
}

// OnEvent implements holdem.EventSink.
func (s *LogSink) OnEvent(event holdem.Event) {
	l := s.logger.With("id", event.RoundID())
	switch e := event.(type) {
	case holdem.RoundStartedEvent:
		l.Info("Round started", "seats", e.Order, "small_blind", e.SmallBlind, "ante", e.Ante)
	case holdem.ActionAppliedEvent:
		l.Debug("Action",
			"street", e.Action.Street,
			"seat", e.Action.Seat,
			"kind", e.Action.Kind,
			"call", e.Action.CallAmount,
			"raise", e.Action.RaiseAmount,
			"forced", e.Action.Forced,
			"stack", e.StackAfter,
			"pot", e.PotAfter)
	case holdem.ActionRejectedEvent:
		l.Warn("Action rejected", "seat", e.Request.Seat, "kind", e.Request.Kind, "reason", e.Reason)
	case holdem.StageChangedEvent:
		l.Debug("Stage", "from", e.From, "to", e.To, "board", poker.CardStrings(e.Community))
	case holdem.PotAwardedEvent:
		l.Info("Pot awarded", "pot", e.Index, "amount", e.Result.Pot.Amount,
			"winners", e.Result.Winners, "shares", e.Result.Shares)
	case holdem.RoundEndedEvent:
		l.Info("Round ended", "showdown", e.Result.Showdown, "winners", e.Result.Winners())
	default:
		l.Debug("Event", "type", event.EventType())
	}
}
