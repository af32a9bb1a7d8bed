package loja

import (
	"time"

	"github.com/rs/zerolog"
)

// RuleLogEvent describes one capability-rule evaluation for logging.
type RuleLogEvent struct {
	Engine   string
	Expr     string
	Action   string
	Allowed  bool
	Duration time.Duration
	Err      error
}

// RuleLogger records rule evaluations.
type RuleLogger interface {
	LogRule(RuleLogEvent)
}

// RuleLoggerFunc adapts a function to RuleLogger.
type RuleLoggerFunc func(RuleLogEvent)

// LogRule implements RuleLogger.
func (f RuleLoggerFunc) LogRule(event RuleLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopRuleLogger struct{}

func (noopRuleLogger) LogRule(RuleLogEvent) {}

// NewZerologRuleLogger emits rule evaluations on logger: debug for
// allowed, warn for denied or errored.
func NewZerologRuleLogger(logger zerolog.Logger) RuleLogger {
	return RuleLoggerFunc(func(event RuleLogEvent) {
		entry := logger.Debug()
		if event.Err != nil || !event.Allowed {
			entry = logger.Warn()
		}
		entry.
			Str("engine", event.Engine).
			Str("action", event.Action).
			Str("expr", event.Expr).
			Bool("allowed", event.Allowed).
			Dur("duration", event.Duration).
			Err(event.Err).
			Msg("rule evaluated")
	})
}
