package observability

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	cfg := DefaultLoggingConfig()
	cfg.Level = "debug"
	logger := NewLogger(cfg)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	cfg.Level = "nonsense"
	logger = NewLogger(cfg)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel(), "unknown levels fall back to info")
}

func TestContextHelpers(t *testing.T) {
	base := zerolog.Nop()

	// Helpers must return derived loggers without panicking on empty fields.
	paperLogger := WithPaperContext(base, "id", "title")
	paperLogger.Debug().Msg("ok")
	reviewerLogger := WithReviewerContext(base, "id", "name")
	reviewerLogger.Debug().Msg("ok")
	solveLogger := WithSolveContext(base, "feasibility", 1)
	solveLogger.Debug().Msg("ok")
}

func TestMetricsLogSummary(t *testing.T) {
	m := NewMetrics("test")
	m.PapersIngested.Add(3)
	m.ReviewersIngested.Add(4)
	m.Solves.WithLabelValues("feasibility", "satisfiable").Inc()
	m.SolveDuration.Observe(0.25)

	// Gathers the private registry; must not panic or drop families.
	m.LogSummary(zerolog.Nop())
}
