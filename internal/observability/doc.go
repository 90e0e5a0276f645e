// Package observability provides logging and run metrics support for the
// reviewer assignment service.
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "console",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Int("papers", n).Msg("catalog loaded")
//
// Add solve context to a logger:
//
//	logger = observability.WithSolveContext(logger, "fairness", attempt)
//
// # Metrics
//
// Metrics live on a private Prometheus registry. The pipeline runs once and
// opens no network surface, so instead of a scrape endpoint the gathered
// families are written to the log at the end of the run:
//
//	metrics := observability.NewMetrics("revassign")
//	metrics.PapersIngested.Add(float64(len(papers)))
//	...
//	metrics.LogSummary(logger)
package observability
