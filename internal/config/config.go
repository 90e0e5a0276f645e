// Package config provides configuration management for the reviewer
// assignment service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Workload mode constants.
const (
	// WorkloadModeDerived derives the admissible range from the paper and
	// reviewer counts: Lmin = floor(2P/R), Lmax = ceil(2P/R).
	WorkloadModeDerived = "derived"
	// WorkloadModeFixed uses the externally supplied workload_min/max range.
	WorkloadModeFixed = "fixed"
)

// Co-reviewer policy constants.
const (
	// CoReviewerPolicyExact requires every reviewer to have exactly the
	// configured number of distinct co-reviewers.
	CoReviewerPolicyExact = "exact"
	// CoReviewerPolicyMax bounds the number of distinct co-reviewers from
	// above only.
	CoReviewerPolicyMax = "max"
)

// Objective mode constants.
const (
	// ObjectiveLexicographic minimizes the maximum workload first, then
	// maximizes the topic score among fairness-optimal solutions.
	ObjectiveLexicographic = "lexicographic"
	// ObjectiveSingle maximizes the topic score only; fairness is enforced
	// purely through the workload bounds.
	ObjectiveSingle = "single"
)

// Timeout policy constants.
const (
	// TimeoutPolicyFail aborts the run when the solver time limit is hit.
	TimeoutPolicyFail = "fail"
	// TimeoutPolicyBestEffort emits the best incumbent integer solution
	// found before the limit, labeled as non-optimal.
	TimeoutPolicyBestEffort = "best_effort"
)

// Output format constants.
const (
	// FormatCSV writes report tables as CSV files.
	FormatCSV = "csv"
	// FormatXLSX writes report tables as Excel workbooks.
	FormatXLSX = "xlsx"
)

// Config holds all configuration for the reviewer assignment service.
type Config struct {
	// Input contains the paper/reviewer sheet locations and column headers.
	Input InputConfig `mapstructure:"input"`
	// Output contains report table settings.
	Output OutputConfig `mapstructure:"output"`
	// Assignment contains the constraint and objective policy knobs.
	Assignment AssignmentConfig `mapstructure:"assignment"`
	// Solver contains solver invocation settings.
	Solver SolverConfig `mapstructure:"solver"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains run metrics settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// InputConfig holds input sheet configuration. Sheets may be CSV or XLSX;
// the reader dispatches on the file extension.
type InputConfig struct {
	// PapersPath is the path to the papers sheet.
	PapersPath string `mapstructure:"papers_path"`
	// ReviewersPath is the path to the reviewers sheet.
	ReviewersPath string `mapstructure:"reviewers_path"`
	// PaperTopicColumn is the header of the papers topic column. Defaults to
	// the survey export header used by the submission form.
	PaperTopicColumn string `mapstructure:"paper_topic_column"`
	// ReviewerTopicColumn is the header of the reviewers topic column.
	ReviewerTopicColumn string `mapstructure:"reviewer_topic_column"`
}

// OutputConfig holds report output configuration.
type OutputConfig struct {
	// Dir is the directory report tables are written to.
	Dir string `mapstructure:"dir"`
	// Format is the table format (csv, xlsx).
	Format string `mapstructure:"format"`
}

// AssignmentConfig holds the constraint-model policy knobs. Every variant the
// model supports is an explicit parameter here; nothing is picked silently.
type AssignmentConfig struct {
	// WorkloadMode selects how the admissible workload range is obtained
	// (derived, fixed).
	WorkloadMode string `mapstructure:"workload_mode"`
	// WorkloadMin is the fixed-range lower bound (fixed mode only).
	WorkloadMin int `mapstructure:"workload_min"`
	// WorkloadMax is the fixed-range upper bound (fixed mode only).
	WorkloadMax int `mapstructure:"workload_max"`
	// CoReviewerPolicy selects the co-reviewer degree constraint (exact, max).
	CoReviewerPolicy string `mapstructure:"coreviewer_policy"`
	// CoReviewerLimit is the co-reviewer degree target or cap.
	CoReviewerLimit int `mapstructure:"coreviewer_limit"`
	// Objective selects the objective composition (lexicographic, single).
	Objective string `mapstructure:"objective"`
}

// SolverConfig holds solver invocation settings.
type SolverConfig struct {
	// TimeLimit bounds the total time spent across all solve phases.
	TimeLimit time.Duration `mapstructure:"time_limit"`
	// OnTimeout selects the timeout policy (fail, best_effort).
	OnTimeout string `mapstructure:"on_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds run metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection; families are logged in the final
	// run summary. There is no exposition endpoint: the service opens no
	// network surface.
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("REVASSIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/reviewer-assignment-service")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Input defaults. The topic column headers default to the submission
	// form's survey export wording.
	v.SetDefault("input.papers_path", "papers.csv")
	v.SetDefault("input.reviewers_path", "reviewers.csv")
	v.SetDefault("input.paper_topic_column",
		"Choose topic(s) that best match the topics covered by your paper (choose up to 3 topics)")
	v.SetDefault("input.reviewer_topic_column",
		"Choose topic(s) that fits best to your research field")

	// Output defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.format", FormatCSV)

	// Assignment defaults. The co-reviewer cap variant matches the original
	// committee policy; the exact-degree variant is selected via
	// coreviewer_policy=exact.
	v.SetDefault("assignment.workload_mode", WorkloadModeDerived)
	v.SetDefault("assignment.workload_min", 6)
	v.SetDefault("assignment.workload_max", 9)
	v.SetDefault("assignment.coreviewer_policy", CoReviewerPolicyMax)
	v.SetDefault("assignment.coreviewer_limit", 2)
	v.SetDefault("assignment.objective", ObjectiveLexicographic)

	// Solver defaults
	v.SetDefault("solver.time_limit", "5m")
	v.SetDefault("solver.on_timeout", TimeoutPolicyFail)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.PapersPath == "" {
		return fmt.Errorf("input papers_path is required")
	}
	if c.Input.ReviewersPath == "" {
		return fmt.Errorf("input reviewers_path is required")
	}
	if c.Input.PaperTopicColumn == "" {
		return fmt.Errorf("input paper_topic_column is required")
	}
	if c.Input.ReviewerTopicColumn == "" {
		return fmt.Errorf("input reviewer_topic_column is required")
	}

	switch c.Output.Format {
	case FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}

	switch c.Assignment.WorkloadMode {
	case WorkloadModeDerived:
	case WorkloadModeFixed:
		if c.Assignment.WorkloadMin < 0 {
			return fmt.Errorf("workload_min must be non-negative, got %d", c.Assignment.WorkloadMin)
		}
		if c.Assignment.WorkloadMax < c.Assignment.WorkloadMin {
			return fmt.Errorf("workload_max (%d) must be >= workload_min (%d)",
				c.Assignment.WorkloadMax, c.Assignment.WorkloadMin)
		}
	default:
		return fmt.Errorf("invalid workload_mode: %s", c.Assignment.WorkloadMode)
	}

	switch c.Assignment.CoReviewerPolicy {
	case CoReviewerPolicyExact, CoReviewerPolicyMax:
	default:
		return fmt.Errorf("invalid coreviewer_policy: %s", c.Assignment.CoReviewerPolicy)
	}
	if c.Assignment.CoReviewerLimit < 1 {
		return fmt.Errorf("coreviewer_limit must be at least 1, got %d", c.Assignment.CoReviewerLimit)
	}

	switch c.Assignment.Objective {
	case ObjectiveLexicographic, ObjectiveSingle:
	default:
		return fmt.Errorf("invalid objective: %s", c.Assignment.Objective)
	}

	if c.Solver.TimeLimit <= 0 {
		return fmt.Errorf("solver time_limit must be positive, got %s", c.Solver.TimeLimit)
	}
	switch c.Solver.OnTimeout {
	case TimeoutPolicyFail, TimeoutPolicyBestEffort:
	default:
		return fmt.Errorf("invalid on_timeout policy: %s", c.Solver.OnTimeout)
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
