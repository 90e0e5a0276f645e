package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the assignment pipeline. Each run surfaces an error at
// most once; nothing is retried, because re-solving a deterministic model on
// identical input cannot change the outcome.
var (
	// ErrMalformedRecord indicates a required input field is missing or a
	// topic list is ambiguous. Ingestion aborts; nothing downstream runs.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInfeasibleBounds indicates the workload range is arithmetically
	// incompatible with the paper and reviewer counts.
	ErrInfeasibleBounds = errors.New("infeasible workload bounds")

	// ErrNoCandidatePairs indicates at least one paper has fewer than two
	// conflict-free reviewers, so no candidate pair exists for it.
	ErrNoCandidatePairs = errors.New("no candidate pairs")

	// ErrSolverInfeasible indicates the assembled model has no feasible
	// integer solution.
	ErrSolverInfeasible = errors.New("solver infeasible")

	// ErrSolverTimeout indicates the solver time limit was reached before a
	// usable solution was available under the configured timeout policy.
	ErrSolverTimeout = errors.New("solver timeout")

	// ErrNumericTolerance indicates a solved variable deviates from {0,1}
	// beyond the accepted epsilon.
	ErrNumericTolerance = errors.New("numeric tolerance exceeded")

	// ErrInvariantViolated indicates the post-solve re-validation found an
	// assignment that breaks a structural invariant.
	ErrInvariantViolated = errors.New("invariant violated")
)

// MalformedRecordError identifies the input row that failed validation.
type MalformedRecordError struct {
	File   string
	Row    int
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record in %s row %d: field %q: %s", e.File, e.Row, e.Field, e.Reason)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// InfeasibleBoundsError reports a workload range that cannot absorb the
// reviewer-slot demand of 2 slots per paper.
type InfeasibleBoundsError struct {
	Min       int
	Max       int
	Papers    int
	Reviewers int
}

// Error implements the error interface.
func (e *InfeasibleBoundsError) Error() string {
	return fmt.Sprintf("workload range [%d,%d] infeasible for %d papers and %d reviewers: need %d*%d <= %d <= %d*%d",
		e.Min, e.Max, e.Papers, e.Reviewers, e.Min, e.Reviewers, 2*e.Papers, e.Max, e.Reviewers)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *InfeasibleBoundsError) Unwrap() error {
	return ErrInfeasibleBounds
}

// NoCandidatePairsError lists every paper whose conflict-free reviewer pool
// is smaller than two. All starved papers are reported together so the input
// can be fixed in one pass.
type NoCandidatePairsError struct {
	Papers []string
}

// Error implements the error interface.
func (e *NoCandidatePairsError) Error() string {
	return fmt.Sprintf("papers with fewer than 2 conflict-free reviewers: %s", strings.Join(e.Papers, "; "))
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NoCandidatePairsError) Unwrap() error {
	return ErrNoCandidatePairs
}

// NumericToleranceError identifies a solved variable whose value is neither 0
// nor 1 within epsilon. It is an internal consistency failure, never silently
// rounded away.
type NumericToleranceError struct {
	Variable string
	Value    float64
}

// Error implements the error interface.
func (e *NumericToleranceError) Error() string {
	return fmt.Sprintf("variable %s has non-binary value %g", e.Variable, e.Value)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NumericToleranceError) Unwrap() error {
	return ErrNumericTolerance
}

// InvariantViolationError reports which structural invariant the solver
// output breaks, with enough context to identify the entity involved.
type InvariantViolationError struct {
	Invariant string
	Detail    string
}

// Error implements the error interface.
func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", e.Invariant, e.Detail)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *InvariantViolationError) Unwrap() error {
	return ErrInvariantViolated
}

// NewMalformedRecordError creates a new MalformedRecordError.
func NewMalformedRecordError(file string, row int, field, reason string) *MalformedRecordError {
	return &MalformedRecordError{File: file, Row: row, Field: field, Reason: reason}
}

// NewInfeasibleBoundsError creates a new InfeasibleBoundsError.
func NewInfeasibleBoundsError(minLoad, maxLoad, papers, reviewers int) *InfeasibleBoundsError {
	return &InfeasibleBoundsError{Min: minLoad, Max: maxLoad, Papers: papers, Reviewers: reviewers}
}

// NewInvariantViolationError creates a new InvariantViolationError.
func NewInvariantViolationError(invariant, detail string) *InvariantViolationError {
	return &InvariantViolationError{Invariant: invariant, Detail: detail}
}
