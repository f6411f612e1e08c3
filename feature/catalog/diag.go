package catalog

import "fmt"

// DiagnosticKind classifies a non-fatal finding of a pipeline run.
type DiagnosticKind string

const (
	// DiagUnresolvedID marks an identifier from a secondary source that
	// could not be matched to any structural vehicle.
	DiagUnresolvedID DiagnosticKind = "unresolved_identifier"
	// DiagMissingTranslation marks a vehicle without a localized name.
	DiagMissingTranslation DiagnosticKind = "missing_translation"
	// DiagEconomyExempt marks a vehicle absent from the economics source.
	DiagEconomyExempt DiagnosticKind = "economy_exempt"
	// DiagDroppedCandidate marks a structural entry that was discarded,
	// e.g. an exact duplicate of an already merged record.
	DiagDroppedCandidate DiagnosticKind = "dropped_candidate"
)

// Diagnostic is one soft finding. Diagnostics never abort a run on their
// own; the strictness policy of the caller decides whether their presence
// fails the run.
type Diagnostic struct {
	Kind   DiagnosticKind
	ID     string
	Source string
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s) %s", d.Kind, d.ID, d.Source, d.Detail)
}

// IntegrityError is a post-merge invariant violation: a dependency cycle,
// an edge referencing an unknown vehicle, or duplicate canonical ids with
// conflicting structural data. It always indicates a bug or a broken
// source, never a legitimate game state, so it is fatal.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return "integrity violation: " + e.Reason
}

func integrityErr(format string, args ...any) *IntegrityError {
	return &IntegrityError{Reason: fmt.Sprintf(format, args...)}
}
