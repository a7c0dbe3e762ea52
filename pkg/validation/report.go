package validation

import (
	"fmt"
	"strings"
)

// Report accumulates the anomalies found by CheckInit and CheckTick.
// Passed tracks whether any Error has been recorded; Warnings never
// flip it, matching spec.md §7's split between init-time status flags
// (which can mark a level invalid outright) and in-tick anomalies
// (which are always worked around, never fatal).
type Report struct {
	Passed   bool
	Warnings []string
	Errors   []string
}

// NewReport returns an empty, passing report.
func NewReport() *Report {
	return &Report{Passed: true}
}

func (r *Report) addError(format string, args ...any) {
	r.Passed = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge folds other's findings into r, preserving r's own Passed state
// once it has gone false.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	if !other.Passed {
		r.Passed = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Summary renders a human-readable account of r.
func Summary(r *Report) string {
	var b strings.Builder

	b.WriteString("=== Validation Report ===\n\n")
	if r.Passed {
		b.WriteString("Status: PASSED\n")
	} else {
		b.WriteString("Status: FAILED\n")
	}

	if len(r.Errors) > 0 {
		b.WriteString("\n=== Errors ===\n")
		for i, err := range r.Errors {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n=== Warnings ===\n")
		for i, warn := range r.Warnings {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, warn))
		}
	}

	return b.String()
}

// HasErrors reports whether r contains any error.
func HasErrors(r *Report) bool { return len(r.Errors) > 0 }

// HasWarnings reports whether r contains any warning.
func HasWarnings(r *Report) bool { return len(r.Warnings) > 0 }
