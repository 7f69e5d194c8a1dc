package validate

import (
	"fmt"
	"strings"

	"github.com/humphreyyy/sitzplatz/types"
)

// Severity classifies how a finding affects persistence.
type Severity int

const (
	// Advisory findings are informational and never block saving.
	Advisory Severity = iota

	// Violation findings block persisting the snapshot.
	Violation
)

// String returns "advisory" or "violation".
func (s Severity) String() string {
	switch s {
	case Advisory:
		return "advisory"
	case Violation:
		return "violation"
	default:
		return "unknown"
	}
}

// Kind identifies the check that produced an issue.
type Kind int

const (
	// KindGroupOverlap reports two groups sharing interior area.
	KindGroupOverlap Kind = iota

	// KindUnknownGroup reports a resource whose GroupID names no group.
	KindUnknownGroup

	// KindResourceOutsideGroup reports a resource positioned outside
	// its group's rectangle.
	KindResourceOutsideGroup

	// KindIntervalInverted reports an occupant whose ValidUntil
	// precedes its ValidFrom.
	KindIntervalInverted

	// KindDuplicateResource reports a resource placed twice in one
	// (week, weekday) slot.
	KindDuplicateResource

	// KindDuplicateOccupant reports an occupant placed twice in one
	// (week, weekday) slot.
	KindDuplicateOccupant

	// KindUnknownOccupant reports an assignment naming an occupant
	// absent from the roster.
	KindUnknownOccupant

	// KindUnknownResource reports an assignment naming a resource
	// absent from the floor plan.
	KindUnknownResource

	// KindInvalidSlot reports an assignment with a malformed week
	// identifier or weekday.
	KindInvalidSlot

	// KindCapacityExceeded reports more active occupants than
	// resources on one day. Always advisory.
	KindCapacityExceeded
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGroupOverlap:
		return "group_overlap"
	case KindUnknownGroup:
		return "unknown_group"
	case KindResourceOutsideGroup:
		return "resource_outside_group"
	case KindIntervalInverted:
		return "interval_inverted"
	case KindDuplicateResource:
		return "duplicate_resource"
	case KindDuplicateOccupant:
		return "duplicate_occupant"
	case KindUnknownOccupant:
		return "unknown_occupant"
	case KindUnknownResource:
		return "unknown_resource"
	case KindInvalidSlot:
		return "invalid_slot"
	case KindCapacityExceeded:
		return "capacity_exceeded"
	default:
		return "unknown"
	}
}

// Issue is a single finding of one check.
type Issue struct {
	// Kind identifies the producing check.
	Kind Kind

	// Severity classifies the finding.
	Severity Severity

	// Message is a human-readable description naming the records involved.
	Message string

	// Subjects lists the IDs of the records involved, in a stable order.
	Subjects []string
}

// String renders "severity kind: message".
func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Severity, i.Kind, i.Message)
}

// Report aggregates the findings of one validation pass.
//
// Issue order is deterministic: checks scan their inputs in document
// order, so two runs over the same snapshot produce identical reports.
type Report struct {
	// Issues holds all findings, violations and advisories interleaved
	// in the order the checks produced them.
	Issues []Issue
}

// OK reports whether the report contains no violations.
// Advisories do not affect the outcome.
func (r Report) OK() bool {
	for _, issue := range r.Issues {
		if issue.Severity == Violation {
			return false
		}
	}

	return true
}

// Violations returns only the blocking findings.
func (r Report) Violations() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == Violation {
			out = append(out, issue)
		}
	}

	return out
}

// Advisories returns only the informational findings.
func (r Report) Advisories() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == Advisory {
			out = append(out, issue)
		}
	}

	return out
}

// Strings renders every issue on its own line, for logs and error text.
func (r Report) Strings() []string {
	out := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		out[i] = issue.String()
	}

	return out
}

// Error wraps a Report whose violations blocked a mutation.
// It matches types.ErrSnapshotInvalid under errors.Is.
type Error struct {
	// Report holds the full findings of the rejected state.
	Report Report
}

// Error implements the error interface, naming the first violations.
func (e *Error) Error() string {
	violations := e.Report.Violations()
	msgs := make([]string, 0, 3)
	for i, v := range violations {
		if i == 3 {
			msgs = append(msgs, fmt.Sprintf("and %d more", len(violations)-i))

			break
		}
		msgs = append(msgs, v.Message)
	}

	return fmt.Sprintf("%s: %s", types.ErrSnapshotInvalid, strings.Join(msgs, "; "))
}

// Is reports whether the target is types.ErrSnapshotInvalid.
func (e *Error) Is(target error) bool {
	return target == types.ErrSnapshotInvalid
}
