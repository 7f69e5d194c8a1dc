package validate

import (
	"fmt"
	"strings"

	"github.com/humphreyyy/sitzplatz/types"
)

// All runs every check over the snapshot and aggregates the findings.
//
// Structural checks (overlap, containment, intervals, duplicates,
// references) always run. Capacity advisories are computed for each
// weekday of the week containing asOf; passing the zero date skips
// them, which is useful when no reference date is meaningful.
//
// Parameters:
//   - snap: Snapshot to validate
//   - asOf: Reference date anchoring the capacity advisories
//
// Returns:
//   - Report: All findings in deterministic order
//   - error: Wrapped types.ErrSnapshotIncomplete when the snapshot is
//     nil or missing a top-level section; checks cannot run on such
//     documents. Validation findings are never returned as errors.
func All(snap *types.StateSnapshot, asOf types.Date) (Report, error) {
	if snap == nil {
		return Report{}, fmt.Errorf("validate: %w: snapshot is nil", types.ErrSnapshotIncomplete)
	}
	if missing := snap.MissingSections(); len(missing) > 0 {
		return Report{}, fmt.Errorf("validate: %w: %s", types.ErrSnapshotIncomplete, strings.Join(missing, ", "))
	}

	var report Report
	report.Issues = append(report.Issues, GroupOverlap(snap.Groups)...)
	report.Issues = append(report.Issues, ResourceContainment(snap.Resources, snap.Groups)...)
	report.Issues = append(report.Issues, OccupantIntervals(snap.Occupants)...)
	report.Issues = append(report.Issues, AssignmentConflicts(snap.Assignments)...)
	report.Issues = append(report.Issues, AssignmentReferences(snap.Assignments, snap.Occupants, snap.Resources)...)

	if !asOf.IsZero() {
		week := types.WeekOf(asOf)
		for _, day := range types.Weekdays() {
			date, err := week.DateOf(day)
			if err != nil {
				continue
			}
			if issue, ok := Capacity(snap.Occupants, snap.Resources, day, date).Issue(); ok {
				report.Issues = append(report.Issues, issue)
			}
		}
	}

	return report, nil
}
