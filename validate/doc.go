// Package validate provides pure structural checks over state snapshots.
//
// Checks never mutate their inputs and never fail on malformed-but-parseable
// data: every finding is reported as an Issue in a Report rather than an
// error. The package distinguishes two severities:
//
//   - Violation: structurally wrong data that blocks persisting
//     (overlapping groups, resources outside their group, inverted
//     validity intervals, duplicate placements, dangling references)
//   - Advisory: informational findings that never block
//     (capacity excess: more active occupants than resources)
//
// The only error All returns is for a structurally incomplete snapshot,
// one with a missing top-level section, which no check can meaningfully
// inspect.
package validate
