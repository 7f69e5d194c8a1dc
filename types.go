package sitzplatz

import "github.com/humphreyyy/sitzplatz/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types
// and interfaces. It uses type aliases to re-export definitions from
// the `types` subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root package,
// while still providing a convenient `sitzplatz.StateSnapshot`,
// `sitzplatz.Logger`, etc. for users.
type (
	StateSnapshot = types.StateSnapshot
	SnapshotMeta  = types.SnapshotMeta
	Group         = types.Group
	Resource      = types.Resource
	Occupant      = types.Occupant
	Assignment    = types.Assignment
	WeekPattern   = types.WeekPattern
	Week          = types.Week
	Weekday       = types.Weekday
	Date          = types.Date
	LeaseInfo     = types.LeaseInfo
)

// Re-export interfaces from the types subpackage for convenience.
type (
	SnapshotStore    = types.SnapshotStore
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export Weekday constants from the types subpackage.
const (
	Monday    = types.Monday
	Tuesday   = types.Tuesday
	Wednesday = types.Wednesday
	Thursday  = types.Thursday
	Friday    = types.Friday
	Saturday  = types.Saturday
	Sunday    = types.Sunday
)
