// Package sitzplatz plans who sits where: it assigns occupants to
// resources (people to desks, teams to rooms) per weekday and week,
// keeps the shared planning document consistent, and arbitrates which
// process may write it.
//
// The document lives in a single store (a JSON file on a shared
// filesystem, or a SQLite archive) and is guarded by a file lease:
// exactly one session writes at a time, stale leases left by crashed
// processes are taken over automatically.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/humphreyyy/sitzplatz"
//
//	cfg := sitzplatz.DefaultConfig()
//	session, err := sitzplatz.OpenDir(ctx, "/srv/plans/team-a", &cfg, "alice@laptop")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	result, err := session.PlanWeek(ctx, sitzplatz.Week("2025-W43"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("placed %d, conflicts %d\n",
//	    len(result.Assignments()), result.TotalConflicts())
//
// # Key Features
//
//   - Priority Placement: carryover from last week first, then best
//     requirement match, lowest resource ID breaking ties
//   - Continuity: occupants keep their resource across weeks where the
//     floor plan allows it
//   - Validation Gate: every mutation is checked before it persists;
//     overlapping groups, double bookings and ghost references are
//     rejected with a full report
//   - Exclusive Access: file-lease arbitration with automatic takeover
//     of stale leases, plus read-only sessions for observers
//   - Undo/Redo: bounded snapshot history, persisted on every restore
//
// # Architecture
//
// A Session ties the collaborators together:
//
//	store.FileStore / store.SQLiteStore  - document persistence
//	lease.Arbiter + lease.Keeper         - exclusive write access
//	engine.Engine                        - weekly placement
//	validate.All                         - consistency gate
//	history.History                      - undo/redo
//
// Mutations flow through one path: edit a private copy, validate,
// stamp, persist atomically, record history, fire hooks.
//
// # Advanced Usage
//
// Custom store and hooks:
//
//	st, err := store.NewSQLite("/srv/plans/team-a/archive.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	hooks := &sitzplatz.Hooks{
//	    OnSnapshotCommitted: func(ctx context.Context, operation string, snap *sitzplatz.StateSnapshot) error {
//	        return notifyTeam(operation)
//	    },
//	}
//
//	session, err := sitzplatz.Open(ctx, &cfg, st, "alice@laptop",
//	    sitzplatz.WithHooks(hooks),
//	    sitzplatz.WithLogger(logging.NewSlogDefault()),
//	)
//
// See the examples/ directory for complete working examples.
package sitzplatz
