// Package testing provides test utilities for the sitzplatz library.
//
// It follows Go's convention of shipping test helpers in a dedicated
// package (similar to net/http/httptest): a types.Logger backed by
// testing.T, fixture builders for floor plans, rosters and complete
// snapshots, and a controllable Clock for the WithClock options.
//
// Example usage:
//
//	import (
//	    "testing"
//	    sittest "github.com/humphreyyy/sitzplatz/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    snap := sittest.Snapshot(8, 6)
//	    log := sittest.NewTestLogger(t)
//	    clock := sittest.NewClock(time.Time{})
//	    // plan, validate, persist...
//	}
package testing
