// Package engine computes deterministic occupant-to-resource placements.
//
// The engine plans one weekday at a time. Each run filters the roster
// down to the occupants attending that day, orders them so that
// occupants holding a resource on the same weekday of the previous week
// go first (then alphabetically by name), and places each one using a
// strict preference ladder:
//
//  1. The occupant's previous-week resource, when still free
//  2. The first free resource satisfying all stated requirements
//  3. The first free resource satisfying at least one requirement
//  4. Any free resource
//
// Resources are always scanned in ascending ID order, so two runs over
// identical inputs produce identical output. Occupants left without a
// resource are reported as conflicts, never as errors; a plan always
// completes.
//
// Weekly plans run the seven days independently. A shortage on Monday
// never influences Tuesday, and the previous week's plan only feeds in
// as the continuity hint described above.
//
// All methods treat their inputs as read-only.
package engine
