// Package lease serializes mutating access to a shared document across
// independent processes, using a lease file on the shared filesystem as
// the arbitration primitive.
//
// A lease is claimed with an atomic create, so two processes racing for
// an absent lease cannot both win. An existing claim is honored while
// its timestamp is within the staleness timeout; older or unreadable
// claims are treated as abandoned and taken over with an atomic
// replace. Holders extend their claim by refreshing the timestamp,
// either directly or through a background Keeper.
//
// The package never blocks waiting for a lease on its own. Acquire
// decides immediately; callers that want to wait use WaitAcquire with
// their own context and poll interval.
package lease
