package types

import "time"

// LeaseInfo describes the holder of the exclusivity lease.
//
// This is the JSON payload of the lease file on the shared filesystem.
// PID and Host identify the holding process for operators; staleness
// decisions use only AcquiredAt.
type LeaseInfo struct {
	// Identity is the session identity that acquired the lease,
	// typically a user or service name.
	Identity string `json:"identity"`

	// Token is a random nonce distinguishing successive grants held
	// by the same identity.
	Token string `json:"token"`

	// PID is the process ID of the holder.
	PID int `json:"pid"`

	// Host is the hostname of the holder.
	Host string `json:"host"`

	// AcquiredAt is when the lease was taken or last refreshed.
	AcquiredAt time.Time `json:"timestamp"`
}

// Age returns how long ago the lease was taken or refreshed.
func (l LeaseInfo) Age(now time.Time) time.Duration {
	return now.Sub(l.AcquiredAt)
}
