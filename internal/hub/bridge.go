package hub

import "github.com/connectly/connectly/internal/domain"

// StoreResult is the outcome of a meeting-record update. The hub
// consumes it for logging only; a miss never changes the broadcast
// path. That decoupling is deliberate.
type StoreResult int

const (
	StoreUpdated StoreResult = iota
	StoreNotFound
)

func (r StoreResult) String() string {
	if r == StoreNotFound {
		return "not_found"
	}
	return "updated"
}

// MeetingStateBridge reflects host lifecycle transitions into the
// persistent meeting record. Both calls are fire-and-forget from the
// hub's perspective and must be fast key lookups.
type MeetingStateBridge interface {
	// RecordHostJoin applies the NotJoined -> Joined transition and
	// stamps the start time. Idempotent: once Joined, repeat calls
	// must not re-stamp or error.
	RecordHostJoin(code domain.MeetingCode) (StoreResult, error)
	// RecordMeetingEnd forces the record to Ended from any state.
	RecordMeetingEnd(code domain.MeetingCode) (StoreResult, error)
}
