package audit

import "context"

// Actions recorded for admin mutations.
const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionStatusChange = "STATUS_CHANGE"
)

// Audited entity names.
const (
	EntityDestination = "destination"
	EntityVenue       = "venue"
	EntityBooking     = "booking"
	EntityUser        = "user"
)

// Recorder appends one audit row per admin mutation.
type Recorder interface {
	Record(ctx context.Context, actorID int64, action, entity string, entityID int64, metadata any) error
}
