// Package event names the lifecycle events published for downstream consumers
// and the JSON body they carry.
package event

import "time"

const (
	UserCreated string = "user.created"
	UserUpdated string = "user.updated"
	UserDeleted string = "user.deleted"

	PostCreated string = "post.created"
	PostUpdated string = "post.updated"
	PostDeleted string = "post.deleted"
)

// LifecycleMessage is the body of every lifecycle event. UserID is set for
// post events only.
type LifecycleMessage struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
