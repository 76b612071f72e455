package model

import (
	"time"

	"github.com/google/uuid"
)

type MeetingID string

// NewMeetingID generates a new unique MeetingID
func NewMeetingID() MeetingID {
	return MeetingID(uuid.New().String())
}

// Meeting is the context that scopes materials, the vector collection and
// all generated briefs. Matching for prior-meeting memory is done on the
// exact Title string.
type Meeting struct {
	ID        MeetingID
	Title     string
	Date      string
	Attendees string
	Tags      string
	CreatedAt time.Time
}
