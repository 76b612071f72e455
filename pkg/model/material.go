package model

import (
	"time"

	"github.com/google/uuid"
)

type MaterialID string

// NewMaterialID generates a new unique MaterialID
func NewMaterialID() MaterialID {
	return MaterialID(uuid.New().String())
}

type MaterialOrigin string

const (
	OriginUpload MaterialOrigin = "upload"
	OriginPaste  MaterialOrigin = "paste"
)

// Material is an immutable text payload owned by one meeting. It is never
// mutated after ingestion.
type Material struct {
	ID        MaterialID
	MeetingID MeetingID
	Name      string
	Origin    MaterialOrigin
	CharCount int
	CreatedAt time.Time

	// Text is stored in Cloud Storage, not in the document store, to stay
	// clear of the Firestore document size limit.
	Text string `firestore:"-"`
}
