package repository

import (
	"context"

	"github.com/t-okano/brieflet/pkg/model"
)

// Repository defines persistence for meetings, material metadata and
// briefs. No foreign keys are assumed at this layer; referential
// integrity (a meeting's materials and briefs live and die with it) is a
// contract of the callers.
type Repository interface {
	// PutMeeting saves a meeting
	PutMeeting(ctx context.Context, meeting *model.Meeting) error

	// GetMeeting retrieves a meeting by ID
	GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error)

	// ListMeetings retrieves meetings, most recently created first
	ListMeetings(ctx context.Context) ([]*model.Meeting, error)

	// FindMeetingsByTitle retrieves meetings whose title matches exactly,
	// most recently created first. Matching is case-sensitive.
	FindMeetingsByTitle(ctx context.Context, title string) ([]*model.Meeting, error)

	// PutMaterial saves material metadata
	PutMaterial(ctx context.Context, material *model.Material) error

	// GetMaterial retrieves material metadata by ID
	GetMaterial(ctx context.Context, id model.MaterialID) (*model.Material, error)

	// ListMaterials retrieves a meeting's materials in submission order
	ListMaterials(ctx context.Context, meetingID model.MeetingID) ([]*model.Material, error)

	// DeleteMaterial removes a material record
	DeleteMaterial(ctx context.Context, id model.MaterialID) error

	// PutBrief saves a brief as a new version
	PutBrief(ctx context.Context, brief *model.Brief) error

	// GetBrief retrieves a brief by ID
	GetBrief(ctx context.Context, id model.BriefID) (*model.Brief, error)

	// GetLatestBrief retrieves a meeting's most recent brief, or nil when
	// none has been saved
	GetLatestBrief(ctx context.Context, meetingID model.MeetingID) (*model.Brief, error)

	// ListBriefs retrieves a meeting's brief versions, newest first
	ListBriefs(ctx context.Context, meetingID model.MeetingID) ([]*model.Brief, error)
}
