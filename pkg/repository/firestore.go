package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collMeetings  = "meetings"
	collMaterials = "materials"
	collBriefs    = "briefs"
)

// Firestore implements Repository using Cloud Firestore
type Firestore struct {
	client *firestore.Client
}

// New creates a Firestore-backed repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	return &Firestore{client: client}, nil
}

func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) PutMeeting(ctx context.Context, meeting *model.Meeting) error {
	_, err := r.client.Collection(collMeetings).Doc(string(meeting.ID)).Set(ctx, meeting)
	if err != nil {
		return goerr.Wrap(model.ErrPersistence, "failed to save meeting",
			goerr.V("meeting_id", meeting.ID), goerr.V("cause", err.Error()))
	}
	return nil
}

func (r *Firestore) GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error) {
	doc, err := r.client.Collection(collMeetings).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrMeetingNotFound, "no such meeting", goerr.V("meeting_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get meeting", goerr.V("meeting_id", id))
	}

	var meeting model.Meeting
	if err := doc.DataTo(&meeting); err != nil {
		return nil, goerr.Wrap(err, "failed to decode meeting")
	}
	return &meeting, nil
}

func (r *Firestore) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	iter := r.client.Collection(collMeetings).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	return decodeMeetings(iter)
}

func (r *Firestore) FindMeetingsByTitle(ctx context.Context, title string) ([]*model.Meeting, error) {
	// Firestore equality is byte-exact, which matches the case-sensitive
	// title contract
	iter := r.client.Collection(collMeetings).
		Where("Title", "==", title).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	return decodeMeetings(iter)
}

func decodeMeetings(iter *firestore.DocumentIterator) ([]*model.Meeting, error) {
	var meetings []*model.Meeting
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate meetings")
		}

		var meeting model.Meeting
		if err := doc.DataTo(&meeting); err != nil {
			return nil, goerr.Wrap(err, "failed to decode meeting")
		}
		meetings = append(meetings, &meeting)
	}
	return meetings, nil
}

func (r *Firestore) PutMaterial(ctx context.Context, material *model.Material) error {
	_, err := r.client.Collection(collMaterials).Doc(string(material.ID)).Set(ctx, material)
	if err != nil {
		return goerr.Wrap(model.ErrPersistence, "failed to save material",
			goerr.V("material_id", material.ID), goerr.V("cause", err.Error()))
	}
	return nil
}

func (r *Firestore) GetMaterial(ctx context.Context, id model.MaterialID) (*model.Material, error) {
	doc, err := r.client.Collection(collMaterials).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrMaterialNotFound, "no such material", goerr.V("material_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get material", goerr.V("material_id", id))
	}

	var material model.Material
	if err := doc.DataTo(&material); err != nil {
		return nil, goerr.Wrap(err, "failed to decode material")
	}
	return &material, nil
}

func (r *Firestore) ListMaterials(ctx context.Context, meetingID model.MeetingID) ([]*model.Material, error) {
	iter := r.client.Collection(collMaterials).
		Where("MeetingID", "==", string(meetingID)).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)

	var materials []*model.Material
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate materials")
		}

		var material model.Material
		if err := doc.DataTo(&material); err != nil {
			return nil, goerr.Wrap(err, "failed to decode material")
		}
		materials = append(materials, &material)
	}
	return materials, nil
}

func (r *Firestore) DeleteMaterial(ctx context.Context, id model.MaterialID) error {
	_, err := r.client.Collection(collMaterials).Doc(string(id)).Delete(ctx)
	if err != nil {
		return goerr.Wrap(model.ErrPersistence, "failed to delete material",
			goerr.V("material_id", id), goerr.V("cause", err.Error()))
	}
	return nil
}

func (r *Firestore) PutBrief(ctx context.Context, brief *model.Brief) error {
	_, err := r.client.Collection(collBriefs).Doc(string(brief.ID)).Set(ctx, brief)
	if err != nil {
		return goerr.Wrap(model.ErrPersistence, "failed to save brief",
			goerr.V("brief_id", brief.ID), goerr.V("cause", err.Error()))
	}
	return nil
}

func (r *Firestore) GetBrief(ctx context.Context, id model.BriefID) (*model.Brief, error) {
	doc, err := r.client.Collection(collBriefs).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrBriefNotFound, "no such brief", goerr.V("brief_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get brief", goerr.V("brief_id", id))
	}

	return decodeBrief(doc)
}

func (r *Firestore) GetLatestBrief(ctx context.Context, meetingID model.MeetingID) (*model.Brief, error) {
	iter := r.client.Collection(collBriefs).
		Where("MeetingID", "==", string(meetingID)).
		OrderBy("CreatedAt", firestore.Desc).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query latest brief", goerr.V("meeting_id", meetingID))
	}
	return decodeBrief(doc)
}

func (r *Firestore) ListBriefs(ctx context.Context, meetingID model.MeetingID) ([]*model.Brief, error) {
	iter := r.client.Collection(collBriefs).
		Where("MeetingID", "==", string(meetingID)).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)

	var briefs []*model.Brief
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate briefs")
		}

		brief, err := decodeBrief(doc)
		if err != nil {
			return nil, err
		}
		briefs = append(briefs, brief)
	}
	return briefs, nil
}

func decodeBrief(doc *firestore.DocumentSnapshot) (*model.Brief, error) {
	var brief model.Brief
	if err := doc.DataTo(&brief); err != nil {
		return nil, goerr.Wrap(err, "failed to decode brief")
	}
	brief.Normalize()
	return &brief, nil
}
