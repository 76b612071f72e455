package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
)

// Memory implements Repository in process memory for tests.
type Memory struct {
	mu        sync.Mutex
	meetings  map[model.MeetingID]*model.Meeting
	materials map[model.MaterialID]*model.Material
	briefs    map[model.BriefID]*model.Brief
}

func NewMemory() *Memory {
	return &Memory{
		meetings:  map[model.MeetingID]*model.Meeting{},
		materials: map[model.MaterialID]*model.Material{},
		briefs:    map[model.BriefID]*model.Brief{},
	}
}

func (r *Memory) PutMeeting(ctx context.Context, meeting *model.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *meeting
	r.meetings[meeting.ID] = &copied
	return nil
}

func (r *Memory) GetMeeting(ctx context.Context, id model.MeetingID) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	meeting, ok := r.meetings[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrMeetingNotFound, "no such meeting", goerr.V("meeting_id", id))
	}
	copied := *meeting
	return &copied, nil
}

func (r *Memory) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var meetings []*model.Meeting
	for _, m := range r.meetings {
		copied := *m
		meetings = append(meetings, &copied)
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].CreatedAt.After(meetings[j].CreatedAt)
	})
	return meetings, nil
}

func (r *Memory) FindMeetingsByTitle(ctx context.Context, title string) ([]*model.Meeting, error) {
	all, err := r.ListMeetings(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*model.Meeting
	for _, m := range all {
		if m.Title == title {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

func (r *Memory) PutMaterial(ctx context.Context, material *model.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *material
	copied.Text = ""
	r.materials[material.ID] = &copied
	return nil
}

func (r *Memory) GetMaterial(ctx context.Context, id model.MaterialID) (*model.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	material, ok := r.materials[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrMaterialNotFound, "no such material", goerr.V("material_id", id))
	}
	copied := *material
	return &copied, nil
}

func (r *Memory) ListMaterials(ctx context.Context, meetingID model.MeetingID) ([]*model.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var materials []*model.Material
	for _, m := range r.materials {
		if m.MeetingID == meetingID {
			copied := *m
			materials = append(materials, &copied)
		}
	}
	sort.Slice(materials, func(i, j int) bool {
		return materials[i].CreatedAt.Before(materials[j].CreatedAt)
	})
	return materials, nil
}

func (r *Memory) DeleteMaterial(ctx context.Context, id model.MaterialID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.materials, id)
	return nil
}

func (r *Memory) PutBrief(ctx context.Context, brief *model.Brief) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *brief
	r.briefs[brief.ID] = &copied
	return nil
}

func (r *Memory) GetBrief(ctx context.Context, id model.BriefID) (*model.Brief, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	brief, ok := r.briefs[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrBriefNotFound, "no such brief", goerr.V("brief_id", id))
	}
	copied := *brief
	return &copied, nil
}

func (r *Memory) GetLatestBrief(ctx context.Context, meetingID model.MeetingID) (*model.Brief, error) {
	briefs, err := r.ListBriefs(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if len(briefs) == 0 {
		return nil, nil
	}
	return briefs[0], nil
}

func (r *Memory) ListBriefs(ctx context.Context, meetingID model.MeetingID) ([]*model.Brief, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var briefs []*model.Brief
	for _, b := range r.briefs {
		if b.MeetingID == meetingID {
			copied := *b
			briefs = append(briefs, &copied)
		}
	}
	sort.Slice(briefs, func(i, j int) bool {
		return briefs[i].CreatedAt.After(briefs[j].CreatedAt)
	})
	return briefs, nil
}
