package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/t-okano/brieflet/pkg/model"
)

func TestActionStatusValidate(t *testing.T) {
	gt.NoError(t, model.StatusOpen.Validate())
	gt.NoError(t, model.StatusBlocked.Validate())
	gt.NoError(t, model.StatusDone.Validate())
	gt.Error(t, model.ActionStatus("urgent").Validate())
	gt.Error(t, model.ActionStatus("").Validate())
}

func TestBriefNormalize(t *testing.T) {
	b := &model.Brief{
		MeetingTitle: "Weekly Sync",
		Recap:        "Recap.",
		ActionItems: []model.ActionItem{
			{Owner: "dana", Item: "task", Status: "urgent"},
			{Owner: "kim", Item: "other", Status: model.StatusDone},
		},
	}
	b.Normalize()

	gt.V(t, b.KeyTopics == nil).Equal(false)
	gt.V(t, b.ProposedAgenda == nil).Equal(false)
	gt.V(t, b.Evidence == nil).Equal(false)
	gt.Equal(t, b.ActionItems[0].Status, model.StatusOpen)
	gt.Equal(t, b.ActionItems[1].Status, model.StatusDone)
}

func TestBriefSerializationIdempotent(t *testing.T) {
	b := &model.Brief{
		ID:           model.NewBriefID(),
		MeetingID:    model.NewMeetingID(),
		MeetingTitle: "Weekly Sync",
		TimeWindow:   "last 7 days",
		Recap:        "The roadmap was approved.",
		KeyTopics:    []string{"roadmap"},
	}
	b.Normalize()

	first, err := json.Marshal(b)
	gt.NoError(t, err)

	var decoded model.Brief
	gt.NoError(t, json.Unmarshal(first, &decoded))

	second, err := json.Marshal(&decoded)
	gt.NoError(t, err)
	gt.Equal(t, string(first), string(second))
}

func TestBriefJSONShape(t *testing.T) {
	b := &model.Brief{
		ID:           model.NewBriefID(),
		MeetingID:    model.NewMeetingID(),
		Provider:     "gemini",
		MeetingTitle: "Weekly Sync",
		Recap:        "Recap.",
	}
	b.Normalize()

	data, err := json.Marshal(b)
	gt.NoError(t, err)

	var obj map[string]any
	gt.NoError(t, json.Unmarshal(data, &obj))

	for _, key := range []string{
		"meeting_title", "time_window", "last_meeting_recap",
		"open_action_items", "key_topics_today", "proposed_agenda", "evidence",
	} {
		if _, ok := obj[key]; !ok {
			t.Errorf("missing key %q in serialized brief", key)
		}
	}

	// Internal bookkeeping never leaks into the exported shape
	for _, key := range []string{"ID", "MeetingID", "Provider", "CreatedAt"} {
		if _, ok := obj[key]; ok {
			t.Errorf("unexpected key %q in serialized brief", key)
		}
	}
}

func TestChunkRefCitation(t *testing.T) {
	ref := model.ChunkRef{MaterialID: "mat-42", Index: 3}
	gt.Equal(t, ref.Citation(), "mat-42#c3")
}
