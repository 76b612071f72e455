package brief_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/usecase/brief"
)

func TestBuildBrief(t *testing.T) {
	obj := map[string]any{
		"meeting_title":      "Weekly Sync",
		"time_window":        "last 7 days",
		"last_meeting_recap": "Discussed the roadmap.",
		"open_action_items": []any{
			map[string]any{"owner": "dana", "item": "ship the fix", "due": "2026-09-01", "status": "open"},
			map[string]any{"owner": "kim", "item": "review doc", "due": "", "status": "blocked"},
		},
		"key_topics_today": []any{"roadmap", "hiring"},
		"proposed_agenda": []any{
			map[string]any{"topic": "review", "minutes": float64(10), "owner": "dana"},
		},
		"evidence": []any{
			map[string]any{"source": "m1#c0", "snippet": "roadmap discussion"},
		},
	}

	b, err := brief.BuildBrief(obj)
	gt.NoError(t, err)
	gt.Equal(t, b.MeetingTitle, "Weekly Sync")
	gt.Equal(t, b.TimeWindow, "last 7 days")
	gt.Equal(t, b.Recap, "Discussed the roadmap.")
	gt.A(t, b.ActionItems).Length(2)
	gt.Equal(t, b.ActionItems[0].Status, model.StatusOpen)
	gt.Equal(t, b.ActionItems[1].Status, model.StatusBlocked)
	gt.A(t, b.KeyTopics).Length(2)
	gt.A(t, b.ProposedAgenda).Length(1)
	gt.Equal(t, b.ProposedAgenda[0].Minutes, 10)
	gt.A(t, b.Evidence).Length(1)
	gt.Equal(t, b.Evidence[0].Source, "m1#c0")
}

func TestBuildBriefRequiredFields(t *testing.T) {
	t.Run("missing title", func(t *testing.T) {
		_, err := brief.BuildBrief(map[string]any{
			"last_meeting_recap": "Something happened.",
		})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("meeting_title")
	})

	t.Run("missing recap", func(t *testing.T) {
		_, err := brief.BuildBrief(map[string]any{
			"meeting_title": "Weekly Sync",
		})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("last_meeting_recap")
	})

	t.Run("whitespace-only title", func(t *testing.T) {
		_, err := brief.BuildBrief(map[string]any{
			"meeting_title":      "   ",
			"last_meeting_recap": "Something happened.",
		})
		gt.Error(t, err)
	})
}

func TestBuildBriefDefaults(t *testing.T) {
	b, err := brief.BuildBrief(map[string]any{
		"meeting_title":      "Weekly Sync",
		"last_meeting_recap": "Short recap.",
	})
	gt.NoError(t, err)

	// Optional fields default to type-correct empty values, never nil
	gt.V(t, b.ActionItems == nil).Equal(false)
	gt.A(t, b.ActionItems).Length(0)
	gt.V(t, b.KeyTopics == nil).Equal(false)
	gt.A(t, b.KeyTopics).Length(0)
	gt.V(t, b.ProposedAgenda == nil).Equal(false)
	gt.A(t, b.ProposedAgenda).Length(0)
	gt.V(t, b.Evidence == nil).Equal(false)
	gt.A(t, b.Evidence).Length(0)
	gt.Equal(t, b.TimeWindow, "")
}

func TestBuildBriefCoercion(t *testing.T) {
	b, err := brief.BuildBrief(map[string]any{
		"meeting_title":      "Weekly Sync",
		"last_meeting_recap": "Recap.",
		"open_action_items": []any{
			// Numeric due date and unknown status get coerced
			map[string]any{"owner": "dana", "item": "task", "due": float64(20260901), "status": "urgent"},
			// Non-object entries are dropped
			"not an object",
		},
		"key_topics_today": []any{"topic", float64(42), ""},
		"proposed_agenda": []any{
			map[string]any{"topic": "review", "minutes": "15", "owner": "kim"},
			map[string]any{"topic": "plan", "minutes": "soon", "owner": "kim"},
		},
	})
	gt.NoError(t, err)

	gt.A(t, b.ActionItems).Length(1)
	gt.Equal(t, b.ActionItems[0].Due, "20260901")
	gt.Equal(t, b.ActionItems[0].Status, model.StatusOpen)

	gt.A(t, b.KeyTopics).Length(2)
	gt.Equal(t, b.KeyTopics[1], "42")

	gt.A(t, b.ProposedAgenda).Length(2)
	gt.Equal(t, b.ProposedAgenda[0].Minutes, 15)
	gt.Equal(t, b.ProposedAgenda[1].Minutes, 0)
}
