package brief

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
)

// BuildBrief checks a parsed object against the brief schema field by
// field. Missing optional fields get type-correct empty defaults, wrong
// primitive types are coerced where unambiguous, and a missing required
// field (title, recap) is an error.
func BuildBrief(obj map[string]any) (*model.Brief, error) {
	b := &model.Brief{
		MeetingTitle:   asString(obj["meeting_title"]),
		TimeWindow:     asString(obj["time_window"]),
		Recap:          asString(obj["last_meeting_recap"]),
		ActionItems:    []model.ActionItem{},
		KeyTopics:      []string{},
		ProposedAgenda: []model.AgendaItem{},
		Evidence:       []model.Evidence{},
	}

	if strings.TrimSpace(b.MeetingTitle) == "" {
		return nil, goerr.New("required field missing: meeting_title")
	}
	if strings.TrimSpace(b.Recap) == "" {
		return nil, goerr.New("required field missing: last_meeting_recap")
	}

	for _, v := range asSlice(obj["open_action_items"]) {
		item, ok := v.(map[string]any)
		if !ok {
			continue
		}
		action := model.ActionItem{
			Owner:  asString(item["owner"]),
			Item:   asString(item["item"]),
			Due:    asString(item["due"]),
			Status: model.ActionStatus(asString(item["status"])),
		}
		if action.Status.Validate() != nil {
			action.Status = model.StatusOpen
		}
		b.ActionItems = append(b.ActionItems, action)
	}

	for _, v := range asSlice(obj["key_topics_today"]) {
		if topic := asString(v); topic != "" {
			b.KeyTopics = append(b.KeyTopics, topic)
		}
	}

	for _, v := range asSlice(obj["proposed_agenda"]) {
		item, ok := v.(map[string]any)
		if !ok {
			continue
		}
		b.ProposedAgenda = append(b.ProposedAgenda, model.AgendaItem{
			Topic:   asString(item["topic"]),
			Minutes: asInt(item["minutes"]),
			Owner:   asString(item["owner"]),
		})
	}

	for _, v := range asSlice(obj["evidence"]) {
		item, ok := v.(map[string]any)
		if !ok {
			continue
		}
		b.Evidence = append(b.Evidence, model.Evidence{
			Source:  asString(item["source"]),
			Snippet: asString(item["snippet"]),
		})
	}

	return b, nil
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
