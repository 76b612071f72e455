package brief

import "github.com/google/jsonschema-go/jsonschema"

// responseSchema declares the brief's wire shape for backends with
// native structured output
func responseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"meeting_title": {
				Type:        "string",
				Description: "Title of the meeting",
			},
			"time_window": {
				Type:        "string",
				Description: "Covered period, e.g. 2025-11-01..2025-11-07, or empty",
			},
			"last_meeting_recap": {
				Type:        "string",
				Description: "Recap of what the materials cover",
			},
			"open_action_items": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"owner":  {Type: "string"},
						"item":   {Type: "string"},
						"due":    {Type: "string", Description: "YYYY-MM-DD or empty"},
						"status": {Type: "string", Enum: []any{"open", "blocked", "done"}},
					},
					Required: []string{"owner", "item", "status"},
				},
			},
			"key_topics_today": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
			"proposed_agenda": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"topic":   {Type: "string"},
						"minutes": {Type: "integer"},
						"owner":   {Type: "string"},
					},
					Required: []string{"topic", "minutes"},
				},
			},
			"evidence": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"source":  {Type: "string", Description: "material_id#c{chunk_index}"},
						"snippet": {Type: "string"},
					},
					Required: []string{"source", "snippet"},
				},
			},
		},
		Required: []string{"meeting_title", "last_meeting_recap"},
	}
}
