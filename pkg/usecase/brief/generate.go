package brief

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/adapter"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/service/recall"
	"github.com/t-okano/brieflet/pkg/utils/logging"
)

//go:embed prompt/system.md
var systemPromptRaw string

//go:embed prompt/generate.md
var generatePromptRaw string

//go:embed prompt/retry.md
var retryPromptRaw string

var generatePromptTmpl = template.Must(template.New("generate").Parse(generatePromptRaw))

// degradedContextNote is stamped into the recap when a brief had to be
// generated without any indexed material
const degradedContextNote = "[no source material indexed]"

// Generate produces and persists a new brief version for the meeting.
// When the brief was synthesized but could not be persisted, the brief is
// returned together with the persistence error so the caller can still
// show it.
func (uc *UseCase) Generate(ctx context.Context, meetingID model.MeetingID) (*model.Brief, error) {
	meeting, err := uc.repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	evidence, err := uc.recall.Recall(ctx, meetingID, "", recall.BriefTopK)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to recall evidence")
	}

	memory, err := uc.priorBriefBlock(ctx, meeting)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := generatePromptTmpl.Execute(&buf, map[string]any{
		"Title":         meeting.Title,
		"Date":          meeting.Date,
		"Memory":        memory,
		"ContextBlocks": recall.FormatBlocks(evidence),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute generate prompt template")
	}

	brief, err := uc.synthesize(ctx, buf.String())
	if err != nil {
		return nil, err
	}

	if len(evidence) == 0 {
		brief.Recap = strings.TrimSpace(degradedContextNote + " " + brief.Recap)
		brief.Evidence = []model.Evidence{}
	}

	brief.ID = model.NewBriefID()
	brief.MeetingID = meetingID
	brief.Provider = uc.provider
	brief.CreatedAt = time.Now()
	brief.Normalize()

	if err := uc.repo.PutBrief(ctx, brief); err != nil {
		// The brief exists in memory even though it was not recorded;
		// hand both back and let the caller decide
		logging.From(ctx).Error("generated brief could not be persisted",
			"meeting_id", meetingID, "error", err)
		return brief, err
	}

	logging.From(ctx).Info("brief generated",
		"brief_id", brief.ID, "meeting_id", meetingID, "evidence", len(brief.Evidence))
	return brief, nil
}

// synthesize drives the invoke → extract → repair → validate protocol.
// Malformed output triggers a re-invocation with a clarified prompt, up
// to maxRepairRetries times; a validation failure on a parsed object is
// final.
func (uc *UseCase) synthesize(ctx context.Context, userPrompt string) (*model.Brief, error) {
	messages := []adapter.Message{{Role: adapter.RoleUser, Text: userPrompt}}

	var lastReason string
	var lastRaw string
	for attempt := 0; attempt <= maxRepairRetries; attempt++ {
		if attempt > 0 {
			logging.From(ctx).Warn("retrying brief synthesis",
				"attempt", attempt, "reason", lastReason)
			messages = append(messages,
				adapter.Message{Role: adapter.RoleModel, Text: lastRaw},
				adapter.Message{Role: adapter.RoleUser, Text: retryPromptRaw},
			)
		}

		raw, err := uc.ai.Generate(ctx, &adapter.GenerateRequest{
			System:         systemPromptRaw,
			Messages:       messages,
			ResponseSchema: responseSchema(),
		})
		if err != nil {
			return nil, err
		}

		result := Parse(raw)
		if !result.Valid() {
			lastReason = result.Reason
			lastRaw = raw
			continue
		}

		brief, err := BuildBrief(result.Object)
		if err != nil {
			return nil, goerr.Wrap(model.ErrMalformedOutput, err.Error(),
				goerr.V("raw", raw))
		}
		return brief, nil
	}

	return nil, goerr.Wrap(model.ErrMalformedOutput, lastReason,
		goerr.V("raw", lastRaw))
}
