package ask

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/adapter"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/service/recall"
)

//go:embed prompt/answer.md
var answerPromptRaw string

var answerPromptTmpl = template.Must(template.New("answer").Parse(answerPromptRaw))

const systemPrompt = "You are a meeting-preparation assistant answering questions about uploaded meeting materials. Ground every answer in the provided context."

// maxCitations caps how many citations a single answer carries
const maxCitations = 5

// UseCase answers free-form questions grounded in a meeting's materials.
// Single-shot: no repair loop, the raw completion is the answer.
type UseCase struct {
	recall *recall.Engine
	ai     adapter.GenAI
}

func New(recallEngine *recall.Engine, ai adapter.GenAI) *UseCase {
	return &UseCase{
		recall: recallEngine,
		ai:     ai,
	}
}

// Ask retrieves top-k evidence for the question, invokes the backend once
// and returns the answer verbatim with the citations it used
func (uc *UseCase) Ask(ctx context.Context, meetingID model.MeetingID, question string) (*model.ConversationTurn, error) {
	if strings.TrimSpace(question) == "" {
		return nil, goerr.New("question is empty")
	}

	evidence, err := uc.recall.Recall(ctx, meetingID, question, recall.AskTopK)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to recall evidence")
	}

	var buf bytes.Buffer
	if err := answerPromptTmpl.Execute(&buf, map[string]any{
		"Question":      question,
		"ContextBlocks": recall.FormatBlocks(evidence),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute answer prompt template")
	}

	answer, err := uc.ai.Generate(ctx, &adapter.GenerateRequest{
		System:   systemPrompt,
		Messages: []adapter.Message{{Role: adapter.RoleUser, Text: buf.String()}},
	})
	if err != nil {
		return nil, err
	}

	return &model.ConversationTurn{
		Question:  question,
		Answer:    answer,
		Citations: extractCitations(answer, evidence),
	}, nil
}

// extractCitations collects evidence citations that appear in the answer
// text; when the answer cites nothing explicitly it falls back to the
// evidence block's citations. Deduplicated, capped at maxCitations.
func extractCitations(answer string, evidence []model.Evidence) []string {
	var citations []string
	seen := map[string]bool{}

	add := func(source string) {
		if source == "" || seen[source] || len(citations) >= maxCitations {
			return
		}
		seen[source] = true
		citations = append(citations, source)
	}

	for _, ev := range evidence {
		if strings.Contains(answer, ev.Source) {
			add(ev.Source)
		}
	}
	if len(citations) == 0 {
		for _, ev := range evidence {
			add(ev.Source)
		}
	}

	return citations
}
