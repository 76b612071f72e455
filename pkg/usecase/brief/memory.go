package brief

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/utils/logging"
)

// priorBriefBlock looks up another meeting with the exact same title and
// at least one saved brief, and serializes that meeting's latest brief as
// a memory block for the synthesis prompt. Matching is byte-exact and
// case-sensitive; the current meeting is excluded. Returns "" when no
// such meeting exists.
func (uc *UseCase) priorBriefBlock(ctx context.Context, meeting *model.Meeting) (string, error) {
	candidates, err := uc.repo.FindMeetingsByTitle(ctx, meeting.Title)
	if err != nil {
		return "", goerr.Wrap(err, "failed to find meetings by title")
	}

	for _, candidate := range candidates {
		if candidate.ID == meeting.ID {
			continue
		}
		prior, err := uc.repo.GetLatestBrief(ctx, candidate.ID)
		if err != nil {
			return "", goerr.Wrap(err, "failed to load prior brief",
				goerr.V("meeting_id", candidate.ID))
		}
		if prior == nil {
			continue
		}

		data, err := json.MarshalIndent(prior, "", "  ")
		if err != nil {
			return "", goerr.Wrap(err, "failed to serialize prior brief")
		}

		logging.From(ctx).Info("injecting prior meeting memory",
			"title", meeting.Title, "prior_meeting_id", candidate.ID)
		return string(data), nil
	}

	return "", nil
}
