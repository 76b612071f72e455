package brief

import (
	"github.com/t-okano/brieflet/pkg/adapter"
	"github.com/t-okano/brieflet/pkg/repository"
	"github.com/t-okano/brieflet/pkg/service/recall"
)

// maxRepairRetries bounds re-invocations after malformed output. The
// initial attempt plus this many retries is the full budget.
const maxRepairRetries = 2

// UseCase generates structured meeting briefs: recall evidence, build a
// grounded prompt (optionally carrying a prior meeting's brief as
// memory), invoke the generative backend and run the extract/repair/
// validate protocol over its output.
type UseCase struct {
	repo     repository.Repository
	recall   *recall.Engine
	ai       adapter.GenAI
	provider string
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithProvider sets the provider label persisted with each brief
func WithProvider(label string) Option {
	return func(uc *UseCase) {
		uc.provider = label
	}
}

func New(repo repository.Repository, recallEngine *recall.Engine, ai adapter.GenAI, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:     repo,
		recall:   recallEngine,
		ai:       ai,
		provider: "gemini",
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
