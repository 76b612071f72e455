package ingest

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/adapter"
	"github.com/t-okano/brieflet/pkg/chunk"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/repository"
	"github.com/t-okano/brieflet/pkg/utils/logging"
	"github.com/t-okano/brieflet/pkg/vector"
)

// UseCase ingests raw materials into a meeting: extract text, persist the
// material, chunk, embed, and feed the live vector collection
type UseCase struct {
	repo      repository.Repository
	storage   adapter.Storage
	ai        adapter.GenAI
	extractor adapter.Extractor
	index     *vector.Index

	maxLen  int
	overlap int
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithChunkParams overrides the default chunking window
func WithChunkParams(maxLen, overlap int) Option {
	return func(uc *UseCase) {
		uc.maxLen = maxLen
		uc.overlap = overlap
	}
}

func New(repo repository.Repository, storage adapter.Storage, ai adapter.GenAI, extractor adapter.Extractor, index *vector.Index, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:      repo,
		storage:   storage,
		ai:        ai,
		extractor: extractor,
		index:     index,
		maxLen:    chunk.DefaultMaxLen,
		overlap:   chunk.DefaultOverlap,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Input is one material submitted for ingestion
type Input struct {
	Name   string
	Format string
	Origin model.MaterialOrigin
	Data   []byte
}

// ItemFailure reports a single material that could not be ingested
type ItemFailure struct {
	Name   string
	Reason string
}

// Result reports partial-success ingestion: which materials were stored
// and which items failed
type Result struct {
	Materials []*model.Material
	Failed    []ItemFailure
}

// Ingest processes items strictly in submission order. A failed item is
// skipped and reported; it never aborts the rest of the batch.
func (uc *UseCase) Ingest(ctx context.Context, meetingID model.MeetingID, items []Input) (*Result, error) {
	if _, err := uc.repo.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, item := range items {
		material, err := uc.ingestOne(ctx, meetingID, item)
		if err != nil {
			logging.From(ctx).Warn("failed to ingest material",
				"name", item.Name, "error", err)
			result.Failed = append(result.Failed, ItemFailure{
				Name:   item.Name,
				Reason: err.Error(),
			})
			continue
		}
		result.Materials = append(result.Materials, material)
	}
	return result, nil
}

func (uc *UseCase) ingestOne(ctx context.Context, meetingID model.MeetingID, item Input) (*model.Material, error) {
	text, err := uc.extractor.Extract(item.Data, item.Format)
	if err != nil {
		return nil, goerr.Wrap(err, "extraction failed", goerr.V("name", item.Name))
	}

	material := &model.Material{
		ID:        model.NewMaterialID(),
		MeetingID: meetingID,
		Name:      item.Name,
		Origin:    item.Origin,
		CharCount: len(text),
		CreatedAt: time.Now(),
		Text:      text,
	}

	writer, err := uc.storage.Put(ctx, adapter.MaterialKey(meetingID, material.ID))
	if err != nil {
		return nil, goerr.Wrap(model.ErrPersistence, "failed to open payload writer",
			goerr.V("material_id", material.ID), goerr.V("cause", err.Error()))
	}
	if _, err := writer.Write([]byte(text)); err != nil {
		_ = writer.Close()
		return nil, goerr.Wrap(model.ErrPersistence, "failed to write payload",
			goerr.V("material_id", material.ID), goerr.V("cause", err.Error()))
	}
	if err := writer.Close(); err != nil {
		return nil, goerr.Wrap(model.ErrPersistence, "failed to finalize payload",
			goerr.V("material_id", material.ID), goerr.V("cause", err.Error()))
	}

	if err := uc.repo.PutMaterial(ctx, material); err != nil {
		return nil, err
	}

	chunks := chunk.Split(text, uc.maxLen, uc.overlap, material.ID)
	if len(chunks) == 0 {
		return material, nil
	}

	texts := make([]string, len(chunks))
	refs := make([]model.ChunkRef, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
		refs[i] = c.Ref()
	}

	vecs, err := uc.ai.Embed(ctx, texts)
	if err != nil {
		// The material is stored; the collection will be rebuilt lazily
		// on the next recall, so a failed embedding is not fatal here
		uc.index.Drop(meetingID)
		logging.From(ctx).Warn("embedding failed, collection will rebuild on next recall",
			"material_id", material.ID, "error", err)
		return material, nil
	}

	if err := uc.index.Append(meetingID, refs, vecs); err != nil {
		uc.index.Drop(meetingID)
		return material, nil
	}

	logging.From(ctx).Info("material ingested",
		"material_id", material.ID, "chunks", len(chunks))
	return material, nil
}
