package recall

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/adapter"
	"github.com/t-okano/brieflet/pkg/chunk"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/repository"
	"github.com/t-okano/brieflet/pkg/utils/logging"
	"github.com/t-okano/brieflet/pkg/vector"
)

const (
	// BriefTopK is used for brief generation, AskTopK for question
	// answering
	BriefTopK = 8
	AskTopK   = 5
)

// Engine retrieves grounded evidence for a meeting. The vector collection
// behind a meeting is a derived cache: when it is missing or stale the
// engine rebuilds it by re-chunking and re-embedding the stored materials.
type Engine struct {
	repo    repository.Repository
	storage adapter.Storage
	ai      adapter.GenAI
	index   *vector.Index

	maxLen  int
	overlap int
}

// Option is a functional option for Engine
type Option func(*Engine)

// WithChunkParams overrides the default chunking window
func WithChunkParams(maxLen, overlap int) Option {
	return func(e *Engine) {
		e.maxLen = maxLen
		e.overlap = overlap
	}
}

func New(repo repository.Repository, storage adapter.Storage, ai adapter.GenAI, index *vector.Index, opts ...Option) *Engine {
	e := &Engine{
		repo:    repo,
		storage: storage,
		ai:      ai,
		index:   index,
		maxLen:  chunk.DefaultMaxLen,
		overlap: chunk.DefaultOverlap,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Recall embeds the query, searches the meeting's collection and resolves
// the top-k hits into citation-tagged evidence. An empty query falls back
// to the first k chunks in insertion order with score 0, which is how
// brief generation retrieves without a natural question. A meeting with
// no indexable material yields an empty result and a logged warning, not
// an error.
func (e *Engine) Recall(ctx context.Context, meetingID model.MeetingID, query string, k int) ([]model.Evidence, error) {
	materials, err := e.loadMaterials(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	chunked := map[model.MaterialID][]model.Chunk{}
	total := 0
	for _, m := range materials {
		chunks := chunk.Split(m.Text, e.maxLen, e.overlap, m.ID)
		chunked[m.ID] = chunks
		total += len(chunks)
	}

	if total == 0 {
		logging.From(ctx).Warn("no indexable chunks for meeting, proceeding with empty evidence",
			"meeting_id", meetingID)
		return nil, nil
	}

	collection := e.index.Get(meetingID)
	if collection == nil || collection.Len() != total {
		collection, err = e.rebuild(ctx, materials, chunked, total)
		if err != nil {
			return nil, err
		}
		e.index.Put(meetingID, collection)
	}

	var hits []vector.Hit
	if query == "" {
		refs := collection.Refs()
		if k > len(refs) {
			k = len(refs)
		}
		for _, ref := range refs[:k] {
			hits = append(hits, vector.Hit{Ref: ref})
		}
	} else {
		vecs, err := e.ai.Embed(ctx, []string{query})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to embed query")
		}
		hits, err = collection.Search(vecs[0], k)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to search collection")
		}
	}

	var evidence []model.Evidence
	for _, hit := range hits {
		chunks := chunked[hit.Ref.MaterialID]
		if hit.Ref.Index >= len(chunks) {
			continue
		}
		evidence = append(evidence, model.Evidence{
			Source:  hit.Ref.Citation(),
			Snippet: chunks[hit.Ref.Index].Text,
			Score:   hit.Score,
		})
	}
	return evidence, nil
}

// rebuild re-embeds every chunk and constructs a fresh collection
func (e *Engine) rebuild(ctx context.Context, materials []*model.Material, chunked map[model.MaterialID][]model.Chunk, total int) (*vector.Collection, error) {
	texts := make([]string, 0, total)
	refs := make([]model.ChunkRef, 0, total)
	for _, m := range materials {
		for _, c := range chunked[m.ID] {
			texts = append(texts, c.Text)
			refs = append(refs, c.Ref())
		}
	}

	vecs, err := e.ai.Embed(ctx, texts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed chunks")
	}
	if len(vecs) != len(texts) {
		return nil, goerr.New("embedding count mismatch",
			goerr.V("want", len(texts)), goerr.V("got", len(vecs)))
	}

	collection := vector.NewCollection(len(vecs[0]))
	for i, ref := range refs {
		if err := collection.Insert(ref, vecs[i]); err != nil {
			return nil, err
		}
	}

	logging.From(ctx).Debug("rebuilt vector collection",
		"chunks", total, "materials", len(materials))
	return collection, nil
}

// loadMaterials fetches material metadata and resolves text payloads from
// storage. A material whose payload cannot be loaded is skipped with a
// warning so one broken object does not block recall.
func (e *Engine) loadMaterials(ctx context.Context, meetingID model.MeetingID) ([]*model.Material, error) {
	materials, err := e.repo.ListMaterials(ctx, meetingID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list materials", goerr.V("meeting_id", meetingID))
	}

	var loaded []*model.Material
	for _, m := range materials {
		reader, err := e.storage.Get(ctx, adapter.MaterialKey(meetingID, m.ID))
		if err != nil {
			logging.From(ctx).Warn("failed to load material payload, skipping",
				"material_id", m.ID, "error", err)
			continue
		}
		data, err := io.ReadAll(reader)
		_ = reader.Close()
		if err != nil {
			logging.From(ctx).Warn("failed to read material payload, skipping",
				"material_id", m.ID, "error", err)
			continue
		}
		m.Text = string(data)
		loaded = append(loaded, m)
	}
	return loaded, nil
}

// FormatBlocks renders evidence as the context block passed verbatim to
// the generative backend. Snippets are grouped per material with each
// entry prefixed by its citation.
func FormatBlocks(evidence []model.Evidence) string {
	if len(evidence) == 0 {
		return "No context retrieved."
	}

	var b strings.Builder
	var current string
	for _, ev := range evidence {
		materialID := ev.Source
		if i := strings.LastIndex(ev.Source, "#c"); i >= 0 {
			materialID = ev.Source[:i]
		}
		if materialID != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = materialID
			fmt.Fprintf(&b, "=== Material: %s ===\n", materialID)
		}
		fmt.Fprintf(&b, "[%s] (score %.3f)\n%s\n---\n", ev.Source, ev.Score, ev.Snippet)
	}
	return b.String()
}
