package model

import "fmt"

// Chunk is a derived, non-persisted segment of a Material. Chunks are
// recomputed on demand; (MaterialID, Index) addresses a chunk and the
// offsets re-slice the owning material's text.
type Chunk struct {
	MaterialID MaterialID
	Index      int
	Start      int
	End        int
	Text       string
}

// Ref returns the chunk's identity without its text
func (c *Chunk) Ref() ChunkRef {
	return ChunkRef{MaterialID: c.MaterialID, Index: c.Index}
}

// ChunkRef identifies a chunk inside a vector collection
type ChunkRef struct {
	MaterialID MaterialID
	Index      int
}

// Citation renders the ref in the material_id#c{chunk_index} form
func (r ChunkRef) Citation() string {
	return fmt.Sprintf("%s#c%d", r.MaterialID, r.Index)
}

// Evidence is a retrieval hit used to ground generation. Score is a
// runtime similarity value and is not part of the exported brief shape.
type Evidence struct {
	Source  string  `json:"source"`
	Snippet string  `json:"snippet"`
	Score   float32 `json:"-"`
}
