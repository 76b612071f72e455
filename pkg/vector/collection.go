package vector

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
)

// Dimension is the embedding width used across the pipeline. Every vector
// in a collection must match it.
const Dimension = 384

var ErrDimensionMismatch = goerr.New("vector dimension mismatch")

// Hit is one search result: a chunk identity with its inner-product score
type Hit struct {
	Ref   model.ChunkRef
	Score float32
}

// Collection is a per-meeting index of (chunk ref, vector) pairs searched
// by brute-force inner product. Vectors are unit-normalized upstream so
// inner product approximates cosine similarity. The collection is a
// derived cache: it is rebuildable from the meeting's materials at any
// time and holds no durable state.
type Collection struct {
	dim  int
	refs []model.ChunkRef
	vecs [][]float32
}

func NewCollection(dim int) *Collection {
	if dim <= 0 {
		dim = Dimension
	}
	return &Collection{dim: dim}
}

// Insert appends a record. Duplicate refs are not deduplicated; avoiding
// duplicates is the caller's responsibility.
func (c *Collection) Insert(ref model.ChunkRef, vec []float32) error {
	if len(vec) != c.dim {
		return goerr.Wrap(ErrDimensionMismatch, "insert rejected",
			goerr.V("want", c.dim), goerr.V("got", len(vec)))
	}
	c.refs = append(c.refs, ref)
	c.vecs = append(c.vecs, vec)
	return nil
}

// Search returns the k entries with the highest inner product against
// query, descending by score with ties broken by insertion order. If the
// collection holds fewer than k entries all of them are returned.
func (c *Collection) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != c.dim {
		return nil, goerr.Wrap(ErrDimensionMismatch, "search rejected",
			goerr.V("want", c.dim), goerr.V("got", len(query)))
	}
	if k <= 0 {
		return nil, nil
	}

	hits := make([]Hit, len(c.refs))
	for i, vec := range c.vecs {
		hits[i] = Hit{Ref: c.refs[i], Score: dot(query, vec)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Refs returns chunk identities in insertion order. Used as the
// representative fallback when there is no query to embed.
func (c *Collection) Refs() []model.ChunkRef {
	return c.refs
}

func (c *Collection) Len() int {
	return len(c.refs)
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
