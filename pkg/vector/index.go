package vector

import (
	"sync"

	"github.com/t-okano/brieflet/pkg/model"
)

// Index caches one Collection per meeting. Collections are disposable:
// when a meeting has no cached collection the recall service rebuilds it
// from the stored materials. The mutex guards only the map; the pipeline
// itself is single-writer per meeting and collections are not locked.
type Index struct {
	mu          sync.Mutex
	collections map[model.MeetingID]*Collection
}

func NewIndex() *Index {
	return &Index{collections: map[model.MeetingID]*Collection{}}
}

// Get returns the cached collection for the meeting, or nil
func (x *Index) Get(id model.MeetingID) *Collection {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.collections[id]
}

// Put replaces the meeting's cached collection
func (x *Index) Put(id model.MeetingID, c *Collection) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.collections[id] = c
}

// Append adds records to the meeting's live collection. When no collection
// is cached it does nothing: building a partial collection here would hide
// earlier materials, so the next recall rebuilds from scratch instead.
func (x *Index) Append(id model.MeetingID, refs []model.ChunkRef, vecs [][]float32) error {
	x.mu.Lock()
	c := x.collections[id]
	x.mu.Unlock()
	if c == nil {
		return nil
	}
	for i, ref := range refs {
		if err := c.Insert(ref, vecs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Drop discards the meeting's cached collection
func (x *Index) Drop(id model.MeetingID) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.collections, id)
}
