package adapter

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// MemoryStorage keeps payloads in process memory for tests.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: map[string][]byte{}}
}

type memoryWriter struct {
	buf   bytes.Buffer
	key   string
	store *MemoryStorage
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	w.store.objects[w.key] = w.buf.Bytes()
	return nil
}

func (s *MemoryStorage) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	return &memoryWriter{key: key, store: s}, nil
}

func (s *MemoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, goerr.New("object not found", goerr.Value("key", key))
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
