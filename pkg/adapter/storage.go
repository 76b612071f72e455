package adapter

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
)

// Storage holds raw material text payloads. The document store keeps only
// material metadata; the text itself would blow past the Firestore
// document size limit for large uploads.
type Storage interface {
	// Put returns a writer to save a payload under key
	Put(ctx context.Context, key string) (io.WriteCloser, error)
	// Get loads a payload by key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// MaterialKey is the object key for a material's text payload
func MaterialKey(meetingID model.MeetingID, materialID model.MaterialID) string {
	return fmt.Sprintf("materials/%s/%s.txt", meetingID, materialID)
}

// storageClient implements Storage using Cloud Storage
type storageClient struct {
	bucketName string
	client     *storage.Client
}

// NewStorage creates a new Cloud Storage client
func NewStorage(ctx context.Context, bucketName string) (Storage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &storageClient{
		bucketName: bucketName,
		client:     client,
	}, nil
}

func (s *storageClient) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	return obj.NewWriter(ctx), nil
}

func (s *storageClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read from storage", goerr.Value("key", key))
	}

	return reader, nil
}
