package ingest_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/t-okano/brieflet/pkg/adapter"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/repository"
	"github.com/t-okano/brieflet/pkg/usecase/ingest"
	"github.com/t-okano/brieflet/pkg/vector"
)

// mockGenAI is a mock implementation of adapter.GenAI for testing
type mockGenAI struct {
	embedErr error
}

func (m *mockGenAI) Generate(ctx context.Context, req *adapter.GenerateRequest) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockGenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	vecs := make([][]float32, len(texts))
	for i := range vecs {
		vecs[i] = []float32{1, 0}
	}
	return vecs, nil
}

func newMeeting(t *testing.T, repo repository.Repository) model.MeetingID {
	t.Helper()
	meeting := &model.Meeting{
		ID:        model.NewMeetingID(),
		Title:     "Weekly Sync",
		CreatedAt: time.Now(),
	}
	gt.NoError(t, repo.PutMeeting(context.Background(), meeting))
	return meeting.ID
}

func TestIngest(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	storage := adapter.NewMemoryStorage()
	meetingID := newMeeting(t, repo)

	uc := ingest.New(repo, storage, &mockGenAI{}, adapter.NewTextExtractor(), vector.NewIndex())

	result, err := uc.Ingest(ctx, meetingID, []ingest.Input{
		{Name: "notes.txt", Format: "txt", Origin: model.OriginUpload,
			Data: []byte("The roadmap was approved. Next review is in October.")},
		{Name: "pasted", Format: "paste", Origin: model.OriginPaste,
			Data: []byte("Follow up with the vendor.")},
	})
	gt.NoError(t, err)
	gt.A(t, result.Materials).Length(2)
	gt.A(t, result.Failed).Length(0)

	first := result.Materials[0]
	gt.Equal(t, first.Name, "notes.txt")
	gt.Equal(t, first.Origin, model.OriginUpload)
	gt.Equal(t, first.MeetingID, meetingID)
	gt.Equal(t, first.CharCount, len("The roadmap was approved. Next review is in October."))

	// Metadata is persisted and the payload landed in storage
	stored, err := repo.GetMaterial(ctx, first.ID)
	gt.NoError(t, err)
	gt.Equal(t, stored.Name, "notes.txt")

	r, err := storage.Get(ctx, adapter.MaterialKey(meetingID, first.ID))
	gt.NoError(t, err)
	payload, err := io.ReadAll(r)
	gt.NoError(t, err)
	gt.NoError(t, r.Close())
	gt.Equal(t, string(payload), "The roadmap was approved. Next review is in October.")
}

func TestIngestPartialSuccess(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	storage := adapter.NewMemoryStorage()
	meetingID := newMeeting(t, repo)

	uc := ingest.New(repo, storage, &mockGenAI{}, adapter.NewTextExtractor(), vector.NewIndex())

	result, err := uc.Ingest(ctx, meetingID, []ingest.Input{
		{Name: "deck.pdf", Format: "pdf", Origin: model.OriginUpload, Data: []byte("%PDF-1.4")},
		{Name: "notes.txt", Format: "txt", Origin: model.OriginUpload, Data: []byte("Valid notes.")},
		{Name: "empty.txt", Format: "txt", Origin: model.OriginUpload, Data: []byte("   ")},
	})
	gt.NoError(t, err)

	// Failed items are reported without aborting the rest of the batch
	gt.A(t, result.Materials).Length(1)
	gt.Equal(t, result.Materials[0].Name, "notes.txt")
	gt.A(t, result.Failed).Length(2)
	gt.Equal(t, result.Failed[0].Name, "deck.pdf")
	gt.Equal(t, result.Failed[1].Name, "empty.txt")

	materials, err := repo.ListMaterials(ctx, meetingID)
	gt.NoError(t, err)
	gt.A(t, materials).Length(1)
}

func TestIngestUnknownMeeting(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	uc := ingest.New(repo, adapter.NewMemoryStorage(), &mockGenAI{},
		adapter.NewTextExtractor(), vector.NewIndex())

	_, err := uc.Ingest(ctx, model.MeetingID("no-such-meeting"), []ingest.Input{
		{Name: "notes.txt", Format: "txt", Origin: model.OriginUpload, Data: []byte("text")},
	})
	gt.Error(t, err)
	gt.V(t, errors.Is(err, model.ErrMeetingNotFound)).Equal(true)
}

func TestIngestEmbeddingFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	storage := adapter.NewMemoryStorage()
	meetingID := newMeeting(t, repo)

	index := vector.NewIndex()
	index.Put(meetingID, vector.NewCollection(2))

	uc := ingest.New(repo, storage, &mockGenAI{embedErr: errors.New("backend down")},
		adapter.NewTextExtractor(), index)

	result, err := uc.Ingest(ctx, meetingID, []ingest.Input{
		{Name: "notes.txt", Format: "txt", Origin: model.OriginUpload, Data: []byte("Valid notes.")},
	})
	gt.NoError(t, err)
	gt.A(t, result.Materials).Length(1)
	gt.A(t, result.Failed).Length(0)

	// The stale collection is dropped so the next recall rebuilds it
	gt.V(t, index.Get(meetingID)).Nil()
}

func TestIngestAppendsToLiveCollection(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	storage := adapter.NewMemoryStorage()
	meetingID := newMeeting(t, repo)

	index := vector.NewIndex()
	index.Put(meetingID, vector.NewCollection(2))

	uc := ingest.New(repo, storage, &mockGenAI{}, adapter.NewTextExtractor(), index)

	result, err := uc.Ingest(ctx, meetingID, []ingest.Input{
		{Name: "notes.txt", Format: "txt", Origin: model.OriginUpload, Data: []byte("Valid notes.")},
	})
	gt.NoError(t, err)
	gt.A(t, result.Materials).Length(1)
	gt.Equal(t, index.Get(meetingID).Len(), 1)
}
