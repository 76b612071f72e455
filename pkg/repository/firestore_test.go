package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/t-okano/brieflet/pkg/model"
	"github.com/t-okano/brieflet/pkg/repository"
)

func setupFirestore(t *testing.T) *repository.Firestore {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	if projectID == "" || databaseID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID and TEST_FIRESTORE_DATABASE_ID must be set to run Firestore tests")
	}

	repo, err := repository.New(context.Background(), projectID, databaseID)
	gt.NoError(t, err)
	return repo
}

func TestFirestoreMeetingRoundTrip(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	meeting := &model.Meeting{
		ID:        model.NewMeetingID(),
		Title:     "Firestore Test Meeting",
		Date:      "2026-08-28",
		Attendees: "dana, kim",
		Tags:      "test",
		CreatedAt: time.Now(),
	}
	gt.NoError(t, repo.PutMeeting(ctx, meeting))

	retrieved, err := repo.GetMeeting(ctx, meeting.ID)
	gt.NoError(t, err)
	gt.Equal(t, retrieved.ID, meeting.ID)
	gt.Equal(t, retrieved.Title, meeting.Title)
	gt.Equal(t, retrieved.Attendees, meeting.Attendees)
}

func TestFirestoreMeetingNotFound(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	_, err := repo.GetMeeting(ctx, model.MeetingID("non-existent-meeting"))
	gt.Error(t, err)
}

func TestFirestoreFindMeetingsByTitle(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	title := "Title Match " + string(model.NewMeetingID())
	meeting := &model.Meeting{
		ID:        model.NewMeetingID(),
		Title:     title,
		CreatedAt: time.Now(),
	}
	gt.NoError(t, repo.PutMeeting(ctx, meeting))

	matched, err := repo.FindMeetingsByTitle(ctx, title)
	gt.NoError(t, err)
	gt.A(t, matched).Longer(0)
	gt.Equal(t, matched[0].Title, title)
}

func TestFirestoreMaterialRoundTrip(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	meetingID := model.NewMeetingID()
	material := &model.Material{
		ID:        model.NewMaterialID(),
		MeetingID: meetingID,
		Name:      "notes.txt",
		Origin:    model.OriginUpload,
		CharCount: 42,
		CreatedAt: time.Now(),
		Text:      "this must not be stored in firestore",
	}
	gt.NoError(t, repo.PutMaterial(ctx, material))

	retrieved, err := repo.GetMaterial(ctx, material.ID)
	gt.NoError(t, err)
	gt.Equal(t, retrieved.Name, material.Name)
	gt.Equal(t, retrieved.CharCount, 42)
	gt.Equal(t, retrieved.Text, "")

	gt.NoError(t, repo.DeleteMaterial(ctx, material.ID))
	_, err = repo.GetMaterial(ctx, material.ID)
	gt.Error(t, err)
}

func TestFirestoreBriefVersions(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	meetingID := model.NewMeetingID()
	now := time.Now()

	for i, recap := range []string{"First version.", "Second version."} {
		b := &model.Brief{
			ID:           model.NewBriefID(),
			MeetingID:    meetingID,
			Provider:     "gemini",
			MeetingTitle: "Version Test",
			Recap:        recap,
			CreatedAt:    now.Add(time.Duration(i) * time.Second),
		}
		b.Normalize()
		gt.NoError(t, repo.PutBrief(ctx, b))
	}

	briefs, err := repo.ListBriefs(ctx, meetingID)
	gt.NoError(t, err)
	gt.A(t, briefs).Length(2)
	gt.Equal(t, briefs[0].Recap, "Second version.")

	latest, err := repo.GetLatestBrief(ctx, meetingID)
	gt.NoError(t, err)
	gt.V(t, latest).NotNil()
	gt.Equal(t, latest.Recap, "Second version.")
}
