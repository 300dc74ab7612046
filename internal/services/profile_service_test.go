package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devconnector/backend/internal/models"
)

func newProfileService(t *testing.T) *MemoryProfileService {
	t.Helper()
	s, err := NewMemoryProfileService("")
	require.NoError(t, err)
	return s
}

func seedProfile(t *testing.T, s *MemoryProfileService, userID string) *models.Profile {
	t.Helper()
	profile, err := s.Upsert(context.Background(), userID, &models.UpsertProfileRequest{
		Status: "Developer",
		Skills: "Go, MongoDB",
	})
	require.NoError(t, err)
	return profile
}

func expRequest(title string) *models.ExperienceRequest {
	return &models.ExperienceRequest{
		Title:   title,
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestProfileUpsert_CreateThenUpdate(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)
	ctx := context.Background()

	profile, err := s.Upsert(ctx, "u1", &models.UpsertProfileRequest{
		Status:  "Developer",
		Skills:  " Go , MongoDB ,,React",
		Twitter: "https://twitter.com/u1",
	})
	require.NoError(t, err)
	require.Equal(t, "u1", profile.UserID)
	require.Equal(t, []string{"Go", "MongoDB", "React"}, profile.Skills)
	require.Equal(t, "https://twitter.com/u1", profile.Social.Twitter)
	require.NotEmpty(t, profile.ID)

	updated, err := s.Upsert(ctx, "u1", &models.UpsertProfileRequest{
		Status: "Senior Developer",
		Skills: "Go",
	})
	require.NoError(t, err)
	require.Equal(t, profile.ID, updated.ID)
	require.Equal(t, "Senior Developer", updated.Status)
	require.Equal(t, []string{"Go"}, updated.Skills)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestProfileGetByUserID_Missing(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)

	_, err := s.GetByUserID(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAddExperience_AppendsWithFreshID(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)
	ctx := context.Background()
	seedProfile(t, s, "u1")

	profile, err := s.AddExperience(ctx, "u1", expRequest("First"))
	require.NoError(t, err)
	require.Len(t, profile.Experience, 1)

	profile, err = s.AddExperience(ctx, "u1", expRequest("Second"))
	require.NoError(t, err)
	require.Len(t, profile.Experience, 2)

	// Prior order preserved, new entry at the end, ids distinct.
	require.Equal(t, "First", profile.Experience[0].Title)
	require.Equal(t, "Second", profile.Experience[1].Title)
	require.NotEmpty(t, profile.Experience[0].ID)
	require.NotEqual(t, profile.Experience[0].ID, profile.Experience[1].ID)
}

func TestRemoveExperience_ByID(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)
	ctx := context.Background()
	seedProfile(t, s, "u1")

	profile, err := s.AddExperience(ctx, "u1", expRequest("First"))
	require.NoError(t, err)
	profile, err = s.AddExperience(ctx, "u1", expRequest("Second"))
	require.NoError(t, err)

	target := profile.Experience[0].ID
	profile, err = s.RemoveExperience(ctx, "u1", target)
	require.NoError(t, err)
	require.Len(t, profile.Experience, 1)
	require.Equal(t, "Second", profile.Experience[0].Title)
}

func TestRemoveExperience_UnknownIDLeavesSequenceUnchanged(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)
	ctx := context.Background()
	seedProfile(t, s, "u1")

	_, err := s.AddExperience(ctx, "u1", expRequest("Only"))
	require.NoError(t, err)

	_, err = s.RemoveExperience(ctx, "u1", "no-such-id")
	require.ErrorIs(t, err, ErrExperienceNotFound)

	profile, err := s.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, profile.Experience, 1)
	require.Equal(t, "Only", profile.Experience[0].Title)
}

func TestEducation_AppendAndRemove(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)
	ctx := context.Background()
	seedProfile(t, s, "u1")

	req := &models.EducationRequest{
		School:       "State University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	profile, err := s.AddEducation(ctx, "u1", req)
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)
	require.NotEmpty(t, profile.Education[0].ID)

	_, err = s.RemoveEducation(ctx, "u1", "bogus")
	require.ErrorIs(t, err, ErrEducationNotFound)

	profile, err = s.RemoveEducation(ctx, "u1", profile.Education[0].ID)
	require.NoError(t, err)
	require.Empty(t, profile.Education)
}

func TestSubCollectionEdits_RequireOwnProfile(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)
	ctx := context.Background()

	// Mutations are keyed by the caller's own user id, so a caller without a
	// profile cannot touch anyone else's.
	seedProfile(t, s, "owner")
	_, err := s.AddExperience(ctx, "intruder", expRequest("X"))
	require.ErrorIs(t, err, ErrProfileNotFound)

	profile, err := s.GetByUserID(ctx, "owner")
	require.NoError(t, err)
	require.Empty(t, profile.Experience)
}

func TestProfileSnapshot_UnaffectedByLaterMutations(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)
	ctx := context.Background()
	seedProfile(t, s, "u1")

	_, err := s.AddExperience(ctx, "u1", expRequest("First"))
	require.NoError(t, err)
	_, err = s.AddExperience(ctx, "u1", expRequest("Second"))
	require.NoError(t, err)

	snapshot, err := s.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, snapshot.Experience, 2)

	_, err = s.RemoveExperience(ctx, "u1", snapshot.Experience[0].ID)
	require.NoError(t, err)

	// The earlier snapshot must not see the removal shift.
	require.Len(t, snapshot.Experience, 2)
	require.Equal(t, "First", snapshot.Experience[0].Title)
	require.Equal(t, "Second", snapshot.Experience[1].Title)

	// Nor may a caller mutate store state through a snapshot.
	snapshot.Experience[1].Title = "tampered"
	got, err := s.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Second", got.Experience[0].Title)
}

func TestAddExperience_PersistFailureRollsBack(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "data")
	s, err := NewMemoryProfileService(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Upsert(ctx, "u1", &models.UpsertProfileRequest{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	// Removing the data directory makes the snapshot write fail.
	require.NoError(t, os.RemoveAll(dir))

	_, err = s.AddExperience(ctx, "u1", expRequest("Lost"))
	require.Error(t, err)

	profile, err := s.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, profile.Experience)
}
