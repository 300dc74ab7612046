package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devconnector/backend/internal/models"
)

func newPostService(t *testing.T) *MemoryPostService {
	t.Helper()
	s, err := NewMemoryPostService("")
	require.NoError(t, err)
	return s
}

func testAuthor(id string) *models.User {
	return &models.User{
		ID:        id,
		Name:      "Test Author",
		AvatarURL: "https://www.gravatar.com/avatar/x?s=200&r=pg&d=mm",
	}
}

func TestPostCreate_CapturesAuthorSnapshot(t *testing.T) {
	t.Parallel()
	s := newPostService(t)
	ctx := context.Background()

	author := testAuthor("u1")
	post, err := s.Create(ctx, author, &models.CreatePostRequest{Text: "hello"})
	require.NoError(t, err)
	require.Equal(t, "hello", post.Text)
	require.Equal(t, "u1", post.UserID)
	require.Equal(t, author.Name, post.Name)
	require.Equal(t, author.AvatarURL, post.AvatarURL)
	require.Empty(t, post.Likes)

	// Later changes to the user must not affect the stored post.
	author.Name = "Renamed"
	got, err := s.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "Test Author", got.Name)
}

func TestPostLike_SecondLikeConflicts(t *testing.T) {
	t.Parallel()
	s := newPostService(t)
	ctx := context.Background()

	post, err := s.Create(ctx, testAuthor("u1"), &models.CreatePostRequest{Text: "hi"})
	require.NoError(t, err)

	likes, err := s.Like(ctx, post.ID, "u1")
	require.NoError(t, err)
	require.Len(t, likes, 1)
	require.Equal(t, "u1", likes[0].UserID)

	_, err = s.Like(ctx, post.ID, "u1")
	require.ErrorIs(t, err, ErrAlreadyLiked)

	got, err := s.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Likes, 1)
}

func TestPostUnlike_NotYetLiked(t *testing.T) {
	t.Parallel()
	s := newPostService(t)
	ctx := context.Background()

	post, err := s.Create(ctx, testAuthor("u1"), &models.CreatePostRequest{Text: "hi"})
	require.NoError(t, err)

	_, err = s.Unlike(ctx, post.ID, "u2")
	require.ErrorIs(t, err, ErrNotYetLiked)
}

func TestPostLikeUnlike_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newPostService(t)
	ctx := context.Background()

	post, err := s.Create(ctx, testAuthor("u1"), &models.CreatePostRequest{Text: "hi"})
	require.NoError(t, err)

	_, err = s.Like(ctx, post.ID, "u2")
	require.NoError(t, err)

	likes, err := s.Unlike(ctx, post.ID, "u2")
	require.NoError(t, err)
	require.Empty(t, likes)
}

func TestPostUnlike_RemovesOnlyCallersLike(t *testing.T) {
	t.Parallel()
	s := newPostService(t)
	ctx := context.Background()

	post, err := s.Create(ctx, testAuthor("u1"), &models.CreatePostRequest{Text: "hi"})
	require.NoError(t, err)

	_, err = s.Like(ctx, post.ID, "u2")
	require.NoError(t, err)
	_, err = s.Like(ctx, post.ID, "u3")
	require.NoError(t, err)

	likes, err := s.Unlike(ctx, post.ID, "u2")
	require.NoError(t, err)
	require.Len(t, likes, 1)
	require.Equal(t, "u3", likes[0].UserID)
}

func TestPostDelete_OwnerOnly(t *testing.T) {
	t.Parallel()
	s := newPostService(t)
	ctx := context.Background()

	post, err := s.Create(ctx, testAuthor("u1"), &models.CreatePostRequest{Text: "mine"})
	require.NoError(t, err)

	err = s.Delete(ctx, "u2", post.ID)
	require.ErrorIs(t, err, ErrNotPostOwner)

	err = s.Delete(ctx, "u1", post.ID)
	require.NoError(t, err)

	_, err = s.GetByID(ctx, post.ID)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostList_NewestFirst(t *testing.T) {
	t.Parallel()
	s := newPostService(t)
	ctx := context.Background()

	first, err := s.Create(ctx, testAuthor("u1"), &models.CreatePostRequest{Text: "first"})
	require.NoError(t, err)
	second, err := s.Create(ctx, testAuthor("u1"), &models.CreatePostRequest{Text: "second"})
	require.NoError(t, err)

	// Force distinct timestamps without sleeping.
	s.mu.Lock()
	s.posts[second.ID].CreatedAt = s.posts[first.ID].CreatedAt.Add(1)
	s.mu.Unlock()

	posts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "second", posts[0].Text)
	require.Equal(t, "first", posts[1].Text)
}

func TestPostLike_MissingPost(t *testing.T) {
	t.Parallel()
	s := newPostService(t)
	ctx := context.Background()

	_, err := s.Like(ctx, "no-such-post", "u1")
	require.ErrorIs(t, err, ErrPostNotFound)

	_, err = s.Unlike(ctx, "no-such-post", "u1")
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostSnapshot_UnaffectedByLaterMutations(t *testing.T) {
	t.Parallel()
	s := newPostService(t)
	ctx := context.Background()

	post, err := s.Create(ctx, testAuthor("u1"), &models.CreatePostRequest{Text: "hi"})
	require.NoError(t, err)
	_, err = s.Like(ctx, post.ID, "u2")
	require.NoError(t, err)
	_, err = s.Like(ctx, post.ID, "u3")
	require.NoError(t, err)

	snapshot, err := s.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, snapshot.Likes, 2)

	_, err = s.Unlike(ctx, post.ID, "u2")
	require.NoError(t, err)

	// The earlier snapshot must not see the removal shift.
	require.Len(t, snapshot.Likes, 2)
	require.Equal(t, "u2", snapshot.Likes[0].UserID)
	require.Equal(t, "u3", snapshot.Likes[1].UserID)

	// Nor may a caller mutate store state through a snapshot.
	snapshot.Likes[0].UserID = "tampered"
	got, err := s.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "u3", got.Likes[0].UserID)
}

func TestPostLike_PersistFailureRollsBack(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "data")
	s, err := NewMemoryPostService(dir)
	require.NoError(t, err)
	ctx := context.Background()

	post, err := s.Create(ctx, testAuthor("u1"), &models.CreatePostRequest{Text: "hi"})
	require.NoError(t, err)

	// Removing the data directory makes the snapshot write fail.
	require.NoError(t, os.RemoveAll(dir))

	_, err = s.Like(ctx, post.ID, "u2")
	require.Error(t, err)

	got, err := s.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Empty(t, got.Likes)

	// Once the directory is back the same like goes through.
	require.NoError(t, os.MkdirAll(dir, 0755))
	likes, err := s.Like(ctx, post.ID, "u2")
	require.NoError(t, err)
	require.Len(t, likes, 1)
}
