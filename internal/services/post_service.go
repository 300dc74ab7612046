package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devconnector/backend/internal/models"
	"github.com/devconnector/backend/internal/storage"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not authorized to modify this post")
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotYetLiked  = errors.New("post not yet liked")
)

// PostService stores posts with their embedded like marks. A post holds at
// most one like per user; Like and Unlike return the updated like slice.
type PostService interface {
	Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, userID, postID string) error
	Like(ctx context.Context, postID, userID string) ([]models.Like, error)
	Unlike(ctx context.Context, postID, userID string) ([]models.Like, error)
}

// MemoryPostService keeps posts in a map guarded by one mutex and snapshots
// them to a JSON file after each mutation. Reads hand out deep copies and
// mutations replace the stored aggregate wholesale, so a post returned to a
// caller is never touched by later writes. The map is only updated once the
// file write succeeds; on persist failure the mutation is rolled back.
type MemoryPostService struct {
	mu    sync.RWMutex
	posts map[string]*models.Post // postID -> post
	store *storage.JSONStore
}

func NewMemoryPostService(dataDir string) (*MemoryPostService, error) {
	s := &MemoryPostService{
		posts: make(map[string]*models.Post),
	}

	if dataDir != "" {
		store, err := storage.NewJSONStore(dataDir, "posts.json")
		if err != nil {
			return nil, err
		}
		s.store = store

		var posts []*models.Post
		if err := store.Load(&posts); err != nil {
			return nil, err
		}
		for _, p := range posts {
			s.posts[p.ID] = p
		}
	}

	return s, nil
}

func clonePost(p *models.Post) *models.Post {
	copied := *p
	copied.Likes = append([]models.Like(nil), p.Likes...)
	return &copied
}

// Create snapshots the author's name and avatar onto the post; later changes
// to the user do not propagate.
func (s *MemoryPostService) Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := &models.Post{
		ID:        uuid.New().String(),
		UserID:    author.ID,
		Text:      req.Text,
		Name:      author.Name,
		AvatarURL: author.AvatarURL,
		Likes:     []models.Like{},
		CreatedAt: time.Now(),
	}
	s.posts[post.ID] = post

	if err := s.persist(); err != nil {
		delete(s.posts, post.ID)
		return nil, err
	}
	return clonePost(post), nil
}

func (s *MemoryPostService) List(ctx context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, ErrPostNotFound
	}
	return clonePost(post), nil
}

// Delete removes a post after checking the caller owns it.
func (s *MemoryPostService) Delete(ctx context.Context, userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}

	delete(s.posts, postID)
	if err := s.persist(); err != nil {
		s.posts[postID] = post
		return err
	}
	return nil
}

func (s *MemoryPostService) Like(ctx context.Context, postID, userID string) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			return nil, ErrAlreadyLiked
		}
	}

	updated := clonePost(post)
	updated.Likes = append(updated.Likes, models.Like{
		ID:     uuid.New().String(),
		UserID: userID,
	})
	s.posts[postID] = updated

	if err := s.persist(); err != nil {
		s.posts[postID] = post
		return nil, err
	}
	return append([]models.Like(nil), updated.Likes...), nil
}

func (s *MemoryPostService) Unlike(ctx context.Context, postID, userID string) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, ErrPostNotFound
	}

	idx := -1
	for i, like := range post.Likes {
		if like.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotYetLiked
	}

	updated := clonePost(post)
	updated.Likes = append(updated.Likes[:idx], updated.Likes[idx+1:]...)
	s.posts[postID] = updated

	if err := s.persist(); err != nil {
		s.posts[postID] = post
		return nil, err
	}
	return append([]models.Like(nil), updated.Likes...), nil
}

// persist is called with the mutex held.
func (s *MemoryPostService) persist() error {
	if s.store == nil {
		return nil
	}
	posts := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	return s.store.Save(posts)
}
