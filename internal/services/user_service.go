package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnector/backend/internal/models"
	"github.com/devconnector/backend/internal/storage"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
)

// UserService is the identity store. Passwords are stored only as bcrypt
// hashes; the avatar URL is derived from the email at registration time.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// MemoryUserService keeps users in maps guarded by one mutex and snapshots
// them to a JSON file after each mutation. Reads return copies, and a failed
// snapshot write rolls the mutation back so memory never diverges from the
// file.
type MemoryUserService struct {
	mu      sync.RWMutex
	users   map[string]*models.User // userID -> user
	byEmail map[string]string       // email -> userID
	store   *storage.JSONStore
}

// NewMemoryUserService loads any existing snapshot from dataDir. An empty
// dataDir disables persistence.
func NewMemoryUserService(dataDir string) (*MemoryUserService, error) {
	s := &MemoryUserService{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}

	if dataDir != "" {
		store, err := storage.NewJSONStore(dataDir, "users.json")
		if err != nil {
			return nil, err
		}
		s.store = store

		var users []*models.User
		if err := store.Load(&users); err != nil {
			return nil, err
		}
		for _, u := range users {
			s.users[u.ID] = u
			s.byEmail[u.Email] = u.ID
		}
	}

	return s, nil
}

func cloneUser(u *models.User) *models.User {
	copied := *u
	return &copied
}

func (s *MemoryUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[req.Email]; exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hashedPassword),
		AvatarURL:    GravatarURL(req.Email),
		CreatedAt:    time.Now(),
	}

	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID

	if err := s.persist(); err != nil {
		delete(s.users, user.ID)
		delete(s.byEmail, user.Email)
		return nil, err
	}
	return cloneUser(user), nil
}

func (s *MemoryUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byEmail[email]
	if !exists {
		return nil, ErrUserNotFound
	}

	user := s.users[userID]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return cloneUser(user), nil
}

func (s *MemoryUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *MemoryUserService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return ErrUserNotFound
	}

	delete(s.byEmail, user.Email)
	delete(s.users, id)

	if err := s.persist(); err != nil {
		s.users[id] = user
		s.byEmail[user.Email] = id
		return err
	}
	return nil
}

// persist is called with the mutex held.
func (s *MemoryUserService) persist() error {
	if s.store == nil {
		return nil
	}
	users := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return s.store.Save(users)
}
