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
	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("experience entry not found")
	ErrEducationNotFound  = errors.New("education entry not found")
)

// ProfileService stores one profile per user. Every mutating operation is
// keyed by the owner's user id, so a caller can only ever touch its own
// profile; cross-user access is impossible by construction.
type ProfileService interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error)
	Delete(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error)
	AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error)
}

// MemoryProfileService hands out deep copies on reads and builds each
// mutation on a cloned aggregate, swapping it into the map only after the
// JSON snapshot is written. Profiles already returned to callers are never
// touched by later writes, and a failed persist rolls the mutation back.
type MemoryProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile // userID -> profile
	store    *storage.JSONStore
}

func NewMemoryProfileService(dataDir string) (*MemoryProfileService, error) {
	s := &MemoryProfileService{
		profiles: make(map[string]*models.Profile),
	}

	if dataDir != "" {
		store, err := storage.NewJSONStore(dataDir, "profiles.json")
		if err != nil {
			return nil, err
		}
		s.store = store

		var profiles []*models.Profile
		if err := store.Load(&profiles); err != nil {
			return nil, err
		}
		for _, p := range profiles {
			s.profiles[p.UserID] = p
		}
	}

	return s, nil
}

func cloneProfile(p *models.Profile) *models.Profile {
	copied := *p
	copied.Skills = append([]string(nil), p.Skills...)
	copied.Experience = append([]models.Experience(nil), p.Experience...)
	copied.Education = append([]models.Education(nil), p.Education...)
	return &copied
}

func (s *MemoryProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}
	return cloneProfile(profile), nil
}

func (s *MemoryProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryProfileService) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.profiles[userID]

	var updated *models.Profile
	if exists {
		updated = cloneProfile(current)
	} else {
		updated = &models.Profile{
			ID:         uuid.New().String(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
			CreatedAt:  time.Now(),
		}
	}

	updated.Company = req.Company
	updated.Website = req.Website
	updated.Location = req.Location
	updated.Status = req.Status
	updated.Skills = req.SkillList()
	updated.Bio = req.Bio
	updated.GithubUserName = req.GithubUserName
	updated.Social = models.SocialLinks{
		Youtube:   req.Youtube,
		Twitter:   req.Twitter,
		Facebook:  req.Facebook,
		Linkedin:  req.Linkedin,
		Instagram: req.Instagram,
	}
	s.profiles[userID] = updated

	if err := s.persist(); err != nil {
		if exists {
			s.profiles[userID] = current
		} else {
			delete(s.profiles, userID)
		}
		return nil, err
	}
	return cloneProfile(updated), nil
}

func (s *MemoryProfileService) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return ErrProfileNotFound
	}

	delete(s.profiles, userID)
	if err := s.persist(); err != nil {
		s.profiles[userID] = profile
		return err
	}
	return nil
}

func (s *MemoryProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	updated := cloneProfile(profile)
	updated.Experience = append(updated.Experience, models.Experience{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	return s.commit(userID, profile, updated)
}

func (s *MemoryProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	idx := -1
	for i, exp := range profile.Experience {
		if exp.ID == expID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrExperienceNotFound
	}

	updated := cloneProfile(profile)
	updated.Experience = append(updated.Experience[:idx], updated.Experience[idx+1:]...)
	return s.commit(userID, profile, updated)
}

func (s *MemoryProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	updated := cloneProfile(profile)
	updated.Education = append(updated.Education, models.Education{
		ID:           uuid.New().String(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	return s.commit(userID, profile, updated)
}

func (s *MemoryProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	idx := -1
	for i, edu := range profile.Education {
		if edu.ID == eduID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrEducationNotFound
	}

	updated := cloneProfile(profile)
	updated.Education = append(updated.Education[:idx], updated.Education[idx+1:]...)
	return s.commit(userID, profile, updated)
}

// commit swaps the updated aggregate in, persists, and rolls back to prev on
// failure. Called with the mutex held.
func (s *MemoryProfileService) commit(userID string, prev, updated *models.Profile) (*models.Profile, error) {
	s.profiles[userID] = updated
	if err := s.persist(); err != nil {
		s.profiles[userID] = prev
		return nil, err
	}
	return cloneProfile(updated), nil
}

// persist is called with the mutex held.
func (s *MemoryProfileService) persist() error {
	if s.store == nil {
		return nil
	}
	profiles := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	return s.store.Save(profiles)
}
