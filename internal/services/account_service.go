package services

import (
	"context"
	"time"
)

// AccountService removes a user and their profile in one call.
type AccountService struct {
	users    UserService
	profiles ProfileService
}

func NewAccountService(users UserService, profiles ProfileService) *AccountService {
	return &AccountService{users: users, profiles: profiles}
}

// Delete removes the profile (if any) and then the user. The user's posts are
// intentionally left in place; each post carries the author's name and avatar
// from creation time, so orphaned posts stay renderable.
func (s *AccountService) Delete(ctx context.Context, userID string) error {
	if err := s.profiles.Delete(ctx, userID); err != nil && err != ErrProfileNotFound {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil && err != ErrUserNotFound {
		return err
	}
	return nil
}

// DefaultAccountTimeout bounds the deletion cascade.
func DefaultAccountTimeout() time.Duration { return 20 * time.Second }
