package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/spidevmax/craterra/internal/assets"
	"github.com/spidevmax/craterra/internal/cache"
	apperrors "github.com/spidevmax/craterra/internal/errors"
	"github.com/spidevmax/craterra/internal/model"
	"github.com/spidevmax/craterra/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfileUpdate carries the profile fields a user may edit directly. Role and
// password changes go through their own flows.
type ProfileUpdate struct {
	Name  string
	Email string
}

// UserService handles user profile and account operations.
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User, in ProfileUpdate) (*model.User, error)
	ChangePassword(ctx context.Context, user *model.User, current, newPassword, confirm string) error
	DeleteAccount(ctx context.Context, user *model.User) error
	List(ctx context.Context, limit, offset int) ([]model.User, int64, error)
}

type userService struct {
	users  repository.UserRepository
	albums repository.AlbumRepository
	assets assets.Store
	cache  *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, albums repository.AlbumRepository, store assets.Store, cacheClient *cache.Client) UserService {
	return &userService{
		users:  users,
		albums: albums,
		assets: store,
		cache:  cacheClient,
	}
}

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// GetByID retrieves a user with caching. This is the principal lookup on
// every authenticated request, so it is the hottest read in the system.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, userCacheKey(id), user, userCacheTTL)
	return user, nil
}

// UpdateProfile edits name and email. An email switch re-checks uniqueness.
func (s *userService) UpdateProfile(ctx context.Context, user *model.User, in ProfileUpdate) (*model.User, error) {
	if in.Email != "" && in.Email != user.Email {
		existing, err := s.users.FindByEmail(ctx, in.Email)
		if err == nil && existing != nil {
			return nil, apperrors.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = in.Email
	}
	if in.Name != "" {
		user.Name = in.Name
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.cache.Delete(ctx, userCacheKey(user.ID))
	return user, nil
}

// ChangePassword verifies the current password, checks the confirmation, and
// stores a fresh hash. Nothing is written when any check fails.
func (s *userService) ChangePassword(ctx context.Context, user *model.User, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return apperrors.ErrPasswordConfirmation
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.cache.Delete(ctx, userCacheKey(user.ID))
	return nil
}

// DeleteAccount removes the user, their albums, and, best-effort, every
// asset those records referenced. Tokens already issued stay structurally
// valid until expiry; the principal lookup is what locks them out.
func (s *userService) DeleteAccount(ctx context.Context, user *model.User) error {
	albums, err := s.albums.FindAllByOwner(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load albums: %w", err)
	}

	if err := s.albums.DeleteByOwner(ctx, user.ID); err != nil {
		return fmt.Errorf("delete albums: %w", err)
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	for _, album := range albums {
		deleteAssetQuietly(ctx, s.assets, album.CoverAssetID)
		s.cache.Delete(ctx, albumCacheKey(album.ID))
	}
	deleteAssetQuietly(ctx, s.assets, user.AvatarAssetID)
	s.cache.Delete(ctx, userCacheKey(user.ID))
	return nil
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	return s.users.List(ctx, limit, offset)
}
