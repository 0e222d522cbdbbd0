package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
	"inkwell/internal/upload"
)

// ProfileService exposes the current user's profile operations.
type ProfileService interface {
	Get(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, id uint, fullName, email string, avatar *multipart.FileHeader) (*model.User, error)
}

type profileService struct {
	users   repository.UserRepository
	uploads *upload.Saver
}

// NewProfileService builds a ProfileService.
func NewProfileService(users repository.UserRepository, uploads *upload.Saver) ProfileService {
	return &profileService{users: users, uploads: uploads}
}

func (s *profileService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Update replaces the mutable profile fields. Username is immutable; an
// edit without a new avatar keeps the stored path. The avatar is written
// before the row, matching the post image ordering.
func (s *profileService) Update(ctx context.Context, id uint, fullName, email string, avatar *multipart.FileHeader) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	avatarPath, err := s.uploads.Store(avatar)
	if err != nil {
		return nil, err
	}
	if avatarPath != "" {
		user.AvatarPath = avatarPath
	}
	user.FullName = fullName
	user.Email = email

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
