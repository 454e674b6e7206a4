package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/league-platform/models"
	"github.com/Dosada05/league-platform/repositories"
	"github.com/Dosada05/league-platform/storage"
)

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	UploadAvatar(ctx context.Context, userID int, contentType string, file io.Reader) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID int, contentType string, file io.Reader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, ErrValidationFailed
	}

	key := fmt.Sprintf("avatars/%d%s", userID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	// Старый файл с другим расширением не должен остаться публичным.
	if user.AvatarKey != nil && *user.AvatarKey != key {
		_ = s.uploader.Delete(ctx, *user.AvatarKey)
	}

	if err := s.userRepo.UpdateAvatarKey(ctx, userID, &key); err != nil {
		return nil, err
	}

	user.AvatarKey = &key
	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) populateAvatarURL(user *models.User) {
	if user == nil || user.AvatarKey == nil || *user.AvatarKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*user.AvatarKey); url != "" {
		user.AvatarURL = &url
	}
}
