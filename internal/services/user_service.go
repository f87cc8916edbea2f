package services

import (
	"notehub_backend/internal/repositories"
	"notehub_backend/internal/services/dto"
	"notehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	// Find returns the user's own record, password excluded.
	Find(db *gorm.DB, userID string) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) Find(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}
