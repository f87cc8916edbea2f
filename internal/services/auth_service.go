package services

import (
	"notehub_backend/internal/auth"
	"notehub_backend/internal/email"
	"notehub_backend/internal/logger"
	"notehub_backend/internal/models"
	"notehub_backend/internal/repositories"
	"notehub_backend/internal/services/dto"
	"notehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) error
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenPair, error)

	// Refresh rotates: the presented refresh token is consumed and a fresh
	// pair is issued. Refresh tokens are single-use, not sliding-window.
	Refresh(db *gorm.DB, refreshToken string) (*dto.TokenPair, error)

	// Logout deletes the refresh token. A missing token is not an error.
	Logout(db *gorm.DB, refreshToken string) error

	VerifyEmail(db *gorm.DB, token string) error
	SendVerificationEmail(db *gorm.DB, userID string) error
	ChangePassword(db *gorm.DB, userID, oldPassword, newPassword string) error
	SendResetPasswordEmail(db *gorm.DB, emailAddr string) error
	ResetPassword(db *gorm.DB, token, newPassword string) error
}

type authServiceImpl struct {
	userRepo     repositories.UserRepository
	tokenService TokenService
	provider     email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, tokenService TokenService, provider email.Provider) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
		provider:     provider,
	}
}

// Signup creates an unverified user and mails a verification link. Unlike
// forgot-password this fails loudly on a duplicate email.
func (s *authServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	token, err := s.tokenService.IssueSingleUseToken(db, user.ID, models.TokenTypeVerifyEmail)
	if err != nil {
		return err
	}

	s.dispatchVerification(user.Email, token)
	return nil
}

func (s *authServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokenService.GenerateAuthTokenPair(db, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.TokenPair, error) {
	// Consume deletes the token in the same statement, so a replayed
	// token fails the lookup.
	userID, err := s.tokenService.ConsumeSingleUseToken(db, refreshToken, models.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, err := s.tokenService.GenerateAuthTokenPair(db, userID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (s *authServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	token, err := s.tokenService.FindToken(db, refreshToken, models.TokenTypeRefresh)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	if err := s.tokenService.DeleteToken(db, token.ID); err != nil {
		// A concurrent consumer may have deleted it already; the session
		// is gone either way.
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	userID, err := s.tokenService.ConsumeSingleUseToken(db, token, models.TokenTypeVerifyEmail)
	if err != nil {
		return err
	}

	if err := s.userRepo.MarkEmailVerified(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// SendVerificationEmail is a no-op for already-verified users; the handler
// returns the same message either way so verification state never leaks.
func (s *authServiceImpl) SendVerificationEmail(db *gorm.DB, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUnauthorized
		}
		return apperrors.InternalError(err)
	}

	if user.IsVerified() {
		return nil
	}

	token, err := s.tokenService.IssueSingleUseToken(db, user.ID, models.TokenTypeVerifyEmail)
	if err != nil {
		return err
	}

	s.dispatchVerification(user.Email, token)
	return nil
}

func (s *authServiceImpl) ChangePassword(db *gorm.DB, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(oldPassword, user.Password) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hashed); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// SendResetPasswordEmail never reveals whether the email exists: unknown
// addresses are silently ignored.
func (s *authServiceImpl) SendResetPasswordEmail(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := s.tokenService.IssueSingleUseToken(db, user.ID, models.TokenTypeResetPassword)
	if err != nil {
		return err
	}

	s.dispatchPasswordReset(user.Email, token)
	return nil
}

func (s *authServiceImpl) ResetPassword(db *gorm.DB, token, newPassword string) error {
	// Policy check comes first so a rejected password does not burn the
	// one-time token.
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	userID, err := s.tokenService.ConsumeSingleUseToken(db, token, models.TokenTypeResetPassword)
	if err != nil {
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hashed); err != nil {
		return apperrors.InternalError(err)
	}

	// Every live session is revoked once the password changes.
	if err := s.tokenService.RevokeUserTokens(db, userID, models.TokenTypeRefresh); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authServiceImpl) dispatchVerification(to, token string) {
	if s.provider == nil {
		return
	}
	go func() {
		if err := s.provider.SendVerification(to, token); err != nil {
			logger.Error("failed to send verification email", "error", err)
		}
	}()
}

func (s *authServiceImpl) dispatchPasswordReset(to, token string) {
	if s.provider == nil {
		return
	}
	go func() {
		if err := s.provider.SendPasswordReset(to, token); err != nil {
			logger.Error("failed to send password reset email", "error", err)
		}
	}()
}
