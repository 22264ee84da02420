package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/repository"
	"github.com/fisiotrack/ward-api/pkg/auth"
	apperrors "github.com/fisiotrack/ward-api/pkg/errors"
	"github.com/fisiotrack/ward-api/pkg/security"
)

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	tokens auth.TokenService
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, tokens auth.TokenService) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login validates credentials and issues a session token. A missing account,
// an inactive account and a wrong password all produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.Status != model.UserStatusActive {
		return nil, apperrors.InvalidCredentials()
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		Token:              token,
		FullName:           user.FullName,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	}, nil
}

// ChangePassword verifies the old password and the confirmation, stores the
// new hash and clears the must-change flag.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, confirm string) error {
	if newPassword != confirm {
		return apperrors.Validation("new password and confirmation do not match")
	}
	if len(newPassword) < security.MinPasswordLen {
		return apperrors.Validation(fmt.Sprintf("password must be at least %d characters", security.MinPasswordLen))
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return apperrors.NotFound("user", nil)
	}

	if err := s.hasher.Compare(user.PasswordHash, oldPassword); err != nil {
		return apperrors.Validation("current password is incorrect")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	user.MustChangePassword = false
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
