package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fisiotrack/ward-api/internal/email"
	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/repository"
	apperrors "github.com/fisiotrack/ward-api/pkg/errors"
	"github.com/fisiotrack/ward-api/pkg/security"
)

type Service struct {
	users    repository.UserRepository
	hasher   security.PasswordHasher
	emailSvc email.Service
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, emailSvc email.Service) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		emailSvc: emailSvc,
	}
}

// CreateUser registers a staff account. New accounts must change their
// password on first login.
func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	taken, err := s.users.EmailInUse(ctx, req.Email, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, apperrors.EmailTaken(req.Email)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Base:               model.Base{ID: uuid.New()},
		FullName:           req.FullName,
		Email:              req.Email,
		PasswordHash:       hash,
		Role:               req.Role,
		Status:             model.UserStatusActive,
		MustChangePassword: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.emailSvc.SendAccountCreated(user.Email, user.FullName); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("account creation notice failed")
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user", nil)
	}
	return user, nil
}

// EditUser updates name, email and role. The email may not collide with a
// different account.
func (s *Service) EditUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.EmailInUse(ctx, req.Email, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, apperrors.EmailTaken(req.Email)
	}

	user.FullName = req.FullName
	user.Email = req.Email
	user.Role = req.Role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ResetPassword stores a new hash and re-arms the must-change flag. With an
// empty newPassword a one-time password is generated; the plaintext is
// returned to the caller once and never persisted or logged.
func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) (string, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return "", err
	}

	plaintext := newPassword
	if plaintext == "" {
		plaintext, err = security.GeneratePassword(security.GeneratedPasswordLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	user.MustChangePassword = true
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.emailSvc.SendPasswordReset(user.Email, user.FullName); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("password reset notice failed")
	}
	return plaintext, nil
}

// DeactivateUser disables an account. Administrators cannot deactivate
// themselves. Idempotent for already-inactive accounts.
func (s *Service) DeactivateUser(ctx context.Context, id, actorID uuid.UUID) error {
	if id == actorID {
		return apperrors.SelfDeactivation()
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	user.Status = model.UserStatusInactive
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

func (s *Service) ReactivateUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	user.Status = model.UserStatusActive
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to reactivate user: %w", err)
	}
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
