package user

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisiotrack/ward-api/internal/config"
	"github.com/fisiotrack/ward-api/internal/email"
	"github.com/fisiotrack/ward-api/internal/model"
	apperrors "github.com/fisiotrack/ward-api/pkg/errors"
	"github.com/fisiotrack/ward-api/pkg/security"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) EmailInUse(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(repo *fakeUserRepo) *Service {
	return NewService(repo, security.NewBcryptHasher(4), email.NewService(config.SMTPConfig{}))
}

func createRequest(name, addr string) *model.CreateUserRequest {
	return &model.CreateUserRequest{
		FullName: name,
		Email:    addr,
		Password: "initial-pass",
		Role:     model.RoleStaff,
	}
}

func TestCreateUserRearmsMustChange(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	u, err := svc.CreateUser(context.Background(), createRequest("Ana Souza", "ana@fisio.local"))
	require.NoError(t, err)
	assert.True(t, u.MustChangePassword)
	assert.Equal(t, model.UserStatusActive, u.Status)
	assert.NotEqual(t, "initial-pass", u.PasswordHash)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, createRequest("Ana Souza", "ana@fisio.local"))
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, createRequest("Outra Ana", "ana@fisio.local"))
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailTaken))
}

func TestEditUserEmailCollision(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, createRequest("Ana Souza", "ana@fisio.local"))
	require.NoError(t, err)
	u2, err := svc.CreateUser(ctx, createRequest("Bia Costa", "bia@fisio.local"))
	require.NoError(t, err)

	_, err = svc.EditUser(ctx, u2.ID, &model.UpdateUserRequest{
		FullName: "Bia Costa",
		Email:    "ana@fisio.local",
		Role:     model.RoleStaff,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailTaken))
}

func TestEditUserKeepsOwnEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, createRequest("Ana Souza", "ana@fisio.local"))
	require.NoError(t, err)

	edited, err := svc.EditUser(ctx, u.ID, &model.UpdateUserRequest{
		FullName: "Ana S. Souza",
		Email:    "ana@fisio.local",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana S. Souza", edited.FullName)
	assert.Equal(t, model.RoleAdmin, edited.Role)
}

func TestResetPasswordGeneratesWhenEmpty(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, createRequest("Ana Souza", "ana@fisio.local"))
	require.NoError(t, err)

	plaintext, err := svc.ResetPassword(ctx, u.ID, "")
	require.NoError(t, err)
	assert.Len(t, plaintext, security.GeneratedPasswordLen)

	stored, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.MustChangePassword)
	assert.NotContains(t, stored.PasswordHash, plaintext)
	assert.NoError(t, security.NewBcryptHasher(4).Compare(stored.PasswordHash, plaintext))
}

func TestResetPasswordExplicit(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, createRequest("Ana Souza", "ana@fisio.local"))
	require.NoError(t, err)

	plaintext, err := svc.ResetPassword(ctx, u.ID, "chosen-by-admin")
	require.NoError(t, err)
	assert.Equal(t, "chosen-by-admin", plaintext)

	stored, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.MustChangePassword)
}

func TestDeactivateUserRejectsSelf(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, createRequest("Ana Souza", "ana@fisio.local"))
	require.NoError(t, err)

	err = svc.DeactivateUser(ctx, u.ID, u.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrSelfDeactivation))
}

func TestDeactivateAndReactivateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, createRequest("Ana Souza", "ana@fisio.local"))
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(ctx, u.ID, uuid.New()))
	stored, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusInactive, stored.Status)

	require.NoError(t, svc.ReactivateUser(ctx, u.ID))
	stored, err = repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusActive, stored.Status)
}

func TestGetUserUnknown(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.GetUser(context.Background(), uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
