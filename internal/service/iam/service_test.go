package iam

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
	"github.com/founderhub/founder-api/pkg/auth"
	"github.com/founderhub/founder-api/pkg/errors"
	"github.com/founderhub/founder-api/pkg/logger"
)

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	user.IsActive = true
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeEmailService struct {
	welcomes int
}

func (s *fakeEmailService) SendWelcome(_ context.Context, _ string, _ string) error {
	s.welcomes++
	return nil
}

func (s *fakeEmailService) SendBookingConfirmation(_ context.Context, _ string, _ string, _ time.Time) error {
	return nil
}

func (s *fakeEmailService) SendBookingCancellation(_ context.Context, _ string, _ string, _ time.Time) error {
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeEmailService) {
	repo := newFakeUserRepo()
	emailSvc := &fakeEmailService{}
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewService(repo, jwtSvc, emailSvc, logger.NewLogger(nil)), repo, emailSvc
}

func TestRegisterDefaultsToMember(t *testing.T) {
	svc, _, emailSvc := newTestService()

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, model.UserRoleMember, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.Equal(t, 1, emailSvc.welcomes)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newTestService()

	req := &model.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "correct-horse",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "short",
	})
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))
}

func TestLogin(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "correct-horse",
		Role:     string(model.UserRoleExpert),
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.UserRoleExpert, resp.User.Role)

	// Wrong password
	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	assert.True(t, errors.IsCode(err, errors.ErrUnauthorized))

	// Unknown email
	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	assert.True(t, errors.IsCode(err, errors.ErrUnauthorized))

	// Deactivated account
	for _, u := range repo.users {
		u.IsActive = false
	}
	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	assert.True(t, errors.IsCode(err, errors.ErrUnauthorized))
}

func TestLoginTokenCarriesIdentity(t *testing.T) {
	svc, _, _ := newTestService()

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(resp.Token, ".")))

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	claims, err := jwtSvc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, string(model.UserRoleMember), claims.Role)
}
