package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selin/coursehub/internal/app/models"
	"github.com/selin/coursehub/internal/app/models/dto"
	"github.com/selin/coursehub/internal/pkg/apperrors"
	pkgauth "github.com/selin/coursehub/internal/pkg/auth"
)

type fakeUserStore struct {
	nextID    int64
	byEmail   map[string]*models.User
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	f.byEmail[stored.Email] = &stored
	result := stored
	return &result, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateToken(user *models.User) (string, int, error) {
	return "token-for-" + user.Email, 3600, nil
}

func newTestAuthService(users *fakeUserStore) AuthService {
	return NewAuthService(users, fakeTokenIssuer{})
}

func TestRegister_Success(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "selin@coursehub.test",
		Username: "selin",
		Password: "longenough",
	})
	require.NoError(t, err)

	assert.Equal(t, "selin@coursehub.test", resp.Email)
	assert.Equal(t, "student", resp.Role)

	stored := users.byEmail["selin@coursehub.test"]
	require.NotNil(t, stored)
	assert.Equal(t, models.RoleStudent, stored.Role)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "longenough", stored.Password)
	assert.True(t, pkgauth.CheckPassword(stored.Password, "longenough"))
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "not-an-email",
		Username: "selin",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)
}

func TestRegister_InvalidUsername(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "selin@coursehub.test",
		Username: "s!",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "selin@coursehub.test",
		Username: "selin",
		Password: "short",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)

	req := &dto.RegisterRequest{Email: "selin@coursehub.test", Username: "selin", Password: "longenough"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	req.Username = "selin2"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func registerTestUser(t *testing.T, svc AuthService) {
	t.Helper()
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "selin@coursehub.test",
		Username: "selin",
		Password: "longenough",
	})
	require.NoError(t, err)
}

func TestLogin_Success(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)
	registerTestUser(t, svc)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "selin@coursehub.test",
		Password: "longenough",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-for-selin@coursehub.test", resp.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, 3600, resp.Token.ExpiresIn)
	assert.Equal(t, "selin@coursehub.test", resp.User.Email)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@coursehub.test",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "selin@coursehub.test",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)
	registerTestUser(t, svc)
	users.byEmail["selin@coursehub.test"].IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "selin@coursehub.test",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
