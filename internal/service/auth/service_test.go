package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

type memoryUserRepository struct {
	users map[string]user.User
}

func (m *memoryUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memoryUserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = int64(len(m.users) + 1)
	m.users[strings.ToLower(newUser.Email)] = newUser
	return newUser, nil
}

func newTestAuthService(t *testing.T, active bool) (auth.AuthService, *jwt.JWTService) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &memoryUserRepository{users: map[string]user.User{}}
	_, err = repo.Create(context.Background(), user.User{
		Name:         "Ana Souza",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		Active:       active,
	})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	return NewAuthService(repo, jwtService), jwtService
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtService := newTestAuthService(t, true)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, "employee", resp.Role)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))

	_, err = jwtService.JWTAuth().Decode(resp.AccessToken)
	assert.NoError(t, err)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _ := newTestAuthService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
}

func TestAuthService_Login_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestAuthService_Logout(t *testing.T) {
	svc, jwtService := newTestAuthService(t, true)
	ctx := context.Background()

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))

	assert.ErrorIs(t, svc.Logout(ctx, "garbage"), auth.ErrInvalidToken)
}
