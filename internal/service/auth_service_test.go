package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
)

type mockAdminRepo struct {
	admin       *models.Admin
	findErr     error
	created     *models.Admin
	updatedHash string
}

func (m *mockAdminRepo) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.admin == nil || m.admin.Username != username {
		return nil, sql.ErrNoRows
	}
	return m.admin, nil
}

func (m *mockAdminRepo) FindByID(_ context.Context, id int64) (*models.Admin, error) {
	if m.admin == nil || m.admin.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.admin, nil
}

func (m *mockAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	admin.ID = 1
	m.created = admin
	return nil
}

func (m *mockAdminRepo) UpdatePassword(_ context.Context, _ int64, passwordHash string, _ time.Time) error {
	m.updatedHash = passwordHash
	return nil
}

func seededAdminRepo(t *testing.T, password string) *mockAdminRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &mockAdminRepo{admin: &models.Admin{ID: 1, Username: "admin", PasswordHash: string(hash)}}
}

func newTestAuthService(repo *mockAdminRepo) *AuthService {
	return NewAuthService(repo, NewValidator(), zap.NewNop(), AuthConfig{TokenSecret: "test-secret", TokenExpiry: time.Hour, Issuer: "alumni-api"})
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, code, appErr.Code)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	repo := seededAdminRepo(t, "admin123")
	svc := newTestAuthService(repo)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(1), res.User.ID)
	assert.Equal(t, "admin", res.User.Username)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := seededAdminRepo(t, "admin123")
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "nope"})
	assertAppErrorCode(t, err, appErrors.ErrInvalidCredentials.Code)
}

func TestAuthServiceLoginUnknownUserSameError(t *testing.T) {
	repo := seededAdminRepo(t, "admin123")
	svc := newTestAuthService(repo)

	_, unknownErr := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "admin123"})
	_, wrongErr := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "nope"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, appErrors.FromError(unknownErr).Message, appErrors.FromError(wrongErr).Message)
	assert.Equal(t, appErrors.FromError(unknownErr).Status, appErrors.FromError(wrongErr).Status)
}

func TestAuthServiceLoginMissingFields(t *testing.T) {
	svc := newTestAuthService(seededAdminRepo(t, "admin123"))

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin"})
	assertAppErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestAuthServiceValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestAuthService(seededAdminRepo(t, "admin123"))

	claims := &models.JWTClaims{
		AdminID:  1,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assertAppErrorCode(t, err, appErrors.ErrInvalidToken.Code)
}

func TestAuthServiceValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := seededAdminRepo(t, "admin123")
	svc := newTestAuthService(repo)
	other := NewAuthService(repo, NewValidator(), zap.NewNop(), AuthConfig{TokenSecret: "other-secret", TokenExpiry: time.Hour})

	res, err := other.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.Token)
	assertAppErrorCode(t, err, appErrors.ErrInvalidToken.Code)
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := seededAdminRepo(t, "admin123")
	svc := newTestAuthService(repo)

	err := svc.ChangePassword(context.Background(), 1, models.ChangePasswordRequest{CurrentPassword: "admin123", NewPassword: "s3curepass"})
	require.NoError(t, err)
	require.NotEmpty(t, repo.updatedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.updatedHash), []byte("s3curepass")))
}

func TestAuthServiceChangePasswordWrongCurrent(t *testing.T) {
	svc := newTestAuthService(seededAdminRepo(t, "admin123"))

	err := svc.ChangePassword(context.Background(), 1, models.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "s3curepass"})
	assertAppErrorCode(t, err, appErrors.ErrInvalidCredentials.Code)
}

func TestAuthServiceChangePasswordTooShort(t *testing.T) {
	svc := newTestAuthService(seededAdminRepo(t, "admin123"))

	err := svc.ChangePassword(context.Background(), 1, models.ChangePasswordRequest{CurrentPassword: "admin123", NewPassword: "tiny"})
	assertAppErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestAuthServiceEnsureAdminSeeds(t *testing.T) {
	repo := &mockAdminRepo{}
	svc := newTestAuthService(repo)

	err := svc.EnsureAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, "admin", repo.created.Username)
	assert.NotEqual(t, "admin123", repo.created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("admin123")))
}

func TestAuthServiceEnsureAdminIdempotent(t *testing.T) {
	repo := seededAdminRepo(t, "admin123")
	svc := newTestAuthService(repo)

	err := svc.EnsureAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Nil(t, repo.created)
}
