package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mocalumni/alumni-api/internal/models"
	"github.com/mocalumni/alumni-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedAdminRepo struct {
	admin *models.Admin
}

func (f *fixedAdminRepo) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	if f.admin == nil || f.admin.Username != username {
		return nil, sql.ErrNoRows
	}
	return f.admin, nil
}

func (f *fixedAdminRepo) FindByID(_ context.Context, id int64) (*models.Admin, error) {
	if f.admin == nil || f.admin.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.admin, nil
}

func (f *fixedAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	admin.ID = 1
	f.admin = admin
	return nil
}

func (f *fixedAdminRepo) UpdatePassword(context.Context, int64, string, time.Time) error {
	return nil
}

func newProtectedRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fixedAdminRepo{admin: &models.Admin{ID: 1, Username: "admin", PasswordHash: string(hash)}}
	authSvc := service.NewAuthService(repo, nil, zap.NewNop(), service.AuthConfig{TokenSecret: "test-secret", TokenExpiry: time.Hour})

	res, err := authSvc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", JWT(authSvc), func(c *gin.Context) {
		claims := c.MustGet(ContextAdminKey).(*models.JWTClaims)
		c.JSON(http.StatusOK, gin.H{"admin_id": claims.AdminID, "username": claims.Username})
	})
	return r, res.Token
}

func requestWithAuth(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMissingHeader(t *testing.T) {
	r, _ := newProtectedRouter(t)

	w := requestWithAuth(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "access token required")
}

func TestJWTMalformedHeader(t *testing.T) {
	r, token := newProtectedRouter(t)

	w := requestWithAuth(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization header")
}

func TestJWTInvalidToken(t *testing.T) {
	r, _ := newProtectedRouter(t)

	w := requestWithAuth(r, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTValidTokenPassesClaims(t *testing.T) {
	r, token := newProtectedRouter(t)

	w := requestWithAuth(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin_id":1`)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}
