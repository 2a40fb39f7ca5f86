package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(username, password, email string) (*models.User, error) {
	args := m.Called(username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(username, password string) (string, string, *models.User, error) {
	args := m.Called(username, password)
	if args.Get(2) == nil {
		return "", "", nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) RevokeToken(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func newAuthTestRouter(authService service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(authService), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: "user-1", Username: "ada", Role: models.RoleUser}, nil)
	r := newAuthTestRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddleware_TokenQueryParam(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: "user-1", Username: "ada", Role: models.RoleUser}, nil)
	r := newAuthTestRouter(authSvc)

	// Browser WebSocket clients cannot set headers; ?token= must work
	req := httptest.NewRequest(http.MethodGet, "/protected?token=good-token", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddleware_NoCredentials(t *testing.T) {
	authSvc := new(MockAuthService)
	r := newAuthTestRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	authSvc.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestAuthMiddleware_MalformedHeaderIgnoresQueryFallback(t *testing.T) {
	authSvc := new(MockAuthService)
	r := newAuthTestRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected?token=good-token", nil)
	req.Header.Set("Authorization", "NotBearer junk")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	authSvc.AssertNotCalled(t, "ValidateToken", mock.Anything)
}
