package service

import (
	"testing"
	"time"

	"mindhaven/internal/config"
	"mindhaven/internal/http-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func newAuthTestService(cfg *config.Config) (*MockUserRepository, *MockRefreshTokenRepository, AuthService) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	if cfg == nil {
		cfg = &config.Config{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		}
	}
	return mockUserRepo, mockRefreshTokenRepo, NewAuthService(mockUserRepo, mockRefreshTokenRepo, cfg)
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo, _, authService := newAuthTestService(nil)

	mockUserRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := authService.Register("testuser", "password123", "test@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_UsernameExists(t *testing.T) {
	mockUserRepo, _, authService := newAuthTestService(nil)

	existingUser := &models.User{Username: "testuser"}
	mockUserRepo.On("FindByUsername", "testuser").Return(existingUser, nil)

	user, err := authService.Register("testuser", "password123", "test@example.com")

	assert.Error(t, err)
	assert.Equal(t, ErrNameInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	mockUserRepo, _, authService := newAuthTestService(nil)

	existingUser := &models.User{Email: "test@example.com"}
	mockUserRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "test@example.com").Return(existingUser, nil)

	user, err := authService.Register("testuser", "password123", "test@example.com")

	assert.Error(t, err)
	assert.Equal(t, ErrEmailInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	mockUserRepo, mockRefreshTokenRepo, authService := newAuthTestService(nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-id",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)
	mockRefreshTokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	accessToken, refreshToken, returnedUser, err := authService.Login("testuser", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, user.Username, returnedUser.Username)
	mockUserRepo.AssertExpectations(t)
	mockRefreshTokenRepo.AssertExpectations(t)
}

func TestLogin_InvalidPassword(t *testing.T) {
	mockUserRepo, _, authService := newAuthTestService(nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-id",
		Username: "testuser",
		Password: string(hashedPassword),
	}

	mockUserRepo.On("FindByUsername", "testuser").Return(user, nil)

	accessToken, refreshToken, returnedUser, err := authService.Login("testuser", "wrongpassword")

	assert.Error(t, err)
	assert.Equal(t, ErrInvalidCredentials, err)
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
	assert.Nil(t, returnedUser)
	mockUserRepo.AssertExpectations(t)
}

func TestLogin_UserNotFound(t *testing.T) {
	mockUserRepo, _, authService := newAuthTestService(nil)

	mockUserRepo.On("FindByUsername", "nonexistent").Return(nil, gorm.ErrRecordNotFound)

	accessToken, refreshToken, user, err := authService.Login("nonexistent", "password123")

	assert.Error(t, err)
	assert.Equal(t, ErrInvalidCredentials, err)
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestValidateToken_Success(t *testing.T) {
	_, _, authService := newAuthTestService(nil)

	claims := jwt.MapClaims{
		"user_id":  "user-id",
		"username": "testuser",
		"role":     models.RoleUser,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "access",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte("test-secret"))

	validatedClaims, err := authService.ValidateToken(tokenString)

	assert.NoError(t, err)
	assert.NotNil(t, validatedClaims)
	assert.Equal(t, "testuser", validatedClaims.Username)
	assert.Equal(t, models.RoleUser, validatedClaims.Role)
}

func TestValidateToken_Expired(t *testing.T) {
	_, _, authService := newAuthTestService(nil)

	claims := jwt.MapClaims{
		"user_id":  "user-id",
		"username": "testuser",
		"exp":      time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte("test-secret"))

	validatedClaims, err := authService.ValidateToken(tokenString)

	assert.Error(t, err)
	assert.Equal(t, ErrExpiredToken, err)
	assert.Nil(t, validatedClaims)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, _, authService := newAuthTestService(nil)

	validatedClaims, err := authService.ValidateToken("invalid.token.here")

	assert.Error(t, err)
	assert.Nil(t, validatedClaims)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	_, _, authService := newAuthTestService(nil)

	claims := jwt.MapClaims{
		"user_id": "user-id",
		"exp":     time.Now().Add(15 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte("other-secret"))

	validatedClaims, err := authService.ValidateToken(tokenString)

	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)
	assert.Nil(t, validatedClaims)
}

func TestValidateToken_MissingSubject(t *testing.T) {
	_, _, authService := newAuthTestService(nil)

	claims := jwt.MapClaims{
		"username": "testuser",
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte("test-secret"))

	validatedClaims, err := authService.ValidateToken(tokenString)

	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)
	assert.Nil(t, validatedClaims)
}

func TestRefreshAccessToken_Success(t *testing.T) {
	mockUserRepo, mockRefreshTokenRepo, authService := newAuthTestService(nil)

	refreshToken := &models.RefreshToken{
		ID:        "token-id",
		UserID:    "user-id",
		Token:     "refresh-token",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		Revoked:   false,
	}
	user := &models.User{
		ID:       "user-id",
		Username: "testuser",
		Role:     models.RoleUser,
	}

	mockRefreshTokenRepo.On("FindByToken", "refresh-token").Return(refreshToken, nil)
	mockUserRepo.On("FindByID", "user-id").Return(user, nil)

	newAccessToken, err := authService.RefreshAccessToken("refresh-token")

	assert.NoError(t, err)
	assert.NotEmpty(t, newAccessToken)
	mockRefreshTokenRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestRefreshAccessToken_TokenExpired(t *testing.T) {
	_, mockRefreshTokenRepo, authService := newAuthTestService(nil)

	refreshToken := &models.RefreshToken{
		ID:        "token-id",
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}

	mockRefreshTokenRepo.On("FindByToken", "expired-token").Return(refreshToken, nil)
	mockRefreshTokenRepo.On("Delete", "token-id").Return(nil)

	newAccessToken, err := authService.RefreshAccessToken("expired-token")

	assert.Error(t, err)
	assert.Equal(t, ErrExpiredToken, err)
	assert.Empty(t, newAccessToken)
	mockRefreshTokenRepo.AssertExpectations(t)
}

func TestRefreshAccessToken_TokenRevoked(t *testing.T) {
	_, mockRefreshTokenRepo, authService := newAuthTestService(nil)

	refreshToken := &models.RefreshToken{
		ID:        "token-id",
		Token:     "revoked-token",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		Revoked:   true,
	}

	mockRefreshTokenRepo.On("FindByToken", "revoked-token").Return(refreshToken, nil)

	newAccessToken, err := authService.RefreshAccessToken("revoked-token")

	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)
	assert.Empty(t, newAccessToken)
	mockRefreshTokenRepo.AssertExpectations(t)
}

func TestRevokeToken_Success(t *testing.T) {
	_, mockRefreshTokenRepo, authService := newAuthTestService(nil)

	refreshToken := &models.RefreshToken{
		ID:    "token-id",
		Token: "refresh-token",
	}

	mockRefreshTokenRepo.On("FindByToken", "refresh-token").Return(refreshToken, nil)
	mockRefreshTokenRepo.On("Revoke", "token-id").Return(nil)

	err := authService.RevokeToken("refresh-token")

	assert.NoError(t, err)
	mockRefreshTokenRepo.AssertExpectations(t)
}

func TestRevokeToken_NotFound(t *testing.T) {
	_, mockRefreshTokenRepo, authService := newAuthTestService(nil)

	mockRefreshTokenRepo.On("FindByToken", "invalid-token").Return(nil, gorm.ErrRecordNotFound)

	err := authService.RevokeToken("invalid-token")

	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)
	mockRefreshTokenRepo.AssertExpectations(t)
}
