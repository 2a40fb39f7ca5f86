package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReactionService mocks the ReactionService interface
type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) React(ctx context.Context, userID, contentID string, contentType models.ContentType, kind models.ReactionKind) (*dto.ReactOutcome, error) {
	args := m.Called(ctx, userID, contentID, contentType, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReactOutcome), args.Error(1)
}

func (m *MockReactionService) GetReactions(ctx context.Context, contentID string, contentType models.ContentType, callerID string) (*dto.ReactionStateResponse, error) {
	args := m.Called(ctx, contentID, contentType, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReactionStateResponse), args.Error(1)
}

func (m *MockReactionService) ListReactors(ctx context.Context, contentID string, contentType models.ContentType, kind *models.ReactionKind) ([]dto.ReactorResponse, error) {
	args := m.Called(ctx, contentID, contentType, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ReactorResponse), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// fakeAuth injects an authenticated identity the way the JWT middleware does
func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func passThrough() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

func mountReactionRoutes(svc service.ReactionService, userID string) *gin.Engine {
	router := setupRouter()
	h := NewReactionHandler(svc)
	posts := router.Group("/posts")
	auth := passThrough()
	if userID != "" {
		auth = fakeAuth(userID)
	}
	h.RegisterRoutes(posts, models.ContentPost, "post_id", auth, auth)
	return router
}

func TestReactEndpoint_Success(t *testing.T) {
	mockSvc := new(MockReactionService)
	router := mountReactionRoutes(mockSvc, "user-1")

	created := models.KindHeart
	outcome := &dto.ReactOutcome{
		Created:        &created,
		ReactionCounts: dto.NewReactionCounts(map[models.ReactionKind]int64{models.KindHeart: 1}),
	}
	mockSvc.On("React", mock.Anything, "user-1", "post-1", models.ContentPost, models.KindHeart).
		Return(outcome, nil)

	body, _ := json.Marshal(dto.ReactRequest{Kind: "heart"})
	req, _ := http.NewRequest("PUT", "/posts/post-1/reactions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ReactOutcome
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotNil(t, response.Created)
	assert.Equal(t, models.KindHeart, *response.Created)
	assert.Equal(t, int64(1), response.Total)

	mockSvc.AssertExpectations(t)
}

func TestReactEndpoint_InvalidKind(t *testing.T) {
	mockSvc := new(MockReactionService)
	router := mountReactionRoutes(mockSvc, "user-1")

	mockSvc.On("React", mock.Anything, "user-1", "post-1", models.ContentPost, models.ReactionKind("shrug")).
		Return(nil, service.ErrInvalidReactionKind)

	body, _ := json.Marshal(dto.ReactRequest{Kind: "shrug"})
	req, _ := http.NewRequest("PUT", "/posts/post-1/reactions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestReactEndpoint_ContentNotFound(t *testing.T) {
	mockSvc := new(MockReactionService)
	router := mountReactionRoutes(mockSvc, "user-1")

	mockSvc.On("React", mock.Anything, "user-1", "missing", models.ContentPost, models.KindLike).
		Return(nil, service.ErrContentNotFound)

	body, _ := json.Marshal(dto.ReactRequest{Kind: "like"})
	req, _ := http.NewRequest("PUT", "/posts/missing/reactions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestReactEndpoint_InvalidJSON(t *testing.T) {
	mockSvc := new(MockReactionService)
	router := mountReactionRoutes(mockSvc, "user-1")

	req, _ := http.NewRequest("PUT", "/posts/post-1/reactions", bytes.NewBuffer([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "React", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReactionsEndpoint_AnonymousCaller(t *testing.T) {
	mockSvc := new(MockReactionService)
	router := mountReactionRoutes(mockSvc, "")

	state := &dto.ReactionStateResponse{
		ReactionCounts: dto.NewReactionCounts(map[models.ReactionKind]int64{models.KindLike: 2}),
	}
	mockSvc.On("GetReactions", mock.Anything, "post-1", models.ContentPost, "").
		Return(state, nil)

	req, _ := http.NewRequest("GET", "/posts/post-1/reactions", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ReactionStateResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Nil(t, response.CallerKind)
	assert.Equal(t, int64(2), response.Total)
	mockSvc.AssertExpectations(t)
}

func TestListReactorsEndpoint_KindFilter(t *testing.T) {
	mockSvc := new(MockReactionService)
	router := mountReactionRoutes(mockSvc, "")

	heart := models.KindHeart
	reactors := []dto.ReactorResponse{
		{UserID: "user-1", Username: "alice", Kind: models.KindHeart},
	}
	mockSvc.On("ListReactors", mock.Anything, "post-1", models.ContentPost, &heart).
		Return(reactors, nil)

	req, _ := http.NewRequest("GET", "/posts/post-1/reactions/users?kind=heart", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data  []dto.ReactorResponse `json:"data"`
		Total int                   `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, "alice", response.Data[0].Username)
	mockSvc.AssertExpectations(t)
}
