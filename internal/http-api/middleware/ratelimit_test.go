package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitTestRouter(perSecond float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	identify := func(c *gin.Context) {
		if u := c.GetHeader("X-User"); u != "" {
			c.Set("userID", u)
		}
		c.Next()
	}
	limited := WriteRateLimit(perSecond, burst)
	r.POST("/write", identify, limited, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/read", identify, limited, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, method, path, user string) int {
	req := httptest.NewRequest(method, path, nil)
	if user != "" {
		req.Header.Set("X-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestWriteRateLimit_PerUserBuckets(t *testing.T) {
	r := newRateLimitTestRouter(0.001, 1)

	// Each authenticated caller gets an independent bucket
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodPost, "/write", "user-a"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, http.MethodPost, "/write", "user-a"))
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodPost, "/write", "user-b"))
}

func TestWriteRateLimit_SafeMethodsPassThrough(t *testing.T) {
	r := newRateLimitTestRouter(0.001, 1)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/read", "user-a"))
	}
}
