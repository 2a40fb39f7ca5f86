package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePagination reads ?page and ?page_size with the usual clamping.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}
	return page, pageSize
}

// callerID returns the authenticated user ID, empty when anonymous.
func callerID(c *gin.Context) string {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// callerRole returns the authenticated role, empty when anonymous.
func callerRole(c *gin.Context) string {
	if v, exists := c.Get("role"); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
