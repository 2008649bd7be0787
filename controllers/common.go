package controllers

import (
	"github.com/gin-gonic/gin"
)

// userIDFromCtx pulls the authenticated user id set by the auth middleware.
func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
