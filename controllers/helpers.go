package controllers

import (
	"github.com/gin-gonic/gin"
)

// currentUserID extracts the authenticated user's id from the gin context
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// currentCompanyID extracts the company scope resolved by the middleware
func currentCompanyID(c *gin.Context) string {
	return c.GetString("companyID")
}
