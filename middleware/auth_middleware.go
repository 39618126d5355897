package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Alchinkaz/dream-rent-crm-new/utils"
)

// AuthMiddleware validates JWT tokens and extracts user information
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		if claims.CompanyID != nil {
			c.Set("userCompanyID", *claims.CompanyID)
		}

		c.Next()
	}
}

// RoleAuthMiddleware validates user roles
func RoleAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range roles {
			if r == userRole {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		c.Abort()
	}
}

func AdminAuthMiddleware() gin.HandlerFunc {
	return RoleAuthMiddleware("admin")
}

// CompanyScopeMiddleware resolves the company a request operates on from the
// company_id query parameter and enforces the manager restriction: managers
// only see their own company, admins see all.
func CompanyScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.Query("company_id")

		role, _ := c.Get("role")
		if role == "manager" {
			userCompanyID, exists := c.Get("userCompanyID")
			if !exists {
				c.JSON(http.StatusForbidden, gin.H{"error": "Manager has no company assigned"})
				c.Abort()
				return
			}
			own := userCompanyID.(string)
			if companyID == "" {
				companyID = own
			} else if companyID != own {
				c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied for this company"})
				c.Abort()
				return
			}
		}

		if companyID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
			c.Abort()
			return
		}

		c.Set("companyID", companyID)
		c.Next()
	}
}
