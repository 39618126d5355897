package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Alchinkaz/dream-rent-crm-new/database"
)

// GetCompanies lists the companies visible to the authenticated user.
// Admins see all companies, managers only their own.
func GetCompanies(c *gin.Context) {
	query := database.DB.Order("id")

	if c.GetString("role") == database.RoleManager {
		companyID, exists := c.Get("userCompanyID")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Manager has no company assigned"})
			return
		}
		query = query.Where("id = ?", companyID)
	}

	var companies []database.Company
	if result := query.Find(&companies); result.Error != nil {
		zap.L().Error("database error", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, companies)
}
