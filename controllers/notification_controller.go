package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Alchinkaz/dream-rent-crm-new/database"
)

// GetNotifications lists reconciliation proposals for the current company,
// unread first.
func GetNotifications(c *gin.Context) {
	var notifications []database.Notification
	err := database.DB.
		Where("company_id = ?", currentCompanyID(c)).
		Order("is_read ASC, created_at DESC").
		Find(&notifications).Error
	if err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead acknowledges a single notification
func MarkNotificationRead(c *gin.Context) {
	result := database.DB.Model(&database.Notification{}).
		Where("id = ? AND company_id = ?", c.Param("id"), currentCompanyID(c)).
		Update("is_read", true)
	if result.Error != nil {
		zap.L().Error("database error", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
