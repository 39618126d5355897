package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Alchinkaz/dream-rent-crm-new/database"
)

// ClientRequest contains the data for creating or updating a client
type ClientRequest struct {
	ID                string                    `json:"id"`
	Name              string                    `json:"name" binding:"required"`
	Phone             string                    `json:"phone" binding:"required"`
	Avatar            string                    `json:"avatar"`
	Rating            string                    `json:"rating" binding:"omitempty,oneof=trusted caution blacklist"`
	Channel           string                    `json:"channel" binding:"omitempty,oneof=website whatsapp telegram instagram phone recommendation old_client"`
	Documents         []database.ClientDocument `json:"documents"`
	EmergencyContacts []database.ClientContact  `json:"emergency_contacts"`
}

// GetClients lists clients for the current company with optional filters:
// free-text search (name/phone/IIN), rating and channel.
func GetClients(c *gin.Context) {
	companyID := currentCompanyID(c)

	query := database.DB.Where("company_id = ?", companyID).Order("name")

	if rating := c.Query("rating"); rating != "" {
		query = query.Where("rating = ?", rating)
	}
	if channel := c.Query("channel"); channel != "" {
		query = query.Where("channel = ?", channel)
	}

	var clients []database.Client
	if result := query.Find(&clients); result.Error != nil {
		zap.L().Error("database error", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	// The IIN lives inside the documents JSON, so the search filter is
	// applied after the fetch, same as the list views always did.
	if q := strings.ToLower(c.Query("search")); q != "" {
		filtered := clients[:0]
		for _, client := range clients {
			if clientMatches(client, q) {
				filtered = append(filtered, client)
			}
		}
		clients = filtered
	}

	c.JSON(http.StatusOK, clients)
}

func clientMatches(client database.Client, q string) bool {
	if strings.Contains(strings.ToLower(client.Name), q) || strings.Contains(client.Phone, q) {
		return true
	}
	for _, doc := range client.Documents {
		if strings.Contains(doc.IIN, q) {
			return true
		}
	}
	return false
}

// GetClientByID returns a single client
func GetClientByID(c *gin.Context) {
	var client database.Client
	err := database.DB.Where("id = ? AND company_id = ?", c.Param("id"), currentCompanyID(c)).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, client)
}

// SaveClient creates or fully replaces a client (upsert). A missing id gets
// a generated one.
func SaveClient(c *gin.Context) {
	companyID := currentCompanyID(c)

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if req.Rating == "" {
		req.Rating = database.ClientRatingTrusted
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	client := database.Client{
		ID:                req.ID,
		CompanyID:         companyID,
		Name:              req.Name,
		Phone:             req.Phone,
		Avatar:            req.Avatar,
		Rating:            req.Rating,
		Channel:           req.Channel,
		Documents:         req.Documents,
		EmergencyContacts: req.EmergencyContacts,
		UpdatedAt:         time.Now(),
	}

	// Full-row replace keeps the aggregates already stored for the client
	var existing database.Client
	err := database.DB.Where("id = ? AND company_id = ?", client.ID, companyID).First(&existing).Error
	switch {
	case err == nil:
		client.CreatedAt = existing.CreatedAt
		client.RentalCount = existing.RentalCount
		client.TotalAmount = existing.TotalAmount
		client.PaidAmount = existing.PaidAmount
		client.DebtAmount = existing.DebtAmount
		client.OverdueCount = existing.OverdueCount
		client.OverdueAmount = existing.OverdueAmount
		err = database.DB.Save(&client).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = database.DB.Create(&client).Error
	}

	if err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient deletes a client and its payments in a single transaction
func DeleteClient(c *gin.Context) {
	deleteClientsCascade(c, []string{c.Param("id")})
}

// BulkDeleteRequest carries the ids for a bulk delete
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// DeleteClientsBulk deletes several clients and their payments
func DeleteClientsBulk(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	deleteClientsCascade(c, req.IDs)
}

func deleteClientsCascade(c *gin.Context, ids []string) {
	companyID := currentCompanyID(c)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id IN ? AND company_id = ?", ids, companyID).Delete(&database.Payment{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ? AND company_id = ?", ids, companyID).Delete(&database.Client{}).Error
	})

	if err != nil {
		zap.L().Error("client delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// RecomputeClientAggregates rebuilds a client's financial aggregates by
// scanning the company's rentals. Matching is by client id when the rental
// is linked, with a name/phone fallback for rentals created before linking.
func RecomputeClientAggregates(c *gin.Context) {
	companyID := currentCompanyID(c)
	clientID := c.Param("id")

	var client database.Client
	err := database.DB.Where("id = ? AND company_id = ?", clientID, companyID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var rentals []database.Rental
	err = database.DB.
		Where("company_id = ? AND (client_id = ? OR client_name = ? OR client_phone = ?)",
			companyID, clientID, client.Name, client.Phone).
		Find(&rentals).Error
	if err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var total, debt, overdueAmount int64
	var overdueCount int
	for _, rental := range rentals {
		total += rental.Amount
		debt += rental.Debt
		if rental.Status == database.RentalStatusOverdue {
			overdueCount++
			overdueAmount += rental.Debt
		}
	}

	client.RentalCount = len(rentals)
	client.TotalAmount = total
	client.DebtAmount = debt
	client.PaidAmount = total - debt
	client.OverdueCount = overdueCount
	client.OverdueAmount = overdueAmount

	if err := database.DB.Save(&client).Error; err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving client"})
		return
	}

	c.JSON(http.StatusOK, client)
}
