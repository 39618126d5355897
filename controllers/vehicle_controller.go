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

// VehicleRequest contains the data for creating or updating a vehicle
type VehicleRequest struct {
	ID             string            `json:"id"`
	Name           string            `json:"name" binding:"required"`
	Plate          string            `json:"plate" binding:"required"`
	Image          string            `json:"image"`
	Status         string            `json:"status" binding:"omitempty,oneof=available rented maintenance"`
	Condition      string            `json:"condition" binding:"omitempty,oneof=new good broken"`
	VIN            string            `json:"vin"`
	TechPassport   string            `json:"tech_passport"`
	Color          string            `json:"color"`
	Mileage        string            `json:"mileage"`
	InsuranceDate  string            `json:"insurance_date"`
	InspectionDate string            `json:"inspection_date"`
	Tariffs        []database.Tariff `json:"tariffs"`
}

// GetVehicles lists vehicles for the current company, optionally filtered by
// status or a name/plate search.
func GetVehicles(c *gin.Context) {
	companyID := currentCompanyID(c)

	query := database.DB.Where("company_id = ?", companyID).Order("name")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if q := c.Query("search"); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(plate) LIKE ?", like, like)
	}

	var vehicles []database.Vehicle
	if result := query.Find(&vehicles); result.Error != nil {
		zap.L().Error("database error", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicleByID returns a single vehicle with its tariffs
func GetVehicleByID(c *gin.Context) {
	var vehicle database.Vehicle
	err := database.DB.Where("id = ? AND company_id = ?", c.Param("id"), currentCompanyID(c)).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// SaveVehicle creates or fully replaces a vehicle (upsert), including its
// tariff list. Tariffs without an id get one generated.
func SaveVehicle(c *gin.Context) {
	companyID := currentCompanyID(c)

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if req.Status == "" {
		req.Status = database.VehicleStatusAvailable
	}
	if req.Condition == "" {
		req.Condition = database.VehicleConditionGood
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	for i := range req.Tariffs {
		if req.Tariffs[i].ID == "" {
			req.Tariffs[i].ID = uuid.NewString()
		}
	}

	vehicle := database.Vehicle{
		ID:             req.ID,
		CompanyID:      companyID,
		Name:           req.Name,
		Plate:          req.Plate,
		Image:          req.Image,
		Status:         req.Status,
		Condition:      req.Condition,
		VIN:            req.VIN,
		TechPassport:   req.TechPassport,
		Color:          req.Color,
		Mileage:        req.Mileage,
		InsuranceDate:  req.InsuranceDate,
		InspectionDate: req.InspectionDate,
		Tariffs:        req.Tariffs,
		UpdatedAt:      time.Now(),
	}

	var existing database.Vehicle
	err := database.DB.Where("id = ? AND company_id = ?", vehicle.ID, companyID).First(&existing).Error
	switch {
	case err == nil:
		vehicle.CreatedAt = existing.CreatedAt
		err = database.DB.Save(&vehicle).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = database.DB.Create(&vehicle).Error
	}

	if err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving vehicle"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle deletes a vehicle. Payments are linked to rentals and
// clients, not vehicles, so there is no cascade here.
func DeleteVehicle(c *gin.Context) {
	deleteVehicles(c, []string{c.Param("id")})
}

// DeleteVehiclesBulk deletes several vehicles
func DeleteVehiclesBulk(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	deleteVehicles(c, req.IDs)
}

func deleteVehicles(c *gin.Context, ids []string) {
	err := database.DB.Where("id IN ? AND company_id = ?", ids, currentCompanyID(c)).Delete(&database.Vehicle{}).Error
	if err != nil {
		zap.L().Error("vehicle delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
