package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Alchinkaz/dream-rent-crm-new/database"
	"github.com/Alchinkaz/dream-rent-crm-new/utils"
)

// GetDashboard returns company-scoped headline numbers for the main page
func GetDashboard(c *gin.Context) {
	companyID := currentCompanyID(c)

	var activeRentals int64
	err := database.DB.Model(&database.Rental{}).
		Where("company_id = ? AND status IN ?", companyID,
			[]string{database.RentalStatusBooked, database.RentalStatusRented, database.RentalStatusOverdue}).
		Count(&activeRentals).Error
	if err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var availableVehicles int64
	err = database.DB.Model(&database.Vehicle{}).
		Where("company_id = ? AND status = ?", companyID, database.VehicleStatusAvailable).
		Count(&availableVehicles).Error
	if err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var totalDebt int64
	row := database.DB.Model(&database.Rental{}).
		Where("company_id = ?", companyID).
		Select("COALESCE(SUM(debt), 0)").
		Row()
	if err := row.Scan(&totalDebt); err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day())
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), monthStart.Day(), 0, 0, 0, 0, time.Local)

	var monthIncome int64
	row = database.DB.Model(&database.Payment{}).
		Where("company_id = ? AND type = ? AND created_at >= ?", companyID, database.PaymentTypeIncome, monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&monthIncome); err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active_rentals":       activeRentals,
		"available_vehicles":   availableVehicles,
		"total_debt":           totalDebt,
		"total_debt_display":   utils.FormatCurrency(totalDebt),
		"month_income":         monthIncome,
		"month_income_display": utils.FormatCurrency(monthIncome),
	})
}
