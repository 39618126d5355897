package controllers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Alchinkaz/dream-rent-crm-new/database"
	"github.com/Alchinkaz/dream-rent-crm-new/utils"
)

// RentalPartyView is the denormalized client block of a rental view
type RentalPartyView struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatarUrl"`
}

// RentalVehicleView is the denormalized vehicle block of a rental view
type RentalVehicleView struct {
	Name  string `json:"name"`
	Plate string `json:"plate"`
	Image string `json:"image"`
}

// RentalPeriodView carries the formatted rental period
type RentalPeriodView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RentalView is the rental shape consumed by the list and detail pages:
// money rendered as display strings, dates as "DD.MM.YYYY, HH:MM".
type RentalView struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Client    RentalPartyView   `json:"client"`
	Vehicle   RentalVehicleView `json:"vehicle"`
	Period    RentalPeriodView  `json:"period"`
	Amount    string            `json:"amount"`
	Payment   string            `json:"payment"`
	Debt      string            `json:"debt"`
	Fine      string            `json:"fine"`
	Deposit   string            `json:"deposit"`
	Comment   string            `json:"comment"`
	TariffID  *string           `json:"tariff_id"`
	ClientID  *string           `json:"client_id"`
	VehicleID *string           `json:"vehicle_id"`
}

// RentalRequest contains the data for creating or updating a rental. Money
// fields arrive as display strings and are parsed server-side.
type RentalRequest struct {
	ID      string            `json:"id"`
	Status  string            `json:"status"`
	Client  RentalPartyView   `json:"client"`
	Vehicle RentalVehicleView `json:"vehicle"`
	Period  RentalPeriodView  `json:"period"`
	Amount  string            `json:"amount"`
	Payment string            `json:"payment" binding:"omitempty,oneof=pending partially paid"`
	Debt    string            `json:"debt"`
	Fine    string            `json:"fine"`
	Deposit string            `json:"deposit"`
	Comment string            `json:"comment"`

	TariffID  *string `json:"tariff_id"`
	ClientID  *string `json:"client_id"`
	VehicleID *string `json:"vehicle_id"`
}

func rentalToView(r database.Rental) RentalView {
	view := RentalView{
		ID:     r.ID,
		Status: r.Status,
		Client: RentalPartyView{
			Name:      r.ClientName,
			Phone:     r.ClientPhone,
			AvatarURL: r.ClientAvatar,
		},
		Vehicle: RentalVehicleView{
			Name:  r.VehicleName,
			Plate: r.VehiclePlate,
			Image: r.VehicleImage,
		},
		Amount:    utils.FormatCurrency(r.Amount),
		Payment:   r.PaymentStatus,
		Debt:      utils.FormatCurrency(r.Debt),
		Fine:      utils.FormatCurrency(r.Fine),
		Deposit:   utils.FormatCurrency(r.Deposit),
		Comment:   r.Comment,
		TariffID:  r.TariffID,
		ClientID:  r.ClientID,
		VehicleID: r.VehicleID,
	}
	if r.StartDate != nil {
		view.Period.Start = utils.FormatDateTime(*r.StartDate)
	}
	if r.EndDate != nil {
		view.Period.End = utils.FormatDateTime(*r.EndDate)
	}
	return view
}

// refreshSnapshots overlays live client/vehicle display fields onto rental
// views where the foreign key still resolves. Rentals whose linked rows are
// gone keep the snapshot captured at link time.
func refreshSnapshots(companyID string, rentals []database.Rental, views []RentalView) error {
	clientIDs := make([]string, 0, len(rentals))
	vehicleIDs := make([]string, 0, len(rentals))
	for _, r := range rentals {
		if r.ClientID != nil {
			clientIDs = append(clientIDs, *r.ClientID)
		}
		if r.VehicleID != nil {
			vehicleIDs = append(vehicleIDs, *r.VehicleID)
		}
	}

	clients := map[string]database.Client{}
	if len(clientIDs) > 0 {
		var rows []database.Client
		if err := database.DB.Where("id IN ? AND company_id = ?", clientIDs, companyID).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			clients[row.ID] = row
		}
	}

	vehicles := map[string]database.Vehicle{}
	if len(vehicleIDs) > 0 {
		var rows []database.Vehicle
		if err := database.DB.Where("id IN ? AND company_id = ?", vehicleIDs, companyID).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			vehicles[row.ID] = row
		}
	}

	for i, r := range rentals {
		if r.ClientID != nil {
			if client, ok := clients[*r.ClientID]; ok {
				views[i].Client = RentalPartyView{Name: client.Name, Phone: client.Phone, AvatarURL: client.Avatar}
			}
		}
		if r.VehicleID != nil {
			if vehicle, ok := vehicles[*r.VehicleID]; ok {
				views[i].Vehicle = RentalVehicleView{Name: vehicle.Name, Plate: vehicle.Plate, Image: vehicle.Image}
			}
		}
	}
	return nil
}

// GetRentals lists rentals for the current company, newest first, with
// optional status filter and client/vehicle search.
func GetRentals(c *gin.Context) {
	companyID := currentCompanyID(c)

	query := database.DB.Where("company_id = ?", companyID).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var rentals []database.Rental
	if result := query.Find(&rentals); result.Error != nil {
		zap.L().Error("database error", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	views := make([]RentalView, len(rentals))
	for i, r := range rentals {
		views[i] = rentalToView(r)
	}
	if err := refreshSnapshots(companyID, rentals, views); err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if q := strings.ToLower(c.Query("search")); q != "" {
		filtered := views[:0]
		for _, v := range views {
			if strings.Contains(strings.ToLower(v.Client.Name), q) ||
				strings.Contains(v.Client.Phone, q) ||
				strings.Contains(strings.ToLower(v.Vehicle.Name), q) ||
				strings.Contains(strings.ToLower(v.Vehicle.Plate), q) ||
				strings.Contains(v.ID, q) {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	c.JSON(http.StatusOK, views)
}

// RentalActionView is one actionable transition presented to the client
type RentalActionView struct {
	Label  string `json:"label"`
	Status string `json:"status"`
}

// GetRentalByID returns a single rental view along with the actions legal
// from its current status.
func GetRentalByID(c *gin.Context) {
	companyID := currentCompanyID(c)

	rental, ok := findRental(c, companyID, c.Param("id"))
	if !ok {
		return
	}

	views := []RentalView{rentalToView(rental)}
	if err := refreshSnapshots(companyID, []database.Rental{rental}, views); err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	response := gin.H{"rental": views[0]}
	if cfg, known := database.RentalActionsFor(rental.Status); known {
		actions := gin.H{
			"main": RentalActionView{Label: cfg.Main.Label, Status: cfg.Main.Target},
		}
		alts := make([]RentalActionView, len(cfg.Alts))
		for i, alt := range cfg.Alts {
			alts[i] = RentalActionView{Label: alt.Label, Status: alt.Target}
		}
		actions["alts"] = alts
		response["actions"] = actions
	}

	c.JSON(http.StatusOK, response)
}

func findRental(c *gin.Context, companyID, id string) (database.Rental, bool) {
	var rental database.Rental
	err := database.DB.Where("id = ? AND company_id = ?", id, companyID).First(&rental).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return rental, false
		}
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return rental, false
	}
	return rental, true
}

// generateRentalID produces a 4-digit numeric string id, retrying on the
// rare collision with an existing rental.
func generateRentalID(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 20; attempt++ {
		id := fmt.Sprintf("%d", 1000+rand.Intn(9000))
		var count int64
		if err := tx.Model(&database.Rental{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", errors.New("could not allocate rental id")
}

func rentalFromRequest(req RentalRequest, companyID string) (database.Rental, error) {
	rental := database.Rental{
		ID:            req.ID,
		CompanyID:     companyID,
		Status:        req.Status,
		ClientID:      req.ClientID,
		VehicleID:     req.VehicleID,
		TariffID:      req.TariffID,
		ClientName:    req.Client.Name,
		ClientPhone:   req.Client.Phone,
		ClientAvatar:  req.Client.AvatarURL,
		VehicleName:   req.Vehicle.Name,
		VehiclePlate:  req.Vehicle.Plate,
		VehicleImage:  req.Vehicle.Image,
		Amount:        utils.ParseCurrency(req.Amount),
		Debt:          utils.ParseCurrency(req.Debt),
		Fine:          utils.ParseCurrency(req.Fine),
		Deposit:       utils.ParseCurrency(req.Deposit),
		PaymentStatus: req.Payment,
		Comment:       req.Comment,
	}

	if rental.Status == "" {
		rental.Status = database.RentalStatusIncoming
	}
	if rental.PaymentStatus == "" {
		rental.PaymentStatus = database.PaymentStatusPending
	}

	if req.Period.Start != "" {
		start, err := utils.ParseDateTime(req.Period.Start)
		if err != nil {
			return rental, fmt.Errorf("invalid period start: %w", err)
		}
		rental.StartDate = &start
	}
	if req.Period.End != "" {
		end, err := utils.ParseDateTime(req.Period.End)
		if err != nil {
			return rental, fmt.Errorf("invalid period end: %w", err)
		}
		rental.EndDate = &end
	}

	return rental, nil
}

// resolveLinks fills missing client/vehicle foreign keys from the snapshot
// fields, the way the form auto-save always resolved them (phone for
// clients, plate for vehicles).
func resolveLinks(tx *gorm.DB, rental *database.Rental) {
	if rental.ClientID == nil && rental.ClientPhone != "" {
		var client database.Client
		if err := tx.Where("company_id = ? AND phone = ?", rental.CompanyID, rental.ClientPhone).First(&client).Error; err == nil {
			rental.ClientID = &client.ID
		}
	}
	if rental.VehicleID == nil && rental.VehiclePlate != "" {
		var vehicle database.Vehicle
		if err := tx.Where("company_id = ? AND plate = ?", rental.CompanyID, rental.VehiclePlate).First(&vehicle).Error; err == nil {
			rental.VehicleID = &vehicle.ID
		}
	}
}

// SaveRental creates or fully replaces a rental (upsert). A new rental with
// no id gets a generated 4-digit numeric id before first persistence. When
// an update changes the status, a history entry records the change.
func SaveRental(c *gin.Context) {
	companyID := currentCompanyID(c)
	userID, _ := currentUserID(c)

	var req RentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	// The path param is authoritative on updates
	if id := c.Param("id"); id != "" {
		req.ID = id
	}

	rental, err := rentalFromRequest(req, companyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		resolveLinks(tx, &rental)

		if rental.ID == "" {
			id, idErr := generateRentalID(tx)
			if idErr != nil {
				return idErr
			}
			rental.ID = id
			return tx.Create(&rental).Error
		}

		var existing database.Rental
		findErr := tx.Where("id = ? AND company_id = ?", rental.ID, companyID).First(&existing).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return tx.Create(&rental).Error
		}
		if findErr != nil {
			return findErr
		}

		rental.CreatedAt = existing.CreatedAt
		if saveErr := tx.Save(&rental).Error; saveErr != nil {
			return saveErr
		}

		if existing.Status != rental.Status {
			entry := database.RentalHistory{
				ID:         uuid.NewString(),
				RentalID:   rental.ID,
				UserID:     &userID,
				ActionType: database.HistoryActionStatusChange,
				Details: fmt.Sprintf("Статус изменен с %s на %s",
					database.RentalStatusLabel(existing.Status),
					database.RentalStatusLabel(rental.Status)),
				OldValue: existing.Status,
				NewValue: rental.Status,
			}
			return tx.Create(&entry).Error
		}
		return nil
	})

	if err != nil {
		zap.L().Error("rental save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving rental"})
		return
	}

	c.JSON(http.StatusOK, rentalToView(rental))
}

// TransitionRequest names the target status of a workflow transition
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransitionRental moves a rental through the status workflow. The target
// must be the main or an alt action of the current status; anything else is
// rejected before any write. Status update and history entry commit
// together.
func TransitionRental(c *gin.Context) {
	companyID := currentCompanyID(c)
	userID, _ := currentUserID(c)

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	rental, ok := findRental(c, companyID, c.Param("id"))
	if !ok {
		return
	}

	if !database.CanTransition(rental.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot transition from %s to %s", rental.Status, req.Status),
		})
		return
	}

	oldStatus := rental.Status
	rental.Status = req.Status

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if saveErr := tx.Save(&rental).Error; saveErr != nil {
			return saveErr
		}
		entry := database.RentalHistory{
			ID:         uuid.NewString(),
			RentalID:   rental.ID,
			UserID:     &userID,
			ActionType: database.HistoryActionStatusChange,
			Details:    fmt.Sprintf("Статус изменен на %s", database.RentalStatusLabel(req.Status)),
			OldValue:   oldStatus,
			NewValue:   req.Status,
		}
		return tx.Create(&entry).Error
	})

	if err != nil {
		zap.L().Error("status transition failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error changing status"})
		return
	}

	c.JSON(http.StatusOK, rentalToView(rental))
}

// LinkClientRequest names the client to link into a rental
type LinkClientRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

// LinkClient attaches a client to a rental, denormalizing the client's
// name, phone and avatar into the rental's working copy.
func LinkClient(c *gin.Context) {
	companyID := currentCompanyID(c)

	var req LinkClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	rental, ok := findRental(c, companyID, c.Param("id"))
	if !ok {
		return
	}

	var client database.Client
	err := database.DB.Where("id = ? AND company_id = ?", req.ClientID, companyID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	rental.ClientID = &client.ID
	rental.ClientName = client.Name
	rental.ClientPhone = client.Phone
	rental.ClientAvatar = client.Avatar

	if err := database.DB.Save(&rental).Error; err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving rental"})
		return
	}

	c.JSON(http.StatusOK, rentalToView(rental))
}

// LinkVehicleRequest names the vehicle to link into a rental
type LinkVehicleRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required"`
}

// LinkVehicle attaches a vehicle to a rental, denormalizing name, plate and
// image. The tariff selection is vehicle-scoped, so it resets on change.
func LinkVehicle(c *gin.Context) {
	companyID := currentCompanyID(c)

	var req LinkVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	rental, ok := findRental(c, companyID, c.Param("id"))
	if !ok {
		return
	}

	var vehicle database.Vehicle
	err := database.DB.Where("id = ? AND company_id = ?", req.VehicleID, companyID).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	rental.VehicleID = &vehicle.ID
	rental.VehicleName = vehicle.Name
	rental.VehiclePlate = vehicle.Plate
	rental.VehicleImage = vehicle.Image
	rental.TariffID = nil

	if err := database.DB.Save(&rental).Error; err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving rental"})
		return
	}

	c.JSON(http.StatusOK, rentalToView(rental))
}

// SelectTariffRequest names a tariff of the rental's linked vehicle
type SelectTariffRequest struct {
	TariffID string `json:"tariff_id" binding:"required"`
}

// SelectTariff sets the rental's tariff and takes the rental amount from
// the tariff price. The tariff must belong to the linked vehicle.
func SelectTariff(c *gin.Context) {
	companyID := currentCompanyID(c)

	var req SelectTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	rental, ok := findRental(c, companyID, c.Param("id"))
	if !ok {
		return
	}

	if rental.VehicleID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rental has no linked vehicle"})
		return
	}

	var vehicle database.Vehicle
	if err := database.DB.Where("id = ? AND company_id = ?", *rental.VehicleID, companyID).First(&vehicle).Error; err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var tariff *database.Tariff
	for i := range vehicle.Tariffs {
		if vehicle.Tariffs[i].ID == req.TariffID {
			tariff = &vehicle.Tariffs[i]
			break
		}
	}
	if tariff == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tariff not found on linked vehicle"})
		return
	}

	rental.TariffID = &tariff.ID
	rental.Amount = tariff.Price

	if err := database.DB.Save(&rental).Error; err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving rental"})
		return
	}

	c.JSON(http.StatusOK, rentalToView(rental))
}

// CommentRequest carries a rental comment
type CommentRequest struct {
	Comment string `json:"comment"`
}

// SaveComment stores the rental's free-text comment and logs it to history
func SaveComment(c *gin.Context) {
	companyID := currentCompanyID(c)
	userID, _ := currentUserID(c)

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	rental, ok := findRental(c, companyID, c.Param("id"))
	if !ok {
		return
	}

	rental.Comment = req.Comment

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if saveErr := tx.Save(&rental).Error; saveErr != nil {
			return saveErr
		}
		entry := database.RentalHistory{
			ID:         uuid.NewString(),
			RentalID:   rental.ID,
			UserID:     &userID,
			ActionType: database.HistoryActionComment,
			Details:    "Добавлен комментарий",
			NewValue:   req.Comment,
		}
		return tx.Create(&entry).Error
	})

	if err != nil {
		zap.L().Error("comment save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving comment"})
		return
	}

	c.JSON(http.StatusOK, rentalToView(rental))
}

// HistoryEntryView is a history record joined with actor display info
type HistoryEntryView struct {
	ID         string    `json:"id"`
	ActionType string    `json:"action_type"`
	Details    string    `json:"details"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	CreatedAt  time.Time `json:"created_at"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
}

// GetRentalHistory lists a rental's audit trail, newest first. Entries whose
// actor no longer resolves are shown as System.
func GetRentalHistory(c *gin.Context) {
	companyID := currentCompanyID(c)

	rental, ok := findRental(c, companyID, c.Param("id"))
	if !ok {
		return
	}

	var entries []database.RentalHistory
	err := database.DB.Where("rental_id = ?", rental.ID).Order("created_at DESC").Find(&entries).Error
	if err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	userIDs := make([]uint, 0, len(entries))
	for _, e := range entries {
		if e.UserID != nil {
			userIDs = append(userIDs, *e.UserID)
		}
	}
	users := map[uint]database.User{}
	if len(userIDs) > 0 {
		var rows []database.User
		if err := database.DB.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			zap.L().Error("database error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		for _, row := range rows {
			users[row.ID] = row
		}
	}

	views := make([]HistoryEntryView, len(entries))
	for i, e := range entries {
		view := HistoryEntryView{
			ID:         e.ID,
			ActionType: e.ActionType,
			Details:    e.Details,
			OldValue:   e.OldValue,
			NewValue:   e.NewValue,
			CreatedAt:  e.CreatedAt,
			UserName:   "System",
		}
		if e.UserID != nil {
			if user, found := users[*e.UserID]; found {
				view.UserName = user.Name
				view.UserAvatar = user.AvatarURL
			}
		}
		views[i] = view
	}

	c.JSON(http.StatusOK, views)
}

// DeleteRental deletes a rental and its payments in a single transaction
func DeleteRental(c *gin.Context) {
	deleteRentalsCascade(c, []string{c.Param("id")})
}

// DeleteRentalsBulk deletes several rentals and their payments
func DeleteRentalsBulk(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	deleteRentalsCascade(c, req.IDs)
}

func deleteRentalsCascade(c *gin.Context, ids []string) {
	companyID := currentCompanyID(c)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rental_id IN ? AND company_id = ?", ids, companyID).Delete(&database.Payment{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ? AND company_id = ?", ids, companyID).Delete(&database.Rental{}).Error
	})

	if err != nil {
		zap.L().Error("rental delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting rental"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
