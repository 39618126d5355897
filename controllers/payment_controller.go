package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Alchinkaz/dream-rent-crm-new/config"
	"github.com/Alchinkaz/dream-rent-crm-new/database"
	"github.com/Alchinkaz/dream-rent-crm-new/utils"
)

// PaymentRequest contains the data for recording a payment against a rental
type PaymentRequest struct {
	RentalID string `json:"rental_id" binding:"required"`
	Amount   int64  `json:"amount" binding:"required"`
	Method   string `json:"method" binding:"required,oneof=cash bank"`
	Type     string `json:"type" binding:"omitempty,oneof=income expense"`
	Comment  string `json:"comment"`

	// Gateway order id, present when the money arrived through the
	// online payment flow
	TransactionID string `json:"transaction_id"`
}

// CreatePayment records a payment: inserts the payment row, appends a
// history entry and recomputes the rental's debt as max(0, debt-amount),
// all in one transaction. Validation happens before any write.
func CreatePayment(c *gin.Context) {
	companyID := currentCompanyID(c)
	userID, _ := currentUserID(c)

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount must be positive"})
		return
	}
	if req.Type == "" {
		req.Type = database.PaymentTypeIncome
	}

	var rental database.Rental
	err := database.DB.Where("id = ? AND company_id = ?", req.RentalID, companyID).First(&rental).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if rental.ClientID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rental has no linked client"})
		return
	}

	methodLabel := "Наличные"
	if req.Method == database.PaymentMethodBank {
		methodLabel = "Безнал"
	}

	comment := req.Comment
	if comment == "" {
		comment = fmt.Sprintf("Оплата по аренде #%s", rental.ID)
	}

	payment := database.Payment{
		ID:                uuid.NewString(),
		CompanyID:         companyID,
		RentalID:          &rental.ID,
		ClientID:          rental.ClientID,
		ResponsibleUserID: userID,
		Amount:            req.Amount,
		Type:              req.Type,
		Method:            req.Method,
		Comment:           comment,
		TransactionID:     req.TransactionID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if createErr := tx.Create(&payment).Error; createErr != nil {
			return createErr
		}

		entry := database.RentalHistory{
			ID:         uuid.NewString(),
			RentalID:   rental.ID,
			UserID:     &userID,
			ActionType: database.HistoryActionPayment,
			Details:    fmt.Sprintf("Принята оплата: %s (%s)", utils.FormatCurrency(req.Amount), methodLabel),
		}
		if entryErr := tx.Create(&entry).Error; entryErr != nil {
			return entryErr
		}

		rental.Debt = rental.Debt - req.Amount
		if rental.Debt < 0 {
			rental.Debt = 0
		}
		if rental.Debt == 0 {
			rental.PaymentStatus = database.PaymentStatusPaid
		} else {
			rental.PaymentStatus = database.PaymentStatusPartially
		}
		return tx.Save(&rental).Error
	})

	if err != nil {
		zap.L().Error("payment recording failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment": payment,
		"rental":  rentalToView(rental),
	})
}

// PaymentView is a payment joined with client and responsible user display
// info, as rendered by the finance page.
type PaymentView struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	RentalID    string          `json:"rental_id"`
	Client      RentalPartyView `json:"client"`
	Method      string          `json:"method"`
	Type        string          `json:"type"`
	Amount      string          `json:"amount"`
	Comment     string          `json:"comment"`
	Responsible struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatarUrl"`
	} `json:"responsible"`
}

// GetPayments lists payments for the current company, newest first, with
// optional method, date range and search filters.
func GetPayments(c *gin.Context) {
	companyID := currentCompanyID(c)

	query := database.DB.Where("company_id = ?", companyID).Order("created_at DESC")
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}
	if from := c.Query("from"); from != "" {
		t, err := utils.ParseDateTime(from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		query = query.Where("created_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := utils.ParseDateTime(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		query = query.Where("created_at <= ?", t)
	}

	var payments []database.Payment
	if result := query.Find(&payments); result.Error != nil {
		zap.L().Error("database error", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	views, err := buildPaymentViews(companyID, payments)
	if err != nil {
		zap.L().Error("database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if q := strings.ToLower(c.Query("search")); q != "" {
		filtered := views[:0]
		for _, v := range views {
			if strings.Contains(strings.ToLower(v.Client.Name), q) || strings.Contains(v.RentalID, q) {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	c.JSON(http.StatusOK, views)
}

func buildPaymentViews(companyID string, payments []database.Payment) ([]PaymentView, error) {
	clientIDs := make([]string, 0, len(payments))
	userIDs := make([]uint, 0, len(payments))
	for _, p := range payments {
		if p.ClientID != nil {
			clientIDs = append(clientIDs, *p.ClientID)
		}
		if p.ResponsibleUserID != 0 {
			userIDs = append(userIDs, p.ResponsibleUserID)
		}
	}

	clients := map[string]database.Client{}
	if len(clientIDs) > 0 {
		var rows []database.Client
		if err := database.DB.Where("id IN ? AND company_id = ?", clientIDs, companyID).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			clients[row.ID] = row
		}
	}

	users := map[uint]database.User{}
	if len(userIDs) > 0 {
		var rows []database.User
		if err := database.DB.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			users[row.ID] = row
		}
	}

	views := make([]PaymentView, len(payments))
	for i, p := range payments {
		view := PaymentView{
			ID:       p.ID,
			Date:     utils.FormatDateTime(p.CreatedAt),
			RentalID: "—",
			Method:   p.Method,
			Type:     p.Type,
			Comment:  p.Comment,
		}
		if p.RentalID != nil {
			view.RentalID = *p.RentalID
		}

		sign := "+ "
		if p.Type == database.PaymentTypeExpense {
			sign = "- "
		}
		view.Amount = sign + utils.FormatCurrency(p.Amount)

		view.Client.Name = "Удаленный клиент"
		if p.ClientID != nil {
			if client, found := clients[*p.ClientID]; found {
				view.Client = RentalPartyView{Name: client.Name, Phone: client.Phone, AvatarURL: client.Avatar}
			}
		}

		view.Responsible.Name = "System"
		if user, found := users[p.ResponsibleUserID]; found {
			view.Responsible.Name = user.Name
			view.Responsible.Email = user.Email
			view.Responsible.AvatarURL = user.AvatarURL
		}

		views[i] = view
	}
	return views, nil
}

// DeletePayment removes a single payment row
func DeletePayment(c *gin.Context) {
	deletePayments(c, []string{c.Param("id")})
}

// DeletePaymentsBulk removes several payment rows
func DeletePaymentsBulk(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	deletePayments(c, req.IDs)
}

func deletePayments(c *gin.Context, ids []string) {
	err := database.DB.Where("id IN ? AND company_id = ?", ids, currentCompanyID(c)).Delete(&database.Payment{}).Error
	if err != nil {
		zap.L().Error("payment delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// CreateOnlinePaymentOrder creates a gateway order for a rental's
// outstanding debt so the client can pay remotely by card. The recorded
// payment still goes through CreatePayment once the money arrives.
func CreateOnlinePaymentOrder(c *gin.Context) {
	companyID := currentCompanyID(c)

	if config.AppConfig.RazorpayKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Online payments are not configured"})
		return
	}

	rental, ok := findRental(c, companyID, c.Param("id"))
	if !ok {
		return
	}

	if rental.Debt <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rental has no outstanding debt"})
		return
	}

	client := razorpay.NewClient(config.AppConfig.RazorpayKey, config.AppConfig.RazorpaySecret)

	// Gateway amounts are in the smallest currency unit
	data := map[string]interface{}{
		"amount":   rental.Debt * 100,
		"currency": "KZT",
		"receipt":  fmt.Sprintf("rental_%s_%d", rental.ID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"rental_id":  rental.ID,
			"company_id": companyID,
		},
	}

	order, err := client.Order.Create(data, nil)
	if err != nil {
		zap.L().Error("gateway order creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating payment order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": order["id"],
		"amount":   rental.Debt,
		"currency": "KZT",
		"key":      config.AppConfig.RazorpayKey,
	})
}
