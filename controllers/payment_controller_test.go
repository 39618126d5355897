package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alchinkaz/dream-rent-crm-new/database"
)

func seedClientWithRental(t *testing.T, debt int64) (database.Client, database.Rental) {
	t.Helper()
	client := database.Client{ID: "client-1", CompanyID: testCompanyID, Name: "Айдос", Phone: "+7 701 111 22 33"}
	require.NoError(t, database.DB.Create(&client).Error)

	rental := seedRental(t, database.Rental{
		ID:            "1234",
		Status:        database.RentalStatusRented,
		ClientID:      &client.ID,
		ClientName:    client.Name,
		ClientPhone:   client.Phone,
		Amount:        70000,
		Debt:          debt,
		PaymentStatus: database.PaymentStatusPending,
	})
	return client, rental
}

func TestCreatePaymentRecomputesDebt(t *testing.T) {
	tests := []struct {
		name       string
		debt       int64
		amount     int64
		wantDebt   int64
		wantStatus string
	}{
		{"partial payment", 70000, 20000, 50000, database.PaymentStatusPartially},
		{"exact payment", 70000, 70000, 0, database.PaymentStatusPaid},
		{"overpayment clamps to zero", 70000, 100000, 0, database.PaymentStatusPaid},
		{"payment on settled rental", 0, 5000, 0, database.PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestDB(t)
			_, rental := seedClientWithRental(t, tt.debt)

			w := invoke(t, CreatePayment, http.MethodPost, "/api/payments", nil, gin.H{
				"rental_id": rental.ID,
				"amount":    tt.amount,
				"method":    database.PaymentMethodCash,
			})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var saved database.Rental
			require.NoError(t, database.DB.First(&saved, "id = ?", rental.ID).Error)
			assert.Equal(t, tt.wantDebt, saved.Debt)
			assert.Equal(t, tt.wantStatus, saved.PaymentStatus)
		})
	}
}

func TestCreatePaymentWritesPaymentAndHistory(t *testing.T) {
	setupTestDB(t)
	client, rental := seedClientWithRental(t, 70000)

	w := invoke(t, CreatePayment, http.MethodPost, "/api/payments", nil, gin.H{
		"rental_id": rental.ID,
		"amount":    20000,
		"method":    database.PaymentMethodCash,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payments []database.Payment
	require.NoError(t, database.DB.Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(20000), payments[0].Amount)
	assert.Equal(t, database.PaymentTypeIncome, payments[0].Type)
	assert.Equal(t, &client.ID, payments[0].ClientID)
	assert.Equal(t, "Оплата по аренде #1234", payments[0].Comment)

	var entries []database.RentalHistory
	require.NoError(t, database.DB.Where("rental_id = ?", rental.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, database.HistoryActionPayment, entries[0].ActionType)
	assert.Equal(t, "Принята оплата: 20 000 ₸ (Наличные)", entries[0].Details)
}

func TestCreatePaymentRecordsTransactionID(t *testing.T) {
	setupTestDB(t)
	_, rental := seedClientWithRental(t, 70000)

	w := invoke(t, CreatePayment, http.MethodPost, "/api/payments", nil, gin.H{
		"rental_id":      rental.ID,
		"amount":         70000,
		"method":         database.PaymentMethodBank,
		"transaction_id": "order_Nxq8Yt3a",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payments []database.Payment
	require.NoError(t, database.DB.Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, "order_Nxq8Yt3a", payments[0].TransactionID)
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	setupTestDB(t)
	_, rental := seedClientWithRental(t, 70000)

	for _, amount := range []int64{0, -500} {
		w := invoke(t, CreatePayment, http.MethodPost, "/api/payments", nil, gin.H{
			"rental_id": rental.ID,
			"amount":    amount,
			"method":    database.PaymentMethodCash,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	// nothing was written
	var paymentCount, historyCount int64
	require.NoError(t, database.DB.Model(&database.Payment{}).Count(&paymentCount).Error)
	require.NoError(t, database.DB.Model(&database.RentalHistory{}).Count(&historyCount).Error)
	assert.Zero(t, paymentCount)
	assert.Zero(t, historyCount)

	var saved database.Rental
	require.NoError(t, database.DB.First(&saved, "id = ?", rental.ID).Error)
	assert.Equal(t, int64(70000), saved.Debt)
}

func TestCreatePaymentRequiresLinkedClient(t *testing.T) {
	setupTestDB(t)
	rental := seedRental(t, database.Rental{ID: "2345", Status: database.RentalStatusRented, Debt: 30000})

	w := invoke(t, CreatePayment, http.MethodPost, "/api/payments", nil, gin.H{
		"rental_id": rental.ID,
		"amount":    10000,
		"method":    database.PaymentMethodBank,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentUnknownRental(t *testing.T) {
	setupTestDB(t)

	w := invoke(t, CreatePayment, http.MethodPost, "/api/payments", nil, gin.H{
		"rental_id": "9999",
		"amount":    10000,
		"method":    database.PaymentMethodCash,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePaymentRejectsInvalidMethod(t *testing.T) {
	setupTestDB(t)
	_, rental := seedClientWithRental(t, 70000)

	w := invoke(t, CreatePayment, http.MethodPost, "/api/payments", nil, gin.H{
		"rental_id": rental.ID,
		"amount":    10000,
		"method":    "crypto",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPaymentsRejectsMalformedDateFilter(t *testing.T) {
	setupTestDB(t)

	w := invoke(t, GetPayments, http.MethodGet, "/api/payments?from=2025-06-01", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = invoke(t, GetPayments, http.MethodGet, "/api/payments?to=garbage", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = invoke(t, GetPayments, http.MethodGet, "/api/payments?from=01.06.2025", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeletePaymentsBulk(t *testing.T) {
	setupTestDB(t)
	client, rental := seedClientWithRental(t, 70000)

	for _, id := range []string{"p-1", "p-2", "p-3"} {
		payment := database.Payment{
			ID: id, CompanyID: testCompanyID, RentalID: &rental.ID, ClientID: &client.ID,
			Amount: 5000, Type: database.PaymentTypeIncome, Method: database.PaymentMethodCash,
		}
		require.NoError(t, database.DB.Create(&payment).Error)
	}

	w := invoke(t, DeletePaymentsBulk, http.MethodPost, "/api/payments/bulk-delete", nil, gin.H{
		"ids": []string{"p-1", "p-3"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var remaining []database.Payment
	require.NoError(t, database.DB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "p-2", remaining[0].ID)
}
