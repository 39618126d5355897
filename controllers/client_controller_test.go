package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alchinkaz/dream-rent-crm-new/database"
)

func TestSaveClientPreservesAggregates(t *testing.T) {
	setupTestDB(t)

	existing := database.Client{
		ID: "client-1", CompanyID: testCompanyID, Name: "Айдос", Phone: "+7 701 111 22 33",
		Rating: database.ClientRatingTrusted, RentalCount: 3, TotalAmount: 210000, DebtAmount: 50000,
	}
	require.NoError(t, database.DB.Create(&existing).Error)

	w := invoke(t, SaveClient, http.MethodPut, "/api/clients/client-1", nil, gin.H{
		"id":    "client-1",
		"name":  "Айдос Б.",
		"phone": "+7 701 111 22 33",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved database.Client
	require.NoError(t, database.DB.First(&saved, "id = ?", "client-1").Error)
	assert.Equal(t, "Айдос Б.", saved.Name)
	assert.Equal(t, 3, saved.RentalCount)
	assert.Equal(t, int64(210000), saved.TotalAmount)
	assert.Equal(t, int64(50000), saved.DebtAmount)
}

func TestSaveClientGeneratesIDAndDefaultRating(t *testing.T) {
	setupTestDB(t)

	w := invoke(t, SaveClient, http.MethodPost, "/api/clients", nil, gin.H{
		"name":  "Айдос",
		"phone": "+7 701 111 22 33",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved database.Client
	decodeJSON(t, w, &saved)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, database.ClientRatingTrusted, saved.Rating)
}

func TestGetClientsSearchByIIN(t *testing.T) {
	setupTestDB(t)

	withDoc := database.Client{
		ID: "client-1", CompanyID: testCompanyID, Name: "Айдос", Phone: "+7 701 111 22 33",
		Documents: database.DocumentList{{Type: "id_card", Number: "043", IIN: "990101300123"}},
	}
	other := database.Client{ID: "client-2", CompanyID: testCompanyID, Name: "Бекзат", Phone: "+7 702 222 33 44"}
	require.NoError(t, database.DB.Create(&withDoc).Error)
	require.NoError(t, database.DB.Create(&other).Error)

	w := invoke(t, GetClients, http.MethodGet, "/api/clients?search=990101", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var clients []database.Client
	decodeJSON(t, w, &clients)
	require.Len(t, clients, 1)
	assert.Equal(t, "client-1", clients[0].ID)
}

func TestGetClientsFilterByRating(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, database.DB.Create(&database.Client{ID: "c-1", CompanyID: testCompanyID, Name: "A", Rating: database.ClientRatingTrusted}).Error)
	require.NoError(t, database.DB.Create(&database.Client{ID: "c-2", CompanyID: testCompanyID, Name: "B", Rating: database.ClientRatingBlacklist}).Error)

	w := invoke(t, GetClients, http.MethodGet, "/api/clients?rating=blacklist", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var clients []database.Client
	decodeJSON(t, w, &clients)
	require.Len(t, clients, 1)
	assert.Equal(t, "c-2", clients[0].ID)
}

func TestDeleteClientCascadesPayments(t *testing.T) {
	setupTestDB(t)

	client := database.Client{ID: "client-1", CompanyID: testCompanyID, Name: "Айдос"}
	keep := database.Client{ID: "client-2", CompanyID: testCompanyID, Name: "Бекзат"}
	require.NoError(t, database.DB.Create(&client).Error)
	require.NoError(t, database.DB.Create(&keep).Error)

	for _, p := range []database.Payment{
		{ID: "p-1", CompanyID: testCompanyID, ClientID: &client.ID, Amount: 5000, Type: database.PaymentTypeIncome, Method: database.PaymentMethodCash},
		{ID: "p-2", CompanyID: testCompanyID, ClientID: &keep.ID, Amount: 7000, Type: database.PaymentTypeIncome, Method: database.PaymentMethodCash},
	} {
		require.NoError(t, database.DB.Create(&p).Error)
	}

	params := gin.Params{{Key: "id", Value: client.ID}}
	w := invoke(t, DeleteClient, http.MethodDelete, "/api/clients/client-1", params, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var clients []database.Client
	require.NoError(t, database.DB.Find(&clients).Error)
	require.Len(t, clients, 1)
	assert.Equal(t, "client-2", clients[0].ID)

	var payments []database.Payment
	require.NoError(t, database.DB.Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, "p-2", payments[0].ID)
}

func TestDeleteClientIgnoresOtherCompany(t *testing.T) {
	setupTestDB(t)

	foreign := database.Client{ID: "client-scoots", CompanyID: "scoots", Name: "Чужой"}
	require.NoError(t, database.DB.Create(&foreign).Error)
	payment := database.Payment{
		ID: "p-scoots", CompanyID: "scoots", ClientID: &foreign.ID,
		Amount: 5000, Type: database.PaymentTypeIncome, Method: database.PaymentMethodCash,
	}
	require.NoError(t, database.DB.Create(&payment).Error)

	// the handler runs in a cars scope, the target belongs to scoots
	params := gin.Params{{Key: "id", Value: foreign.ID}}
	invoke(t, DeleteClient, http.MethodDelete, "/api/clients/client-scoots", params, nil)

	var clientCount, paymentCount int64
	require.NoError(t, database.DB.Model(&database.Client{}).Count(&clientCount).Error)
	require.NoError(t, database.DB.Model(&database.Payment{}).Count(&paymentCount).Error)
	assert.Equal(t, int64(1), clientCount)
	assert.Equal(t, int64(1), paymentCount, "foreign company payments must survive a scoped delete")
}

func TestRecomputeClientAggregates(t *testing.T) {
	setupTestDB(t)

	client := database.Client{ID: "client-1", CompanyID: testCompanyID, Name: "Айдос", Phone: "+7 701 111 22 33"}
	require.NoError(t, database.DB.Create(&client).Error)

	// one linked rental, one matched by phone only, one overdue
	seedRental(t, database.Rental{ID: "1111", ClientID: &client.ID, Status: database.RentalStatusCompleted, Amount: 70000, Debt: 0})
	seedRental(t, database.Rental{ID: "2222", ClientPhone: client.Phone, Status: database.RentalStatusRented, Amount: 45000, Debt: 20000})
	seedRental(t, database.Rental{ID: "3333", ClientID: &client.ID, Status: database.RentalStatusOverdue, Amount: 45000, Debt: 45000})

	// unrelated rental must not count
	seedRental(t, database.Rental{ID: "4444", Status: database.RentalStatusRented, Amount: 99000, Debt: 99000})

	params := gin.Params{{Key: "id", Value: client.ID}}
	w := invoke(t, RecomputeClientAggregates, http.MethodPost, "/api/clients/client-1/recompute", params, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved database.Client
	require.NoError(t, database.DB.First(&saved, "id = ?", client.ID).Error)
	assert.Equal(t, 3, saved.RentalCount)
	assert.Equal(t, int64(160000), saved.TotalAmount)
	assert.Equal(t, int64(65000), saved.DebtAmount)
	assert.Equal(t, int64(95000), saved.PaidAmount)
	assert.Equal(t, 1, saved.OverdueCount)
	assert.Equal(t, int64(45000), saved.OverdueAmount)
}
