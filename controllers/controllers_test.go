package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Alchinkaz/dream-rent-crm-new/database"
)

const testCompanyID = "cars"

// setupTestDB points the package at a fresh in-memory database
func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&database.Company{},
		&database.User{},
		&database.Client{},
		&database.Vehicle{},
		&database.Rental{},
		&database.Payment{},
		&database.RentalHistory{},
		&database.Notification{},
	)
	require.NoError(t, err)

	database.DB = db
}

// invoke runs a handler with an authenticated, company-scoped test context
func invoke(t *testing.T, handler gin.HandlerFunc, method, path string, params gin.Params, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params

	c.Set("userID", uint(1))
	c.Set("email", "admin@test.kz")
	c.Set("role", database.RoleAdmin)
	c.Set("companyID", testCompanyID)

	handler(c)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func seedRental(t *testing.T, rental database.Rental) database.Rental {
	t.Helper()
	if rental.CompanyID == "" {
		rental.CompanyID = testCompanyID
	}
	if rental.Status == "" {
		rental.Status = database.RentalStatusIncoming
	}
	if rental.PaymentStatus == "" {
		rental.PaymentStatus = database.PaymentStatusPending
	}
	require.NoError(t, database.DB.Create(&rental).Error)
	return rental
}
