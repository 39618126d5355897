package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Alchinkaz/dream-rent-crm-new/database"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.Rental{}, &database.Notification{}))
	database.DB = db
}

func seedRental(t *testing.T, id, status string, end time.Time) {
	t.Helper()
	rental := database.Rental{ID: id, CompanyID: "cars", Status: status, EndDate: &end}
	require.NoError(t, database.DB.Create(&rental).Error)
}

func TestProposeOverdueRentals(t *testing.T) {
	setupTestDB(t)

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	seedRental(t, "1111", database.RentalStatusRented, past)   // proposal expected
	seedRental(t, "2222", database.RentalStatusRented, future) // still in period
	seedRental(t, "3333", database.RentalStatusBooked, past)   // not rented yet

	ProposeOverdueRentals()

	var notifications []database.Notification
	require.NoError(t, database.DB.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "1111", notifications[0].RentalID)
	assert.Equal(t, database.NotificationTypeOverdueProposal, notifications[0].Type)
	assert.False(t, notifications[0].IsRead)

	// statuses are never changed by the pass
	var rental database.Rental
	require.NoError(t, database.DB.First(&rental, "id = ?", "1111").Error)
	assert.Equal(t, database.RentalStatusRented, rental.Status)
}

func TestProposeOverdueRentalsIsIdempotent(t *testing.T) {
	setupTestDB(t)

	seedRental(t, "1111", database.RentalStatusRented, time.Now().Add(-time.Hour))

	ProposeOverdueRentals()
	ProposeOverdueRentals()

	var count int64
	require.NoError(t, database.DB.Model(&database.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
