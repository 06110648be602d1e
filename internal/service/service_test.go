package service

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pos-backend/internal/models"
)

// setupTestDB opens a file-backed sqlite database in a temp dir. Immediate
// transactions plus a generous busy timeout let the concurrency tests run
// against real lock contention.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_txlock=immediate", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Otp{},
		&models.Category{},
		&models.Item{},
		&models.Bill{},
		&models.BillLine{},
		&models.Sequence{},
	))
	return db
}

// seedCatalog creates a category with two items: A at 100 and B at 50.
func seedCatalog(t *testing.T, db *gorm.DB) (itemA, itemB models.Item) {
	t.Helper()
	category := models.Category{Name: "Sneakers", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	itemA = models.Item{Name: "Classic Slip-On", Description: "Canvas slip-on", CategoryID: category.ID, Price: 100, SKU: "SKU-A", IsActive: true}
	itemB = models.Item{Name: "Ankle Socks", Description: "Pack of 3", CategoryID: category.ID, Price: 50, SKU: "SKU-B", IsActive: true}
	require.NoError(t, db.Create(&itemA).Error)
	require.NoError(t, db.Create(&itemB).Error)
	return itemA, itemB
}

// seedUser creates a customer for the given phone, reusing an existing one.
func seedUser(t *testing.T, db *gorm.DB, phone string) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where(models.User{Phone: phone}).
		Attrs(models.User{UserID: "USR-test-" + phone, Roles: models.RoleUser}).
		FirstOrCreate(&user).Error)
	return user
}

// seedBill inserts a bill directly with a fixed creation time, bypassing the
// billing engine. Used by reporting tests.
func seedBill(t *testing.T, db *gorm.DB, billID, phone string, created time.Time, subTotal, discount float64) models.Bill {
	t.Helper()
	user := seedUser(t, db, phone)
	bill := models.Bill{
		BillID:        billID,
		UserID:        user.ID,
		Phone:         phone,
		SubTotal:      subTotal,
		Discount:      discount,
		GrandTotal:    subTotal - discount,
		PaymentMethod: models.PaymentCash,
		Status:        models.StatusPaid,
		CreatedAt:     created,
	}
	require.NoError(t, db.Create(&bill).Error)
	return bill
}
