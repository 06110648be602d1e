package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pos-backend/config"
	"pos-backend/internal/middleware"
	"pos-backend/internal/models"
	"pos-backend/internal/notify"
	"pos-backend/internal/service"
)

// testEnv wires the full route surface against a throwaway sqlite database.
// Auth middleware is left off the routes; admin endpoints read the actor
// injected via env.actor instead.
type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	actor  *models.User
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		Server:  config.ServerConfig{JWTSecret: "test-secret", JWTExpirationHours: 1},
		Billing: config.BillingConfig{BillPrefix: "VANS", BillPad: 4},
		Otp:     config.OtpConfig{Length: 6, ExpiryMinutes: 5},
	}

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

	env := &testEnv{db: db}

	sequencer := service.NewBillSequencer(db, "VANS", 4)
	billingSvc := service.NewBillingService(db, sequencer)
	reportingSvc := service.NewReportingService(db, time.Local, nil)
	authSvc := service.NewAuthService(db, notify.LogNotifier{}, config.AppConfig.Otp)

	r := gin.New()
	injectActor := func(c *gin.Context) {
		if env.actor != nil {
			c.Set(middleware.ActorKey, env.actor)
		}
	}

	authHandler := NewAuthHandler(authSvc)
	userRoutes := r.Group("/api/v1/users")
	{
		userRoutes.POST("/signup", authHandler.Signup)
		userRoutes.POST("/verify-signup", authHandler.VerifySignup)
		userRoutes.POST("/login", authHandler.Login)
		userRoutes.POST("/verify-otp", authHandler.VerifyOtp)
	}

	adminHandler := NewAdminHandler(db)
	r.POST("/api/v1/admin/create-user", injectActor, adminHandler.CreateUser)

	billingHandler := NewBillingHandler(billingSvc)
	billRoutes := r.Group("/api/v1/bills", injectActor)
	{
		billRoutes.POST("", billingHandler.CreateBill)
		billRoutes.PUT("/:id", billingHandler.EditBill)
		billRoutes.PATCH("/:id/status", billingHandler.UpdateBillStatus)
		billRoutes.DELETE("/:id", billingHandler.DeleteBill)
		billRoutes.GET("/id/:billId", billingHandler.GetBillByBillId)
		billRoutes.GET("/all", billingHandler.GetAllBills)
		billRoutes.GET("/users/search", billingHandler.SearchUserByPhone)
		billRoutes.GET("/user", billingHandler.GetBillsByUserPhone)
	}

	itemHandler := NewItemHandler(db)
	itemRoutes := r.Group("/api/v1/items")
	{
		itemRoutes.GET("", itemHandler.GetAllItems)
		itemRoutes.POST("", itemHandler.CreateItem)
		itemRoutes.GET("/search", itemHandler.SearchItems)
		itemRoutes.GET("/:id", itemHandler.GetItemById)
		itemRoutes.PUT("/:id", itemHandler.UpdateItem)
		itemRoutes.DELETE("/:id", itemHandler.DeleteItem)
		itemRoutes.POST("/:id/rating", itemHandler.AddRating)
	}

	categoryHandler := NewCategoryHandler(db)
	categoryRoutes := r.Group("/api/v1/categories")
	{
		categoryRoutes.GET("", categoryHandler.GetAllCategories)
		categoryRoutes.POST("", categoryHandler.CreateCategory)
		categoryRoutes.GET("/:id", categoryHandler.GetCategoryById)
		categoryRoutes.PUT("/:id", categoryHandler.UpdateCategory)
		categoryRoutes.DELETE("/:id", categoryHandler.DeleteCategory)
	}

	reportHandler := NewReportHandler(reportingSvc)
	r.GET("/api/v1/reports/dashboard", reportHandler.GetDashboardStats)

	env.router = r
	return env
}

// do performs a request with an optional JSON body and returns the recorder.
func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// decodeBody parses the response body into a generic map for envelope
// assertions.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedTestCatalog(t *testing.T, db *gorm.DB) (itemA, itemB models.Item) {
	t.Helper()
	category := models.Category{Name: "Sneakers", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	itemA = models.Item{Name: "Classic Slip-On", Description: "Canvas slip-on", CategoryID: category.ID, Price: 100, SKU: "SKU-A", IsActive: true}
	itemB = models.Item{Name: "Ankle Socks", Description: "Pack of 3", CategoryID: category.ID, Price: 50, SKU: "SKU-B", IsActive: true}
	require.NoError(t, db.Create(&itemA).Error)
	require.NoError(t, db.Create(&itemB).Error)
	return itemA, itemB
}

func seedTestUser(t *testing.T, db *gorm.DB, phone string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		UserID: "USR-test-" + phone,
		Name:   "Test " + string(role),
		Email:  phone + "@example.com",
		Phone:  phone,
		Roles:  role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
