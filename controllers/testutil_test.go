// File: /controllers/testutil_test.go
package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dealertrack-api/config"
	"dealertrack-api/models"
	"dealertrack-api/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Car{}, &models.Match{}, &models.Salesperson{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestRouter wires every controller without the auth middleware; the
// permission gate has its own tests in the middleware package.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	emailService := services.NewEmailService(&config.Config{}, log)

	carController := NewCarController(db, log)
	stockController := NewStockController(db, log)
	matchController := NewMatchController(db, log, emailService)
	salespersonController := NewSalespersonController(db)
	statsController := NewStatsController(db)

	r := gin.New()
	r.GET("/cars", carController.GetCars)
	r.POST("/cars", carController.CreateCar)
	r.POST("/cars/import", carController.BatchImport)
	r.PUT("/cars/:id", carController.UpdateCar)
	r.DELETE("/cars/:id", carController.DeleteCar)

	r.GET("/stock", stockController.GetStock)
	r.POST("/stock/batch", stockController.BatchStockIn)
	r.POST("/stock/:id", stockController.StockIn)
	r.DELETE("/stock/:id", stockController.RemoveFromStock)

	r.GET("/matches", matchController.GetMatches)
	r.POST("/matches", matchController.CreateMatch)
	r.PUT("/matches/:id", matchController.UpdateMatch)
	r.DELETE("/matches/:id", matchController.DeleteMatch)

	r.GET("/salespersons", salespersonController.GetSalespersons)
	r.POST("/salespersons", salespersonController.CreateSalesperson)
	r.PUT("/salespersons/:id", salespersonController.UpdateSalesperson)

	r.GET("/stats/overview", statsController.GetOverview)

	return r
}

func performJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedCar(t *testing.T, db *gorm.DB, vin string, status models.CarStatus) *models.Car {
	t.Helper()
	car := &models.Car{
		ID:     uuid.New().String(),
		Model:  "Falcon EV",
		VIN:    vin,
		Status: status,
	}
	if status == models.CarStatusInStock || status == models.CarStatusReserved || status == models.CarStatusSold {
		when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		car.StockInDate = &when
		car.StockLocation = models.StockLocationMainBranch
	}
	if err := db.Create(car).Error; err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return car
}

func seedSalesperson(t *testing.T, db *gorm.DB, name string, active bool) *models.Salesperson {
	t.Helper()
	sp := &models.Salesperson{ID: uuid.New().String(), Name: name, Active: active}
	if err := db.Create(sp).Error; err != nil {
		t.Fatalf("seed salesperson: %v", err)
	}
	return sp
}

func reloadCar(t *testing.T, db *gorm.DB, id string) *models.Car {
	t.Helper()
	var car models.Car
	if err := db.Where("id = ?", id).First(&car).Error; err != nil {
		t.Fatalf("reload car: %v", err)
	}
	return &car
}
