// File: /controllers/stock_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dealertrack-api/lifecycle"
	"dealertrack-api/models"
	"dealertrack-api/utils"
)

// StockController owns the stock view: recording arrivals at a branch and
// soft removals back to UNLOADED. Deletion from the stock view is always the
// soft removal, never a physical delete.
type StockController struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewStockController(db *gorm.DB, log *zap.SugaredLogger) *StockController {
	return &StockController{db: db, log: log}
}

type StockInRequest struct {
	StockInDate   string `json:"stock_in_date" binding:"required"` // YYYY-MM-DD
	StockLocation string `json:"stock_location" binding:"required"`
	StockNo       string `json:"stock_no"`
}

type BatchStockInItem struct {
	VIN           string `json:"vin" binding:"required"`
	StockInDate   string `json:"stock_in_date" binding:"required"`
	StockLocation string `json:"stock_location" binding:"required"`
	StockNo       string `json:"stock_no"`
}

func (sc *StockController) GetStock(c *gin.Context) {
	statuses := []models.CarStatus{
		models.CarStatusInStock,
		models.CarStatusReserved,
		models.CarStatusSold,
	}

	query := sc.db.Where("status IN ?", statuses)
	if location := c.Query("location"); location != "" {
		query = query.Where("stock_location = ?", location)
	}

	var cars []models.Car
	if err := query.Order("stock_in_date DESC").Find(&cars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
		return
	}

	c.JSON(http.StatusOK, cars)
}

func (sc *StockController) StockIn(c *gin.Context) {
	id := c.Param("id")

	var req StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var car models.Car
	if err := sc.db.Where("id = ?", id).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	date, location, errMsg := parseStockFields(req.StockInDate, req.StockLocation)
	if errMsg != "" {
		utils.SendValidationError(c, errMsg)
		return
	}

	changed, err := lifecycle.StockIn(&car, date, location, req.StockNo)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if changed {
		if err := sc.db.Save(&car).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stock in car"})
			return
		}
		sc.log.Infow("car stocked in", "vin", car.VIN, "location", car.StockLocation)
	}

	c.JSON(http.StatusOK, car)
}

// BatchStockIn records many arrivals at once, keyed by VIN. Items apply
// independently; cars already in stock with identical fields count as
// duplicates rather than errors.
func (sc *StockController) BatchStockIn(c *gin.Context) {
	var items []BatchStockInItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := utils.BatchResult{Succeeded: []string{}, Duplicates: []utils.BatchItem{}, Failed: []utils.BatchItem{}}

	for _, item := range items {
		date, location, errMsg := parseStockFields(item.StockInDate, item.StockLocation)
		if errMsg != "" {
			result.Failed = append(result.Failed, utils.BatchItem{VIN: item.VIN, Reason: errMsg})
			continue
		}

		var car models.Car
		if err := sc.db.Where("vin = ?", item.VIN).First(&car).Error; err != nil {
			result.Failed = append(result.Failed, utils.BatchItem{VIN: item.VIN, Reason: "Car not found"})
			continue
		}

		changed, err := lifecycle.StockIn(&car, date, location, item.StockNo)
		if err != nil {
			result.Failed = append(result.Failed, utils.BatchItem{VIN: item.VIN, Reason: err.Error()})
			continue
		}
		if !changed {
			result.Duplicates = append(result.Duplicates, utils.BatchItem{VIN: item.VIN, Reason: "Already in stock"})
			continue
		}

		if err := sc.db.Save(&car).Error; err != nil {
			result.Failed = append(result.Failed, utils.BatchItem{VIN: item.VIN, Reason: "Failed to stock in car"})
			continue
		}

		result.Succeeded = append(result.Succeeded, item.VIN)
	}

	sc.log.Infow("batch stock-in finished",
		"succeeded", len(result.Succeeded),
		"duplicates", len(result.Duplicates),
		"failed", len(result.Failed),
	)

	c.JSON(http.StatusOK, result)
}

// RemoveFromStock reverts a stocked car to UNLOADED and clears its stock
// fields.
func (sc *StockController) RemoveFromStock(c *gin.Context) {
	id := c.Param("id")

	var car models.Car
	if err := sc.db.Where("id = ?", id).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	if err := lifecycle.RemoveFromStock(&car); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	// Save with explicit column list so the cleared stock fields are written
	// even though they are zero values.
	updates := map[string]interface{}{
		"status":         car.Status,
		"stock_in_date":  nil,
		"stock_location": "",
		"stock_no":       "",
	}
	if err := sc.db.Model(&car).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove car from stock"})
		return
	}

	sc.log.Infow("car removed from stock", "vin", car.VIN)
	c.JSON(http.StatusOK, car)
}

func parseStockFields(dateStr, locationStr string) (time.Time, models.StockLocation, string) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, "", "Invalid stock-in date, expected YYYY-MM-DD"
	}

	location := models.StockLocation(locationStr)
	if location != models.StockLocationMainBranch && location != models.StockLocationCityBranch {
		return time.Time{}, "", "Invalid stock location"
	}

	return date, location, ""
}
