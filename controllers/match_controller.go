// File: /controllers/match_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dealertrack-api/lifecycle"
	"dealertrack-api/models"
	"dealertrack-api/services"
	"dealertrack-api/utils"
)

// MatchController pairs in-stock cars with customers. Every match write and
// the derived car status write run in one transaction so the pair can never
// come apart halfway.
type MatchController struct {
	db           *gorm.DB
	log          *zap.SugaredLogger
	emailService *services.EmailService
}

func NewMatchController(db *gorm.DB, log *zap.SugaredLogger, emailService *services.EmailService) *MatchController {
	return &MatchController{db: db, log: log, emailService: emailService}
}

type MatchRequest struct {
	CarID           string `json:"car_id"`
	CustomerName    string `json:"customer_name" binding:"required"`
	SalespersonName string `json:"salesperson_name" binding:"required"`
	SaleDate        string `json:"sale_date"` // YYYY-MM-DD
	Status          string `json:"status"`
	LicensePlate    string `json:"license_plate"`
	Notes           string `json:"notes"`
}

func (mc *MatchController) GetMatches(c *gin.Context) {
	var matches []models.Match
	if err := mc.db.Preload("Car").Order("created_at DESC").Find(&matches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CarID == "" {
		utils.SendValidationError(c, "car_id is required")
		return
	}

	status, saleDate, errMsg := parseMatchFields(req.Status, req.SaleDate)
	if errMsg != "" {
		utils.SendValidationError(c, errMsg)
		return
	}

	// Hard gate: a delivered match without a sale date would let the car
	// reach SOLD with no date on record.
	if err := lifecycle.ValidateMatch(status, saleDate); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var car models.Car
	if err := mc.db.Where("id = ?", req.CarID).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	if err := lifecycle.CanCreateMatch(&car); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	// New matches only pick from the active roster. Names on historical
	// matches are left alone even after a salesperson goes inactive.
	var salespersonCount int64
	mc.db.Model(&models.Salesperson{}).Where("name = ? AND active = ?", req.SalespersonName, true).Count(&salespersonCount)
	if salespersonCount == 0 {
		utils.SendValidationError(c, "Salesperson is not on the active roster")
		return
	}

	match := models.Match{
		ID:              uuid.New().String(),
		CarID:           car.ID,
		CustomerName:    req.CustomerName,
		SalespersonName: req.SalespersonName,
		SaleDate:        saleDate,
		Status:          status,
		LicensePlate:    req.LicensePlate,
		Notes:           req.Notes,
	}

	newStatus := lifecycle.DeriveCarStatus(match.Status, match.SaleDate)

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&match).Error; err != nil {
			return err
		}
		return tx.Model(&models.Car{}).Where("id = ?", car.ID).
			Update("status", newStatus).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create match"})
		return
	}

	car.Status = newStatus
	match.Car = car
	mc.notifyIfDelivered(&match, &car, models.MatchStatus(""))

	utils.SendCreated(c, "Match created", match)
}

func (mc *MatchController) UpdateMatch(c *gin.Context) {
	id := c.Param("id")

	var match models.Match
	if err := mc.db.Where("id = ?", id).First(&match).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, saleDate, errMsg := parseMatchFields(req.Status, req.SaleDate)
	if errMsg != "" {
		utils.SendValidationError(c, errMsg)
		return
	}

	if err := lifecycle.ValidateMatch(status, saleDate); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var car models.Car
	if err := mc.db.Where("id = ?", match.CarID).First(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Linked car not found"})
		return
	}

	previousStatus := match.Status
	match.CustomerName = req.CustomerName
	match.SalespersonName = req.SalespersonName
	match.SaleDate = saleDate
	match.Status = status
	match.LicensePlate = req.LicensePlate
	match.Notes = req.Notes

	newStatus := lifecycle.DeriveCarStatus(match.Status, match.SaleDate)

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&match).Error; err != nil {
			return err
		}
		// Skip the car write when it already holds the derived status.
		if car.Status == newStatus {
			return nil
		}
		return tx.Model(&models.Car{}).Where("id = ?", car.ID).
			Update("status", newStatus).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update match"})
		return
	}

	car.Status = newStatus
	match.Car = car
	mc.notifyIfDelivered(&match, &car, previousStatus)

	c.JSON(http.StatusOK, match)
}

// DeleteMatch unlinks the reservation. The formerly matched car always
// returns to IN_STOCK, however far the match had progressed.
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	id := c.Param("id")

	var match models.Match
	if err := mc.db.Where("id = ?", id).First(&match).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	}

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&match).Error; err != nil {
			return err
		}
		return tx.Model(&models.Car{}).Where("id = ?", match.CarID).
			Update("status", lifecycle.Unlink()).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete match"})
		return
	}

	mc.log.Infow("match deleted", "id", match.ID, "car_id", match.CarID)
	utils.SendSuccess(c, "Match deleted", nil)
}

// notifyIfDelivered sends the sale confirmation when a match transitions
// into DELIVERED. Mail failures are logged and never fail the request.
func (mc *MatchController) notifyIfDelivered(match *models.Match, car *models.Car, previous models.MatchStatus) {
	if match.Status != models.MatchStatusDelivered || previous == models.MatchStatusDelivered {
		return
	}
	if err := mc.emailService.SendSaleConfirmation(match, car); err != nil {
		mc.log.Warnw("sale confirmation not sent", "vin", car.VIN, "error", err)
	}
}

func parseMatchFields(statusStr, saleDateStr string) (models.MatchStatus, *time.Time, string) {
	status := models.MatchStatusWaitingForContract
	if statusStr != "" {
		status = models.MatchStatus(statusStr)
		switch status {
		case models.MatchStatusWaitingForContract,
			models.MatchStatusWaitingForPO,
			models.MatchStatusPostponed,
			models.MatchStatusDelivered:
		default:
			return "", nil, "Invalid match status"
		}
	}

	var saleDate *time.Time
	if saleDateStr != "" {
		t, err := time.Parse("2006-01-02", saleDateStr)
		if err != nil {
			return "", nil, "Invalid sale date, expected YYYY-MM-DD"
		}
		saleDate = &t
	}

	return status, saleDate, ""
}
