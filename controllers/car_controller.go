// File: /controllers/car_controller.go
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
	"dealertrack-api/utils"
)

// CarController owns the allocation view: cars enter here when assigned to
// the dealer and leave either by physical deletion or by moving through the
// stock and match flows.
type CarController struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewCarController(db *gorm.DB, log *zap.SugaredLogger) *CarController {
	return &CarController{db: db, log: log}
}

// CarRequest carries both single creates/updates and batch import rows.
// Required fields are checked in carFromRequest rather than with binding
// tags so a bad row in a batch fails only that row.
type CarRequest struct {
	DealerCode     string  `json:"dealer_code"`
	DealerName     string  `json:"dealer_name"`
	Model          string  `json:"model"`
	VIN            string  `json:"vin"`
	Color          string  `json:"color"`
	CarType        string  `json:"car_type"`
	POType         string  `json:"po_type"`
	FrontMotorNo   string  `json:"front_motor_no"`
	RearMotorNo    string  `json:"rear_motor_no"`
	BatteryNo      string  `json:"battery_no"`
	EngineNo       string  `json:"engine_no"`
	AllocationDate string  `json:"allocation_date"` // YYYY-MM-DD
	Price          float64 `json:"price"`
	Status         string  `json:"status"` // only transport states may be set directly
}

func (cc *CarController) GetCars(c *gin.Context) {
	var cars []models.Car
	if err := cc.db.Order("created_at DESC").Find(&cars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cars"})
		return
	}

	c.JSON(http.StatusOK, cars)
}

func (cc *CarController) CreateCar(c *gin.Context) {
	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, errMsg := cc.carFromRequest(&req)
	if errMsg != "" {
		utils.SendValidationError(c, errMsg)
		return
	}

	// New allocations start in a transport status; stock and sale statuses
	// are only reachable through their own flows.
	if req.Status != "" {
		status := models.CarStatus(req.Status)
		if !lifecycle.CanSetTransportStatus(models.CarStatusWaitingForTrailer, status) {
			utils.SendValidationError(c, "Cars can only be created in a transport status")
			return
		}
		car.Status = status
	}

	if field := cc.duplicateField(car, ""); field != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate " + field, "field": field})
		return
	}

	if err := cc.db.Create(car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create car"})
		return
	}

	utils.SendCreated(c, "Car allocated", car)
}

func (cc *CarController) UpdateCar(c *gin.Context) {
	id := c.Param("id")

	var car models.Car
	if err := cc.db.Where("id = ?", id).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, errMsg := cc.carFromRequest(&req)
	if errMsg != "" {
		utils.SendValidationError(c, errMsg)
		return
	}

	// Direct edits may only move a car between the transport states. Stock
	// and sale statuses are owned by the stock-in and match flows.
	newStatus := car.Status
	if req.Status != "" {
		newStatus = models.CarStatus(req.Status)
		if !lifecycle.CanSetTransportStatus(car.Status, newStatus) {
			c.JSON(http.StatusConflict, gin.H{"error": "Status change not allowed from " + string(car.Status) + " to " + string(newStatus)})
			return
		}
	}

	if field := cc.duplicateField(updated, car.ID); field != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate " + field, "field": field})
		return
	}

	car.DealerCode = updated.DealerCode
	car.DealerName = updated.DealerName
	car.Model = updated.Model
	car.VIN = updated.VIN
	car.Color = updated.Color
	car.CarType = updated.CarType
	car.POType = updated.POType
	car.FrontMotorNo = updated.FrontMotorNo
	car.RearMotorNo = updated.RearMotorNo
	car.BatteryNo = updated.BatteryNo
	car.EngineNo = updated.EngineNo
	car.AllocationDate = updated.AllocationDate
	car.Price = updated.Price
	car.Status = newStatus

	if err := cc.db.Save(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update car"})
		return
	}

	c.JSON(http.StatusOK, car)
}

// DeleteCar removes a car permanently. Only reachable from the allocation
// view; cars still linked to a match or already sold are refused.
func (cc *CarController) DeleteCar(c *gin.Context) {
	id := c.Param("id")

	var car models.Car
	if err := cc.db.Where("id = ?", id).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	var matchCount int64
	cc.db.Model(&models.Match{}).Where("car_id = ?", car.ID).Count(&matchCount)

	if err := lifecycle.CanDeleteCar(&car, matchCount > 0); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if err := cc.db.Delete(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete car"})
		return
	}

	cc.log.Infow("car deleted", "id", car.ID, "vin", car.VIN)
	utils.SendSuccess(c, "Car deleted", nil)
}

// BatchImport allocates many cars at once. Items are applied independently:
// the response always lists per-item outcomes, never a single aggregate
// result.
func (cc *CarController) BatchImport(c *gin.Context) {
	var reqs []CarRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := utils.BatchResult{Succeeded: []string{}, Duplicates: []utils.BatchItem{}, Failed: []utils.BatchItem{}}
	seenVINs := make(map[string]bool)

	for _, req := range reqs {
		car, errMsg := cc.carFromRequest(&req)
		if errMsg != "" {
			result.Failed = append(result.Failed, utils.BatchItem{VIN: req.VIN, Reason: errMsg})
			continue
		}

		if seenVINs[car.VIN] {
			result.Duplicates = append(result.Duplicates, utils.BatchItem{VIN: car.VIN, Reason: "Duplicate vin within import"})
			continue
		}
		seenVINs[car.VIN] = true

		if field := cc.duplicateField(car, ""); field != "" {
			result.Duplicates = append(result.Duplicates, utils.BatchItem{VIN: car.VIN, Reason: "Duplicate " + field})
			continue
		}

		if err := cc.db.Create(car).Error; err != nil {
			result.Failed = append(result.Failed, utils.BatchItem{VIN: car.VIN, Reason: "Failed to create car"})
			continue
		}

		result.Succeeded = append(result.Succeeded, car.VIN)
	}

	cc.log.Infow("car import finished",
		"succeeded", len(result.Succeeded),
		"duplicates", len(result.Duplicates),
		"failed", len(result.Failed),
	)

	c.JSON(http.StatusOK, result)
}

func (cc *CarController) carFromRequest(req *CarRequest) (*models.Car, string) {
	if req.Model == "" {
		return nil, "Model is required"
	}
	if req.VIN == "" {
		return nil, "VIN is required"
	}
	if !utils.IsValidVIN(req.VIN) {
		return nil, "Invalid VIN: " + req.VIN
	}

	var allocationDate *time.Time
	if req.AllocationDate != "" {
		t, err := time.Parse("2006-01-02", req.AllocationDate)
		if err != nil {
			return nil, "Invalid allocation date, expected YYYY-MM-DD"
		}
		allocationDate = &t
	}

	return &models.Car{
		ID:             uuid.New().String(),
		DealerCode:     req.DealerCode,
		DealerName:     req.DealerName,
		Model:          req.Model,
		VIN:            req.VIN,
		Color:          req.Color,
		CarType:        req.CarType,
		POType:         req.POType,
		FrontMotorNo:   optional(req.FrontMotorNo),
		RearMotorNo:    optional(req.RearMotorNo),
		BatteryNo:      optional(req.BatteryNo),
		EngineNo:       optional(req.EngineNo),
		AllocationDate: allocationDate,
		Price:          req.Price,
		Status:         models.CarStatusWaitingForTrailer,
	}, ""
}

// duplicateField returns the user-facing name of the first unique field that
// collides with another car, or "" when the car is clean. Checking each field
// up front gives the client a specific message instead of a raw constraint
// error.
func (cc *CarController) duplicateField(car *models.Car, excludeID string) string {
	query := func(field, value string) bool {
		var count int64
		q := cc.db.Model(&models.Car{}).Where(field+" = ?", value)
		if excludeID != "" {
			q = q.Where("id != ?", excludeID)
		}
		q.Count(&count)
		return count > 0
	}

	if query("vin", car.VIN) {
		return "vin"
	}
	for field, value := range car.SerialNumbers() {
		if query(field, value) {
			return field
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
