// File: /controllers/salesperson_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"dealertrack-api/models"
	"dealertrack-api/utils"
)

type SalespersonController struct {
	db *gorm.DB
}

func NewSalespersonController(db *gorm.DB) *SalespersonController {
	return &SalespersonController{db: db}
}

type SalespersonRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

// GetSalespersons lists the roster. ?active=true narrows to the active
// picker set used when creating a match.
func (sc *SalespersonController) GetSalespersons(c *gin.Context) {
	query := sc.db.Order("name ASC")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var salespersons []models.Salesperson
	if err := query.Find(&salespersons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch salespersons"})
		return
	}

	c.JSON(http.StatusOK, salespersons)
}

func (sc *SalespersonController) CreateSalesperson(c *gin.Context) {
	var req SalespersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Salesperson
	if err := sc.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Salesperson name already exists"})
		return
	}

	salesperson := models.Salesperson{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Active: true,
	}
	if req.Active != nil {
		salesperson.Active = *req.Active
	}

	if err := sc.db.Create(&salesperson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create salesperson"})
		return
	}

	utils.SendCreated(c, "Salesperson created", salesperson)
}

// UpdateSalesperson renames or (de)activates a roster entry. Deactivating
// hides the name from new-match pickers but leaves historical matches alone.
func (sc *SalespersonController) UpdateSalesperson(c *gin.Context) {
	id := c.Param("id")

	var salesperson models.Salesperson
	if err := sc.db.Where("id = ?", id).First(&salesperson).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Salesperson not found"})
		return
	}

	var req SalespersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != salesperson.Name {
		var existing models.Salesperson
		if err := sc.db.Where("name = ? AND id != ?", req.Name, id).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Salesperson name already exists"})
			return
		}
	}

	salesperson.Name = req.Name
	if req.Active != nil {
		salesperson.Active = *req.Active
	}

	if err := sc.db.Save(&salesperson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update salesperson"})
		return
	}

	c.JSON(http.StatusOK, salesperson)
}
