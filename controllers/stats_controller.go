// File: /controllers/stats_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dealertrack-api/models"
)

// StatsController serves the aggregate numbers the dashboard charts are
// drawn from. Rendering stays client-side.
type StatsController struct {
	db *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type monthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

func (sc *StatsController) GetOverview(c *gin.Context) {
	var carCounts []statusCount
	if err := sc.db.Model(&models.Car{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&carCounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch car counts"})
		return
	}

	var matchCounts []statusCount
	if err := sc.db.Model(&models.Match{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&matchCounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch match counts"})
		return
	}

	// Delivered matches tallied by sale month, newest first. The month
	// expression depends on the dialect (tests run on sqlite).
	monthExpr := "DATE_FORMAT(sale_date, '%Y-%m')"
	if sc.db.Dialector.Name() == "sqlite" {
		monthExpr = "strftime('%Y-%m', sale_date)"
	}

	var soldPerMonth []monthCount
	if err := sc.db.Model(&models.Match{}).
		Select(monthExpr + " as month, COUNT(*) as count").
		Where("status = ? AND sale_date IS NOT NULL", models.MatchStatusDelivered).
		Group("month").
		Order("month DESC").
		Scan(&soldPerMonth).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales by month"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars_by_status":    carCounts,
		"matches_by_status": matchCounts,
		"sold_per_month":    soldPerMonth,
	})
}
