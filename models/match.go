// File: /models/match.go
package models

import (
	"time"
)

// MatchStatus tracks the progress of a reservation towards delivery.
type MatchStatus string

const (
	MatchStatusWaitingForContract MatchStatus = "WAITING_FOR_CONTRACT"
	MatchStatusWaitingForPO       MatchStatus = "WAITING_FOR_PO"
	MatchStatusPostponed          MatchStatus = "POSTPONED"
	MatchStatusDelivered          MatchStatus = "DELIVERED"
)

// Match binds an in-stock car to a customer reservation. The unique index
// on CarID enforces one match per car at the storage level.
type Match struct {
	ID              string      `json:"id" gorm:"primaryKey;size:191"`
	CarID           string      `json:"car_id" gorm:"uniqueIndex;not null;size:191"`
	CustomerName    string      `json:"customer_name" gorm:"not null;size:255"`
	SalespersonName string      `json:"salesperson_name" gorm:"not null;size:255"`
	SaleDate        *time.Time  `json:"sale_date"`
	Status          MatchStatus `json:"status" gorm:"not null;size:30;default:'WAITING_FOR_CONTRACT'"`
	LicensePlate    string      `json:"license_plate" gorm:"size:50"`
	Notes           string      `json:"notes" gorm:"size:1000"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	Car Car `json:"car" gorm:"foreignKey:CarID"`
}
