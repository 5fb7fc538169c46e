// File: /models/car.go
package models

import (
	"time"
)

// CarStatus is the lifecycle state of a vehicle unit, from allocation
// through stock to sale.
type CarStatus string

const (
	CarStatusWaitingForTrailer CarStatus = "WAITING_FOR_TRAILER"
	CarStatusOnTrailer         CarStatus = "ON_TRAILER"
	CarStatusUnloaded          CarStatus = "UNLOADED"
	CarStatusInStock           CarStatus = "IN_STOCK"
	CarStatusReserved          CarStatus = "RESERVED"
	CarStatusSold              CarStatus = "SOLD"
)

// StockLocation is one of the two physical branches a car can be stocked at.
type StockLocation string

const (
	StockLocationMainBranch StockLocation = "MAIN_BRANCH"
	StockLocationCityBranch StockLocation = "CITY_BRANCH"
)

type Car struct {
	ID         string `json:"id" gorm:"primaryKey;size:191"`
	DealerCode string `json:"dealer_code" gorm:"size:50"`
	DealerName string `json:"dealer_name" gorm:"size:255"`
	Model      string `json:"model" gorm:"not null;size:100"`
	VIN        string `json:"vin" gorm:"uniqueIndex;not null;size:50"`
	Color      string `json:"color" gorm:"size:50"`
	CarType    string `json:"car_type" gorm:"size:50"`
	POType     string `json:"po_type" gorm:"size:50"`

	// Component serial numbers, each unique when present. Stored as NULL
	// when empty so the unique indexes ignore blank values.
	FrontMotorNo *string `json:"front_motor_no" gorm:"uniqueIndex;size:100"`
	RearMotorNo  *string `json:"rear_motor_no" gorm:"uniqueIndex;size:100"`
	BatteryNo    *string `json:"battery_no" gorm:"uniqueIndex;size:100"`
	EngineNo     *string `json:"engine_no" gorm:"uniqueIndex;size:100"`

	AllocationDate *time.Time `json:"allocation_date"`
	Price          float64    `json:"price"`

	Status        CarStatus     `json:"status" gorm:"not null;size:30;default:'WAITING_FOR_TRAILER'"`
	StockInDate   *time.Time    `json:"stock_in_date"`
	StockLocation StockLocation `json:"stock_location" gorm:"size:30"`
	StockNo       string        `json:"stock_no" gorm:"size:50"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SerialNumbers returns the non-empty component serials keyed by the
// user-facing field name, used for duplicate reporting.
func (c *Car) SerialNumbers() map[string]string {
	serials := make(map[string]string)
	if c.FrontMotorNo != nil && *c.FrontMotorNo != "" {
		serials["front_motor_no"] = *c.FrontMotorNo
	}
	if c.RearMotorNo != nil && *c.RearMotorNo != "" {
		serials["rear_motor_no"] = *c.RearMotorNo
	}
	if c.BatteryNo != nil && *c.BatteryNo != "" {
		serials["battery_no"] = *c.BatteryNo
	}
	if c.EngineNo != nil && *c.EngineNo != "" {
		serials["engine_no"] = *c.EngineNo
	}
	return serials
}
