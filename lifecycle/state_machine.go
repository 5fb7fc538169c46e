// File: /lifecycle/state_machine.go

// Package lifecycle holds the pure decision logic for the car/match state
// machine. Nothing in here touches the database: callers feed in the current
// records and apply the computed effects themselves.
package lifecycle

import (
	"errors"
	"time"

	"dealertrack-api/models"
)

var (
	ErrSaleDateRequired  = errors.New("a delivered match requires a sale date")
	ErrNotInStock        = errors.New("car must be in stock before it can be matched")
	ErrAlreadyStocked    = errors.New("car is already stocked in at a different location")
	ErrNotStocked        = errors.New("car has not been stocked in")
	ErrCarReservedOrSold = errors.New("car is reserved or sold")
	ErrCarHasMatch       = errors.New("car is still linked to a match")
	ErrCarSold           = errors.New("sold cars cannot be deleted")
)

// transportTransitions covers the pre-stock leg of the lifecycle. Direct
// status edits may only move between these states; IN_STOCK, RESERVED and
// SOLD are reachable solely through stock-in and match operations.
var transportTransitions = map[models.CarStatus][]models.CarStatus{
	models.CarStatusWaitingForTrailer: {models.CarStatusOnTrailer, models.CarStatusUnloaded},
	models.CarStatusOnTrailer:         {models.CarStatusWaitingForTrailer, models.CarStatusUnloaded},
	models.CarStatusUnloaded:          {models.CarStatusWaitingForTrailer, models.CarStatusOnTrailer},
}

// CanSetTransportStatus reports whether a direct status edit from -> to is
// allowed.
func CanSetTransportStatus(from, to models.CarStatus) bool {
	if from == to {
		return true
	}
	allowed, ok := transportTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// DeriveCarStatus computes the status a matched car must hold. A car is SOLD
// only when its match is delivered with a sale date on record; any other
// match keeps it RESERVED.
func DeriveCarStatus(matchStatus models.MatchStatus, saleDate *time.Time) models.CarStatus {
	if matchStatus == models.MatchStatusDelivered && saleDate != nil {
		return models.CarStatusSold
	}
	return models.CarStatusReserved
}

// ValidateMatch is the hard gate in front of every match save: a DELIVERED
// match without a sale date would let the car reach SOLD with no date, so it
// is rejected before anything is written.
func ValidateMatch(status models.MatchStatus, saleDate *time.Time) error {
	if status == models.MatchStatusDelivered && saleDate == nil {
		return ErrSaleDateRequired
	}
	return nil
}

// CanCreateMatch checks the precondition for pairing a car with a customer.
func CanCreateMatch(car *models.Car) error {
	if car.Status != models.CarStatusInStock {
		return ErrNotInStock
	}
	return nil
}

// StockIn records a car's arrival at a branch. Stocking in a car that is
// already in stock with identical fields is a no-op (changed=false) so that
// batch stock-in stays idempotent; the same car with different fields is a
// conflict.
func StockIn(car *models.Car, date time.Time, location models.StockLocation, stockNo string) (bool, error) {
	if car.Status == models.CarStatusReserved || car.Status == models.CarStatusSold {
		return false, ErrCarReservedOrSold
	}
	if car.StockInDate != nil {
		if car.StockInDate.Equal(date) && car.StockLocation == location && car.StockNo == stockNo {
			return false, nil
		}
		return false, ErrAlreadyStocked
	}

	car.Status = models.CarStatusInStock
	car.StockInDate = &date
	car.StockLocation = location
	car.StockNo = stockNo
	return true, nil
}

// RemoveFromStock reverts a stocked car to UNLOADED and clears its stock
// fields. This is a soft transition, never a deletion.
func RemoveFromStock(car *models.Car) error {
	if car.Status == models.CarStatusReserved || car.Status == models.CarStatusSold {
		return ErrCarReservedOrSold
	}
	if car.StockInDate == nil {
		return ErrNotStocked
	}

	car.Status = models.CarStatusUnloaded
	car.StockInDate = nil
	car.StockLocation = ""
	car.StockNo = ""
	return nil
}

// CanDeleteCar gates physical deletion from the allocation view. Cars linked
// to a match or already sold must not be removed.
func CanDeleteCar(car *models.Car, hasMatch bool) error {
	if hasMatch {
		return ErrCarHasMatch
	}
	if car.Status == models.CarStatusSold {
		return ErrCarSold
	}
	return nil
}

// Unlink computes the status a car returns to when its match is deleted.
// Always IN_STOCK, regardless of how far the match had progressed.
func Unlink() models.CarStatus {
	return models.CarStatusInStock
}
