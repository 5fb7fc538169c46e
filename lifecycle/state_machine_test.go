// File: /lifecycle/state_machine_test.go
package lifecycle

import (
	"testing"
	"time"

	"dealertrack-api/models"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestDeriveCarStatus(t *testing.T) {
	cases := []struct {
		name     string
		status   models.MatchStatus
		saleDate *time.Time
		want     models.CarStatus
	}{
		{"waiting for contract", models.MatchStatusWaitingForContract, nil, models.CarStatusReserved},
		{"waiting for po", models.MatchStatusWaitingForPO, nil, models.CarStatusReserved},
		{"postponed", models.MatchStatusPostponed, nil, models.CarStatusReserved},
		{"delivered without sale date", models.MatchStatusDelivered, nil, models.CarStatusReserved},
		{"delivered with sale date", models.MatchStatusDelivered, date("2024-05-01"), models.CarStatusSold},
		{"not delivered with sale date", models.MatchStatusWaitingForPO, date("2024-05-01"), models.CarStatusReserved},
	}

	for _, tc := range cases {
		if got := DeriveCarStatus(tc.status, tc.saleDate); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestValidateMatch(t *testing.T) {
	if err := ValidateMatch(models.MatchStatusDelivered, nil); err != ErrSaleDateRequired {
		t.Errorf("expected ErrSaleDateRequired, got %v", err)
	}
	if err := ValidateMatch(models.MatchStatusDelivered, date("2024-05-01")); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := ValidateMatch(models.MatchStatusPostponed, nil); err != nil {
		t.Errorf("expected no error for postponed match, got %v", err)
	}
}

func TestCanCreateMatch(t *testing.T) {
	car := &models.Car{Status: models.CarStatusInStock}
	if err := CanCreateMatch(car); err != nil {
		t.Errorf("in-stock car should be matchable, got %v", err)
	}

	for _, status := range []models.CarStatus{
		models.CarStatusWaitingForTrailer,
		models.CarStatusOnTrailer,
		models.CarStatusUnloaded,
		models.CarStatusReserved,
		models.CarStatusSold,
	} {
		car := &models.Car{Status: status}
		if err := CanCreateMatch(car); err != ErrNotInStock {
			t.Errorf("status %s: expected ErrNotInStock, got %v", status, err)
		}
	}
}

func TestStockIn(t *testing.T) {
	when := *date("2024-03-10")

	car := &models.Car{Status: models.CarStatusUnloaded}
	changed, err := StockIn(car, when, models.StockLocationMainBranch, "S-001")
	if err != nil || !changed {
		t.Fatalf("expected stock-in to apply, changed=%v err=%v", changed, err)
	}
	if car.Status != models.CarStatusInStock {
		t.Errorf("expected IN_STOCK, got %s", car.Status)
	}
	if car.StockInDate == nil || !car.StockInDate.Equal(when) {
		t.Errorf("stock-in date not recorded: %v", car.StockInDate)
	}
	if car.StockLocation != models.StockLocationMainBranch || car.StockNo != "S-001" {
		t.Errorf("stock fields not recorded: %s %s", car.StockLocation, car.StockNo)
	}

	// Repeating with identical fields is a no-op.
	changed, err = StockIn(car, when, models.StockLocationMainBranch, "S-001")
	if err != nil {
		t.Fatalf("idempotent stock-in should not error: %v", err)
	}
	if changed {
		t.Error("idempotent stock-in should report no change")
	}

	// Different fields on an already stocked car conflict.
	if _, err := StockIn(car, when, models.StockLocationCityBranch, "S-001"); err != ErrAlreadyStocked {
		t.Errorf("expected ErrAlreadyStocked, got %v", err)
	}

	// Reserved and sold cars cannot be stocked in.
	for _, status := range []models.CarStatus{models.CarStatusReserved, models.CarStatusSold} {
		car := &models.Car{Status: status}
		if _, err := StockIn(car, when, models.StockLocationMainBranch, ""); err != ErrCarReservedOrSold {
			t.Errorf("status %s: expected ErrCarReservedOrSold, got %v", status, err)
		}
	}
}

func TestRemoveFromStock(t *testing.T) {
	when := *date("2024-03-10")
	car := &models.Car{Status: models.CarStatusUnloaded}
	if _, err := StockIn(car, when, models.StockLocationCityBranch, "S-002"); err != nil {
		t.Fatal(err)
	}

	if err := RemoveFromStock(car); err != nil {
		t.Fatalf("remove from stock failed: %v", err)
	}
	if car.Status != models.CarStatusUnloaded {
		t.Errorf("expected UNLOADED, got %s", car.Status)
	}
	if car.StockInDate != nil || car.StockLocation != "" || car.StockNo != "" {
		t.Error("stock fields should be cleared")
	}

	// A second removal has nothing to undo.
	if err := RemoveFromStock(car); err != ErrNotStocked {
		t.Errorf("expected ErrNotStocked, got %v", err)
	}

	reserved := &models.Car{Status: models.CarStatusReserved, StockInDate: &when}
	if err := RemoveFromStock(reserved); err != ErrCarReservedOrSold {
		t.Errorf("expected ErrCarReservedOrSold, got %v", err)
	}
}

func TestCanDeleteCar(t *testing.T) {
	if err := CanDeleteCar(&models.Car{Status: models.CarStatusUnloaded}, false); err != nil {
		t.Errorf("unmatched unsold car should be deletable, got %v", err)
	}
	if err := CanDeleteCar(&models.Car{Status: models.CarStatusReserved}, true); err != ErrCarHasMatch {
		t.Errorf("expected ErrCarHasMatch, got %v", err)
	}
	if err := CanDeleteCar(&models.Car{Status: models.CarStatusSold}, false); err != ErrCarSold {
		t.Errorf("expected ErrCarSold, got %v", err)
	}
}

func TestCanSetTransportStatus(t *testing.T) {
	if !CanSetTransportStatus(models.CarStatusWaitingForTrailer, models.CarStatusOnTrailer) {
		t.Error("trailer progression should be allowed")
	}
	if !CanSetTransportStatus(models.CarStatusOnTrailer, models.CarStatusOnTrailer) {
		t.Error("same-status edit should be allowed")
	}
	if CanSetTransportStatus(models.CarStatusUnloaded, models.CarStatusInStock) {
		t.Error("IN_STOCK must only be reachable via stock-in")
	}
	if CanSetTransportStatus(models.CarStatusInStock, models.CarStatusReserved) {
		t.Error("RESERVED must only be reachable via match creation")
	}
	if CanSetTransportStatus(models.CarStatusSold, models.CarStatusUnloaded) {
		t.Error("sold is terminal for direct edits")
	}
}

func TestUnlink(t *testing.T) {
	if Unlink() != models.CarStatusInStock {
		t.Error("deleting a match must always revert the car to IN_STOCK")
	}
}
