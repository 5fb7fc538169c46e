// File: /controllers/car_controller_test.go
package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"dealertrack-api/models"
	"dealertrack-api/utils"
)

func TestCreateCar(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := performJSON(r, http.MethodPost, "/cars",
		`{"model":"Falcon EV","vin":"5YJ3E1EA7KF310001","color":"Blue","price":42000,"allocation_date":"2024-02-01","battery_no":"BAT-1001"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var car models.Car
	if err := db.Where("vin = ?", "5YJ3E1EA7KF310001").First(&car).Error; err != nil {
		t.Fatalf("car not persisted: %v", err)
	}
	if car.Status != models.CarStatusWaitingForTrailer {
		t.Errorf("new allocations start WAITING_FOR_TRAILER, got %s", car.Status)
	}
	if car.AllocationDate == nil {
		t.Error("allocation date not recorded")
	}
	if car.BatteryNo == nil || *car.BatteryNo != "BAT-1001" {
		t.Error("battery serial not recorded")
	}
}

func TestCreateCarRejectsBadVIN(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := performJSON(r, http.MethodPost, "/cars", `{"model":"Falcon EV","vin":"short"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDuplicateVINConflict(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	first := seedCar(t, db, "5YJ3E1EA7KF310002", models.CarStatusUnloaded)

	w := performJSON(r, http.MethodPost, "/cars", `{"model":"Other","vin":"5YJ3E1EA7KF310002"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["field"] != "vin" {
		t.Errorf("expected field-specific conflict on vin, got %q", resp["field"])
	}

	// The original car must be untouched.
	reloaded := reloadCar(t, db, first.ID)
	if reloaded.Model != first.Model || reloaded.Status != first.Status {
		t.Error("existing car was modified by a failed create")
	}
	var count int64
	db.Model(&models.Car{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 car, got %d", count)
	}
}

func TestDuplicateSerialConflict(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := performJSON(r, http.MethodPost, "/cars",
		`{"model":"Falcon EV","vin":"5YJ3E1EA7KF310003","engine_no":"ENG-77"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	w = performJSON(r, http.MethodPost, "/cars",
		`{"model":"Falcon EV","vin":"5YJ3E1EA7KF310004","engine_no":"ENG-77"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate engine number, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["field"] != "engine_no" {
		t.Errorf("expected conflict on engine_no, got %q", resp["field"])
	}
}

func TestBatchImportPartialSuccess(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	// One VIN already allocated.
	seedCar(t, db, "5YJ3E1EA7KF310005", models.CarStatusUnloaded)

	// Four rows: one DB duplicate, one in-payload duplicate, two clean.
	w := performJSON(r, http.MethodPost, "/cars/import", `[
		{"model":"Falcon EV","vin":"5YJ3E1EA7KF310005"},
		{"model":"Falcon EV","vin":"5YJ3E1EA7KF310006"},
		{"model":"Falcon EV","vin":"5YJ3E1EA7KF310006"},
		{"model":"Falcon EV","vin":"5YJ3E1EA7KF310007"}
	]`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result utils.BatchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}

	if len(result.Succeeded) != 2 {
		t.Errorf("expected 2 successes, got %d: %v", len(result.Succeeded), result.Succeeded)
	}
	if len(result.Duplicates) != 2 {
		t.Errorf("expected 2 duplicates, got %d: %v", len(result.Duplicates), result.Duplicates)
	}
	if len(result.Failed) != 0 {
		t.Errorf("expected no failures, got %v", result.Failed)
	}

	var count int64
	db.Model(&models.Car{}).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 cars in total, got %d", count)
	}
}

func TestDeleteCarRules(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	seedSalesperson(t, db, "Alice Wong", true)

	// Unmatched, unsold: deletable.
	free := seedCar(t, db, "5YJ3E1EA7KF310008", models.CarStatusUnloaded)
	w := performJSON(r, http.MethodDelete, "/cars/"+free.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Linked to a match: refused.
	matched := seedCar(t, db, "5YJ3E1EA7KF310009", models.CarStatusInStock)
	w = performJSON(r, http.MethodPost, "/matches",
		`{"car_id":"`+matched.ID+`","customer_name":"Mr. Tan","salesperson_name":"Alice Wong"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("match setup failed: %d", w.Code)
	}
	w = performJSON(r, http.MethodDelete, "/cars/"+matched.ID, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for matched car, got %d", w.Code)
	}

	// Sold: refused even without a match.
	sold := seedCar(t, db, "5YJ3E1EA7KF310010", models.CarStatusSold)
	w = performJSON(r, http.MethodDelete, "/cars/"+sold.ID, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for sold car, got %d", w.Code)
	}

	w = performJSON(r, http.MethodDelete, "/cars/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateCarStatusGuard(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	car := seedCar(t, db, "5YJ3E1EA7KF310011", models.CarStatusWaitingForTrailer)

	// Transport progression is a plain edit.
	w := performJSON(r, http.MethodPut, "/cars/"+car.ID,
		`{"model":"Falcon EV","vin":"5YJ3E1EA7KF310011","status":"ON_TRAILER"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := reloadCar(t, db, car.ID).Status; got != models.CarStatusOnTrailer {
		t.Fatalf("expected ON_TRAILER, got %s", got)
	}

	// IN_STOCK is only reachable through stock-in.
	w = performJSON(r, http.MethodPut, "/cars/"+car.ID,
		`{"model":"Falcon EV","vin":"5YJ3E1EA7KF310011","status":"IN_STOCK"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}
