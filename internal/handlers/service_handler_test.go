package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/nailroom/salon-scheduler/internal/models"
)

func TestServiceCreateRequiresMasterRole(t *testing.T) {
	r, _ := setupServer(t)

	_, customerToken := register(t, r, "customer", "just_customer")
	_, masterToken := register(t, r, "master", "real_master")

	body := map[string]any{"name": "Manicure", "price": 10.99, "duration_min": 30}

	w := doJSON(t, r, http.MethodPost, "/services/create/", customerToken, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/services/create/", masterToken, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for master, got %d: %s", w.Code, w.Body.String())
	}
}

func TestServiceNameUnique(t *testing.T) {
	r, _ := setupServer(t)

	_, token := register(t, r, "master", "creator")

	body := map[string]any{"name": "Gel polish", "price": 12.5, "duration_min": 40}

	if w := doJSON(t, r, http.MethodPost, "/services/create/", token, body); w.Code != http.StatusCreated {
		t.Fatalf("first create: %d: %s", w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodPost, "/services/create/", token, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate name, got %d: %s", w.Code, w.Body.String())
	}
}

func TestServiceListSearchByName(t *testing.T) {
	r, gdb := setupServer(t)

	services := []models.Service{
		{Name: "Classic manicure", Price: 10, DurationMin: 30},
		{Name: "French MANICURE", Price: 15, DurationMin: 45},
		{Name: "Pedicure", Price: 20, DurationMin: 60},
	}
	if err := gdb.Create(&services).Error; err != nil {
		t.Fatalf("seed services: %v", err)
	}

	_, token := register(t, r, "customer", "browser")

	w := doJSON(t, r, http.MethodGet, "/services/?name=manicure&limit=50", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data []models.Service `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Data))
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	r, gdb := setupServer(t)

	_, token := register(t, r, "master", "editor")

	service := models.Service{Name: "Nail art", Price: 25, DurationMin: 50}
	if err := gdb.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/services/%d/update/", service.ID), token, map[string]any{
		"price": 30.0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Service
	if err := gdb.First(&updated, service.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.Price != 30.0 {
		t.Fatalf("price not updated: %v", updated.Price)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/services/%d/delete/", service.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	gdb.Model(&models.Service{}).Where("id = ?", service.ID).Count(&count)
	if count != 0 {
		t.Fatalf("service should be gone")
	}
}
