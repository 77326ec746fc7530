package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/nailroom/salon-scheduler/internal/models"
)

type masterListResponse struct {
	Data []struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
	Total int64 `json:"total"`
}

func TestMasterListSearchByUsername(t *testing.T) {
	r, _ := setupServer(t)

	register(t, r, "master", "alice_nails")
	register(t, r, "master", "ALINA")
	register(t, r, "master", "bob")
	_, token := register(t, r, "customer", "viewer")

	// substring match is case-insensitive
	w := doJSON(t, r, http.MethodGet, "/master/?username=ali&limit=50", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp masterListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Data))
	}
	for _, m := range resp.Data {
		if m.Username != "alice_nails" && m.Username != "ALINA" {
			t.Fatalf("unexpected match %q", m.Username)
		}
	}

	// empty query returns every master, and only masters
	w = doJSON(t, r, http.MethodGet, "/master/?limit=50", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Data) != 3 || resp.Total != 3 {
		t.Fatalf("expected all 3 masters, got %d (total %d)", len(resp.Data), resp.Total)
	}
}

func TestMasterUpdateReplacesPriceList(t *testing.T) {
	r, gdb := setupServer(t)

	manicure := models.Service{Name: "Manicure", Price: 10.99, DurationMin: 30}
	pedicure := models.Service{Name: "Pedicure", Price: 20, DurationMin: 45}
	if err := gdb.Create(&manicure).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	if err := gdb.Create(&pedicure).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	masterID, token := register(t, r, "master", "irina")

	// a stale row that must be wiped by the replace
	if err := gdb.Create(&models.PriceList{
		MasterID:  masterID,
		ServiceID: pedicure.ID,
		Price:     99,
	}).Error; err != nil {
		t.Fatalf("seed price list: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/master/%d/update/", masterID), token, map[string]any{
		"services": []map[string]any{
			{"service_id": manicure.ID, "price": 15.00},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rows []models.PriceList
	if err := gdb.Where("master_id = ?", masterID).Find(&rows).Error; err != nil {
		t.Fatalf("load price list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 price-list row, got %d", len(rows))
	}
	if rows[0].ServiceID != manicure.ID || rows[0].Price != 15.00 {
		t.Fatalf("unexpected row: service %d price %v", rows[0].ServiceID, rows[0].Price)
	}
}

func TestMasterUpdateWithoutServicesKeepsPriceList(t *testing.T) {
	r, gdb := setupServer(t)

	service := models.Service{Name: "Gel polish", Price: 12, DurationMin: 40}
	if err := gdb.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	masterID, token := register(t, r, "master", "kira")
	if err := gdb.Create(&models.PriceList{
		MasterID:  masterID,
		ServiceID: service.ID,
		Price:     14,
	}).Error; err != nil {
		t.Fatalf("seed price list: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/master/%d/update/", masterID), token, map[string]any{
		"first_name": "Kira",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	gdb.Model(&models.PriceList{}).Where("master_id = ?", masterID).Count(&count)
	if count != 1 {
		t.Fatalf("price list should be untouched, got %d rows", count)
	}
}

func TestMasterUpdateForbiddenForNonOwner(t *testing.T) {
	r, _ := setupServer(t)

	targetID, _ := register(t, r, "master", "owner")
	_, otherToken := register(t, r, "master", "intruder")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/master/%d/update/", targetID), otherToken, map[string]any{
		"first_name": "Hacked",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMasterDeleteOwnerOnly(t *testing.T) {
	r, gdb := setupServer(t)

	targetID, ownerToken := register(t, r, "master", "gone_soon")
	_, otherToken := register(t, r, "master", "other")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/master/%d/delete/", targetID), otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/master/%d/delete/", targetID), ownerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	gdb.Model(&models.User{}).Where("id = ?", targetID).Count(&count)
	if count != 0 {
		t.Fatalf("master row should be gone")
	}
}

func TestMasterDetailNotFound(t *testing.T) {
	r, _ := setupServer(t)

	_, token := register(t, r, "customer", "someone")

	w := doJSON(t, r, http.MethodGet, "/master/9999/", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
