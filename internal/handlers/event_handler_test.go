package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/nailroom/salon-scheduler/internal/models"
	"github.com/nailroom/salon-scheduler/internal/timefmt"
)

type eventJSON struct {
	Title string `json:"title"`
	ID    uint   `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func TestAllEventsFormat(t *testing.T) {
	r, gdb := setupServer(t)

	masterID, _ := register(t, r, "master", "lena")
	_, token := register(t, r, "customer", "watcher")

	events := []models.Event{
		{
			Title:     "Manicure appointment",
			StartTime: time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2023, 1, 1, 11, 0, 0, 0, time.UTC),
			MasterID:  masterID,
		},
		{
			Title:     "Pedicure appointment",
			StartTime: time.Date(2023, 1, 2, 14, 30, 0, 0, time.UTC),
			EndTime:   time.Date(2023, 1, 2, 15, 15, 0, 0, time.UTC),
			MasterID:  masterID,
		},
	}
	if err := gdb.Create(&events).Error; err != nil {
		t.Fatalf("seed events: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/all_events/", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var out []eventJSON
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 events, got %d", len(out))
	}

	if out[0].Start != "2023-01-01 10:00:00" || out[0].End != "2023-01-01 11:00:00" {
		t.Fatalf("bad first event times: start %q end %q", out[0].Start, out[0].End)
	}
	if out[1].Start != "2023-01-02 14:30:00" || out[1].End != "2023-01-02 15:15:00" {
		t.Fatalf("bad second event times: start %q end %q", out[1].Start, out[1].End)
	}
}

func TestAddEventRequiresMasterRole(t *testing.T) {
	r, _ := setupServer(t)

	_, customerToken := register(t, r, "customer", "plain_user")

	path := "/add_event/?" + url.Values{
		"title": {"Sneaky"},
		"start": {"2023-06-01 09:00:00"},
		"end":   {"2023-06-01 10:00:00"},
	}.Encode()

	w := doJSON(t, r, http.MethodGet, path, customerToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", w.Code)
	}
}

func TestAddEventCreatesUnderRequestingMaster(t *testing.T) {
	r, gdb := setupServer(t)

	masterID, token := register(t, r, "master", "rita")

	path := "/add_event/?" + url.Values{
		"title": {"Morning slot"},
		"start": {"2023-06-01 09:00:00"},
		"end":   {"2023-06-01 10:00:00"},
	}.Encode()

	w := doJSON(t, r, http.MethodGet, path, token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var event models.Event
	if err := gdb.Where("title = ?", "Morning slot").First(&event).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if event.MasterID != masterID {
		t.Fatalf("event owned by %d, want %d", event.MasterID, masterID)
	}
	if got := timefmt.FormatEvent(event.StartTime); got != "2023-06-01 09:00:00" {
		t.Fatalf("stored start %q", got)
	}
}

func TestAddEventRejectsBadTimestamp(t *testing.T) {
	r, _ := setupServer(t)

	_, token := register(t, r, "master", "tanya")

	path := "/add_event/?" + url.Values{
		"title": {"Broken"},
		"start": {"01/06/2023 9am"},
		"end":   {"2023-06-01 10:00:00"},
	}.Encode()

	w := doJSON(t, r, http.MethodGet, path, token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateEventOwnership(t *testing.T) {
	r, gdb := setupServer(t)

	ownerID, ownerToken := register(t, r, "master", "eva")
	_, otherToken := register(t, r, "master", "zoe")

	event := models.Event{
		Title:     "Original",
		StartTime: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2023, 3, 1, 13, 0, 0, 0, time.UTC),
		MasterID:  ownerID,
	}
	if err := gdb.Create(&event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}

	params := url.Values{
		"id":    {fmt.Sprint(event.ID)},
		"title": {"Renamed"},
		"start": {"2023-03-01 12:30:00"},
		"end":   {"2023-03-01 13:30:00"},
	}.Encode()

	w := doJSON(t, r, http.MethodGet, "/update/?"+params, otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/update/?"+params, ownerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Event
	if err := gdb.First(&updated, event.ID).Error; err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if got := timefmt.FormatEvent(updated.StartTime); got != "2023-03-01 12:30:00" {
		t.Fatalf("start not updated: %q", got)
	}
}

func TestRemoveEventOwnership(t *testing.T) {
	r, gdb := setupServer(t)

	ownerID, ownerToken := register(t, r, "master", "mila")
	_, otherToken := register(t, r, "master", "nora")

	event := models.Event{
		Title:     "Doomed",
		StartTime: time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC),
		MasterID:  ownerID,
	}
	if err := gdb.Create(&event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/remove/?id=%d", event.ID), otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/remove/?id=%d", event.ID), ownerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	gdb.Model(&models.Event{}).Where("id = ?", event.ID).Count(&count)
	if count != 0 {
		t.Fatalf("event should be gone")
	}
}

func TestRemoveEventNotFound(t *testing.T) {
	r, _ := setupServer(t)

	_, token := register(t, r, "master", "sasha")

	w := doJSON(t, r, http.MethodGet, "/remove/?id=4242", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
