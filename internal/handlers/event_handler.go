package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailroom/salon-scheduler/internal/audit"
	"github.com/nailroom/salon-scheduler/internal/dto"
	"github.com/nailroom/salon-scheduler/internal/httperr"
	"github.com/nailroom/salon-scheduler/internal/middleware"
	"github.com/nailroom/salon-scheduler/internal/models"
	"github.com/nailroom/salon-scheduler/internal/timefmt"
)

// EventHandler serves the calendar's query-parameter endpoints. All four
// speak the fixed "YYYY-MM-DD HH:MM:SS" timestamp layout.
type EventHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEventHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *EventHandler {
	return &EventHandler{db: db, audit: dispatcher}
}

// ======================================================
// LIST — /all_events/
// ======================================================

func (h *EventHandler) AllEvents(c *gin.Context) {
	var events []models.Event
	if err := h.db.Find(&events).Error; err != nil {
		httperr.Internal(c, "failed_to_list_events", "Could not list events.")
		return
	}

	c.JSON(http.StatusOK, dto.FromEvents(events))
}

// ======================================================
// CREATE — /add_event/?title=&start=&end=
// ======================================================

// AddEvent creates under the requesting master; there is no target to check
// ownership against, unlike Update and Remove.
func (h *EventHandler) AddEvent(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	title := c.Query("title")
	startStr := c.Query("start")
	endStr := c.Query("end")

	if title == "" || startStr == "" || endStr == "" {
		httperr.BadRequest(c, "missing_params", "title, start and end are required.")
		return
	}

	start, err := timefmt.ParseEvent(startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "start must be YYYY-MM-DD HH:MM:SS.")
		return
	}

	end, err := timefmt.ParseEvent(endStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "end must be YYYY-MM-DD HH:MM:SS.")
		return
	}

	event := models.Event{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		MasterID:  masterID,
	}

	if err := h.db.Create(&event).Error; err != nil {
		httperr.Internal(c, "failed_to_create_event", "Could not create event.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &masterID,
		Action:   "event_created",
		Entity:   "event",
		EntityID: &event.ID,
	})

	c.JSON(http.StatusCreated, dto.FromEvent(event))
}

// ======================================================
// UPDATE — /update/?id=&title=&start=&end=
// ======================================================

func (h *EventHandler) Update(c *gin.Context) {
	event, ok := h.getOwnedEvent(c)
	if !ok {
		return
	}

	title := c.Query("title")
	startStr := c.Query("start")
	endStr := c.Query("end")

	if title == "" || startStr == "" || endStr == "" {
		httperr.BadRequest(c, "missing_params", "title, start and end are required.")
		return
	}

	start, err := timefmt.ParseEvent(startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "start must be YYYY-MM-DD HH:MM:SS.")
		return
	}

	end, err := timefmt.ParseEvent(endStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "end must be YYYY-MM-DD HH:MM:SS.")
		return
	}

	event.Title = title
	event.StartTime = start
	event.EndTime = end

	if err := h.db.Save(event).Error; err != nil {
		httperr.Internal(c, "failed_to_update_event", "Could not update event.")
		return
	}

	masterID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &masterID,
		Action:   "event_updated",
		Entity:   "event",
		EntityID: &event.ID,
	})

	c.JSON(http.StatusOK, dto.FromEvent(*event))
}

// ======================================================
// DELETE — /remove/?id=
// ======================================================

func (h *EventHandler) Remove(c *gin.Context) {
	event, ok := h.getOwnedEvent(c)
	if !ok {
		return
	}

	if err := h.db.Delete(event).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_event", "Could not delete event.")
		return
	}

	masterID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &masterID,
		Action:   "event_removed",
		Entity:   "event",
		EntityID: &event.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

func (h *EventHandler) getOwnedEvent(c *gin.Context) (*models.Event, bool) {
	id := c.Query("id")
	if id == "" {
		httperr.BadRequest(c, "missing_id", "id is required.")
		return nil, false
	}

	var event models.Event
	if err := h.db.First(&event, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "event_not_found", "Event not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_event", "Could not load event.")
		return nil, false
	}

	masterID := c.MustGet(middleware.ContextUserID).(uint)
	if event.MasterID != masterID {
		httperr.Forbidden(c, "You do not have permission to perform this action.")
		return nil, false
	}

	return &event, true
}
