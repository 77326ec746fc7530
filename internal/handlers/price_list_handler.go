package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailroom/salon-scheduler/internal/audit"
	"github.com/nailroom/salon-scheduler/internal/httperr"
	"github.com/nailroom/salon-scheduler/internal/middleware"
	"github.com/nailroom/salon-scheduler/internal/models"
)

type PriceListHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPriceListHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *PriceListHandler {
	return &PriceListHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreatePriceListRequest struct {
	ServiceID   uint     `json:"service_id" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	DurationMin *int     `json:"duration_min"`
}

type UpdatePriceListRequest struct {
	ServiceID   *uint    `json:"service_id,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
}

// ======================================================
// CREATE — /master/:id/create_price_list/ (id = master)
// ======================================================

func (h *PriceListHandler) Create(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	var master models.User
	if err := h.db.
		Where("id = ? AND role = ?", c.Param("id"), models.RoleMaster).
		First(&master).Error; err != nil {

		httperr.NotFound(c, "master_not_found", "Master not found.")
		return
	}

	if master.ID != requesterID {
		httperr.Forbidden(c, "You do not have permission to perform this action.")
		return
	}

	var req CreatePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var service models.Service
	if err := h.db.First(&service, req.ServiceID).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "Unknown service.")
		return
	}

	row := models.PriceList{
		MasterID:    master.ID,
		ServiceID:   service.ID,
		Price:       *req.Price,
		DurationMin: req.DurationMin,
	}

	if err := h.db.Create(&row).Error; err != nil {
		httperr.Internal(c, "failed_to_create_price_list", "Could not create price-list row.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "price_list_created",
		Entity:   "price_list",
		EntityID: &row.ID,
	})

	row.Service = service
	c.JSON(http.StatusCreated, row)
}

// ======================================================
// UPDATE — /master/:id/update_price_list/ (id = row)
// ======================================================

func (h *PriceListHandler) Update(c *gin.Context) {
	row, ok := h.getOwnedRow(c)
	if !ok {
		return
	}

	var req UpdatePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.ServiceID != nil {
		var service models.Service
		if err := h.db.First(&service, *req.ServiceID).Error; err != nil {
			httperr.BadRequest(c, "service_not_found", "Unknown service.")
			return
		}
		row.ServiceID = service.ID
	}
	if req.Price != nil {
		row.Price = *req.Price
	}
	if req.DurationMin != nil {
		row.DurationMin = req.DurationMin
	}

	if err := h.db.Save(row).Error; err != nil {
		httperr.Internal(c, "failed_to_update_price_list", "Could not update price-list row.")
		return
	}

	requesterID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "price_list_updated",
		Entity:   "price_list",
		EntityID: &row.ID,
	})

	c.JSON(http.StatusOK, row)
}

// ======================================================
// DELETE — /master/:id/delete_price_list/ (id = row)
// ======================================================

func (h *PriceListHandler) Delete(c *gin.Context) {
	row, ok := h.getOwnedRow(c)
	if !ok {
		return
	}

	if err := h.db.Delete(row).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_price_list", "Could not delete price-list row.")
		return
	}

	requesterID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "price_list_deleted",
		Entity:   "price_list",
		EntityID: &row.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

func (h *PriceListHandler) getOwnedRow(c *gin.Context) (*models.PriceList, bool) {
	var row models.PriceList
	if err := h.db.First(&row, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "price_list_not_found", "Price-list row not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_price_list", "Could not load price-list row.")
		return nil, false
	}

	requesterID := c.MustGet(middleware.ContextUserID).(uint)
	if row.MasterID != requesterID {
		httperr.Forbidden(c, "You do not have permission to perform this action.")
		return nil, false
	}

	return &row, true
}
