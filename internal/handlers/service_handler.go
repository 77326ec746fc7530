package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailroom/salon-scheduler/internal/audit"
	"github.com/nailroom/salon-scheduler/internal/httperr"
	"github.com/nailroom/salon-scheduler/internal/httpresp"
	"github.com/nailroom/salon-scheduler/internal/middleware"
	"github.com/nailroom/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	DurationMin int      `json:"duration_min" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	name := strings.ToLower(strings.TrimSpace(c.Query("name")))
	page, limit, offset := parsePagination(c)

	q := h.db.Model(&models.Service{})

	if name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	var services []models.Service
	if err := q.
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.Page(c, services, page, limit, total)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var count int64
	h.db.Model(&models.Service{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "name_already_exists", "A service with that name already exists.")
		return
	}

	service := models.Service{
		Name:        req.Name,
		Price:       *req.Price,
		DurationMin: req.DurationMin,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Could not load service.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil && *req.Name != service.Name {
		var count int64
		h.db.Model(&models.Service{}).Where("name = ?", *req.Name).Count(&count)
		if count > 0 {
			httperr.BadRequest(c, "name_already_exists", "A service with that name already exists.")
			return
		}
		service.Name = *req.Name
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	var service models.Service
	if err := h.db.First(&service, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", service.ID).Delete(&models.PriceList{}).Error; err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", service.ID).Delete(&models.CustomerService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&service).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
