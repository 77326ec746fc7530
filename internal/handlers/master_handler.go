package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailroom/salon-scheduler/internal/audit"
	domain "github.com/nailroom/salon-scheduler/internal/domain/pricelist"
	"github.com/nailroom/salon-scheduler/internal/dto"
	"github.com/nailroom/salon-scheduler/internal/httperr"
	"github.com/nailroom/salon-scheduler/internal/httpresp"
	"github.com/nailroom/salon-scheduler/internal/middleware"
	"github.com/nailroom/salon-scheduler/internal/models"
	ucPriceList "github.com/nailroom/salon-scheduler/internal/usecase/pricelist"
)

type MasterHandler struct {
	db      *gorm.DB
	replace *ucPriceList.Replace
	audit   *audit.Dispatcher
}

func NewMasterHandler(db *gorm.DB, replace *ucPriceList.Replace, dispatcher *audit.Dispatcher) *MasterHandler {
	return &MasterHandler{db: db, replace: replace, audit: dispatcher}
}

// --------- Requests ---------

type ServiceSelection struct {
	ServiceID   uint     `json:"service_id" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	DurationMin *int     `json:"duration_min"`
}

type UpdateMasterRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`

	// When present (even empty) the submitted selection replaces the whole
	// price list; when absent the price list is left alone.
	Services *[]ServiceSelection `json:"services,omitempty"`
}

// ======================================================
// LIST (search by username substring)
// ======================================================

func (h *MasterHandler) List(c *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(c.Query("username")))
	page, limit, offset := parsePagination(c)

	q := h.db.Model(&models.User{}).Where("role = ?", models.RoleMaster)

	if username != "" {
		q = q.Where("LOWER(username) LIKE ?", "%"+username+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_masters", "Could not list masters.")
		return
	}

	var masters []models.User
	if err := q.
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&masters).Error; err != nil {

		httperr.Internal(c, "failed_to_list_masters", "Could not list masters.")
		return
	}

	httpresp.Page(c, masters, page, limit, total)
}

// ======================================================
// DETAIL (profile + price list + calendar feed)
// ======================================================

func (h *MasterHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	var master models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleMaster).
		First(&master).Error; err != nil {

		httperr.NotFound(c, "master_not_found", "Master not found.")
		return
	}

	var priceList []models.PriceList
	if err := h.db.
		Preload("Service").
		Where("master_id = ?", master.ID).
		Order("service_id ASC").
		Find(&priceList).Error; err != nil {

		httperr.Internal(c, "failed_to_get_price_list", "Could not load price list.")
		return
	}

	var events []models.Event
	if err := h.db.
		Where("master_id = ?", master.ID).
		Order("start_time ASC").
		Find(&events).Error; err != nil {

		httperr.Internal(c, "failed_to_get_events", "Could not load events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"master":     master,
		"price_list": priceList,
		"events":     dto.FromEvents(events),
	})
}

// ======================================================
// UPDATE (owner only; optional price-list replace)
// ======================================================

func (h *MasterHandler) Update(c *gin.Context) {
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

	var req UpdateMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.FirstName != nil {
		master.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		master.LastName = *req.LastName
	}
	if req.Email != nil {
		master.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if err := h.db.Save(&master).Error; err != nil {
		httperr.Internal(c, "failed_to_update_master", "Could not update master.")
		return
	}

	var priceList []models.PriceList
	if req.Services != nil {
		entries := make([]domain.Entry, 0, len(*req.Services))
		for _, s := range *req.Services {
			entries = append(entries, domain.Entry{
				ServiceID:   s.ServiceID,
				Price:       *s.Price,
				DurationMin: s.DurationMin,
			})
		}

		rows, err := h.replace.Execute(c.Request.Context(), ucPriceList.ReplaceInput{
			MasterID: master.ID,
			Entries:  entries,
		})
		if err != nil {
			if httperr.IsBusiness(err, "service_not_found") {
				httperr.BadRequest(c, "service_not_found", "Unknown service in selection.")
				return
			}
			httperr.Internal(c, "failed_to_replace_price_list", "Could not update price list.")
			return
		}
		priceList = rows
	} else {
		h.db.Preload("Service").Where("master_id = ?", master.ID).Find(&priceList)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "master_updated",
		Entity:   "user",
		EntityID: &master.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"master":     master,
		"price_list": priceList,
	})
}

// ======================================================
// DELETE (owner only)
// ======================================================

func (h *MasterHandler) Delete(c *gin.Context) {
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

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("master_id = ?", master.ID).Delete(&models.PriceList{}).Error; err != nil {
			return err
		}
		if err := tx.Where("master_id = ?", master.ID).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("master_id = ?", master.ID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&master).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_master", "Could not delete master.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "master_deleted",
		Entity:   "user",
		EntityID: &master.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
