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

type CustomerHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCustomerHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *CustomerHandler {
	return &CustomerHandler{db: db, audit: dispatcher}
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// ======================================================
// LIST (search by username substring)
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(c.Query("username")))
	page, limit, offset := parsePagination(c)

	q := h.db.Model(&models.User{}).Where("role = ?", models.RoleCustomer)

	if username != "" {
		q = q.Where("LOWER(username) LIKE ?", "%"+username+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Could not list customers.")
		return
	}

	var customers []models.User
	if err := q.
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_customers", "Could not list customers.")
		return
	}

	httpresp.Page(c, customers, page, limit, total)
}

// ======================================================
// DETAIL (profile + followed masters + bookmarked services)
// ======================================================

func (h *CustomerHandler) Detail(c *gin.Context) {
	customer, ok := h.getCustomer(c)
	if !ok {
		return
	}

	var masters []models.User
	if err := h.db.
		Joins("JOIN subscriptions ON subscriptions.master_id = users.id").
		Where("subscriptions.customer_id = ?", customer.ID).
		Order("users.id ASC").
		Find(&masters).Error; err != nil {

		httperr.Internal(c, "failed_to_get_masters", "Could not load subscriptions.")
		return
	}

	var services []models.Service
	if err := h.db.
		Joins("JOIN customer_services ON customer_services.service_id = services.id").
		Where("customer_services.customer_id = ?", customer.ID).
		Order("services.name ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_get_services", "Could not load services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"masters":  masters,
		"services": services,
	})
}

// ======================================================
// UPDATE / DELETE (owner only)
// ======================================================

func (h *CustomerHandler) Update(c *gin.Context) {
	customer, ok := h.getOwnedCustomer(c)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if err := h.db.Save(customer).Error; err != nil {
		httperr.Internal(c, "failed_to_update_customer", "Could not update customer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	customer, ok := h.getOwnedCustomer(c)
	if !ok {
		return
	}

	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.CustomerService{}).Error; err != nil {
			return err
		}
		return tx.Delete(customer).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_customer", "Could not delete customer.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "customer_deleted",
		Entity:   "user",
		EntityID: &customer.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// SUBSCRIPTIONS (customer ↔ master, customer ↔ service)
// ======================================================

func (h *CustomerHandler) SubscribeMaster(c *gin.Context) {
	customer, ok := h.getOwnedCustomer(c)
	if !ok {
		return
	}

	var master models.User
	if err := h.db.
		Where("id = ? AND role = ?", c.Param("master_id"), models.RoleMaster).
		First(&master).Error; err != nil {

		httperr.NotFound(c, "master_not_found", "Master not found.")
		return
	}

	sub := models.Subscription{CustomerID: customer.ID, MasterID: master.ID}
	if err := h.db.
		Where("customer_id = ? AND master_id = ?", customer.ID, master.ID).
		FirstOrCreate(&sub).Error; err != nil {

		httperr.Internal(c, "failed_to_subscribe", "Could not subscribe.")
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *CustomerHandler) UnsubscribeMaster(c *gin.Context) {
	customer, ok := h.getOwnedCustomer(c)
	if !ok {
		return
	}

	if err := h.db.
		Where("customer_id = ? AND master_id = ?", customer.ID, c.Param("master_id")).
		Delete(&models.Subscription{}).Error; err != nil {

		httperr.Internal(c, "failed_to_unsubscribe", "Could not unsubscribe.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *CustomerHandler) AddService(c *gin.Context) {
	customer, ok := h.getOwnedCustomer(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, c.Param("service_id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	link := models.CustomerService{CustomerID: customer.ID, ServiceID: service.ID}
	if err := h.db.
		Where("customer_id = ? AND service_id = ?", customer.ID, service.ID).
		FirstOrCreate(&link).Error; err != nil {

		httperr.Internal(c, "failed_to_add_service", "Could not bookmark service.")
		return
	}

	c.JSON(http.StatusCreated, link)
}

func (h *CustomerHandler) RemoveService(c *gin.Context) {
	customer, ok := h.getOwnedCustomer(c)
	if !ok {
		return
	}

	if err := h.db.
		Where("customer_id = ? AND service_id = ?", customer.ID, c.Param("service_id")).
		Delete(&models.CustomerService{}).Error; err != nil {

		httperr.Internal(c, "failed_to_remove_service", "Could not remove service.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

func (h *CustomerHandler) getCustomer(c *gin.Context) (*models.User, bool) {
	var customer models.User
	if err := h.db.
		Where("id = ? AND role = ?", c.Param("id"), models.RoleCustomer).
		First(&customer).Error; err != nil {

		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return nil, false
	}
	return &customer, true
}

func (h *CustomerHandler) getOwnedCustomer(c *gin.Context) (*models.User, bool) {
	customer, ok := h.getCustomer(c)
	if !ok {
		return nil, false
	}

	requesterID := c.MustGet(middleware.ContextUserID).(uint)
	if customer.ID != requesterID {
		httperr.Forbidden(c, "You do not have permission to perform this action.")
		return nil, false
	}
	return customer, true
}
