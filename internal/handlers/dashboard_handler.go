package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailroom/salon-scheduler/internal/cache"
	"github.com/nailroom/salon-scheduler/internal/middleware"
	"github.com/nailroom/salon-scheduler/internal/models"
)

type DashboardHandler struct {
	db     *gorm.DB
	visits cache.VisitCounter
}

func NewDashboardHandler(db *gorm.DB, visits cache.VisitCounter) *DashboardHandler {
	return &DashboardHandler{db: db, visits: visits}
}

func (h *DashboardHandler) Index(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var numUsers int64
	if err := h.db.Model(&models.User{}).Count(&numUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_count_users"})
		return
	}

	// The counter is best-effort; a cache outage must not break the page.
	numVisits, err := h.visits.Increment(c.Request.Context(), userID)
	if err != nil {
		numVisits = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"num_users":  numUsers,
		"num_visits": numVisits,
	})
}
