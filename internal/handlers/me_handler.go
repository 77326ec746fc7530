package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nailroom/salon-scheduler/internal/middleware"
	"github.com/nailroom/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        userPayload(&user),
		"profile_url": profileURL(&user),
	})
}

// profileURL is the role-based landing target: masters and customers go to
// their own detail page, admins stay on the dashboard.
func profileURL(user *models.User) string {
	switch user.Role {
	case models.RoleMaster:
		return fmt.Sprintf("/master/%d/", user.ID)
	case models.RoleCustomer:
		return fmt.Sprintf("/customer/%d/", user.ID)
	default:
		return "/"
	}
}
