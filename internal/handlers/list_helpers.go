package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePagination reads ?page= and ?limit= with the catalog's default page
// size of 5.
func parsePagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit <= 0 || limit > 100 {
		limit = 5
	}

	return page, limit, (page - 1) * limit
}
