package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePaging reads ?page= and ?per_page= query params. Out-of-range values
// are normalized by the service layer.
func parsePaging(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return page, perPage
}
