package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RevivalFireMinistries/dept-selection-app/pkg/response"
)

// parseIDParam extracts a positive integer :id path parameter. On failure it
// writes the 400 response itself; the caller should return when ok=false.
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}
