package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/founderhub/founder-api/internal/model"
)

// ParseID parses the :id path parameter. Returns false after writing the
// error response, so callers just return.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid ID"))
		return 0, false
	}
	return id, true
}

// ParseQueryInt64 parses an optional int64 query parameter, 0 when absent.
func ParseQueryInt64(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return 0, false
	}
	return v, true
}

// ParsePagination reads limit/offset query parameters. Out-of-range values
// are clamped later by Pagination.Normalize.
func ParsePagination(c *gin.Context) *model.Pagination {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return &model.Pagination{Limit: limit, Offset: offset}
}
