package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiResponse is the envelope every endpoint writes: code 0 on success, the
// HTTP status on failure, with optional data and meta sections.
type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any) {
	OkMeta(c, data, nil)
}

func OkMeta(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

// OkPage writes a success envelope with the pagination meta every list
// endpoint shares.
func OkPage(c *gin.Context, data any, limit, offset int, total int64) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	OkMeta(c, data, map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": int64(offset+limit) < total,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
	})
}
