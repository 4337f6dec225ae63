package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/service"
)

type ColumnsHandler struct {
	Columns *service.ColumnService
}

func (h *ColumnsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/columns")
	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
}

func (h *ColumnsHandler) list(c *gin.Context) {
	if _, ok := requireOwner(c); !ok {
		return
	}
	items, err := h.Columns.List(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, items)
}

type createColumnRequest struct {
	Name string `json:"name"`
}

func (h *ColumnsHandler) create(c *gin.Context) {
	if _, ok := requireOwner(c); !ok {
		return
	}
	var req createColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	item, err := h.Columns.Create(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateColumn) {
			Error(c, http.StatusConflict, err.Error())
			return
		}
		serviceError(c, err)
		return
	}
	Ok(c, item)
}

func (h *ColumnsHandler) delete(c *gin.Context) {
	if _, ok := requireOwner(c); !ok {
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Columns.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": id})
}
