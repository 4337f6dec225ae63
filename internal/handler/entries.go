package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/repository"
	"tradejournal/internal/service"
)

type EntriesHandler struct {
	Entries *service.EntryService
}

func (h *EntriesHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/entries")
	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("", h.deleteAll)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PUT("/:id/custom-data", h.putCustomData)
}

func (h *EntriesHandler) list(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListEntriesParams{
		Owner:     owner,
		Pair:      strQueryPtr(c, "pair"),
		Session:   strQueryPtr(c, "session"),
		Outcome:   strQueryPtr(c, "outcome"),
		Direction: strQueryPtr(c, "direction"),
		Limit:     limit,
		Offset:    offset,
		OrderBy:   c.DefaultQuery("order_by", "date"),
		Asc:       boolPtr(intQuery(c, "asc", 0) == 1),
	}
	items, total, err := h.Entries.List(c.Request.Context(), params)
	if err != nil {
		serviceError(c, err)
		return
	}
	OkPage(c, items, limit, offset, total)
}

func (h *EntriesHandler) create(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	var form service.EntryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	item, err := h.Entries.Create(c.Request.Context(), owner, &form)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, item)
}

func (h *EntriesHandler) get(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	item, err := h.Entries.Get(c.Request.Context(), owner, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, item)
}

func (h *EntriesHandler) update(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	var form service.EntryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	item, err := h.Entries.Update(c.Request.Context(), owner, id, &form)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, item)
}

func (h *EntriesHandler) delete(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Entries.Delete(c.Request.Context(), owner, id); err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": id})
}

// deleteAll wipes the caller's whole journal. Guarded by a confirmation
// token so a stray DELETE cannot erase years of entries.
func (h *EntriesHandler) deleteAll(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	if c.Query("confirm") != "all" {
		Error(c, http.StatusBadRequest, "pass confirm=all to delete every entry")
		return
	}
	deleted, err := h.Entries.DeleteAll(c.Request.Context(), owner)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": deleted})
}

func (h *EntriesHandler) putCustomData(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	item, err := h.Entries.UpdateCustomData(c.Request.Context(), owner, id, body)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, item)
}
