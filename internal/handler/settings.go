package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/models"
	"tradejournal/internal/service"
)

type SettingsHandler struct {
	Settings *service.SettingsService
}

func (h *SettingsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/settings")
	g.POST("/seed", h.seed)
	g.GET("/fields/:field/options", h.getOptions)
	g.POST("/fields/:field/options", h.addOption)
	g.PUT("/fields/:field/options", h.renameOption)
	g.DELETE("/fields/:field/options", h.removeOption)
	g.GET("/fields/:field/default", h.getDefault)
	g.PUT("/fields/:field/default", h.putDefault)
}

func fieldParam(c *gin.Context) (models.Field, bool) {
	field, err := models.ParseField(c.Param("field"))
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return "", false
	}
	return field, true
}

func (h *SettingsHandler) seed(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	if err := h.Settings.SeedAll(c.Request.Context(), owner); err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{"seeded": true})
}

func (h *SettingsHandler) getOptions(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	field, ok := fieldParam(c)
	if !ok {
		return
	}
	options, err := h.Settings.GetOptions(c.Request.Context(), owner, field)
	if err != nil {
		serviceError(c, err)
		return
	}
	OkMeta(c, options, map[string]any{"field": string(field), "multi": field.MultiSelect()})
}

type optionRequest struct {
	Value string `json:"value"`
}

func (h *SettingsHandler) addOption(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	field, ok := fieldParam(c)
	if !ok {
		return
	}
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	options, err := h.Settings.AddOption(c.Request.Context(), owner, field, req.Value)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, options)
}

type renameOptionRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *SettingsHandler) renameOption(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	field, ok := fieldParam(c)
	if !ok {
		return
	}
	var req renameOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	options, err := h.Settings.RenameOption(c.Request.Context(), owner, field, req.From, req.To)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, options)
}

func (h *SettingsHandler) removeOption(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	field, ok := fieldParam(c)
	if !ok {
		return
	}
	value := c.Query("value")
	if value == "" {
		var req optionRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			value = req.Value
		}
	}
	if value == "" {
		Error(c, http.StatusBadRequest, "option value is required")
		return
	}
	options, err := h.Settings.RemoveOption(c.Request.Context(), owner, field, value)
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, options)
}

func (h *SettingsHandler) getDefault(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	field, ok := fieldParam(c)
	if !ok {
		return
	}
	def, err := h.Settings.GetDefault(c.Request.Context(), owner, field)
	if err != nil {
		serviceError(c, err)
		return
	}
	OkMeta(c, def, map[string]any{"field": string(field)})
}

type putDefaultRequest struct {
	Value json.RawMessage `json:"value"`
}

func (h *SettingsHandler) putDefault(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	field, ok := fieldParam(c)
	if !ok {
		return
	}
	var req putDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.Settings.SetDefault(c.Request.Context(), owner, field, req.Value); err != nil {
		serviceError(c, err)
		return
	}
	def, err := h.Settings.GetDefault(c.Request.Context(), owner, field)
	if err != nil {
		serviceError(c, err)
		return
	}
	OkMeta(c, def, map[string]any{"field": string(field)})
}
