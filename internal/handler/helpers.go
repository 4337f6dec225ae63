package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/identity"
	"tradejournal/internal/service"
)

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }

// uint64Param parses a numeric path parameter; 0 means missing or invalid
// (ids start at 1).
func uint64Param(c *gin.Context, key string) uint64 {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(key)), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// requireOwner resolves the authenticated owner or writes the 401 itself.
func requireOwner(c *gin.Context) (string, bool) {
	owner, ok := identity.Owner(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "no identity")
		return "", false
	}
	return owner, true
}

// serviceError maps service-layer failures onto the response envelope:
// validation -> 400, not found -> 404, anything else -> 502 (storage).
func serviceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		Error(c, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, service.ErrNotFound):
		Error(c, http.StatusNotFound, "not found")
	default:
		Error(c, http.StatusBadGateway, err.Error())
	}
}
