package server

import (
	"strconv"
	"strings"

	obscontext "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/context"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads :id and records it on the request scope as an entity of kind.
func parseIDParam(c *gin.Context, kind string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		return 0, newValidationError("id", "invalid_id", "invalid id")
	}
	requestScope(c).SetEntity(kind, id)
	return id, nil
}

func requestScope(c *gin.Context) *obscontext.Scope {
	return obscontext.ScopeFromContext(c.Request.Context())
}

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func requiredIntQuery(c *gin.Context, name string) (int, error) {
	value, err := parseOptionalInt(c.Query(name))
	if err != nil || value == nil {
		return 0, newValidationError(name, "invalid_"+name, "invalid "+name)
	}
	return *value, nil
}

func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	value, err := parseOptionalInt(c.Query(name))
	if err != nil {
		return nil, newValidationError(name, "invalid_"+name, "invalid "+name)
	}
	return value, nil
}
