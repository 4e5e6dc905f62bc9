package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/middleware"
)

func callerFrom(c *gin.Context) domain.Caller {
	return domain.Caller{
		ID:   c.MustGet(middleware.ContextUserID).(uint),
		Role: c.MustGet(middleware.ContextUserRole).(string),
	}
}

// writeError maps a use-case failure onto the HTTP surface: business
// codes become 400 (404 for unresolved lookups, 403 for policy),
// anything else is an internal error.
func writeError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	msg := be.Message
	if msg == "" {
		msg = strings.ReplaceAll(be.Code, "_", " ")
	}

	switch {
	case be.Code == "not_allowed":
		httperr.Forbidden(c, be.Code, msg)
	case strings.HasSuffix(be.Code, "_not_found"):
		httperr.NotFound(c, be.Code, msg)
	default:
		httperr.BadRequest(c, be.Code, msg)
	}
}
