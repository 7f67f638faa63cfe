package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

const defaultAuditLimit = 50

// ListAudit handles GET /api/admin/audit. Returns the audit trail for one
// resource, newest first.
func (s *Server) ListAudit(c *gin.Context) {
	resourceType := c.Query("resource_type")
	resourceID := c.Query("resource_id")
	if resourceType == "" || resourceID == "" {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "resource_type and resource_id are required"))
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > 500 {
		limit = 500
	}

	entries, err := s.audits.ListAuditByResource(c.Request.Context(), resourceType, resourceID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	if entries == nil {
		entries = []*store.AuditEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}
