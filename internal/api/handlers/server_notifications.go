package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

// ListNotifications handles GET /api/notifications.
func (s *Server) ListNotifications(c *gin.Context) {
	page, perPage, offset := pageFromQuery(c)
	notifications, total, err := s.inbox.ListNotifications(c.Request.Context(), perPage, offset)
	if err != nil {
		fail(c, err)
		return
	}
	if notifications == nil {
		notifications = []*store.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      notifications,
		"pagination": newPagination(page, perPage, total),
	})
}

// MarkNotificationRead handles PUT /api/notifications/:id/read.
func (s *Server) MarkNotificationRead(c *gin.Context) {
	if err := s.inbox.MarkNotificationRead(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeInvalidRequest, "notification not found"))
			return
		}
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
