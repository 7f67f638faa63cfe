package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/schema"
	"github.com/sidyfoba/solarcom-console/internal/service"
)

// updateInstanceRequest is the update-from-template payload; the target
// instance travels in the body.
type updateInstanceRequest struct {
	ID string `json:"id"`
	service.InstanceInput
}

// CreateFromTemplate handles POST .../create-from-template/:templateId.
func (s *Server) CreateFromTemplate(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.InstanceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
			return
		}
		inst, err := s.instances.CreateFromTemplate(c.Request.Context(), family, c.Param("templateId"), in, actorFromCtx(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, inst)
	}
}

// UpdateFromTemplate handles PUT .../update-from-template.
func (s *Server) UpdateFromTemplate(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateInstanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
			return
		}
		if req.ID == "" {
			fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "id is required"))
			return
		}
		inst, err := s.instances.UpdateFromTemplate(c.Request.Context(), family, req.ID, req.InstanceInput, actorFromCtx(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, inst)
	}
}

// GetInstance handles GET .../:id. Sites come back with their attached
// elements grouped per template.
func (s *Server) GetInstance(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		if family == schema.FamilySite {
			overview, err := s.instances.Overview(c.Request.Context(), c.Param("id"))
			if err != nil {
				fail(c, err)
				return
			}
			c.JSON(http.StatusOK, overview)
			return
		}

		inst, err := s.instances.Get(c.Request.Context(), family, c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, inst)
	}
}

// ListInstances handles GET .../all/:templateId.
func (s *Server) ListInstances(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, perPage, offset := pageFromQuery(c)
		instances, total, err := s.instances.ListByTemplate(c.Request.Context(), family, c.Param("templateId"), perPage, offset)
		if err != nil {
			fail(c, err)
			return
		}
		if instances == nil {
			instances = []*schema.Instance{}
		}
		c.JSON(http.StatusOK, gin.H{
			"items":      instances,
			"pagination": newPagination(page, perPage, total),
		})
	}
}

// DeleteInstance handles DELETE .../:id.
func (s *Server) DeleteInstance(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.instances.Delete(c.Request.Context(), family, c.Param("id"), actorFromCtx(c)); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
