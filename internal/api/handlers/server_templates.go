package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/schema"
	"github.com/sidyfoba/solarcom-console/internal/service"
)

// Template handlers are shared by the three families; the router binds
// each family's routes to the same handler with the family closed over.

// ListTemplates handles GET .../template.
func (s *Server) ListTemplates(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, perPage, offset := pageFromQuery(c)
		templates, total, err := s.templates.List(c.Request.Context(), family, perPage, offset)
		if err != nil {
			fail(c, err)
			return
		}
		if templates == nil {
			templates = []*schema.Template{}
		}
		c.JSON(http.StatusOK, gin.H{
			"items":      templates,
			"pagination": newPagination(page, perPage, total),
		})
	}
}

// GetTemplate handles GET .../template/:id.
func (s *Server) GetTemplate(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		tpl, err := s.templates.Get(c.Request.Context(), family, c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tpl)
	}
}

// CreateTemplate handles POST .../template.
func (s *Server) CreateTemplate(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.TemplateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
			return
		}
		tpl, err := s.templates.Create(c.Request.Context(), family, in, actorFromCtx(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, tpl)
	}
}

// UpdateTemplate handles PUT .../template/update/:id.
func (s *Server) UpdateTemplate(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.TemplateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
			return
		}
		tpl, err := s.templates.Update(c.Request.Context(), family, c.Param("id"), in, actorFromCtx(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tpl)
	}
}

// DeleteTemplate handles DELETE .../template/delete/:id. Refused with 409
// while instances still use the template.
func (s *Server) DeleteTemplate(family schema.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.templates.Delete(c.Request.Context(), family, c.Param("id"), actorFromCtx(c)); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
