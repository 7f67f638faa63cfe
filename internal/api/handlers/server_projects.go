package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

// ListProjects handles GET /api/projects.
func (s *Server) ListProjects(c *gin.Context) {
	page, perPage, offset := pageFromQuery(c)
	projects, total, err := s.catalog.ListProjects(c.Request.Context(), perPage, offset)
	if err != nil {
		fail(c, err)
		return
	}
	if projects == nil {
		projects = []*store.Project{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      projects,
		"pagination": newPagination(page, perPage, total),
	})
}

// GetProject handles GET /api/projects/:id.
func (s *Server) GetProject(c *gin.Context) {
	p, err := s.catalog.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeProjectNotFound, "project not found"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// validProjectDates rejects a date window that ends before it starts.
func validProjectDates(p *store.Project) *apperrors.AppError {
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return apperrors.BadRequest(apperrors.CodeValidationFailed, "project end date is before its start date").
			WithFieldErrors([]apperrors.FieldError{{
				Field:   "endDate",
				Code:    "END_BEFORE_START",
				Message: "end date must not be earlier than start date",
			}})
	}
	return nil
}

// CreateProject handles POST /api/projects.
func (s *Server) CreateProject(c *gin.Context) {
	var p store.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "project name is required"))
		return
	}
	if err := validProjectDates(&p); err != nil {
		fail(c, err)
		return
	}
	p.ID = newID()
	if err := s.catalog.CreateProject(c.Request.Context(), &p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProject handles PUT /api/projects/:id.
func (s *Server) UpdateProject(c *gin.Context) {
	var p store.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	if err := validProjectDates(&p); err != nil {
		fail(c, err)
		return
	}
	p.ID = c.Param("id")
	if err := s.catalog.UpdateProject(c.Request.Context(), &p); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeProjectNotFound, "project not found"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject handles DELETE /api/projects/:id.
func (s *Server) DeleteProject(c *gin.Context) {
	if err := s.catalog.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeProjectNotFound, "project not found"))
			return
		}
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
