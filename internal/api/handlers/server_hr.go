package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

// ListEmployees handles GET /api/hr/employees.
func (s *Server) ListEmployees(c *gin.Context) {
	page, perPage, offset := pageFromQuery(c)
	employees, total, err := s.hr.ListEmployees(c.Request.Context(), perPage, offset)
	if err != nil {
		fail(c, err)
		return
	}
	if employees == nil {
		employees = []*store.Employee{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      employees,
		"pagination": newPagination(page, perPage, total),
	})
}

// GetEmployee handles GET /api/hr/employees/:id.
func (s *Server) GetEmployee(c *gin.Context) {
	e, err := s.hr.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeEmployeeNotFound, "employee not found"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// CreateEmployee handles POST /api/hr/employees.
func (s *Server) CreateEmployee(c *gin.Context) {
	var e store.Employee
	if err := c.ShouldBindJSON(&e); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	if strings.TrimSpace(e.FirstName) == "" || strings.TrimSpace(e.LastName) == "" {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "first and last name are required"))
		return
	}
	e.ID = newID()
	if err := s.hr.CreateEmployee(c.Request.Context(), &e); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// UpdateEmployee handles PUT /api/hr/employees/:id.
func (s *Server) UpdateEmployee(c *gin.Context) {
	var e store.Employee
	if err := c.ShouldBindJSON(&e); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	e.ID = c.Param("id")
	if err := s.hr.UpdateEmployee(c.Request.Context(), &e); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeEmployeeNotFound, "employee not found"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DeleteEmployee handles DELETE /api/hr/employees/:id.
func (s *Server) DeleteEmployee(c *gin.Context) {
	if err := s.hr.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeEmployeeNotFound, "employee not found"))
			return
		}
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTeams handles GET /api/hr/teams.
func (s *Server) ListTeams(c *gin.Context) {
	teams, err := s.hr.ListTeams(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if teams == nil {
		teams = []*store.Team{}
	}
	c.JSON(http.StatusOK, gin.H{"items": teams})
}

// CreateTeam handles POST /api/hr/teams.
func (s *Server) CreateTeam(c *gin.Context) {
	var t store.Team
	if err := c.ShouldBindJSON(&t); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	if strings.TrimSpace(t.Name) == "" {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "team name is required"))
		return
	}
	t.ID = newID()
	if err := s.hr.CreateTeam(c.Request.Context(), &t); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateTeam handles PUT /api/hr/teams/:id.
func (s *Server) UpdateTeam(c *gin.Context) {
	var t store.Team
	if err := c.ShouldBindJSON(&t); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	t.ID = c.Param("id")
	if err := s.hr.UpdateTeam(c.Request.Context(), &t); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeTeamNotFound, "team not found"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTeam handles DELETE /api/hr/teams/:id.
func (s *Server) DeleteTeam(c *gin.Context) {
	if err := s.hr.DeleteTeam(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeTeamNotFound, "team not found"))
			return
		}
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListJobPositions handles GET /api/hr/job-positions.
func (s *Server) ListJobPositions(c *gin.Context) {
	positions, err := s.hr.ListJobPositions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if positions == nil {
		positions = []*store.JobPosition{}
	}
	c.JSON(http.StatusOK, gin.H{"items": positions})
}

// CreateJobPosition handles POST /api/hr/job-positions.
func (s *Server) CreateJobPosition(c *gin.Context) {
	var j store.JobPosition
	if err := c.ShouldBindJSON(&j); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	if strings.TrimSpace(j.Title) == "" {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "job title is required"))
		return
	}
	j.ID = newID()
	if err := s.hr.CreateJobPosition(c.Request.Context(), &j); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

// UpdateJobPosition handles PUT /api/hr/job-positions/:id.
func (s *Server) UpdateJobPosition(c *gin.Context) {
	var j store.JobPosition
	if err := c.ShouldBindJSON(&j); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	j.ID = c.Param("id")
	if err := s.hr.UpdateJobPosition(c.Request.Context(), &j); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeJobPositionNotFound, "job position not found"))
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// DeleteJobPosition handles DELETE /api/hr/job-positions/:id.
func (s *Server) DeleteJobPosition(c *gin.Context) {
	if err := s.hr.DeleteJobPosition(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(c, apperrors.NotFound(apperrors.CodeJobPositionNotFound, "job position not found"))
			return
		}
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
