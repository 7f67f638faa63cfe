package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AddUser handles POST /api/users/add.
func (s *Server) AddUser(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	u, err := s.users.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"roles":    u.Roles,
	})
}

// CheckLogin handles POST /api/users/check-login.
func (s *Server) CheckLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body"))
		return
	}
	res, err := s.users.CheckLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user": gin.H{
			"id":       res.User.ID,
			"username": res.User.Username,
			"email":    res.User.Email,
			"roles":    res.User.Roles,
		},
	})
}
