package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
)

// maxImportSize caps spreadsheet uploads at 10 MiB.
const maxImportSize = 10 << 20

// ImportTemplateHeaders handles POST /api/admin/infrastructure/template/import-headers.
// The uploaded workbook's header row becomes draft field definitions; data
// rows come back as a preview and are never persisted.
func (s *Server) ImportTemplateHeaders(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		fail(c, apperrors.BadRequest(apperrors.CodeImportFailed, "missing file upload"))
		return
	}
	defer file.Close()

	if header.Size > maxImportSize {
		fail(c, apperrors.BadRequest(apperrors.CodeImportFailed, "file exceeds 10MB limit"))
		return
	}
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		fail(c, apperrors.BadRequest(apperrors.CodeImportFailed, "only .xlsx files are supported"))
		return
	}

	result, err := s.imports.ParseHeaders(c.Request.Context(), file)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
