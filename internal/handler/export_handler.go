package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/uni-admin-api/internal/service"
	"github.com/campushq/uni-admin-api/pkg/response"
)

// ExportHandler exposes roster and attendance sheet exports.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// SectionRoster godoc
// @Summary Export a section's roster as CSV or PDF
// @Tags Exports
// @Produce octet-stream
// @Param id path string true "Section ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /sections/{id}/roster [get]
func (h *ExportHandler) SectionRoster(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	file, err := h.exports.SectionRoster(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, file)
}

// AttendanceSheet godoc
// @Summary Export a section's attendance sheet as CSV or PDF
// @Tags Exports
// @Produce octet-stream
// @Param id path string true "Section ID"
// @Param date query string false "Limit to one date (YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /sections/{id}/attendance-sheet [get]
func (h *ExportHandler) AttendanceSheet(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	file, err := h.exports.AttendanceSheet(c.Request.Context(), c.Param("id"), c.Query("date"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, file)
}

func serveExport(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
