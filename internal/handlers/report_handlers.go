package handlers

import (
	"net/http"

	"clubsphere_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) TotalRevenue(c *gin.Context) {
	total, err := h.reportService.TotalRevenue(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "TotalRevenue: Error from reportService.TotalRevenue", "Failed to compute revenue.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalRevenue": total})
}

func (h *ReportHandler) AdminStats(c *gin.Context) {
	stats, err := h.reportService.AdminStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "AdminStats: Error from reportService.AdminStats", "Failed to compute statistics.")
		return
	}
	c.JSON(http.StatusOK, stats)
}
