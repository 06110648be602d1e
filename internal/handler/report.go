package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pos-backend/internal/service"
)

type ReportHandler struct {
	svc *service.ReportingService
}

func NewReportHandler(svc *service.ReportingService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GetDashboardStats aggregates bills over a named period (daily, weekly,
// monthly) or an explicit startDate/endDate pair (YYYY-MM-DD).
func (h *ReportHandler) GetDashboardStats(c *gin.Context) {
	period := c.DefaultQuery("period", "daily")

	var start, end *time.Time
	startStr, endStr := c.Query("startDate"), c.Query("endDate")
	if startStr != "" && endStr != "" {
		s, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid startDate", err)
			return
		}
		e, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid endDate", err)
			return
		}
		start, end = &s, &e
	}

	stats, err := h.svc.Dashboard(c.Request.Context(), period, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, stats, "Dashboard stats fetched")
}
