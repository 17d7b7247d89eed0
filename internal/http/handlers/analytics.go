package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/services"
)

type AnalyticsHandler struct {
	Analytics services.AnalyticsService
}

// GET /api/analytics/kpis
func (h AnalyticsHandler) KPIs(c *gin.Context) {
	kpis, err := h.Analytics.DashboardKPIs()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

// GET /api/analytics/vehicles
func (h AnalyticsHandler) Vehicles(c *gin.Context) {
	rows, err := h.Analytics.VehicleAnalytics()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/analytics/monthly?startDate=2026-01-01&endDate=2026-06-30
func (h AnalyticsHandler) Monthly(c *gin.Context) {
	rows, err := h.Analytics.MonthlySummaries(dateQuery(c, "startDate"), dateQuery(c, "endDate"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/analytics/utilization?startDate=...&endDate=...
func (h AnalyticsHandler) Utilization(c *gin.Context) {
	rows, err := h.Analytics.UtilizationSeries(dateQuery(c, "startDate"), dateQuery(c, "endDate"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/analytics/fuel-efficiency
func (h AnalyticsHandler) FuelEfficiency(c *gin.Context) {
	rows, err := h.Analytics.FuelEfficiencyByVehicle()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
