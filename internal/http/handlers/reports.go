package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/services"
)

type ReportsHandler struct {
	Reports services.ReportsService
}

const (
	contentTypeCSV  = "text/csv"
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h ReportsHandler) filter(c *gin.Context) services.ReportFilter {
	return services.ReportFilter{
		Start:     dateQuery(c, "startDate"),
		End:       dateQuery(c, "endDate"),
		VehicleID: int64Query(c, "vehicleId"),
		DriverID:  int64Query(c, "driverId"),
	}
}

// table builds the requested report. Supported names: trips, expenses,
// driver-performance.
func (h ReportsHandler) table(c *gin.Context) (services.ReportTable, bool) {
	switch strings.TrimSpace(c.Param("name")) {
	case "trips":
		rows, err := h.Reports.TripsReport(h.filter(c))
		if err != nil {
			RespondDomainError(c, err)
			return services.ReportTable{}, false
		}
		return services.TripsReportTable(rows), true
	case "expenses":
		rows, err := h.Reports.ExpensesReport(h.filter(c))
		if err != nil {
			RespondDomainError(c, err)
			return services.ReportTable{}, false
		}
		return services.ExpensesReportTable(rows), true
	case "driver-performance":
		rows, err := h.Reports.DriverPerformanceReport(h.filter(c))
		if err != nil {
			RespondDomainError(c, err)
			return services.ReportTable{}, false
		}
		return services.DriverPerformanceTable(rows), true
	default:
		respondError(c, http.StatusNotFound, "not_found", "Unknown report: "+c.Param("name"), nil)
		return services.ReportTable{}, false
	}
}

// GET /api/reports/:name
func (h ReportsHandler) Get(c *gin.Context) {
	table, ok := h.table(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, table)
}

// GET /api/reports/:name/csv
func (h ReportsHandler) CSV(c *gin.Context) {
	table, ok := h.table(c)
	if !ok {
		return
	}
	data, filename, err := h.Reports.RenderCSV(table)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendAttachment(c, data, filename, contentTypeCSV)
}

// GET /api/reports/:name/pdf
func (h ReportsHandler) PDF(c *gin.Context) {
	table, ok := h.table(c)
	if !ok {
		return
	}
	data, filename, err := h.Reports.RenderPDF(table)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendAttachment(c, data, filename, contentTypePDF)
}

// GET /api/reports/:name/xlsx
func (h ReportsHandler) XLSX(c *gin.Context) {
	table, ok := h.table(c)
	if !ok {
		return
	}
	data, filename, err := h.Reports.RenderXLSX(table)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendAttachment(c, data, filename, contentTypeXLSX)
}
