package services

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/utils"
)

// ReportsService builds tabular exports over trips, expenses and drivers.
// Each report is materialized as a ReportTable and rendered to CSV, PDF
// or XLSX on demand.
type ReportsService struct {
	DB  *sql.DB
	Now func() time.Time
}

func (s ReportsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type ReportFilter struct {
	Start     *time.Time
	End       *time.Time
	VehicleID *int64
	DriverID  *int64
}

type ReportTable struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type TripReportRow struct {
	TripID       int64    `json:"tripId"`
	Date         string   `json:"date"`
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	VehicleName  string   `json:"vehicleName"`
	LicensePlate string   `json:"licensePlate"`
	DriverName   string   `json:"driverName"`
	Status       string   `json:"status"`
	CargoWeight  float64  `json:"cargoWeight"`
	Distance     *float64 `json:"distance"`
	Revenue      *float64 `json:"revenue"`
}

type ExpenseReportRow struct {
	ExpenseID   int64   `json:"expenseId"`
	Date        string  `json:"date"`
	VehicleName string  `json:"vehicleName"`
	ExpenseType string  `json:"expenseType"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type DriverPerformanceRow struct {
	DriverID       int64   `json:"driverId"`
	DriverName     string  `json:"driverName"`
	SafetyScore    int     `json:"safetyScore"`
	TripsCompleted int     `json:"tripsCompleted"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalDistance  float64 `json:"totalDistance"`
	TotalCargo     float64 `json:"totalCargo"`
}

func (f ReportFilter) and(conds *[]string, args *[]any, column string) {
	if f.Start != nil {
		*conds = append(*conds, column+" >= ?")
		*args = append(*args, *f.Start)
	}
	if f.End != nil {
		*conds = append(*conds, column+" <= ?")
		*args = append(*args, *f.End)
	}
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (s ReportsService) TripsReport(f ReportFilter) ([]TripReportRow, error) {
	conds := []string{}
	args := []any{}
	f.and(&conds, &args, "t.created_at")
	if f.VehicleID != nil {
		conds = append(conds, "t.vehicle_id = ?")
		args = append(args, *f.VehicleID)
	}
	if f.DriverID != nil {
		conds = append(conds, "t.driver_id = ?")
		args = append(args, *f.DriverID)
	}

	query := `
		SELECT t.id, t.created_at, t.origin, t.destination,
		       v.name, v.license_plate, d.name,
		       t.status, t.cargo_weight, t.start_odometer, t.end_odometer, t.revenue
		FROM trips t
		JOIN vehicles v ON v.id = t.vehicle_id
		JOIN drivers d ON d.id = t.driver_id` + whereClause(conds) + `
		ORDER BY t.created_at DESC`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TripReportRow{}
	for rows.Next() {
		var r TripReportRow
		var createdAt time.Time
		var startOdo, endOdo, revenue sql.NullFloat64
		if err := rows.Scan(&r.TripID, &createdAt, &r.Origin, &r.Destination,
			&r.VehicleName, &r.LicensePlate, &r.DriverName,
			&r.Status, &r.CargoWeight, &startOdo, &endOdo, &revenue); err != nil {
			return nil, err
		}
		r.Date = utils.FormatDate(createdAt)
		if startOdo.Valid && endOdo.Valid {
			d := endOdo.Float64 - startOdo.Float64
			if d < 0 {
				d = 0
			}
			r.Distance = &d
		}
		if revenue.Valid {
			v := revenue.Float64
			r.Revenue = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s ReportsService) ExpensesReport(f ReportFilter) ([]ExpenseReportRow, error) {
	conds := []string{}
	args := []any{}
	f.and(&conds, &args, "e.date")
	if f.VehicleID != nil {
		conds = append(conds, "e.vehicle_id = ?")
		args = append(args, *f.VehicleID)
	}

	query := `
		SELECT e.id, e.date, v.name, e.expense_type, e.amount, COALESCE(e.description, '')
		FROM expenses e
		JOIN vehicles v ON v.id = e.vehicle_id` + whereClause(conds) + `
		ORDER BY e.date DESC`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ExpenseReportRow{}
	for rows.Next() {
		var r ExpenseReportRow
		var date time.Time
		if err := rows.Scan(&r.ExpenseID, &date, &r.VehicleName, &r.ExpenseType, &r.Amount, &r.Description); err != nil {
			return nil, err
		}
		r.Date = utils.FormatDate(date)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s ReportsService) DriverPerformanceReport(f ReportFilter) ([]DriverPerformanceRow, error) {
	conds := []string{"t.status = ?"}
	args := []any{models.TripCompleted}
	f.and(&conds, &args, "t.created_at")
	if f.DriverID != nil {
		conds = append(conds, "d.id = ?")
		args = append(args, *f.DriverID)
	}

	query := `
		SELECT d.id, d.name, d.safety_score,
		       COUNT(t.id),
		       COALESCE(SUM(COALESCE(t.revenue,0)),0),
		       COALESCE(SUM(GREATEST(COALESCE(t.end_odometer,0) - COALESCE(t.start_odometer,0), 0)),0),
		       COALESCE(SUM(t.cargo_weight),0)
		FROM drivers d
		JOIN trips t ON t.driver_id = d.id` + whereClause(conds) + `
		GROUP BY d.id, d.name, d.safety_score
		ORDER BY COUNT(t.id) DESC, d.id`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DriverPerformanceRow{}
	for rows.Next() {
		var r DriverPerformanceRow
		if err := rows.Scan(&r.DriverID, &r.DriverName, &r.SafetyScore,
			&r.TripsCompleted, &r.TotalRevenue, &r.TotalDistance, &r.TotalCargo); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFloat(*v)
}

func TripsReportTable(rows []TripReportRow) ReportTable {
	t := ReportTable{
		Title:   "Trips Report",
		Headers: []string{"ID", "Date", "Origin", "Destination", "Vehicle", "Plate", "Driver", "Status", "Cargo (kg)", "Distance", "Revenue"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(r.TripID, 10), r.Date, r.Origin, r.Destination,
			r.VehicleName, r.LicensePlate, r.DriverName, r.Status,
			formatFloat(r.CargoWeight), formatFloatPtr(r.Distance), formatFloatPtr(r.Revenue),
		})
	}
	return t
}

func ExpensesReportTable(rows []ExpenseReportRow) ReportTable {
	t := ReportTable{
		Title:   "Expenses Report",
		Headers: []string{"ID", "Date", "Vehicle", "Type", "Amount", "Description"},
	}
	total := 0.0
	for _, r := range rows {
		total += r.Amount
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(r.ExpenseID, 10), r.Date, r.VehicleName,
			r.ExpenseType, formatFloat(r.Amount), r.Description,
		})
	}
	if len(rows) > 0 {
		t.Rows = append(t.Rows, []string{"", "", "", "Total", formatFloat(total), ""})
	}
	return t
}

func DriverPerformanceTable(rows []DriverPerformanceRow) ReportTable {
	t := ReportTable{
		Title:   "Driver Performance Report",
		Headers: []string{"ID", "Driver", "Safety Score", "Trips Completed", "Revenue", "Distance", "Cargo (kg)"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(r.DriverID, 10), r.DriverName,
			strconv.Itoa(r.SafetyScore), strconv.Itoa(r.TripsCompleted),
			formatFloat(r.TotalRevenue), formatFloat(r.TotalDistance), formatFloat(r.TotalCargo),
		})
	}
	return t
}

func (s ReportsService) RenderCSV(t ReportTable) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, "", err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename(t.Title, "csv"), nil
}

func (s ReportsService) RenderPDF(t ReportTable) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, t.Title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated: "+s.now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.Headers))

	pdf.SetFont("Helvetica", "B", 9)
	for _, h := range t.Headers {
		pdf.CellFormat(colWidth, 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename(t.Title, "pdf"), nil
}

func (s ReportsService) RenderXLSX(t ReportTable) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	f.SetCellValue(sheet, "A1", t.Title)
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetCellValue(sheet, "A2", "Generated: "+s.now().Format("2006-01-02 15:04:05"))

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 18)
	}
	for rowIdx, row := range t.Rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			if n, err := strconv.ParseFloat(value, 64); err == nil && value != "" {
				f.SetCellValue(sheet, cell, n)
			} else {
				f.SetCellValue(sheet, cell, value)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename(t.Title, "xlsx"), nil
}

func (s ReportsService) filename(title, ext string) string {
	part := utils.SanitizeFilenamePart(strings.ReplaceAll(strings.ToLower(title), " ", "_"))
	return fmt.Sprintf("%s_%s.%s", part, s.now().Format("20060102_150405"), ext)
}
