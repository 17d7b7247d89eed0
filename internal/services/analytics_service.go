package services

import (
	"database/sql"
	"math"
	"sort"
	"time"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/utils"
)

// AnalyticsService computes read-only rollups over the store. Reads are not
// transactionally isolated from concurrent writes; read-committed snapshots
// are acceptable for reporting.
type AnalyticsService struct {
	DB *sql.DB
}

type DashboardKPIs struct {
	ActiveFleet       int     `json:"activeFleet"`
	MaintenanceAlerts int     `json:"maintenanceAlerts"`
	UtilizationRate   float64 `json:"utilizationRate"`
	PendingCargo      float64 `json:"pendingCargo"`
}

type VehicleAnalytics struct {
	VehicleID            int64    `json:"vehicleId"`
	VehicleName          string   `json:"vehicleName"`
	LicensePlate         string   `json:"licensePlate"`
	FuelEfficiency       *float64 `json:"fuelEfficiency"`
	TotalOperationalCost float64  `json:"totalOperationalCost"`
	AcquisitionCost      *float64 `json:"acquisitionCost"`
	TotalRevenue         float64  `json:"totalRevenue"`
	ROI                  *float64 `json:"roi"`
}

type MonthlySummary struct {
	Month           string  `json:"month"`
	Revenue         float64 `json:"revenue"`
	FuelCost        float64 `json:"fuelCost"`
	MaintenanceCost float64 `json:"maintenanceCost"`
	TripsCount      int     `json:"tripsCount"`
	TotalCargo      float64 `json:"totalCargo"`
}

type UtilizationPoint struct {
	Month           string  `json:"month"`
	UtilizationRate float64 `json:"utilizationRate"`
	ActiveVehicles  int     `json:"activeVehicles"`
	TotalVehicles   int     `json:"totalVehicles"`
}

type FuelEfficiencyRow struct {
	VehicleID      int64    `json:"vehicleId"`
	VehicleName    string   `json:"vehicleName"`
	LicensePlate   string   `json:"licensePlate"`
	FuelEfficiency *float64 `json:"fuelEfficiency"`
	TotalLiters    float64  `json:"totalLiters"`
	TotalDistance  float64  `json:"totalDistance"`
}

// safeDiv returns nil instead of Inf/NaN when the denominator is unusable.
// Every analytics division goes through this.
func safeDiv(a, b float64) *float64 {
	if b == 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return nil
	}
	q := a / b
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return nil
	}
	return &q
}

func (s AnalyticsService) DashboardKPIs() (DashboardKPIs, error) {
	rows, err := s.DB.Query(`SELECT status, COUNT(*) FROM vehicles WHERE status <> ? GROUP BY status`, models.VehicleRetired)
	if err != nil {
		return DashboardKPIs{}, err
	}
	defer rows.Close()

	total, active, inShop := 0, 0, 0
	for rows.Next() {
		var status models.VehicleStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return DashboardKPIs{}, err
		}
		total += count
		switch status {
		case models.VehicleOnTrip, models.VehicleAvailable:
			active += count
		case models.VehicleInShop:
			inShop += count
		}
	}
	if err := rows.Err(); err != nil {
		return DashboardKPIs{}, err
	}

	var pendingCargo float64
	if err := s.DB.QueryRow(`SELECT COALESCE(SUM(cargo_weight),0) FROM trips WHERE status = ?`, models.TripDraft).Scan(&pendingCargo); err != nil {
		return DashboardKPIs{}, err
	}

	utilization := 0.0
	if total > 0 {
		utilization = math.Round(float64(active) / float64(total) * 100)
	}

	return DashboardKPIs{
		ActiveFleet:       active,
		MaintenanceAlerts: inShop,
		UtilizationRate:   utilization,
		PendingCargo:      pendingCargo,
	}, nil
}

type vehicleTotals struct {
	fuelCost        float64
	maintenanceCost float64
	liters          float64
	revenue         float64
	distance        float64
}

func (s AnalyticsService) vehicleTotals() (map[int64]*vehicleTotals, error) {
	totals := map[int64]*vehicleTotals{}
	get := func(id int64) *vehicleTotals {
		if t, ok := totals[id]; ok {
			return t
		}
		t := &vehicleTotals{}
		totals[id] = t
		return t
	}

	fuelRows, err := s.DB.Query(`SELECT vehicle_id, COALESCE(SUM(cost),0), COALESCE(SUM(liters),0) FROM fuel_logs GROUP BY vehicle_id`)
	if err != nil {
		return nil, err
	}
	defer fuelRows.Close()
	for fuelRows.Next() {
		var id int64
		var cost, liters float64
		if err := fuelRows.Scan(&id, &cost, &liters); err != nil {
			return nil, err
		}
		t := get(id)
		t.fuelCost = cost
		t.liters = liters
	}
	if err := fuelRows.Err(); err != nil {
		return nil, err
	}

	maintRows, err := s.DB.Query(`SELECT vehicle_id, COALESCE(SUM(cost),0) FROM maintenance_logs GROUP BY vehicle_id`)
	if err != nil {
		return nil, err
	}
	defer maintRows.Close()
	for maintRows.Next() {
		var id int64
		var cost float64
		if err := maintRows.Scan(&id, &cost); err != nil {
			return nil, err
		}
		get(id).maintenanceCost = cost
	}
	if err := maintRows.Err(); err != nil {
		return nil, err
	}

	tripRows, err := s.DB.Query(`
		SELECT vehicle_id,
		       COALESCE(SUM(COALESCE(revenue,0)),0),
		       COALESCE(SUM(GREATEST(COALESCE(end_odometer,0) - COALESCE(start_odometer,0), 0)),0)
		FROM trips
		WHERE status = ?
		GROUP BY vehicle_id
	`, models.TripCompleted)
	if err != nil {
		return nil, err
	}
	defer tripRows.Close()
	for tripRows.Next() {
		var id int64
		var revenue, distance float64
		if err := tripRows.Scan(&id, &revenue, &distance); err != nil {
			return nil, err
		}
		t := get(id)
		t.revenue = revenue
		t.distance = distance
	}
	if err := tripRows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

func (s AnalyticsService) VehicleAnalytics() ([]VehicleAnalytics, error) {
	totals, err := s.vehicleTotals()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`SELECT id, name, license_plate, acquisition_cost FROM vehicles WHERE status <> ? ORDER BY id`, models.VehicleRetired)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []VehicleAnalytics{}
	for rows.Next() {
		var id int64
		var name, plate string
		var acq sql.NullFloat64
		if err := rows.Scan(&id, &name, &plate, &acq); err != nil {
			return nil, err
		}
		t := totals[id]
		if t == nil {
			t = &vehicleTotals{}
		}

		row := VehicleAnalytics{
			VehicleID:            id,
			VehicleName:          name,
			LicensePlate:         plate,
			TotalOperationalCost: t.fuelCost + t.maintenanceCost,
			TotalRevenue:         t.revenue,
		}
		if t.liters > 0 {
			row.FuelEfficiency = safeDiv(t.distance, t.liters)
		}
		if acq.Valid {
			v := acq.Float64
			row.AcquisitionCost = &v
			if v > 0 {
				row.ROI = safeDiv(t.revenue-row.TotalOperationalCost, v)
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func defaultRange(start, end *time.Time) (time.Time, time.Time) {
	from := time.Date(time.Now().Year()-1, time.January, 1, 0, 0, 0, 0, time.Local)
	to := time.Now()
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	return from, to
}

func (s AnalyticsService) MonthlySummaries(start, end *time.Time) ([]MonthlySummary, error) {
	from, to := defaultRange(start, end)

	byMonth := map[string]*MonthlySummary{}
	get := func(key string) *MonthlySummary {
		if m, ok := byMonth[key]; ok {
			return m
		}
		m := &MonthlySummary{Month: key}
		byMonth[key] = m
		return m
	}

	tripRows, err := s.DB.Query(`
		SELECT COALESCE(revenue,0), cargo_weight, created_at
		FROM trips
		WHERE status = ? AND created_at BETWEEN ? AND ?
	`, models.TripCompleted, from, to)
	if err != nil {
		return nil, err
	}
	defer tripRows.Close()
	for tripRows.Next() {
		var revenue, cargo float64
		var createdAt time.Time
		if err := tripRows.Scan(&revenue, &cargo, &createdAt); err != nil {
			return nil, err
		}
		m := get(utils.MonthKey(createdAt))
		m.Revenue += revenue
		m.TripsCount++
		m.TotalCargo += cargo
	}
	if err := tripRows.Err(); err != nil {
		return nil, err
	}

	fuelRows, err := s.DB.Query(`SELECT cost, date FROM fuel_logs WHERE date BETWEEN ? AND ?`, from, to)
	if err != nil {
		return nil, err
	}
	defer fuelRows.Close()
	for fuelRows.Next() {
		var cost float64
		var date time.Time
		if err := fuelRows.Scan(&cost, &date); err != nil {
			return nil, err
		}
		get(utils.MonthKey(date)).FuelCost += cost
	}
	if err := fuelRows.Err(); err != nil {
		return nil, err
	}

	maintRows, err := s.DB.Query(`SELECT cost, date FROM maintenance_logs WHERE date BETWEEN ? AND ?`, from, to)
	if err != nil {
		return nil, err
	}
	defer maintRows.Close()
	for maintRows.Next() {
		var cost float64
		var date time.Time
		if err := maintRows.Scan(&cost, &date); err != nil {
			return nil, err
		}
		get(utils.MonthKey(date)).MaintenanceCost += cost
	}
	if err := maintRows.Err(); err != nil {
		return nil, err
	}

	return sortMonthlySummaries(byMonth), nil
}

func sortMonthlySummaries(byMonth map[string]*MonthlySummary) []MonthlySummary {
	out := make([]MonthlySummary, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func (s AnalyticsService) UtilizationSeries(start, end *time.Time) ([]UtilizationPoint, error) {
	from, to := defaultRange(start, end)

	var totalVehicles int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM vehicles WHERE status <> ?`, models.VehicleRetired).Scan(&totalVehicles); err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`
		SELECT vehicle_id, created_at
		FROM trips
		WHERE status IN (?, ?) AND created_at BETWEEN ? AND ?
	`, models.TripDispatched, models.TripCompleted, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activeByMonth := map[string]map[int64]struct{}{}
	for rows.Next() {
		var vehicleID int64
		var createdAt time.Time
		if err := rows.Scan(&vehicleID, &createdAt); err != nil {
			return nil, err
		}
		key := utils.MonthKey(createdAt)
		if activeByMonth[key] == nil {
			activeByMonth[key] = map[int64]struct{}{}
		}
		activeByMonth[key][vehicleID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buildUtilizationSeries(activeByMonth, totalVehicles), nil
}

func buildUtilizationSeries(activeByMonth map[string]map[int64]struct{}, totalVehicles int) []UtilizationPoint {
	months := make([]string, 0, len(activeByMonth))
	for key := range activeByMonth {
		months = append(months, key)
	}
	sort.Strings(months)

	out := make([]UtilizationPoint, 0, len(months))
	for _, month := range months {
		active := len(activeByMonth[month])
		rate := 0.0
		if totalVehicles > 0 {
			rate = math.Round(float64(active) / float64(totalVehicles) * 100)
		}
		out = append(out, UtilizationPoint{
			Month:           month,
			UtilizationRate: rate,
			ActiveVehicles:  active,
			TotalVehicles:   totalVehicles,
		})
	}
	return out
}

func (s AnalyticsService) FuelEfficiencyByVehicle() ([]FuelEfficiencyRow, error) {
	totals, err := s.vehicleTotals()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`SELECT id, name, license_plate FROM vehicles WHERE status <> ? ORDER BY id`, models.VehicleRetired)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FuelEfficiencyRow{}
	for rows.Next() {
		var id int64
		var name, plate string
		if err := rows.Scan(&id, &name, &plate); err != nil {
			return nil, err
		}
		t := totals[id]
		if t == nil {
			t = &vehicleTotals{}
		}
		row := FuelEfficiencyRow{
			VehicleID:     id,
			VehicleName:   name,
			LicensePlate:  plate,
			TotalLiters:   t.liters,
			TotalDistance: t.distance,
		}
		if t.liters > 0 {
			row.FuelEfficiency = safeDiv(t.distance, t.liters)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
