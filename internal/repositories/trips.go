package repositories

import (
	"database/sql"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

const tripColumns = `t.id, t.vehicle_id, t.driver_id, t.cargo_weight, t.origin, t.destination,
	t.start_odometer, t.end_odometer, t.revenue, t.status, t.created_at, t.updated_at`

const tripJoinedColumns = tripColumns + `,
	v.name, v.license_plate, v.type,
	d.name, d.license_type`

func scanTripJoined(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	var startOdo, endOdo, revenue sql.NullFloat64
	var vName, vPlate, dName, dLicense string
	var vType models.VehicleType

	err := row.Scan(
		&t.ID, &t.VehicleID, &t.DriverID, &t.CargoWeight, &t.Origin, &t.Destination,
		&startOdo, &endOdo, &revenue, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&vName, &vPlate, &vType,
		&dName, &dLicense,
	)
	if err != nil {
		return t, err
	}
	t.StartOdometer = FloatPtr(startOdo)
	t.EndOdometer = FloatPtr(endOdo)
	t.Revenue = FloatPtr(revenue)
	t.Vehicle = &models.TripVehicleRef{ID: t.VehicleID, Name: vName, LicensePlate: vPlate, Type: vType}
	t.Driver = &models.TripDriverRef{ID: t.DriverID, Name: dName, LicenseType: dLicense}
	return t, nil
}

const tripBaseQuery = `
	SELECT ` + tripJoinedColumns + `
	FROM trips t
	JOIN vehicles v ON v.id = t.vehicle_id
	JOIN drivers d ON d.id = t.driver_id`

type TripFilter struct {
	Status    string
	VehicleID int64
	DriverID  int64
}

func (r TripRepository) List(f TripFilter) ([]models.Trip, error) {
	query := tripBaseQuery
	where := ""
	args := []any{}
	and := func(cond string, val any) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		args = append(args, val)
	}
	if f.Status != "" {
		and("t.status = ?", f.Status)
	}
	if f.VehicleID > 0 {
		and("t.vehicle_id = ?", f.VehicleID)
	}
	if f.DriverID > 0 {
		and("t.driver_id = ?", f.DriverID)
	}

	rows, err := r.DB.Query(query+where+` ORDER BY t.created_at DESC, t.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Trip{}
	for rows.Next() {
		t, err := scanTripJoined(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r TripRepository) GetByID(q DBTX, id int64) (models.Trip, error) {
	t, err := scanTripJoined(q.QueryRow(tripBaseQuery+` WHERE t.id = ?`, id))
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "Trip", Err: err}
	}
	return t, err
}

// GetByIDForUpdate locks the trip row. The join is avoided here on purpose:
// FOR UPDATE must lock only the trips row, vehicle/driver rows get their own
// locks from their repositories.
func (r TripRepository) GetByIDForUpdate(tx DBTX, id int64) (models.Trip, error) {
	var t models.Trip
	var startOdo, endOdo, revenue sql.NullFloat64
	err := tx.QueryRow(`
		SELECT id, vehicle_id, driver_id, cargo_weight, origin, destination,
		       start_odometer, end_odometer, revenue, status, created_at, updated_at
		FROM trips WHERE id = ? FOR UPDATE
	`, id).Scan(
		&t.ID, &t.VehicleID, &t.DriverID, &t.CargoWeight, &t.Origin, &t.Destination,
		&startOdo, &endOdo, &revenue, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "Trip", Err: err}
	}
	if err != nil {
		return t, err
	}
	t.StartOdometer = FloatPtr(startOdo)
	t.EndOdometer = FloatPtr(endOdo)
	t.Revenue = FloatPtr(revenue)
	return t, nil
}

func (r TripRepository) Create(t models.Trip) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO trips (vehicle_id, driver_id, cargo_weight, origin, destination, start_odometer, end_odometer, revenue, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.VehicleID, t.DriverID, t.CargoWeight, t.Origin, t.Destination,
		NullFloat(t.StartOdometer), NullFloat(t.EndOdometer), NullFloat(t.Revenue), t.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateDraft writes the Draft-mutable fields.
func (r TripRepository) UpdateDraft(t models.Trip) error {
	_, err := r.DB.Exec(`
		UPDATE trips
		SET vehicle_id=?, driver_id=?, cargo_weight=?, origin=?, destination=?, start_odometer=?, end_odometer=?, revenue=?
		WHERE id=?
	`, t.VehicleID, t.DriverID, t.CargoWeight, t.Origin, t.Destination,
		NullFloat(t.StartOdometer), NullFloat(t.EndOdometer), NullFloat(t.Revenue), t.ID)
	return err
}

func (r TripRepository) SetStatus(q DBTX, id int64, status models.TripStatus) error {
	_, err := q.Exec(`UPDATE trips SET status=? WHERE id=?`, status, id)
	return err
}

// MarkDispatched writes the dispatch transition inside the caller's tx.
func (r TripRepository) MarkDispatched(tx DBTX, id int64, startOdometer float64) error {
	_, err := tx.Exec(`UPDATE trips SET status=?, start_odometer=? WHERE id=?`,
		models.TripDispatched, startOdometer, id)
	return err
}

// MarkCompleted writes the completion transition inside the caller's tx.
func (r TripRepository) MarkCompleted(tx DBTX, id int64, endOdometer float64, revenue *float64) error {
	_, err := tx.Exec(`UPDATE trips SET status=?, end_odometer=?, revenue=? WHERE id=?`,
		models.TripCompleted, endOdometer, NullFloat(revenue), id)
	return err
}

func (r TripRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Trip"}
	}
	return nil
}
