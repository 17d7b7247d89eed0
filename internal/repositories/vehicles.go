package repositories

import (
	"database/sql"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
)

// VehicleRepository wraps raw SQL access to the vehicles table.
type VehicleRepository struct {
	DB *sql.DB
}

const vehicleColumns = `id, name, model, license_plate, type, region, max_capacity, odometer, status, acquisition_cost, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }) (models.Vehicle, error) {
	var v models.Vehicle
	var acq sql.NullFloat64
	err := row.Scan(
		&v.ID, &v.Name, &v.Model, &v.LicensePlate, &v.Type, &v.Region,
		&v.MaxCapacity, &v.Odometer, &v.Status, &acq, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return v, err
	}
	v.AcquisitionCost = FloatPtr(acq)
	return v, nil
}

type VehicleFilter struct {
	Status string
	Type   string
	Region string
}

func (r VehicleRepository) List(f VehicleFilter) ([]models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
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
		and("status = ?", f.Status)
	}
	if f.Type != "" {
		and("type = ?", f.Type)
	}
	if f.Region != "" {
		and("region = ?", f.Region)
	}

	rows, err := r.DB.Query(query+where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r VehicleRepository) GetByID(q DBTX, id int64) (models.Vehicle, error) {
	v, err := scanVehicle(q.QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return v, domain.NotFoundError{Resource: "Vehicle", Err: err}
	}
	return v, err
}

// GetByIDForUpdate locks the vehicle row for the duration of the enclosing
// transaction. Dispatch relies on this to serialize concurrent attempts.
func (r VehicleRepository) GetByIDForUpdate(tx DBTX, id int64) (models.Vehicle, error) {
	v, err := scanVehicle(tx.QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ? FOR UPDATE`, id))
	if err == sql.ErrNoRows {
		return v, domain.NotFoundError{Resource: "Vehicle", Err: err}
	}
	return v, err
}

func (r VehicleRepository) Create(v models.Vehicle) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO vehicles (name, model, license_plate, type, region, max_capacity, odometer, status, acquisition_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.Name, v.Model, v.LicensePlate, v.Type, v.Region, v.MaxCapacity, v.Odometer, v.Status, NullFloat(v.AcquisitionCost))
	if err != nil {
		if IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "Vehicle", Msg: "license plate already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(v models.Vehicle) error {
	res, err := r.DB.Exec(`
		UPDATE vehicles
		SET name=?, model=?, license_plate=?, type=?, region=?, max_capacity=?, odometer=?, status=?, acquisition_cost=?
		WHERE id=?
	`, v.Name, v.Model, v.LicensePlate, v.Type, v.Region, v.MaxCapacity, v.Odometer, v.Status, NullFloat(v.AcquisitionCost), v.ID)
	if err != nil {
		if IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "Vehicle", Msg: "license plate already in use", Err: err}
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Row may exist with identical values; treat as success only if present.
		var exists int
		if err := r.DB.QueryRow(`SELECT COUNT(*) FROM vehicles WHERE id=?`, v.ID).Scan(&exists); err == nil && exists == 0 {
			return domain.NotFoundError{Resource: "Vehicle"}
		}
	}
	return nil
}

// SetStatus runs inside the caller's transaction when q is a *sql.Tx.
func (r VehicleRepository) SetStatus(q DBTX, id int64, status models.VehicleStatus) error {
	_, err := q.Exec(`UPDATE vehicles SET status=? WHERE id=?`, status, id)
	return err
}

// SetStatusAndOdometer applies the trip-completion write in one statement.
func (r VehicleRepository) SetStatusAndOdometer(q DBTX, id int64, status models.VehicleStatus, odometer float64) error {
	_, err := q.Exec(`UPDATE vehicles SET status=?, odometer=? WHERE id=?`, status, odometer, id)
	return err
}

func (r VehicleRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Vehicle"}
	}
	return nil
}
