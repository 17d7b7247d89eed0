package repositories

import (
	"database/sql"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
)

type FuelRepository struct {
	DB *sql.DB
}

const fuelBaseQuery = `
	SELECT f.id, f.vehicle_id, f.liters, f.cost, f.date, f.created_at, f.updated_at,
	       v.name, v.license_plate, v.type
	FROM fuel_logs f
	JOIN vehicles v ON v.id = f.vehicle_id`

func scanFuel(row interface{ Scan(...any) error }) (models.FuelLog, error) {
	var f models.FuelLog
	var vName, vPlate string
	var vType models.VehicleType
	err := row.Scan(
		&f.ID, &f.VehicleID, &f.Liters, &f.Cost, &f.Date, &f.CreatedAt, &f.UpdatedAt,
		&vName, &vPlate, &vType,
	)
	if err != nil {
		return f, err
	}
	f.Vehicle = &models.TripVehicleRef{ID: f.VehicleID, Name: vName, LicensePlate: vPlate, Type: vType}
	return f, nil
}

func (r FuelRepository) List(vehicleID int64) ([]models.FuelLog, error) {
	query := fuelBaseQuery
	args := []any{}
	if vehicleID > 0 {
		query += ` WHERE f.vehicle_id = ?`
		args = append(args, vehicleID)
	}
	rows, err := r.DB.Query(query+` ORDER BY f.date DESC, f.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.FuelLog{}
	for rows.Next() {
		f, err := scanFuel(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r FuelRepository) GetByID(id int64) (models.FuelLog, error) {
	f, err := scanFuel(r.DB.QueryRow(fuelBaseQuery+` WHERE f.id = ?`, id))
	if err == sql.ErrNoRows {
		return f, domain.NotFoundError{Resource: "Fuel log", Err: err}
	}
	return f, err
}

func (r FuelRepository) Create(f models.FuelLog) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO fuel_logs (vehicle_id, liters, cost, date)
		VALUES (?, ?, ?, ?)
	`, f.VehicleID, f.Liters, f.Cost, f.Date)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r FuelRepository) Update(f models.FuelLog) error {
	_, err := r.DB.Exec(`
		UPDATE fuel_logs SET liters=?, cost=?, date=? WHERE id=?
	`, f.Liters, f.Cost, f.Date, f.ID)
	return err
}

func (r FuelRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM fuel_logs WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Fuel log"}
	}
	return nil
}
