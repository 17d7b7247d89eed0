package repositories

import (
	"database/sql"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
)

type MaintenanceRepository struct {
	DB *sql.DB
}

const maintenanceColumns = `m.id, m.vehicle_id, m.service_type, m.description, m.cost, m.date,
	m.next_service_due, m.status, m.created_at, m.updated_at,
	v.name, v.license_plate, v.type`

const maintenanceBaseQuery = `
	SELECT ` + maintenanceColumns + `
	FROM maintenance_logs m
	JOIN vehicles v ON v.id = m.vehicle_id`

func scanMaintenance(row interface{ Scan(...any) error }) (models.MaintenanceLog, error) {
	var m models.MaintenanceLog
	var nextDue sql.NullTime
	var vName, vPlate string
	var vType models.VehicleType

	err := row.Scan(
		&m.ID, &m.VehicleID, &m.ServiceType, &m.Description, &m.Cost, &m.Date,
		&nextDue, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		&vName, &vPlate, &vType,
	)
	if err != nil {
		return m, err
	}
	if nextDue.Valid {
		due := nextDue.Time
		m.NextServiceDue = &due
	}
	m.Vehicle = &models.TripVehicleRef{ID: m.VehicleID, Name: vName, LicensePlate: vPlate, Type: vType}
	return m, nil
}

func (r MaintenanceRepository) List(vehicleID int64) ([]models.MaintenanceLog, error) {
	query := maintenanceBaseQuery
	args := []any{}
	if vehicleID > 0 {
		query += ` WHERE m.vehicle_id = ?`
		args = append(args, vehicleID)
	}
	rows, err := r.DB.Query(query+` ORDER BY m.date DESC, m.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.MaintenanceLog{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r MaintenanceRepository) GetByID(q DBTX, id int64) (models.MaintenanceLog, error) {
	m, err := scanMaintenance(q.QueryRow(maintenanceBaseQuery+` WHERE m.id = ?`, id))
	if err == sql.ErrNoRows {
		return m, domain.NotFoundError{Resource: "Maintenance log", Err: err}
	}
	return m, err
}

// Insert runs inside the caller's transaction so the vehicle status flip and
// the log insert land together.
func (r MaintenanceRepository) Insert(tx DBTX, m models.MaintenanceLog) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO maintenance_logs (vehicle_id, service_type, description, cost, date, next_service_due, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.VehicleID, m.ServiceType, m.Description, m.Cost, m.Date, nullTime(m.NextServiceDue), m.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update runs inside the caller's transaction for the same reason.
func (r MaintenanceRepository) Update(tx DBTX, m models.MaintenanceLog) error {
	_, err := tx.Exec(`
		UPDATE maintenance_logs
		SET service_type=?, description=?, cost=?, date=?, next_service_due=?, status=?
		WHERE id=?
	`, m.ServiceType, m.Description, m.Cost, m.Date, nullTime(m.NextServiceDue), m.Status, m.ID)
	return err
}

func (r MaintenanceRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM maintenance_logs WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Maintenance log"}
	}
	return nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
