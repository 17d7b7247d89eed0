package repositories

import (
	"database/sql"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

const driverColumns = `id, name, license_type, license_expiry, safety_score, status, created_at, updated_at`

func scanDriver(row interface{ Scan(...any) error }) (models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID, &d.Name, &d.LicenseType, &d.LicenseExpiry,
		&d.SafetyScore, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func (r DriverRepository) List(status string) ([]models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	rows, err := r.DB.Query(query+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r DriverRepository) GetByID(q DBTX, id int64) (models.Driver, error) {
	d, err := scanDriver(q.QueryRow(`SELECT `+driverColumns+` FROM drivers WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return d, domain.NotFoundError{Resource: "Driver", Err: err}
	}
	return d, err
}

// GetByIDForUpdate locks the driver row within the enclosing transaction.
func (r DriverRepository) GetByIDForUpdate(tx DBTX, id int64) (models.Driver, error) {
	d, err := scanDriver(tx.QueryRow(`SELECT `+driverColumns+` FROM drivers WHERE id = ? FOR UPDATE`, id))
	if err == sql.ErrNoRows {
		return d, domain.NotFoundError{Resource: "Driver", Err: err}
	}
	return d, err
}

func (r DriverRepository) Create(d models.Driver) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO drivers (name, license_type, license_expiry, safety_score, status)
		VALUES (?, ?, ?, ?, ?)
	`, d.Name, d.LicenseType, d.LicenseExpiry, d.SafetyScore, d.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(d models.Driver) error {
	_, err := r.DB.Exec(`
		UPDATE drivers
		SET name=?, license_type=?, license_expiry=?, safety_score=?, status=?
		WHERE id=?
	`, d.Name, d.LicenseType, d.LicenseExpiry, d.SafetyScore, d.Status, d.ID)
	return err
}

func (r DriverRepository) SetStatus(q DBTX, id int64, status models.DriverStatus) error {
	_, err := q.Exec(`UPDATE drivers SET status=? WHERE id=?`, status, id)
	return err
}

func (r DriverRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Driver"}
	}
	return nil
}
