package repositories

import (
	"database/sql"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
)

type ExpenseRepository struct {
	DB *sql.DB
}

const expenseColumns = `id, vehicle_id, trip_id, expense_type, amount, date, description, created_at, updated_at`

func scanExpense(row interface{ Scan(...any) error }) (models.Expense, error) {
	var e models.Expense
	var tripID sql.NullInt64
	var desc sql.NullString
	err := row.Scan(
		&e.ID, &e.VehicleID, &tripID, &e.ExpenseType, &e.Amount, &e.Date,
		&desc, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	e.TripID = IntPtr(tripID)
	e.Description = StringPtr(desc)
	return e, nil
}

type ExpenseFilter struct {
	VehicleID int64
	TripID    int64
}

func (r ExpenseRepository) List(f ExpenseFilter) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	where := ""
	args := []any{}
	if f.VehicleID > 0 {
		where = ` WHERE vehicle_id = ?`
		args = append(args, f.VehicleID)
	}
	if f.TripID > 0 {
		if where == "" {
			where = ` WHERE trip_id = ?`
		} else {
			where += ` AND trip_id = ?`
		}
		args = append(args, f.TripID)
	}
	rows, err := r.DB.Query(query+where+` ORDER BY date DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r ExpenseRepository) GetByID(id int64) (models.Expense, error) {
	e, err := scanExpense(r.DB.QueryRow(`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return e, domain.NotFoundError{Resource: "Expense", Err: err}
	}
	return e, err
}

func (r ExpenseRepository) Create(e models.Expense) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO expenses (vehicle_id, trip_id, expense_type, amount, date, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.VehicleID, NullInt(e.TripID), e.ExpenseType, e.Amount, e.Date, NullString(e.Description))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ExpenseRepository) Update(e models.Expense) error {
	_, err := r.DB.Exec(`
		UPDATE expenses
		SET trip_id=?, expense_type=?, amount=?, date=?, description=?
		WHERE id=?
	`, NullInt(e.TripID), e.ExpenseType, e.Amount, e.Date, NullString(e.Description), e.ID)
	return err
}

func (r ExpenseRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM expenses WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Expense"}
	}
	return nil
}
