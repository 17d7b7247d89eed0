package repositories

import (
	"database/sql"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.DB.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	u, err := scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "User", Err: err}
	}
	return u, err
}

// GetByEmail matches case-insensitively; emails are stored lowercased.
func (r UserRepository) GetByEmail(email string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "User", Err: err}
	}
	return u, err
}

func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES (?, ?, ?, ?)
	`, u.Name, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "User", Msg: "email already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) Update(u models.User) error {
	_, err := r.DB.Exec(`
		UPDATE users SET name=?, email=?, password_hash=?, role=? WHERE id=?
	`, u.Name, u.Email, u.PasswordHash, u.Role, u.ID)
	if err != nil && IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "User", Msg: "email already in use", Err: err}
	}
	return err
}

func (r UserRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "User"}
	}
	return nil
}
