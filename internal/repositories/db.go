package repositories

import (
	"database/sql"

	"github.com/go-sql-driver/mysql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so repository methods can run
// standalone or inside a transaction owned by a service.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// IsDuplicateKey reports a MySQL unique-constraint violation (error 1062).
func IsDuplicateKey(err error) bool {
	me, ok := err.(*mysql.MySQLError)
	return ok && me.Number == 1062
}

// NullFloat converts an optional float for writing.
func NullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// FloatPtr converts a scanned nullable float for reading.
func FloatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// NullInt converts an optional id for writing.
func NullInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

// IntPtr converts a scanned nullable id for reading.
func IntPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// NullString converts an optional string for writing.
func NullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// StringPtr converts a scanned nullable string for reading.
func StringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}
