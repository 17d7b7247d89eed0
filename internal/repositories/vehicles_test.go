package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
)

func TestVehicleCreateMapsDuplicatePlateToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO vehicles`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	repo := VehicleRepository{DB: db}
	_, err = repo.Create(models.Vehicle{
		Name:         "Truck A",
		LicensePlate: "B 1234 TR",
		Type:         models.VehicleTruck,
		MaxCapacity:  1000,
		Status:       models.VehicleAvailable,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err.Error() != "Vehicle conflict: license plate already registered" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestVehicleGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM vehicles WHERE id = \?`).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := VehicleRepository{DB: db}
	_, err = repo.GetByID(db, 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestVehicleListAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM vehicles WHERE status = \? AND type = \?`).
		WithArgs("Available", "Truck").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "model", "license_plate", "type", "region",
			"max_capacity", "odometer", "status", "acquisition_cost", "created_at", "updated_at",
		}).AddRow(1, "Truck A", "Volvo FH", "B 1234 TR", "Truck", "West", 1000.0, 52000.0, "Available", nil, now, now))

	repo := VehicleRepository{DB: db}
	list, err := repo.List(VehicleFilter{Status: "Available", Type: "Truck"})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 1 || list[0].LicensePlate != "B 1234 TR" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].AcquisitionCost != nil {
		t.Fatalf("expected nil acquisition cost, got %v", list[0].AcquisitionCost)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
