package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTripService(db *sql.DB) TripService {
	return TripService{
		DB:          db,
		Trips:       repositories.TripRepository{DB: db},
		Vehicles:    repositories.VehicleRepository{DB: db},
		Drivers:     repositories.DriverRepository{DB: db},
		Eligibility: DriverService{Drivers: repositories.DriverRepository{DB: db}, Now: func() time.Time { return testNow }},
	}
}

func vehicleRows(id int64, status models.VehicleStatus, maxCapacity, odometer float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "model", "license_plate", "type", "region",
		"max_capacity", "odometer", "status", "acquisition_cost", "created_at", "updated_at",
	}).AddRow(id, "Truck A", "Volvo FH", "B 1234 TR", "Truck", "West",
		maxCapacity, odometer, string(status), nil, testNow, testNow)
}

func driverRows(id int64, status models.DriverStatus, licenseExpiry time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "license_type", "license_expiry", "safety_score", "status", "created_at", "updated_at",
	}).AddRow(id, "Dana", "CDL-A", licenseExpiry, 95, string(status), testNow, testNow)
}

func tripLockRows(id, vehicleID, driverID int64, cargo float64, status models.TripStatus, startOdo, endOdo, revenue any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "vehicle_id", "driver_id", "cargo_weight", "origin", "destination",
		"start_odometer", "end_odometer", "revenue", "status", "created_at", "updated_at",
	}).AddRow(id, vehicleID, driverID, cargo, "Depot", "Harbor", startOdo, endOdo, revenue, string(status), testNow, testNow)
}

func tripJoinedRows(id, vehicleID, driverID int64, cargo float64, status models.TripStatus, startOdo, endOdo, revenue any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "vehicle_id", "driver_id", "cargo_weight", "origin", "destination",
		"start_odometer", "end_odometer", "revenue", "status", "created_at", "updated_at",
		"v_name", "v_license_plate", "v_type", "d_name", "d_license_type",
	}).AddRow(id, vehicleID, driverID, cargo, "Depot", "Harbor", startOdo, endOdo, revenue, string(status), testNow, testNow,
		"Truck A", "B 1234 TR", "Truck", "Dana", "CDL-A")
}

func futureExpiry() time.Time { return testNow.AddDate(1, 0, 0) }
func pastExpiry() time.Time   { return testNow.AddDate(-1, 0, 0) }

func TestCreateTripDefaultsStartOdometerFromVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM vehicles WHERE id = \?`).WithArgs(int64(3)).
		WillReturnRows(vehicleRows(3, models.VehicleAvailable, 1000, 52000))
	mock.ExpectQuery(`FROM drivers WHERE id = \?`).WithArgs(int64(7)).
		WillReturnRows(driverRows(7, models.DriverOnDuty, futureExpiry()))
	mock.ExpectExec(`INSERT INTO trips`).
		WithArgs(int64(3), int64(7), 500.0, "Depot", "Harbor", 52000.0, nil, nil, string(models.TripDraft)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(`JOIN vehicles v`).WithArgs(int64(11)).
		WillReturnRows(tripJoinedRows(11, 3, 7, 500, models.TripDraft, 52000.0, nil, nil))

	svc := newTripService(db)
	trip, err := svc.Create(CreateTripInput{
		VehicleID:   3,
		DriverID:    7,
		CargoWeight: 500,
		Origin:      "Depot",
		Destination: "Harbor",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if trip.Status != models.TripDraft {
		t.Fatalf("expected Draft status, got %s", trip.Status)
	}
	if trip.StartOdometer == nil || *trip.StartOdometer != 52000 {
		t.Fatalf("expected start odometer 52000, got %v", trip.StartOdometer)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripRejectsUnavailableVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM vehicles WHERE id = \?`).WithArgs(int64(3)).
		WillReturnRows(vehicleRows(3, models.VehicleInShop, 1000, 52000))

	svc := newTripService(db)
	_, err = svc.Create(CreateTripInput{VehicleID: 3, DriverID: 7, CargoWeight: 500, Origin: "A", Destination: "B"})
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	want := "Vehicle is not available (status: InShop)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestCreateTripRejectsOverweightCargo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM vehicles WHERE id = \?`).WithArgs(int64(3)).
		WillReturnRows(vehicleRows(3, models.VehicleAvailable, 1000, 52000))

	svc := newTripService(db)
	_, err = svc.Create(CreateTripInput{VehicleID: 3, DriverID: 7, CargoWeight: 1500, Origin: "A", Destination: "B"})
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	want := "Cargo weight (1500) exceeds vehicle max capacity (1000)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestCreateTripRejectsOffDutyDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM vehicles WHERE id = \?`).WithArgs(int64(3)).
		WillReturnRows(vehicleRows(3, models.VehicleAvailable, 1000, 52000))
	mock.ExpectQuery(`FROM drivers WHERE id = \?`).WithArgs(int64(7)).
		WillReturnRows(driverRows(7, models.DriverOffDuty, futureExpiry()))

	svc := newTripService(db)
	_, err = svc.Create(CreateTripInput{VehicleID: 3, DriverID: 7, CargoWeight: 500, Origin: "A", Destination: "B"})
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	want := "Driver is not on duty (status: OffDuty)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestCreateTripRejectsExpiredLicense(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM vehicles WHERE id = \?`).WithArgs(int64(3)).
		WillReturnRows(vehicleRows(3, models.VehicleAvailable, 1000, 52000))
	mock.ExpectQuery(`FROM drivers WHERE id = \?`).WithArgs(int64(7)).
		WillReturnRows(driverRows(7, models.DriverOnDuty, pastExpiry()))

	svc := newTripService(db)
	_, err = svc.Create(CreateTripInput{VehicleID: 3, DriverID: 7, CargoWeight: 500, Origin: "A", Destination: "B"})
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if err.Error() != "Driver license has expired" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDispatchLocksAndCommitsAllThreeWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(11)).
		WillReturnRows(tripLockRows(11, 3, 7, 500, models.TripDraft, nil, nil, nil))
	mock.ExpectQuery(`FROM vehicles WHERE id = \? FOR UPDATE`).WithArgs(int64(3)).
		WillReturnRows(vehicleRows(3, models.VehicleAvailable, 1000, 52000))
	mock.ExpectQuery(`FROM drivers WHERE id = \? FOR UPDATE`).WithArgs(int64(7)).
		WillReturnRows(driverRows(7, models.DriverOnDuty, futureExpiry()))
	mock.ExpectExec(`UPDATE vehicles SET status=\? WHERE id=\?`).
		WithArgs(string(models.VehicleOnTrip), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE drivers SET status=\? WHERE id=\?`).
		WithArgs(string(models.DriverOnTrip), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE trips SET status=\?, start_odometer=\?`).
		WithArgs(string(models.TripDispatched), 52000.0, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`JOIN vehicles v`).WithArgs(int64(11)).
		WillReturnRows(tripJoinedRows(11, 3, 7, 500, models.TripDispatched, 52000.0, nil, nil))

	svc := newTripService(db)
	trip, err := svc.Dispatch(11)
	if err != nil {
		t.Fatalf("dispatch error: %v", err)
	}
	if trip.Status != models.TripDispatched {
		t.Fatalf("expected Dispatched, got %s", trip.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDispatchKeepsExplicitStartOdometer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(11)).
		WillReturnRows(tripLockRows(11, 3, 7, 500, models.TripDraft, 48000.0, nil, nil))
	mock.ExpectQuery(`FROM vehicles WHERE id = \? FOR UPDATE`).WithArgs(int64(3)).
		WillReturnRows(vehicleRows(3, models.VehicleAvailable, 1000, 52000))
	mock.ExpectQuery(`FROM drivers WHERE id = \? FOR UPDATE`).WithArgs(int64(7)).
		WillReturnRows(driverRows(7, models.DriverOnDuty, futureExpiry()))
	mock.ExpectExec(`UPDATE vehicles SET status=\?`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE drivers SET status=\?`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE trips SET status=\?, start_odometer=\?`).
		WithArgs(string(models.TripDispatched), 48000.0, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`JOIN vehicles v`).WithArgs(int64(11)).
		WillReturnRows(tripJoinedRows(11, 3, 7, 500, models.TripDispatched, 48000.0, nil, nil))

	svc := newTripService(db)
	if _, err := svc.Dispatch(11); err != nil {
		t.Fatalf("dispatch error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDispatchRejectsAlreadyDispatchedTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// models the loser of a concurrent double dispatch: by the time its
	// lock is granted, the winner's commit already made the trip Dispatched
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(11)).
		WillReturnRows(tripLockRows(11, 3, 7, 500, models.TripDispatched, 52000.0, nil, nil))
	mock.ExpectRollback()

	svc := newTripService(db)
	_, err = svc.Dispatch(11)
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if err.Error() != "Only draft trips can be dispatched" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDispatchRollsBackWhenVehicleTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(11)).
		WillReturnRows(tripLockRows(11, 3, 7, 500, models.TripDraft, nil, nil, nil))
	mock.ExpectQuery(`FROM vehicles WHERE id = \? FOR UPDATE`).WithArgs(int64(3)).
		WillReturnRows(vehicleRows(3, models.VehicleOnTrip, 1000, 52000))
	mock.ExpectRollback()

	svc := newTripService(db)
	_, err = svc.Dispatch(11)
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	want := "Vehicle is not available (status: OnTrip)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteReleasesVehicleAndDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	revenue := 1800.0

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(11)).
		WillReturnRows(tripLockRows(11, 3, 7, 500, models.TripDispatched, 52000.0, nil, nil))
	mock.ExpectQuery(`FROM vehicles WHERE id = \? FOR UPDATE`).WithArgs(int64(3)).
		WillReturnRows(vehicleRows(3, models.VehicleOnTrip, 1000, 52000))
	mock.ExpectExec(`UPDATE vehicles SET status=\?, odometer=\?`).
		WithArgs(string(models.VehicleAvailable), 52350.0, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE drivers SET status=\?`).
		WithArgs(string(models.DriverOnDuty), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE trips SET status=\?, end_odometer=\?, revenue=\?`).
		WithArgs(string(models.TripCompleted), 52350.0, revenue, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`JOIN vehicles v`).WithArgs(int64(11)).
		WillReturnRows(tripJoinedRows(11, 3, 7, 500, models.TripCompleted, 52000.0, 52350.0, revenue))

	svc := newTripService(db)
	trip, err := svc.Complete(11, CompleteTripInput{EndOdometer: 52350, Revenue: &revenue})
	if err != nil {
		t.Fatalf("complete error: %v", err)
	}
	if trip.Status != models.TripCompleted {
		t.Fatalf("expected Completed, got %s", trip.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteRejectsNonDispatchedTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(11)).
		WillReturnRows(tripLockRows(11, 3, 7, 500, models.TripDraft, nil, nil, nil))
	mock.ExpectRollback()

	svc := newTripService(db)
	_, err = svc.Complete(11, CompleteTripInput{EndOdometer: 52350})
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if err.Error() != "Only dispatched trips can be completed" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCancelDispatchedReleasesResources(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(11)).
		WillReturnRows(tripLockRows(11, 3, 7, 500, models.TripDispatched, 52000.0, nil, nil))
	mock.ExpectExec(`UPDATE vehicles SET status=\?`).
		WithArgs(string(models.VehicleAvailable), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE drivers SET status=\?`).
		WithArgs(string(models.DriverOnDuty), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE trips SET status=\?`).
		WithArgs(string(models.TripCancelled), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`JOIN vehicles v`).WithArgs(int64(11)).
		WillReturnRows(tripJoinedRows(11, 3, 7, 500, models.TripCancelled, 52000.0, nil, nil))

	svc := newTripService(db)
	trip, err := svc.Cancel(11)
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if trip.Status != models.TripCancelled {
		t.Fatalf("expected Cancelled, got %s", trip.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelDraftTouchesOnlyTripRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(11)).
		WillReturnRows(tripLockRows(11, 3, 7, 500, models.TripDraft, nil, nil, nil))
	mock.ExpectExec(`UPDATE trips SET status=\?`).
		WithArgs(string(models.TripCancelled), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`JOIN vehicles v`).WithArgs(int64(11)).
		WillReturnRows(tripJoinedRows(11, 3, 7, 500, models.TripCancelled, nil, nil, nil))

	svc := newTripService(db)
	if _, err := svc.Cancel(11); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelRejectsTerminalTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM trips WHERE id = \? FOR UPDATE`).WithArgs(int64(11)).
		WillReturnRows(tripLockRows(11, 3, 7, 500, models.TripCompleted, 52000.0, 52350.0, 1800.0))
	mock.ExpectRollback()

	svc := newTripService(db)
	_, err = svc.Cancel(11)
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if err.Error() != "Trip is already completed or cancelled" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDeleteRejectsDispatchedTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`JOIN vehicles v`).WithArgs(int64(11)).
		WillReturnRows(tripJoinedRows(11, 3, 7, 500, models.TripDispatched, 52000.0, nil, nil))

	svc := newTripService(db)
	err = svc.Delete(11)
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if err.Error() != "Cannot delete a dispatched trip. Cancel it first." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestUpdateRejectsNonDraftTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`JOIN vehicles v`).WithArgs(int64(11)).
		WillReturnRows(tripJoinedRows(11, 3, 7, 500, models.TripDispatched, 52000.0, nil, nil))

	svc := newTripService(db)
	origin := "New Depot"
	_, err = svc.Update(11, UpdateTripInput{Origin: &origin})
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if err.Error() != "Only draft trips can be updated" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
