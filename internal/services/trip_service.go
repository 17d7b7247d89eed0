package services

import (
	"database/sql"
	"fmt"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
	"fleetflow/internal/utils"
)

// TripService owns the trip lifecycle: Draft -> Dispatched -> Completed or
// Cancelled. Dispatch, Complete and Dispatched-Cancel mutate trip, vehicle
// and driver together; each runs in a single transaction with the affected
// rows locked, so a conflicting concurrent transition observes the committed
// status change and fails its own precondition check.
type TripService struct {
	DB          *sql.DB
	Trips       repositories.TripRepository
	Vehicles    repositories.VehicleRepository
	Drivers     repositories.DriverRepository
	Eligibility DriverService
}

type CreateTripInput struct {
	VehicleID     int64
	DriverID      int64
	CargoWeight   float64
	Origin        string
	Destination   string
	StartOdometer *float64
	EndOdometer   *float64
	Revenue       *float64
}

func (s TripService) List(f repositories.TripFilter) ([]models.Trip, error) {
	return s.Trips.List(f)
}

func (s TripService) Get(id int64) (models.Trip, error) {
	return s.Trips.GetByID(s.DB, id)
}

// checkAssignment runs the shared dispatch preconditions against the given
// vehicle and driver snapshots. Order matters: first failure wins.
func (s TripService) checkAssignment(vehicle models.Vehicle, driver models.Driver, cargoWeight float64) error {
	if vehicle.Status != models.VehicleAvailable {
		return domain.InvalidStateError{Msg: fmt.Sprintf("Vehicle is not available (status: %s)", vehicle.Status)}
	}
	if cargoWeight > vehicle.MaxCapacity {
		return domain.InvalidStateError{Msg: fmt.Sprintf("Cargo weight (%g) exceeds vehicle max capacity (%g)", cargoWeight, vehicle.MaxCapacity)}
	}
	if driver.Status != models.DriverOnDuty {
		return domain.InvalidStateError{Msg: fmt.Sprintf("Driver is not on duty (status: %s)", driver.Status)}
	}
	if s.Eligibility.IsLicenseExpired(driver.LicenseExpiry) {
		return domain.InvalidStateError{Msg: "Driver license has expired"}
	}
	return nil
}

// Create validates the assignment and inserts a Draft trip. A Draft does not
// reserve the vehicle or driver; the same resources stay bookable until a
// dispatch commits them.
func (s TripService) Create(in CreateTripInput) (models.Trip, error) {
	vehicle, err := s.Vehicles.GetByID(s.DB, in.VehicleID)
	if err != nil {
		return models.Trip{}, err
	}
	if vehicle.Status != models.VehicleAvailable {
		return models.Trip{}, domain.InvalidStateError{Msg: fmt.Sprintf("Vehicle is not available (status: %s)", vehicle.Status)}
	}
	if in.CargoWeight > vehicle.MaxCapacity {
		return models.Trip{}, domain.InvalidStateError{Msg: fmt.Sprintf("Cargo weight (%g) exceeds vehicle max capacity (%g)", in.CargoWeight, vehicle.MaxCapacity)}
	}

	driver, err := s.Drivers.GetByID(s.DB, in.DriverID)
	if err != nil {
		return models.Trip{}, err
	}
	if driver.Status != models.DriverOnDuty {
		return models.Trip{}, domain.InvalidStateError{Msg: fmt.Sprintf("Driver is not on duty (status: %s)", driver.Status)}
	}
	if s.Eligibility.IsLicenseExpired(driver.LicenseExpiry) {
		return models.Trip{}, domain.InvalidStateError{Msg: "Driver license has expired"}
	}

	startOdo := in.StartOdometer
	if startOdo == nil {
		v := vehicle.Odometer
		startOdo = &v
	}

	id, err := s.Trips.Create(models.Trip{
		VehicleID:     in.VehicleID,
		DriverID:      in.DriverID,
		CargoWeight:   in.CargoWeight,
		Origin:        in.Origin,
		Destination:   in.Destination,
		StartOdometer: startOdo,
		EndOdometer:   in.EndOdometer,
		Revenue:       in.Revenue,
		Status:        models.TripDraft,
	})
	if err != nil {
		return models.Trip{}, err
	}
	return s.Get(id)
}

type UpdateTripInput struct {
	CargoWeight   *float64
	Origin        *string
	Destination   *string
	StartOdometer *float64
	EndOdometer   *float64
	Revenue       *float64
}

// Update applies a partial edit to a Draft trip. Any other status rejects.
func (s TripService) Update(id int64, in UpdateTripInput) (models.Trip, error) {
	trip, err := s.Get(id)
	if err != nil {
		return models.Trip{}, err
	}
	if trip.Status != models.TripDraft {
		return models.Trip{}, domain.InvalidStateError{Msg: "Only draft trips can be updated"}
	}

	if in.CargoWeight != nil {
		vehicle, err := s.Vehicles.GetByID(s.DB, trip.VehicleID)
		if err != nil {
			return models.Trip{}, err
		}
		if *in.CargoWeight > vehicle.MaxCapacity {
			return models.Trip{}, domain.InvalidStateError{Msg: fmt.Sprintf("Cargo weight exceeds vehicle max capacity (%g)", vehicle.MaxCapacity)}
		}
		trip.CargoWeight = *in.CargoWeight
	}
	if in.Origin != nil {
		trip.Origin = *in.Origin
	}
	if in.Destination != nil {
		trip.Destination = *in.Destination
	}
	if in.StartOdometer != nil {
		trip.StartOdometer = in.StartOdometer
	}
	if in.EndOdometer != nil {
		trip.EndOdometer = in.EndOdometer
	}
	if in.Revenue != nil {
		trip.Revenue = in.Revenue
	}

	if err := s.Trips.UpdateDraft(trip); err != nil {
		return models.Trip{}, err
	}
	return s.Get(id)
}

// Dispatch moves a Draft to Dispatched. All assignment preconditions are
// re-validated against the current vehicle/driver rows, not the snapshot at
// creation time: this is what rejects the second of two Drafts racing for
// the same resources. The three writes commit or roll back together.
func (s TripService) Dispatch(id int64) (models.Trip, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to start transaction", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	trip, err := s.Trips.GetByIDForUpdate(tx, id)
	if err != nil {
		return models.Trip{}, err
	}
	if trip.Status != models.TripDraft {
		return models.Trip{}, domain.InvalidStateError{Msg: "Only draft trips can be dispatched"}
	}

	vehicle, err := s.Vehicles.GetByIDForUpdate(tx, trip.VehicleID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Trip{}, domain.InvalidStateError{Msg: "Vehicle is not available", Err: err}
		}
		return models.Trip{}, err
	}
	driver, err := s.Drivers.GetByIDForUpdate(tx, trip.DriverID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Trip{}, domain.InvalidStateError{Msg: "Driver is not on duty", Err: err}
		}
		return models.Trip{}, err
	}
	if err := s.checkAssignment(vehicle, driver, trip.CargoWeight); err != nil {
		return models.Trip{}, err
	}

	startOdo := vehicle.Odometer
	if trip.StartOdometer != nil {
		startOdo = *trip.StartOdometer
	}

	if err := s.Vehicles.SetStatus(tx, trip.VehicleID, models.VehicleOnTrip); err != nil {
		return models.Trip{}, err
	}
	if err := s.Drivers.SetStatus(tx, trip.DriverID, models.DriverOnTrip); err != nil {
		return models.Trip{}, err
	}
	if err := s.Trips.MarkDispatched(tx, id, startOdo); err != nil {
		return models.Trip{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to commit dispatch", Err: err}
	}
	committed = true
	utils.LogEvent("", "trips", "dispatch", fmt.Sprintf("trip_id=%d vehicle_id=%d driver_id=%d", id, trip.VehicleID, trip.DriverID))

	return s.Get(id)
}

type CompleteTripInput struct {
	EndOdometer float64
	Revenue     *float64
}

// Complete moves a Dispatched trip to Completed, releases the vehicle and
// driver, and writes the end odometer onto the vehicle. No check that the
// end odometer exceeds the start odometer is made.
func (s TripService) Complete(id int64, in CompleteTripInput) (models.Trip, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to start transaction", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	trip, err := s.Trips.GetByIDForUpdate(tx, id)
	if err != nil {
		return models.Trip{}, err
	}
	if trip.Status != models.TripDispatched {
		return models.Trip{}, domain.InvalidStateError{Msg: "Only dispatched trips can be completed"}
	}

	if _, err := s.Vehicles.GetByIDForUpdate(tx, trip.VehicleID); err != nil {
		return models.Trip{}, err
	}

	revenue := trip.Revenue
	if in.Revenue != nil {
		revenue = in.Revenue
	}

	if err := s.Vehicles.SetStatusAndOdometer(tx, trip.VehicleID, models.VehicleAvailable, in.EndOdometer); err != nil {
		return models.Trip{}, err
	}
	if err := s.Drivers.SetStatus(tx, trip.DriverID, models.DriverOnDuty); err != nil {
		return models.Trip{}, err
	}
	if err := s.Trips.MarkCompleted(tx, id, in.EndOdometer, revenue); err != nil {
		return models.Trip{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to commit completion", Err: err}
	}
	committed = true
	utils.LogEvent("", "trips", "complete", fmt.Sprintf("trip_id=%d end_odometer=%.1f", id, in.EndOdometer))

	return s.Get(id)
}

// Cancel is legal from Draft and Dispatched. From Dispatched it releases the
// vehicle and driver exactly as Complete does, but leaves odometer and
// revenue untouched.
func (s TripService) Cancel(id int64) (models.Trip, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to start transaction", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	trip, err := s.Trips.GetByIDForUpdate(tx, id)
	if err != nil {
		return models.Trip{}, err
	}
	if !models.CanTransition(trip.Status, models.TripCancelled) {
		return models.Trip{}, domain.InvalidStateError{Msg: "Trip is already completed or cancelled"}
	}

	if trip.Status == models.TripDispatched {
		if err := s.Vehicles.SetStatus(tx, trip.VehicleID, models.VehicleAvailable); err != nil {
			return models.Trip{}, err
		}
		if err := s.Drivers.SetStatus(tx, trip.DriverID, models.DriverOnDuty); err != nil {
			return models.Trip{}, err
		}
	}
	if err := s.Trips.SetStatus(tx, id, models.TripCancelled); err != nil {
		return models.Trip{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to commit cancellation", Err: err}
	}
	committed = true
	utils.LogEvent("", "trips", "cancel", fmt.Sprintf("trip_id=%d previous_status=%s", id, trip.Status))

	return s.Get(id)
}

// Delete removes a trip record. Dispatched trips must be cancelled first;
// by the time deletion is legal the vehicle and driver are already released,
// so only the trip row is touched.
func (s TripService) Delete(id int64) error {
	trip, err := s.Get(id)
	if err != nil {
		return err
	}
	if trip.Status == models.TripDispatched {
		return domain.InvalidStateError{Msg: "Cannot delete a dispatched trip. Cancel it first."}
	}
	return s.Trips.Delete(id)
}
