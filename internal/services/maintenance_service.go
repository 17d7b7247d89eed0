package services

import (
	"database/sql"
	"fmt"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
	"fleetflow/internal/utils"
)

// MaintenanceService couples maintenance logs to vehicle state: creating a
// log forces its vehicle into InShop, and marking a log Completed releases
// the vehicle back to Available. Both flips are unconditional (no guard
// against double-logging or other open logs on the same vehicle) and land in
// the same transaction as the log write.
type MaintenanceService struct {
	DB       *sql.DB
	Logs     repositories.MaintenanceRepository
	Vehicles repositories.VehicleRepository
}

type CreateMaintenanceInput struct {
	VehicleID      int64
	ServiceType    string
	Description    string
	Cost           float64
	Date           time.Time
	NextServiceDue *time.Time
}

func (s MaintenanceService) List(vehicleID int64) ([]models.MaintenanceLog, error) {
	return s.Logs.List(vehicleID)
}

func (s MaintenanceService) Get(id int64) (models.MaintenanceLog, error) {
	return s.Logs.GetByID(s.DB, id)
}

func (s MaintenanceService) Create(in CreateMaintenanceInput) (models.MaintenanceLog, error) {
	if _, err := s.Vehicles.GetByID(s.DB, in.VehicleID); err != nil {
		return models.MaintenanceLog{}, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return models.MaintenanceLog{}, domain.InternalError{Msg: "failed to start transaction", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	id, err := s.Logs.Insert(tx, models.MaintenanceLog{
		VehicleID:      in.VehicleID,
		ServiceType:    in.ServiceType,
		Description:    in.Description,
		Cost:           in.Cost,
		Date:           in.Date,
		NextServiceDue: in.NextServiceDue,
		Status:         models.MaintenancePending,
	})
	if err != nil {
		return models.MaintenanceLog{}, err
	}
	if err := s.Vehicles.SetStatus(tx, in.VehicleID, models.VehicleInShop); err != nil {
		return models.MaintenanceLog{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.MaintenanceLog{}, domain.InternalError{Msg: "failed to commit maintenance log", Err: err}
	}
	committed = true
	utils.LogEvent("", "maintenance", "create", fmt.Sprintf("log_id=%d vehicle_id=%d", id, in.VehicleID))

	return s.Get(id)
}

type UpdateMaintenanceInput struct {
	ServiceType    *string
	Description    *string
	Cost           *float64
	Date           *time.Time
	NextServiceDue *time.Time
	Status         *models.MaintenanceStatus
}

func (s MaintenanceService) Update(id int64, in UpdateMaintenanceInput) (models.MaintenanceLog, error) {
	log, err := s.Get(id)
	if err != nil {
		return models.MaintenanceLog{}, err
	}

	if in.ServiceType != nil {
		log.ServiceType = *in.ServiceType
	}
	if in.Description != nil {
		log.Description = *in.Description
	}
	if in.Cost != nil {
		log.Cost = *in.Cost
	}
	if in.Date != nil {
		log.Date = *in.Date
	}
	if in.NextServiceDue != nil {
		log.NextServiceDue = in.NextServiceDue
	}
	releaseVehicle := false
	if in.Status != nil {
		if !in.Status.Valid() {
			return models.MaintenanceLog{}, domain.ValidationError{Field: "status", Msg: "unknown maintenance status"}
		}
		releaseVehicle = *in.Status == models.MaintenanceCompleted && log.Status != models.MaintenanceCompleted
		log.Status = *in.Status
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return models.MaintenanceLog{}, domain.InternalError{Msg: "failed to start transaction", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Logs.Update(tx, log); err != nil {
		return models.MaintenanceLog{}, err
	}
	if releaseVehicle {
		if err := s.Vehicles.SetStatus(tx, log.VehicleID, models.VehicleAvailable); err != nil {
			return models.MaintenanceLog{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.MaintenanceLog{}, domain.InternalError{Msg: "failed to commit maintenance update", Err: err}
	}
	committed = true
	if releaseVehicle {
		utils.LogEvent("", "maintenance", "complete", fmt.Sprintf("log_id=%d vehicle_id=%d", id, log.VehicleID))
	}

	return s.Get(id)
}

func (s MaintenanceService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Logs.Delete(id)
}
