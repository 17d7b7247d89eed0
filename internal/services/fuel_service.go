package services

import (
	"time"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
)

type FuelService struct {
	Logs     repositories.FuelRepository
	Vehicles repositories.VehicleRepository
}

type CreateFuelLogInput struct {
	VehicleID int64
	Liters    float64
	Cost      float64
	Date      time.Time
}

func (s FuelService) List(vehicleID int64) ([]models.FuelLog, error) {
	return s.Logs.List(vehicleID)
}

func (s FuelService) Get(id int64) (models.FuelLog, error) {
	return s.Logs.GetByID(id)
}

func (s FuelService) Create(in CreateFuelLogInput) (models.FuelLog, error) {
	if _, err := s.Vehicles.GetByID(s.Vehicles.DB, in.VehicleID); err != nil {
		return models.FuelLog{}, err
	}
	id, err := s.Logs.Create(models.FuelLog{
		VehicleID: in.VehicleID,
		Liters:    in.Liters,
		Cost:      in.Cost,
		Date:      in.Date,
	})
	if err != nil {
		return models.FuelLog{}, err
	}
	return s.Get(id)
}

type UpdateFuelLogInput struct {
	Liters *float64
	Cost   *float64
	Date   *time.Time
}

func (s FuelService) Update(id int64, in UpdateFuelLogInput) (models.FuelLog, error) {
	f, err := s.Get(id)
	if err != nil {
		return models.FuelLog{}, err
	}
	if in.Liters != nil {
		f.Liters = *in.Liters
	}
	if in.Cost != nil {
		f.Cost = *in.Cost
	}
	if in.Date != nil {
		f.Date = *in.Date
	}
	if err := s.Logs.Update(f); err != nil {
		return models.FuelLog{}, err
	}
	return s.Get(id)
}

func (s FuelService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Logs.Delete(id)
}
