package services

import (
	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
)

type VehicleService struct {
	Vehicles repositories.VehicleRepository
}

type CreateVehicleInput struct {
	Name            string
	Model           string
	LicensePlate    string
	Type            models.VehicleType
	Region          string
	MaxCapacity     float64
	Odometer        float64
	Status          models.VehicleStatus
	AcquisitionCost *float64
}

func (s VehicleService) List(f repositories.VehicleFilter) ([]models.Vehicle, error) {
	return s.Vehicles.List(f)
}

func (s VehicleService) Get(id int64) (models.Vehicle, error) {
	return s.Vehicles.GetByID(s.Vehicles.DB, id)
}

func (s VehicleService) Create(in CreateVehicleInput) (models.Vehicle, error) {
	v := models.Vehicle{
		Name:            in.Name,
		Model:           in.Model,
		LicensePlate:    in.LicensePlate,
		Type:            in.Type,
		Region:          in.Region,
		MaxCapacity:     in.MaxCapacity,
		Odometer:        in.Odometer,
		Status:          models.VehicleAvailable,
		AcquisitionCost: in.AcquisitionCost,
	}
	if in.Status != "" {
		if !in.Status.Valid() {
			return models.Vehicle{}, domain.ValidationError{Field: "status", Msg: "unknown vehicle status"}
		}
		v.Status = in.Status
	}

	id, err := s.Vehicles.Create(v)
	if err != nil {
		return models.Vehicle{}, err
	}
	return s.Get(id)
}

type UpdateVehicleInput struct {
	Name            *string
	Model           *string
	LicensePlate    *string
	Type            *models.VehicleType
	Region          *string
	MaxCapacity     *float64
	Odometer        *float64
	Status          *models.VehicleStatus
	AcquisitionCost *float64
}

func (s VehicleService) Update(id int64, in UpdateVehicleInput) (models.Vehicle, error) {
	v, err := s.Get(id)
	if err != nil {
		return models.Vehicle{}, err
	}
	if in.Name != nil {
		v.Name = *in.Name
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.LicensePlate != nil {
		v.LicensePlate = *in.LicensePlate
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return models.Vehicle{}, domain.ValidationError{Field: "type", Msg: "unknown vehicle type"}
		}
		v.Type = *in.Type
	}
	if in.Region != nil {
		v.Region = *in.Region
	}
	if in.MaxCapacity != nil {
		v.MaxCapacity = *in.MaxCapacity
	}
	if in.Odometer != nil {
		v.Odometer = *in.Odometer
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return models.Vehicle{}, domain.ValidationError{Field: "status", Msg: "unknown vehicle status"}
		}
		v.Status = *in.Status
	}
	if in.AcquisitionCost != nil {
		v.AcquisitionCost = in.AcquisitionCost
	}

	if err := s.Vehicles.Update(v); err != nil {
		return models.Vehicle{}, err
	}
	return s.Get(id)
}

func (s VehicleService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Vehicles.Delete(id)
}
