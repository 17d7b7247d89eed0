package services

import (
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
)

type DriverService struct {
	Drivers repositories.DriverRepository

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s DriverService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IsLicenseExpired is pure and re-evaluated on every trip creation and
// dispatch; eligibility is never cached because it can change between the
// Draft being created and the dispatch call.
func (s DriverService) IsLicenseExpired(expiry time.Time) bool {
	return expiry.Before(s.now())
}

type CreateDriverInput struct {
	Name          string
	LicenseType   string
	LicenseExpiry time.Time
	SafetyScore   *int
	Status        models.DriverStatus
}

func (s DriverService) List(status string) ([]models.Driver, error) {
	return s.Drivers.List(status)
}

func (s DriverService) Get(id int64) (models.Driver, error) {
	return s.Drivers.GetByID(s.Drivers.DB, id)
}

func (s DriverService) Create(in CreateDriverInput) (models.Driver, error) {
	d := models.Driver{
		Name:          in.Name,
		LicenseType:   in.LicenseType,
		LicenseExpiry: in.LicenseExpiry,
		SafetyScore:   100,
		Status:        models.DriverOffDuty,
	}
	if in.SafetyScore != nil {
		d.SafetyScore = *in.SafetyScore
	}
	if in.Status != "" {
		if !in.Status.Valid() {
			return models.Driver{}, domain.ValidationError{Field: "status", Msg: "unknown driver status"}
		}
		d.Status = in.Status
	}

	id, err := s.Drivers.Create(d)
	if err != nil {
		return models.Driver{}, err
	}
	return s.Get(id)
}

type UpdateDriverInput struct {
	Name          *string
	LicenseType   *string
	LicenseExpiry *time.Time
	SafetyScore   *int
	Status        *models.DriverStatus
}

func (s DriverService) Update(id int64, in UpdateDriverInput) (models.Driver, error) {
	d, err := s.Get(id)
	if err != nil {
		return models.Driver{}, err
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.LicenseType != nil {
		d.LicenseType = *in.LicenseType
	}
	if in.LicenseExpiry != nil {
		d.LicenseExpiry = *in.LicenseExpiry
	}
	if in.SafetyScore != nil {
		d.SafetyScore = *in.SafetyScore
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return models.Driver{}, domain.ValidationError{Field: "status", Msg: "unknown driver status"}
		}
		d.Status = *in.Status
	}
	if err := s.Drivers.Update(d); err != nil {
		return models.Driver{}, err
	}
	return s.Get(id)
}

func (s DriverService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Drivers.Delete(id)
}
