package models

import "time"

type DriverStatus string

const (
	DriverOnDuty    DriverStatus = "OnDuty"
	DriverOffDuty   DriverStatus = "OffDuty"
	DriverSuspended DriverStatus = "Suspended"
	DriverOnTrip    DriverStatus = "OnTrip"
)

func (s DriverStatus) Valid() bool {
	switch s {
	case DriverOnDuty, DriverOffDuty, DriverSuspended, DriverOnTrip:
		return true
	}
	return false
}

type Driver struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	LicenseType   string       `json:"licenseType"`
	LicenseExpiry time.Time    `json:"licenseExpiry"`
	SafetyScore   int          `json:"safetyScore"`
	Status        DriverStatus `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
