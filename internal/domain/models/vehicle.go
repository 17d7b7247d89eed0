package models

import "time"

// VehicleStatus is the closed set of vehicle states. OnTrip and InShop are
// owned by the trip engine and maintenance coupling respectively; handlers
// never write them directly.
type VehicleStatus string

const (
	VehicleAvailable VehicleStatus = "Available"
	VehicleOnTrip    VehicleStatus = "OnTrip"
	VehicleInShop    VehicleStatus = "InShop"
	VehicleRetired   VehicleStatus = "Retired"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleAvailable, VehicleOnTrip, VehicleInShop, VehicleRetired:
		return true
	}
	return false
}

type VehicleType string

const (
	VehicleTruck VehicleType = "Truck"
	VehicleVan   VehicleType = "Van"
	VehicleBike  VehicleType = "Bike"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTruck, VehicleVan, VehicleBike:
		return true
	}
	return false
}

type Vehicle struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Model           string        `json:"model"`
	LicensePlate    string        `json:"licensePlate"`
	Type            VehicleType   `json:"type"`
	Region          string        `json:"region"`
	MaxCapacity     float64       `json:"maxCapacity"`
	Odometer        float64       `json:"odometer"`
	Status          VehicleStatus `json:"status"`
	AcquisitionCost *float64      `json:"acquisitionCost,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
