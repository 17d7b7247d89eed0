package models

import "time"

type TripStatus string

const (
	TripDraft      TripStatus = "Draft"
	TripDispatched TripStatus = "Dispatched"
	TripCompleted  TripStatus = "Completed"
	TripCancelled  TripStatus = "Cancelled"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripDraft, TripDispatched, TripCompleted, TripCancelled:
		return true
	}
	return false
}

// tripTransitions is the full transition table of the trip lifecycle.
// Completed and Cancelled are terminal. Anything not listed here is illegal.
var tripTransitions = map[TripStatus][]TripStatus{
	TripDraft:      {TripDispatched, TripCancelled},
	TripDispatched: {TripCompleted, TripCancelled},
	TripCompleted:  {},
	TripCancelled:  {},
}

// CanTransition reports whether from -> to is a legal trip transition.
func CanTransition(from, to TripStatus) bool {
	for _, next := range tripTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s TripStatus) Terminal() bool {
	return len(tripTransitions[s]) == 0
}

type Trip struct {
	ID            int64      `json:"id"`
	VehicleID     int64      `json:"vehicleId"`
	DriverID      int64      `json:"driverId"`
	CargoWeight   float64    `json:"cargoWeight"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	StartOdometer *float64   `json:"startOdometer,omitempty"`
	EndOdometer   *float64   `json:"endOdometer,omitempty"`
	Revenue       *float64   `json:"revenue,omitempty"`
	Status        TripStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Joined refs, populated on reads.
	Vehicle *TripVehicleRef `json:"vehicle,omitempty"`
	Driver  *TripDriverRef  `json:"driver,omitempty"`
}

type TripVehicleRef struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	LicensePlate string      `json:"licensePlate"`
	Type         VehicleType `json:"type"`
}

type TripDriverRef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	LicenseType string `json:"licenseType"`
}
