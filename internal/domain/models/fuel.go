package models

import "time"

type FuelLog struct {
	ID        int64     `json:"id"`
	VehicleID int64     `json:"vehicleId"`
	Liters    float64   `json:"liters"`
	Cost      float64   `json:"cost"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Vehicle *TripVehicleRef `json:"vehicle,omitempty"`
}
