package models

import "time"

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "Pending"
	MaintenanceInProgress MaintenanceStatus = "InProgress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted:
		return true
	}
	return false
}

type MaintenanceLog struct {
	ID             int64             `json:"id"`
	VehicleID      int64             `json:"vehicleId"`
	ServiceType    string            `json:"serviceType,omitempty"`
	Description    string            `json:"description"`
	Cost           float64           `json:"cost"`
	Date           time.Time         `json:"date"`
	NextServiceDue *time.Time        `json:"nextServiceDue,omitempty"`
	Status         MaintenanceStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`

	Vehicle *TripVehicleRef `json:"vehicle,omitempty"`
}
