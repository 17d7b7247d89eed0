package models

import "time"

type ExpenseType string

const (
	ExpenseFuel        ExpenseType = "Fuel"
	ExpenseMaintenance ExpenseType = "Maintenance"
	ExpenseToll        ExpenseType = "Toll"
	ExpenseRepair      ExpenseType = "Repair"
	ExpenseOther       ExpenseType = "Other"
)

func (t ExpenseType) Valid() bool {
	switch t {
	case ExpenseFuel, ExpenseMaintenance, ExpenseToll, ExpenseRepair, ExpenseOther:
		return true
	}
	return false
}

type Expense struct {
	ID          int64       `json:"id"`
	VehicleID   int64       `json:"vehicleId"`
	TripID      *int64      `json:"tripId,omitempty"`
	ExpenseType ExpenseType `json:"expenseType"`
	Amount      float64     `json:"amount"`
	Date        time.Time   `json:"date"`
	Description *string     `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
