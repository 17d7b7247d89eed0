package services

import (
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
)

type ExpenseService struct {
	Expenses repositories.ExpenseRepository
	Vehicles repositories.VehicleRepository
	Trips    repositories.TripRepository
}

type CreateExpenseInput struct {
	VehicleID   int64
	TripID      *int64
	ExpenseType models.ExpenseType
	Amount      float64
	Date        time.Time
	Description *string
}

func (s ExpenseService) List(f repositories.ExpenseFilter) ([]models.Expense, error) {
	return s.Expenses.List(f)
}

func (s ExpenseService) Get(id int64) (models.Expense, error) {
	return s.Expenses.GetByID(id)
}

func (s ExpenseService) Create(in CreateExpenseInput) (models.Expense, error) {
	if _, err := s.Vehicles.GetByID(s.Vehicles.DB, in.VehicleID); err != nil {
		return models.Expense{}, err
	}
	if in.TripID != nil {
		if _, err := s.Trips.GetByID(s.Trips.DB, *in.TripID); err != nil {
			return models.Expense{}, err
		}
	}
	if !in.ExpenseType.Valid() {
		return models.Expense{}, domain.ValidationError{Field: "expenseType", Msg: "unknown expense type"}
	}

	id, err := s.Expenses.Create(models.Expense{
		VehicleID:   in.VehicleID,
		TripID:      in.TripID,
		ExpenseType: in.ExpenseType,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	})
	if err != nil {
		return models.Expense{}, err
	}
	return s.Get(id)
}

type UpdateExpenseInput struct {
	TripID      *int64
	ExpenseType *models.ExpenseType
	Amount      *float64
	Date        *time.Time
	Description *string
}

func (s ExpenseService) Update(id int64, in UpdateExpenseInput) (models.Expense, error) {
	e, err := s.Get(id)
	if err != nil {
		return models.Expense{}, err
	}
	if in.TripID != nil {
		if _, err := s.Trips.GetByID(s.Trips.DB, *in.TripID); err != nil {
			return models.Expense{}, err
		}
		e.TripID = in.TripID
	}
	if in.ExpenseType != nil {
		if !in.ExpenseType.Valid() {
			return models.Expense{}, domain.ValidationError{Field: "expenseType", Msg: "unknown expense type"}
		}
		e.ExpenseType = *in.ExpenseType
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Description != nil {
		e.Description = in.Description
	}
	if err := s.Expenses.Update(e); err != nil {
		return models.Expense{}, err
	}
	return s.Get(id)
}

func (s ExpenseService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Expenses.Delete(id)
}
