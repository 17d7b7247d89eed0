package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"
)

type ExpenseHandler struct {
	Expenses services.ExpenseService
}

// GET /api/expenses?vehicleId=3&tripId=11
func (h ExpenseHandler) List(c *gin.Context) {
	f := repositories.ExpenseFilter{}
	if v := int64Query(c, "vehicleId"); v != nil {
		f.VehicleID = *v
	}
	if t := int64Query(c, "tripId"); t != nil {
		f.TripID = *t
	}
	expenses, err := h.Expenses.List(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// GET /api/expenses/:id
func (h ExpenseHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	expense, err := h.Expenses.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

type createExpensePayload struct {
	VehicleID   int64   `json:"vehicleId" binding:"required,gt=0"`
	TripID      *int64  `json:"tripId" binding:"omitempty,gt=0"`
	ExpenseType string `json:"expenseType" binding:"required,oneof=Fuel Maintenance Toll Repair Other"`
	// pointer so a zero amount still binds
	Amount      *float64 `json:"amount" binding:"required,gte=0"`
	Date        string   `json:"date" binding:"required"`
	Description *string  `json:"description"`
}

// POST /api/expenses
func (h ExpenseHandler) Create(c *gin.Context) {
	var payload createExpensePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	date, err := utils.ParseDate(payload.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	expense, err := h.Expenses.Create(services.CreateExpenseInput{
		VehicleID:   payload.VehicleID,
		TripID:      payload.TripID,
		ExpenseType: models.ExpenseType(payload.ExpenseType),
		Amount:      *payload.Amount,
		Date:        date,
		Description: payload.Description,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

type updateExpensePayload struct {
	TripID      *int64   `json:"tripId" binding:"omitempty,gt=0"`
	ExpenseType *string  `json:"expenseType" binding:"omitempty,oneof=Fuel Maintenance Toll Repair Other"`
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
}

// PATCH /api/expenses/:id
func (h ExpenseHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload updateExpensePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	in := services.UpdateExpenseInput{
		TripID:      payload.TripID,
		Amount:      payload.Amount,
		Description: payload.Description,
	}
	if payload.ExpenseType != nil {
		t := models.ExpenseType(*payload.ExpenseType)
		in.ExpenseType = &t
	}
	if payload.Date != nil {
		d, err := utils.ParseDate(*payload.Date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "date must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		in.Date = &d
	}

	expense, err := h.Expenses.Update(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// DELETE /api/expenses/:id
func (h ExpenseHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Expenses.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
