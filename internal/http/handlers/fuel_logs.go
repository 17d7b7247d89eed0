package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/services"
	"fleetflow/internal/utils"
)

type FuelLogHandler struct {
	Fuel services.FuelService
}

// GET /api/fuel-logs?vehicleId=3
func (h FuelLogHandler) List(c *gin.Context) {
	var vehicleID int64
	if v := int64Query(c, "vehicleId"); v != nil {
		vehicleID = *v
	}
	logs, err := h.Fuel.List(vehicleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GET /api/fuel-logs/:id
func (h FuelLogHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	log, err := h.Fuel.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

type createFuelLogPayload struct {
	VehicleID int64   `json:"vehicleId" binding:"required,gt=0"`
	Liters    float64 `json:"liters" binding:"required,gt=0"`
	Cost      float64 `json:"cost" binding:"gte=0"`
	Date      string  `json:"date" binding:"required"`
}

// POST /api/fuel-logs
func (h FuelLogHandler) Create(c *gin.Context) {
	var payload createFuelLogPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	date, err := utils.ParseDate(payload.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	log, err := h.Fuel.Create(services.CreateFuelLogInput{
		VehicleID: payload.VehicleID,
		Liters:    payload.Liters,
		Cost:      payload.Cost,
		Date:      date,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

type updateFuelLogPayload struct {
	Liters *float64 `json:"liters" binding:"omitempty,gt=0"`
	Cost   *float64 `json:"cost" binding:"omitempty,gte=0"`
	Date   *string  `json:"date"`
}

// PATCH /api/fuel-logs/:id
func (h FuelLogHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload updateFuelLogPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	in := services.UpdateFuelLogInput{
		Liters: payload.Liters,
		Cost:   payload.Cost,
	}
	if payload.Date != nil {
		d, err := utils.ParseDate(*payload.Date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "date must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		in.Date = &d
	}

	log, err := h.Fuel.Update(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// DELETE /api/fuel-logs/:id
func (h FuelLogHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Fuel.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
