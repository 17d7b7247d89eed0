package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
	"fleetflow/internal/services"
)

type VehicleHandler struct {
	Vehicles services.VehicleService
}

// GET /api/vehicles?status=Available&type=Truck&region=West
func (h VehicleHandler) List(c *gin.Context) {
	f := repositories.VehicleFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Type:   strings.TrimSpace(c.Query("type")),
		Region: strings.TrimSpace(c.Query("region")),
	}
	vehicles, err := h.Vehicles.List(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// GET /api/vehicles/:id
func (h VehicleHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	vehicle, err := h.Vehicles.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

type createVehiclePayload struct {
	Name            string   `json:"name" binding:"required"`
	Model           string   `json:"model" binding:"required"`
	LicensePlate    string   `json:"licensePlate" binding:"required"`
	Type            string   `json:"type" binding:"required,oneof=Truck Van Bike"`
	Region          string   `json:"region"`
	MaxCapacity     float64  `json:"maxCapacity" binding:"required,gt=0"`
	Odometer        float64  `json:"odometer" binding:"gte=0"`
	Status          string   `json:"status" binding:"omitempty,oneof=Available OnTrip InShop Retired"`
	AcquisitionCost *float64 `json:"acquisitionCost" binding:"omitempty,gte=0"`
}

// POST /api/vehicles
func (h VehicleHandler) Create(c *gin.Context) {
	var payload createVehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	vehicle, err := h.Vehicles.Create(services.CreateVehicleInput{
		Name:            payload.Name,
		Model:           payload.Model,
		LicensePlate:    payload.LicensePlate,
		Type:            models.VehicleType(payload.Type),
		Region:          payload.Region,
		MaxCapacity:     payload.MaxCapacity,
		Odometer:        payload.Odometer,
		Status:          models.VehicleStatus(payload.Status),
		AcquisitionCost: payload.AcquisitionCost,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

type updateVehiclePayload struct {
	Name            *string  `json:"name" binding:"omitempty,min=1"`
	Model           *string  `json:"model" binding:"omitempty,min=1"`
	LicensePlate    *string  `json:"licensePlate" binding:"omitempty,min=1"`
	Type            *string  `json:"type" binding:"omitempty,oneof=Truck Van Bike"`
	Region          *string  `json:"region"`
	MaxCapacity     *float64 `json:"maxCapacity" binding:"omitempty,gt=0"`
	Odometer        *float64 `json:"odometer" binding:"omitempty,gte=0"`
	Status          *string  `json:"status" binding:"omitempty,oneof=Available OnTrip InShop Retired"`
	AcquisitionCost *float64 `json:"acquisitionCost" binding:"omitempty,gte=0"`
}

// PATCH /api/vehicles/:id
func (h VehicleHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload updateVehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	in := services.UpdateVehicleInput{
		Name:            payload.Name,
		Model:           payload.Model,
		LicensePlate:    payload.LicensePlate,
		Region:          payload.Region,
		MaxCapacity:     payload.MaxCapacity,
		Odometer:        payload.Odometer,
		AcquisitionCost: payload.AcquisitionCost,
	}
	if payload.Type != nil {
		t := models.VehicleType(*payload.Type)
		in.Type = &t
	}
	if payload.Status != nil {
		s := models.VehicleStatus(*payload.Status)
		in.Status = &s
	}

	vehicle, err := h.Vehicles.Update(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// DELETE /api/vehicles/:id
func (h VehicleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Vehicles.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
