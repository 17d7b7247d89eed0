package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/repositories"
	"fleetflow/internal/services"
)

type TripHandler struct {
	Trips services.TripService
}

// GET /api/trips?status=Dispatched&vehicleId=3&driverId=7
func (h TripHandler) List(c *gin.Context) {
	f := repositories.TripFilter{
		Status: strings.TrimSpace(c.Query("status")),
	}
	if v := int64Query(c, "vehicleId"); v != nil {
		f.VehicleID = *v
	}
	if d := int64Query(c, "driverId"); d != nil {
		f.DriverID = *d
	}

	trips, err := h.Trips.List(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/trips/:id
func (h TripHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	trip, err := h.Trips.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type createTripPayload struct {
	VehicleID     int64    `json:"vehicleId" binding:"required,gt=0"`
	DriverID      int64    `json:"driverId" binding:"required,gt=0"`
	CargoWeight   float64  `json:"cargoWeight" binding:"required,gt=0"`
	Origin        string   `json:"origin" binding:"required"`
	Destination   string   `json:"destination" binding:"required"`
	StartOdometer *float64 `json:"startOdometer" binding:"omitempty,gte=0"`
	EndOdometer   *float64 `json:"endOdometer" binding:"omitempty,gte=0"`
	Revenue       *float64 `json:"revenue" binding:"omitempty,gte=0"`
	// accepted for compatibility with older clients; trips always start
	// as drafts
	Status string `json:"status" binding:"omitempty,oneof=Draft Dispatched Completed Cancelled"`
}

// POST /api/trips
func (h TripHandler) Create(c *gin.Context) {
	var payload createTripPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	trip, err := h.Trips.Create(services.CreateTripInput{
		VehicleID:     payload.VehicleID,
		DriverID:      payload.DriverID,
		CargoWeight:   payload.CargoWeight,
		Origin:        payload.Origin,
		Destination:   payload.Destination,
		StartOdometer: payload.StartOdometer,
		EndOdometer:   payload.EndOdometer,
		Revenue:       payload.Revenue,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

type updateTripPayload struct {
	CargoWeight   *float64 `json:"cargoWeight" binding:"omitempty,gt=0"`
	Origin        *string  `json:"origin" binding:"omitempty,min=1"`
	Destination   *string  `json:"destination" binding:"omitempty,min=1"`
	StartOdometer *float64 `json:"startOdometer" binding:"omitempty,gte=0"`
	EndOdometer   *float64 `json:"endOdometer" binding:"omitempty,gte=0"`
	Revenue       *float64 `json:"revenue" binding:"omitempty,gte=0"`
}

// PATCH /api/trips/:id
func (h TripHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload updateTripPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	trip, err := h.Trips.Update(id, services.UpdateTripInput{
		CargoWeight:   payload.CargoWeight,
		Origin:        payload.Origin,
		Destination:   payload.Destination,
		StartOdometer: payload.StartOdometer,
		EndOdometer:   payload.EndOdometer,
		Revenue:       payload.Revenue,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips/:id/dispatch
func (h TripHandler) Dispatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	trip, err := h.Trips.Dispatch(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type completeTripPayload struct {
	// pointer so a zero end odometer still binds
	EndOdometer *float64 `json:"endOdometer" binding:"required,gte=0"`
	Revenue     *float64 `json:"revenue" binding:"omitempty,gte=0"`
}

// POST /api/trips/:id/complete
func (h TripHandler) Complete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload completeTripPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	trip, err := h.Trips.Complete(id, services.CompleteTripInput{
		EndOdometer: *payload.EndOdometer,
		Revenue:     payload.Revenue,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips/:id/cancel
func (h TripHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	trip, err := h.Trips.Cancel(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id
func (h TripHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Trips.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
