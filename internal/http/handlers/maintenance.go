package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"
)

type MaintenanceHandler struct {
	Maintenance services.MaintenanceService
}

// GET /api/maintenance-logs?vehicleId=3
func (h MaintenanceHandler) List(c *gin.Context) {
	var vehicleID int64
	if v := int64Query(c, "vehicleId"); v != nil {
		vehicleID = *v
	}
	logs, err := h.Maintenance.List(vehicleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GET /api/maintenance-logs/:id
func (h MaintenanceHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	log, err := h.Maintenance.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

type createMaintenancePayload struct {
	VehicleID      int64   `json:"vehicleId" binding:"required,gt=0"`
	ServiceType    string  `json:"serviceType" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	Cost           float64 `json:"cost" binding:"gte=0"`
	Date           string  `json:"date" binding:"required"`
	NextServiceDue *string `json:"nextServiceDue"`
}

// POST /api/maintenance-logs
func (h MaintenanceHandler) Create(c *gin.Context) {
	var payload createMaintenancePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	date, err := utils.ParseDate(payload.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "date must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	var nextDue *time.Time
	if payload.NextServiceDue != nil {
		d, err := utils.ParseDate(*payload.NextServiceDue)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "nextServiceDue must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		nextDue = &d
	}

	log, err := h.Maintenance.Create(services.CreateMaintenanceInput{
		VehicleID:      payload.VehicleID,
		ServiceType:    payload.ServiceType,
		Description:    payload.Description,
		Cost:           payload.Cost,
		Date:           date,
		NextServiceDue: nextDue,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

type updateMaintenancePayload struct {
	ServiceType    *string  `json:"serviceType" binding:"omitempty,min=1"`
	Description    *string  `json:"description" binding:"omitempty,min=1"`
	Cost           *float64 `json:"cost" binding:"omitempty,gte=0"`
	Date           *string  `json:"date"`
	NextServiceDue *string  `json:"nextServiceDue"`
	Status         *string  `json:"status" binding:"omitempty,oneof=Pending InProgress Completed"`
}

// PATCH /api/maintenance-logs/:id
func (h MaintenanceHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload updateMaintenancePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	in := services.UpdateMaintenanceInput{
		ServiceType: payload.ServiceType,
		Description: payload.Description,
		Cost:        payload.Cost,
	}
	if payload.Date != nil {
		d, err := utils.ParseDate(*payload.Date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "date must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		in.Date = &d
	}
	if payload.NextServiceDue != nil {
		d, err := utils.ParseDate(*payload.NextServiceDue)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "nextServiceDue must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		in.NextServiceDue = &d
	}
	if payload.Status != nil {
		s := models.MaintenanceStatus(*payload.Status)
		in.Status = &s
	}

	log, err := h.Maintenance.Update(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// DELETE /api/maintenance-logs/:id
func (h MaintenanceHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Maintenance.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
