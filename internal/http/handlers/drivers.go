package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"
)

type DriverHandler struct {
	Drivers services.DriverService
}

// GET /api/drivers?status=OnDuty
func (h DriverHandler) List(c *gin.Context) {
	drivers, err := h.Drivers.List(strings.TrimSpace(c.Query("status")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// GET /api/drivers/:id
func (h DriverHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	driver, err := h.Drivers.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

type createDriverPayload struct {
	Name          string `json:"name" binding:"required"`
	LicenseType   string `json:"licenseType" binding:"required"`
	LicenseExpiry string `json:"licenseExpiry" binding:"required"`
	SafetyScore   *int   `json:"safetyScore" binding:"omitempty,gte=0,lte=100"`
	Status        string `json:"status" binding:"omitempty,oneof=OnDuty OffDuty Suspended OnTrip"`
}

// POST /api/drivers
func (h DriverHandler) Create(c *gin.Context) {
	var payload createDriverPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	expiry, err := utils.ParseDate(payload.LicenseExpiry)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "licenseExpiry must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	driver, err := h.Drivers.Create(services.CreateDriverInput{
		Name:          payload.Name,
		LicenseType:   payload.LicenseType,
		LicenseExpiry: expiry,
		SafetyScore:   payload.SafetyScore,
		Status:        models.DriverStatus(payload.Status),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

type updateDriverPayload struct {
	Name          *string `json:"name" binding:"omitempty,min=1"`
	LicenseType   *string `json:"licenseType" binding:"omitempty,min=1"`
	LicenseExpiry *string `json:"licenseExpiry"`
	SafetyScore   *int    `json:"safetyScore" binding:"omitempty,gte=0,lte=100"`
	Status        *string `json:"status" binding:"omitempty,oneof=OnDuty OffDuty Suspended OnTrip"`
}

// PATCH /api/drivers/:id
func (h DriverHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload updateDriverPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	in := services.UpdateDriverInput{
		Name:        payload.Name,
		LicenseType: payload.LicenseType,
		SafetyScore: payload.SafetyScore,
	}
	if payload.LicenseExpiry != nil {
		expiry, err := utils.ParseDate(*payload.LicenseExpiry)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "licenseExpiry must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		in.LicenseExpiry = &expiry
	}
	if payload.Status != nil {
		s := models.DriverStatus(*payload.Status)
		in.Status = &s
	}

	driver, err := h.Drivers.Update(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// DELETE /api/drivers/:id
func (h DriverHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Drivers.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
