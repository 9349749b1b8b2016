package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-dashboard/internal/model"
	"github.com/nurpe/fleet-dashboard/internal/service"
)

type Handler struct {
	fleet *service.FleetService
	log   zerolog.Logger
}

func NewHandler(fleet *service.FleetService, log zerolog.Logger) *Handler {
	return &Handler{fleet: fleet, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	fleet := router.Group("/fleet")
	fleet.GET("/dashboard", h.getDashboard)
	fleet.POST("/vehicle", h.createVehicle)
	fleet.PATCH("/vehicle/:id", h.updateVehicle)
	fleet.POST("/seed", h.seedFleet)
	fleet.GET("/report/export", h.exportWeeklyExcel)
	fleet.GET("/report/export/pdf", h.exportWeeklyPDF)
}

type vehicleInputRequest struct {
	Model       string  `json:"model" binding:"required"`
	Status      string  `json:"status" binding:"required"`
	Fuel        float64 `json:"fuel"`
	Temperature float64 `json:"temperature"`
	Distance    float64 `json:"distance"`
	Driver      string  `json:"driver" binding:"required"`
	Class       string  `json:"class" binding:"required"`
}

func (r vehicleInputRequest) toInput() model.VehicleInput {
	return model.VehicleInput{
		Model:       r.Model,
		Status:      model.VehicleStatus(r.Status),
		Fuel:        r.Fuel,
		Temperature: r.Temperature,
		Distance:    r.Distance,
		Driver:      r.Driver,
		Class:       r.Class,
	}
}

type updateVehicleRequest struct {
	Model       *string  `json:"model"`
	Status      *string  `json:"status"`
	Fuel        *float64 `json:"fuel"`
	Temperature *float64 `json:"temperature"`
	Distance    *float64 `json:"distance"`
	Driver      *string  `json:"driver"`
	Class       *string  `json:"class"`
	RecordDate  *string  `json:"recordDate"`
}

type seedFleetRequest struct {
	Vehicles []vehicleInputRequest `json:"vehicles"`
}

func (h *Handler) getDashboard(c *gin.Context) {
	data, err := h.fleet.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) createVehicle(c *gin.Context) {
	var req vehicleInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.fleet.CreateVehicle(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *Handler) updateVehicle(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var recordAt *time.Time
	if req.RecordDate != nil {
		parsed, err := parseDate(*req.RecordDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recordDate"})
			return
		}
		recordAt = &parsed
	}

	patch := model.VehiclePatch{
		Model:       req.Model,
		Fuel:        req.Fuel,
		Temperature: req.Temperature,
		Distance:    req.Distance,
		Driver:      req.Driver,
		Class:       req.Class,
	}
	if req.Status != nil {
		status := model.VehicleStatus(*req.Status)
		patch.Status = &status
	}

	vehicle, err := h.fleet.ApplyUpdate(c.Request.Context(), id, patch, recordAt)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) seedFleet(c *gin.Context) {
	var req seedFleetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inputs := make([]model.VehicleInput, 0, len(req.Vehicles))
	for _, v := range req.Vehicles {
		inputs = append(inputs, v.toInput())
	}

	result, err := h.fleet.BulkReplace(c.Request.Context(), inputs)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) exportWeeklyExcel(c *gin.Context) {
	result, err := h.fleet.ExportWeeklyExcel(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) exportWeeklyPDF(c *gin.Context) {
	result, err := h.fleet.ExportWeeklyPDF(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
