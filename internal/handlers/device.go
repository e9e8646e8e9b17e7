package handlers

import (
	"errors"
	"net/http"
	"time"

	"pumpstation/internal/metrics"
	"pumpstation/internal/service"

	"github.com/gin-gonic/gin"
)

// Response/status constants to avoid magic strings and typos.
const (
	statusOK            = "ok"
	statusLevelUpdated  = "level updated"
	statusPumpOn        = "pump reported as ON"
	statusPumpOff       = "pump reported as OFF"
	statusFaultRecorded = "fault recorded"
	statusErrorCleared  = "error cleared"

	errReadCommands = "failed to read commands"
	errReportLevel  = "failed to update level"
	errConfirmPump  = "failed to update pump state"
	errReportFault  = "failed to record fault"
	errClearFault   = "failed to clear error"

	errInvalidBodyPref = "invalid body: "
)

// Metric outcome labels.
const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeInvalid = "invalid"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTOs. Pointer fields so that zero values (level 0, active=false)
// still satisfy the required binding.
type levelRequest struct {
	Level *int `json:"level" binding:"required"`
}

type pumpStateRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type faultRequest struct {
	Message  string `json:"message" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Severity string `json:"severity" binding:"required"` // High | Medium | Low
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Read device instructions
// @Description  Polled by the controller. Returns safe defaults (everything off) until the record exists.
// @Tags         device
// @Produce      json
// @Success      200  {object}  service.Instructions
// @Failure      500  {object}  map[string]string
// @Router       /device/commands [get]
func (h *Handler) readCommands(c *gin.Context) {
	ctx := c.Request.Context()
	inst, err := h.services.Commands.ReadInstructions(ctx)
	if err != nil {
		metrics.DeviceRequestsTotal.WithLabelValues("commands", outcomeError).Inc()
		h.logAndJSONError(c, http.StatusInternalServerError, errReadCommands, "read_commands_failed", err)
		return
	}
	metrics.DeviceRequestsTotal.WithLabelValues("commands", outcomeOK).Inc()
	c.JSON(http.StatusOK, inst)
}

// @Summary      Report water level
// @Description  Updates the level and refreshes the device heartbeat.
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        body  body  levelRequest  true  "Level payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /device/level [post]
func (h *Handler) reportLevel(c *gin.Context) {
	var req levelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.DeviceRequestsTotal.WithLabelValues("level", outcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Telemetry.ReportLevel(ctx, *req.Level); err != nil {
		metrics.DeviceRequestsTotal.WithLabelValues("level", outcomeError).Inc()
		h.logAndJSONError(c, http.StatusInternalServerError, errReportLevel, "report_level_failed", err, "level", *req.Level)
		return
	}
	metrics.DeviceRequestsTotal.WithLabelValues("level", outcomeOK).Inc()
	metrics.WaterLevel.Set(float64(*req.Level))
	metrics.LastHeartbeat.Set(float64(time.Now().Unix()))
	c.JSON(http.StatusOK, gin.H{"status": statusLevelUpdated})
}

// @Summary      Confirm pump state
// @Description  The device reports the physical pump state; also a heartbeat.
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        body  body  pumpStateRequest  true  "Pump state payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /device/pump-state [post]
func (h *Handler) confirmPump(c *gin.Context) {
	var req pumpStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.DeviceRequestsTotal.WithLabelValues("pump_state", outcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Telemetry.ConfirmPump(ctx, *req.Active); err != nil {
		metrics.DeviceRequestsTotal.WithLabelValues("pump_state", outcomeError).Inc()
		h.logAndJSONError(c, http.StatusInternalServerError, errConfirmPump, "confirm_pump_failed", err, "active", *req.Active)
		return
	}
	metrics.DeviceRequestsTotal.WithLabelValues("pump_state", outcomeOK).Inc()
	metrics.LastHeartbeat.Set(float64(time.Now().Unix()))
	status := statusPumpOff
	if *req.Active {
		status = statusPumpOn
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// @Summary      Report a fault
// @Description  Appends to the fault history and raises the live alert.
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        body  body  faultRequest  true  "Fault payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /device/fault [post]
func (h *Handler) reportFault(c *gin.Context) {
	var req faultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.DeviceRequestsTotal.WithLabelValues("fault", outcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	err := h.services.Faults.Report(ctx, service.FaultReport{
		Message:  req.Message,
		Code:     req.Code,
		Severity: req.Severity,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSeverity) {
			metrics.DeviceRequestsTotal.WithLabelValues("fault", outcomeInvalid).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.DeviceRequestsTotal.WithLabelValues("fault", outcomeError).Inc()
		h.logAndJSONError(c, http.StatusInternalServerError, errReportFault, "report_fault_failed", err, "code", req.Code)
		return
	}
	metrics.DeviceRequestsTotal.WithLabelValues("fault", outcomeOK).Inc()
	if severity, err := service.NormalizeSeverity(req.Severity); err == nil {
		metrics.FaultsReportedTotal.WithLabelValues(severity).Inc()
	}
	c.JSON(http.StatusOK, gin.H{"status": statusFaultRecorded})
}

// @Summary      Clear the active error
// @Description  Drops the live alert; fault history is untouched.
// @Tags         device
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /device/fault/clear [post]
func (h *Handler) clearFault(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Faults.ClearActive(ctx); err != nil {
		metrics.DeviceRequestsTotal.WithLabelValues("fault_clear", outcomeError).Inc()
		h.logAndJSONError(c, http.StatusInternalServerError, errClearFault, "clear_fault_failed", err)
		return
	}
	metrics.DeviceRequestsTotal.WithLabelValues("fault_clear", outcomeOK).Inc()
	c.JSON(http.StatusOK, gin.H{"status": statusErrorCleared})
}
