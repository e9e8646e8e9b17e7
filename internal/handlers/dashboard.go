package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pumpstation/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusModeSet       = "automatic mode set"
	statusPumpRequested = "pump requested"

	errGetState    = "failed to load state"
	errListFaults  = "failed to load fault history"
	errSetMode     = "failed to set automatic mode"
	errRequestPump = "failed to request pump"
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

type automaticModeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type pumpRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// @Summary      Dashboard state snapshot
// @Description  Full system state with defaults resolved and derived liveness.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.StateSnapshot
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard/state [get]
func (h *Handler) dashboardState(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := h.services.Monitoring.Snapshot(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "dashboard_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Set automatic mode
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body  automaticModeRequest  true  "Mode payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/dashboard/automatic-mode [post]
func (h *Handler) setAutomaticMode(c *gin.Context) {
	var req automaticModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Control.SetAutomaticMode(ctx, *req.Enabled); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSetMode, "set_automatic_mode_failed", err, "enabled", *req.Enabled)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusModeSet, "enabled": *req.Enabled})
}

// @Summary      Request pump state
// @Description  Writes the desired pump state; the device overwrites it with ground truth on its next confirmation.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body  pumpRequest  true  "Pump payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/dashboard/pump [post]
func (h *Handler) requestPump(c *gin.Context) {
	var req pumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Control.RequestPump(ctx, *req.Active); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRequestPump, "request_pump_failed", err, "active", *req.Active)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusPumpRequested, "active": *req.Active})
}

// isDateOnly reports whether the query string lacks a time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List fault history
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD') and severity. A date-only 'to' is treated as end-of-day inclusive.
// @Tags         dashboard
// @Produce      json
// @Param        from      query  string  false  "Start of range"  example(2026-08-01)
// @Param        to        query  string  false  "End of range; date-only is end of day"  example(2026-08-31)
// @Param        severity  query  string  false  "Fault severity"  Enums(High,Medium,Low)
// @Success      200  {object}  map[string]interface{}  "count, faults"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard/faults [get]
func (h *Handler) listFaults(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from, to time.Time
		err      error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return
	}

	faults, err := h.services.FaultLog.List(ctx, service.FaultFilter{
		From:     from,
		To:       to,
		Severity: c.Query("severity"),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSeverity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log != nil {
			h.log.Errorw("faults_list_failed", "err", err, "from", from, "to", to)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errListFaults})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(faults),
		"faults": faults,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'", s)
}
