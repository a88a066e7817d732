package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-maintenance-backend/internal/service"
)

// ListSchedules returns all recurring schedules.
func (h *Handler) ListSchedules(c *gin.Context) {
	schedules, err := h.svc.ListSchedules(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(schedules), "items": schedules})
}

// CreateSchedule adds a recurring schedule.
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req service.ScheduleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sched, err := h.svc.CreateSchedule(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sched)
}

// GetSchedule returns a single recurring schedule.
func (h *Handler) GetSchedule(c *gin.Context) {
	sched, err := h.svc.GetSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// UpdateSchedule applies a partial update to a recurring schedule.
func (h *Handler) UpdateSchedule(c *gin.Context) {
	var req service.ScheduleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sched, err := h.svc.UpdateSchedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// DeleteSchedule removes a recurring schedule.
func (h *Handler) DeleteSchedule(c *gin.Context) {
	if err := h.svc.DeleteSchedule(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deleted"})
}

// ExecuteSchedule materializes a maintenance item from a schedule and
// advances its next occurrence.
func (h *Handler) ExecuteSchedule(c *gin.Context) {
	item, err := h.svc.ExecuteSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"schedule_id": c.Param("id"), "item": item})
}
