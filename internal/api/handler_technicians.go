package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-maintenance-backend/internal/service"
)

// ListTechnicians returns all technicians ordered by name.
func (h *Handler) ListTechnicians(c *gin.Context) {
	technicians, err := h.svc.ListTechnicians(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(technicians), "items": technicians})
}

// CreateTechnician adds a technician.
func (h *Handler) CreateTechnician(c *gin.Context) {
	var req service.TechnicianCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tech, err := h.svc.CreateTechnician(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tech)
}

// GetTechnician returns a single technician.
func (h *Handler) GetTechnician(c *gin.Context) {
	tech, err := h.svc.GetTechnician(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tech)
}

// UpdateTechnician applies a partial update to a technician.
func (h *Handler) UpdateTechnician(c *gin.Context) {
	var req service.TechnicianUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tech, err := h.svc.UpdateTechnician(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tech)
}

// DeleteTechnician removes a technician.
func (h *Handler) DeleteTechnician(c *gin.Context) {
	if err := h.svc.DeleteTechnician(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "technician deleted"})
}
