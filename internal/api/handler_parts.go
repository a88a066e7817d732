package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-maintenance-backend/internal/service"
)

// ListParts returns the parts inventory, optionally filtered by a search
// query.
func (h *Handler) ListParts(c *gin.Context) {
	parts, err := h.svc.ListParts(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(parts), "items": parts})
}

// LowStockParts returns parts at or below their reorder threshold.
func (h *Handler) LowStockParts(c *gin.Context) {
	parts, err := h.svc.LowStockParts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(parts), "items": parts})
}

// CreatePart adds a part to the inventory.
func (h *Handler) CreatePart(c *gin.Context) {
	var req service.PartCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	part, err := h.svc.CreatePart(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

// GetPart returns a single part.
func (h *Handler) GetPart(c *gin.Context) {
	part, err := h.svc.GetPart(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

// UpdatePart applies a partial update to a part.
func (h *Handler) UpdatePart(c *gin.Context) {
	var req service.PartUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	part, err := h.svc.UpdatePart(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

// DeletePart removes a part.
func (h *Handler) DeletePart(c *gin.Context) {
	if err := h.svc.DeletePart(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "part deleted"})
}
