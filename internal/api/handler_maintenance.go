package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fleet-maintenance-backend/internal/model"
	"fleet-maintenance-backend/internal/service"
	"fleet-maintenance-backend/internal/store"
)

// ListItems returns one page of maintenance items. Filters combine with AND;
// status and priority accept comma-separated lists.
func (h *Handler) ListItems(c *gin.Context) {
	filter := store.ItemFilter{
		VehicleID:  c.Query("vehicle"),
		AssignedTo: c.Query("assignedTo"),
	}
	for _, s := range queryList(c, "status") {
		filter.Statuses = append(filter.Statuses, model.Status(s))
	}
	for _, p := range queryList(c, "priority") {
		filter.Priorities = append(filter.Priorities, model.Priority(p))
	}
	page, perPage := pagingParams(c)

	result, err := h.svc.ListItems(c.Request.Context(), filter, page, perPage)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateItem creates a maintenance item from the request body.
func (h *Handler) CreateItem(c *gin.Context) {
	var req service.ItemCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItem returns a single maintenance item.
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.svc.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem applies a partial update to a maintenance item.
func (h *Handler) UpdateItem(c *gin.Context) {
	var req service.ItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a maintenance item.
func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "maintenance item deleted"})
}

// Summary returns fleet-wide maintenance aggregates.
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// VehicleHistory lists all maintenance for one vehicle, most recent first.
func (h *Handler) VehicleHistory(c *gin.Context) {
	items, err := h.svc.VehicleHistory(c.Request.Context(), c.Param("vehicleId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle_id": c.Param("vehicleId"), "items": items})
}

// BulkRefreshStatuses recomputes every active item's status.
func (h *Handler) BulkRefreshStatuses(c *gin.Context) {
	updated, err := h.svc.BulkRefreshStatuses(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated_count": updated})
}

// OverdueItems lists the items whose effective status is overdue.
func (h *Handler) OverdueItems(c *gin.Context) {
	items, err := h.svc.OverdueItems(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// UpcomingItems lists items due within the next N days (default 30).
func (h *Handler) UpcomingItems(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	items, err := h.svc.UpcomingItems(c.Request.Context(), days)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// SearchItems free-text searches maintenance items.
func (h *Handler) SearchItems(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	page, perPage := pagingParams(c)

	result, err := h.svc.SearchItems(c.Request.Context(), query, page, perPage)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CostAnalytics returns the spend breakdown by maintenance type.
func (h *Handler) CostAnalytics(c *gin.Context) {
	report, err := h.svc.CostAnalytics(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Trends returns maintenance activity bucketed into calendar periods.
func (h *Handler) Trends(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	report, err := h.svc.Trends(c.Request.Context(), c.Query("period"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func pagingParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	return page, perPage
}

// queryList gathers every occurrence of a repeatable query parameter, also
// splitting each occurrence on commas.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		out = append(out, splitList(raw)...)
	}
	return out
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
