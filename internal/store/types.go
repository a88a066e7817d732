package store

import (
	"errors"

	"fleet-maintenance-backend/internal/model"
)

// Sentinel errors returned by the store. Callers map these onto HTTP statuses.
var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("duplicate id")
)

// ItemFilter narrows a maintenance item listing. Zero-valued fields apply no
// constraint; multiple statuses/priorities combine with OR, the filters
// themselves with AND.
type ItemFilter struct {
	VehicleID  string
	Statuses   []model.Status
	Priorities []model.Priority
	AssignedTo string
}

// Page is one page of maintenance items plus pagination metadata. Total is
// the full match count before pagination, Pages is ceil(Total/PerPage).
type Page struct {
	Items   []model.MaintenanceItem `json:"items"`
	Total   int64                   `json:"total"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"per_page"`
	Pages   int                     `json:"pages"`
}

// Summary is the aggregate view over all maintenance items. OverdueCount and
// DueSoonCount reflect derived statuses and are filled by the service layer.
type Summary struct {
	TotalItems         int64            `json:"total_items"`
	ByStatus           map[string]int64 `json:"by_status"`
	ByPriority         map[string]int64 `json:"by_priority"`
	TotalEstimatedCost float64          `json:"total_estimated_cost"`
	TotalActualCost    float64          `json:"total_actual_cost"`
	OverdueCount       int64            `json:"overdue_count"`
	DueSoonCount       int64            `json:"due_soon_count"`
}

// TrendTotals carries the per-bucket aggregates for the trends report.
type TrendTotals struct {
	CompletedCount int64
	CreatedCount   int64
	ActualCost     float64
}
