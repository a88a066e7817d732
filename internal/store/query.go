package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"fleet-maintenance-backend/internal/model"
)

// ListItems returns one page of maintenance items matching the filter.
// Filters AND together; a multi-valued status or priority filter matches any
// of its values. A page past the end yields an empty slice with intact
// metadata rather than an error.
func (s *Store) ListItems(ctx context.Context, f ItemFilter, page, perPage int) (Page, error) {
	q := s.db.WithContext(ctx).Model(&model.MaintenanceItem{})
	if f.VehicleID != "" {
		q = q.Where("vehicle_id = ?", f.VehicleID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if len(f.Priorities) > 0 {
		q = q.Where("priority IN ?", f.Priorities)
	}
	if f.AssignedTo != "" {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	return s.paginate(q, page, perPage)
}

// SearchItems matches the query case-insensitively as a substring of type,
// description or vehicle_id.
func (s *Store) SearchItems(ctx context.Context, query string, page, perPage int) (Page, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := s.db.WithContext(ctx).Model(&model.MaintenanceItem{}).
		Where("LOWER(type) LIKE ? OR LOWER(description) LIKE ? OR LOWER(vehicle_id) LIKE ?",
			pattern, pattern, pattern)
	return s.paginate(q, page, perPage)
}

func (s *Store) paginate(q *gorm.DB, page, perPage int) (Page, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("count maintenance items: %w", err)
	}

	var items []model.MaintenanceItem
	offset := (page - 1) * perPage
	err := q.Order("due_date ASC, id ASC").Offset(offset).Limit(perPage).Find(&items).Error
	if err != nil {
		return Page{}, fmt.Errorf("list maintenance items: %w", err)
	}
	if items == nil {
		items = []model.MaintenanceItem{}
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return Page{Items: items, Total: total, Page: page, PerPage: perPage, Pages: pages}, nil
}

// VehicleHistory returns all items for a vehicle, most recent due date first.
func (s *Store) VehicleHistory(ctx context.Context, vehicleID string) ([]model.MaintenanceItem, error) {
	var items []model.MaintenanceItem
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("due_date DESC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("fetch history for vehicle %s: %w", vehicleID, err)
	}
	if items == nil {
		items = []model.MaintenanceItem{}
	}
	return items, nil
}

// UpcomingItems returns non-terminal items whose due date falls inside
// [from, from+days], ordered soonest first.
func (s *Store) UpcomingItems(ctx context.Context, from time.Time, days int) ([]model.MaintenanceItem, error) {
	start := time.Date(from.UTC().Year(), from.UTC().Month(), from.UTC().Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days)

	var items []model.MaintenanceItem
	err := s.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ?", start, end).
		Where("status NOT IN ?", []model.Status{model.StatusCompleted, model.StatusCancelled}).
		Order("due_date ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("fetch upcoming maintenance items: %w", err)
	}
	if items == nil {
		items = []model.MaintenanceItem{}
	}
	return items, nil
}

// Summary aggregates counts and cost totals in SQL. The derived overdue and
// due-soon counts are left zero for the service to fill in.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	summary := Summary{
		ByStatus:   make(map[string]int64),
		ByPriority: make(map[string]int64),
	}

	if err := s.db.WithContext(ctx).Model(&model.MaintenanceItem{}).
		Count(&summary.TotalItems).Error; err != nil {
		return Summary{}, fmt.Errorf("count maintenance items: %w", err)
	}

	type groupRow struct {
		Key string
		N   int64
	}

	var statusRows []groupRow
	if err := s.db.WithContext(ctx).Model(&model.MaintenanceItem{}).
		Select("status AS key, COUNT(*) AS n").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return Summary{}, fmt.Errorf("aggregate statuses: %w", err)
	}
	for _, r := range statusRows {
		summary.ByStatus[r.Key] = r.N
	}

	var priorityRows []groupRow
	if err := s.db.WithContext(ctx).Model(&model.MaintenanceItem{}).
		Select("priority AS key, COUNT(*) AS n").
		Group("priority").
		Scan(&priorityRows).Error; err != nil {
		return Summary{}, fmt.Errorf("aggregate priorities: %w", err)
	}
	for _, r := range priorityRows {
		summary.ByPriority[r.Key] = r.N
	}

	var costs struct {
		Estimated float64
		Actual    float64
	}
	if err := s.db.WithContext(ctx).Model(&model.MaintenanceItem{}).
		Select("COALESCE(SUM(estimated_cost), 0) AS estimated, COALESCE(SUM(actual_cost), 0) AS actual").
		Scan(&costs).Error; err != nil {
		return Summary{}, fmt.Errorf("aggregate costs: %w", err)
	}
	summary.TotalEstimatedCost = costs.Estimated
	summary.TotalActualCost = costs.Actual

	return summary, nil
}

// BucketTotals aggregates one trend bucket: completions (with their actual
// cost) by completed_date, creations by created_at, over [start, end).
func (s *Store) BucketTotals(ctx context.Context, start, end time.Time) (TrendTotals, error) {
	var totals TrendTotals

	var completed struct {
		N    int64
		Cost float64
	}
	err := s.db.WithContext(ctx).Model(&model.MaintenanceItem{}).
		Select("COUNT(*) AS n, COALESCE(SUM(actual_cost), 0) AS cost").
		Where("completed_date >= ? AND completed_date < ?", start, end).
		Scan(&completed).Error
	if err != nil {
		return TrendTotals{}, fmt.Errorf("aggregate completions: %w", err)
	}
	totals.CompletedCount = completed.N
	totals.ActualCost = completed.Cost

	err = s.db.WithContext(ctx).Model(&model.MaintenanceItem{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&totals.CreatedCount).Error
	if err != nil {
		return TrendTotals{}, fmt.Errorf("count creations: %w", err)
	}

	return totals, nil
}
