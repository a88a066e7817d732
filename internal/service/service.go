// Package service is the maintenance façade: it validates input, assigns
// ids, applies status derivation, and orchestrates the store. Handlers stay
// thin; everything here is callable directly from tests.
package service

import (
	"context"
	"sort"
	"time"

	"fleet-maintenance-backend/internal/model"
	"fleet-maintenance-backend/internal/status"
	"fleet-maintenance-backend/internal/store"
	"fleet-maintenance-backend/internal/validate"
)

// OverdueNotifier receives the id of a vehicle that gained newly overdue
// maintenance during a bulk refresh.
type OverdueNotifier interface {
	Dispatch(vehicleID string)
}

// Service carries the dependencies for every maintenance operation. The
// clock is injectable so derivation is deterministic in tests.
type Service struct {
	store      *store.Store
	thresholds status.Thresholds
	notifier   OverdueNotifier
	now        func() time.Time
}

// New creates a Service with the real clock.
func New(st *store.Store, thresholds status.Thresholds) *Service {
	return &Service{
		store:      st,
		thresholds: thresholds,
		now:        time.Now,
	}
}

// SetNotifier wires the overdue alert dispatcher. A nil notifier disables
// alerts.
func (s *Service) SetNotifier(n OverdueNotifier) {
	s.notifier = n
}

// SetClock replaces the time source. Tests use this to pin "now".
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Store exposes the underlying store for collaborators like the HTTP
// subscription handlers.
func (s *Service) Store() *store.Store {
	return s.store
}

// CreateItem validates and persists a new maintenance item. When the caller
// omits a status, the effective status is derived immediately; an explicit
// status is honored so imported records keep their state until the next
// reconciliation.
func (s *Service) CreateItem(ctx context.Context, in ItemCreate) (*model.MaintenanceItem, error) {
	e := validate.New()
	e.Required("id", in.ID)
	e.Required("vehicle_id", in.VehicleID)
	e.Required("type", in.Type)
	e.Required("due_date", in.DueDate)
	if in.Status != "" {
		e.OneOf("status", in.Status, validate.StatusValues())
	}
	if in.Priority != "" {
		e.OneOf("priority", in.Priority, validate.PriorityValues())
	}

	var current, due int
	if in.CurrentMileage == nil {
		e["current_mileage"] = "is required"
	} else {
		current = *in.CurrentMileage
	}
	if in.DueMileage == nil {
		e["due_mileage"] = "is required"
	} else {
		due = *in.DueMileage
	}
	if in.CurrentMileage != nil && in.DueMileage != nil {
		e.Mileage(current, due)
	}

	var dueDate model.Date
	if in.DueDate != "" {
		dueDate, _ = e.Date("due_date", in.DueDate)
	}
	if in.EstimatedCost != nil {
		e.NonNegativeFloat("estimated_cost", *in.EstimatedCost)
	}
	if err := e.OrNil(); err != nil {
		return nil, err
	}

	priority := model.Priority(in.Priority)
	if priority == "" {
		priority = model.PriorityMedium
	}

	itemStatus := model.Status(in.Status)
	if itemStatus == "" {
		itemStatus = status.Derive(model.StatusScheduled, dueDate, due, current, s.now(), s.thresholds)
	}

	item := &model.MaintenanceItem{
		ID:                 in.ID,
		VehicleID:          in.VehicleID,
		Type:               in.Type,
		Description:        in.Description,
		Status:             itemStatus,
		Priority:           priority,
		DueDate:            dueDate,
		CurrentMileage:     current,
		DueMileage:         due,
		EstimatedCost:      in.EstimatedCost,
		AssignedTo:         in.AssignedTo,
		AssignedTechnician: in.AssignedTechnician,
		Notes:              in.Notes,
		PartsNeeded:        in.PartsNeeded,
		Attachments:        in.Attachments,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem fetches a maintenance item by id.
func (s *Service) GetItem(ctx context.Context, id string) (*model.MaintenanceItem, error) {
	return s.store.GetItem(ctx, id)
}

// UpdateItem merges the provided fields into the stored item. Touching the
// due date, mileage or status re-derives the effective status.
func (s *Service) UpdateItem(ctx context.Context, id string, in ItemUpdate) (*model.MaintenanceItem, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	e := validate.New()
	current := item.CurrentMileage
	due := item.DueMileage
	if in.CurrentMileage != nil {
		current = *in.CurrentMileage
	}
	if in.DueMileage != nil {
		due = *in.DueMileage
	}
	if in.CurrentMileage != nil || in.DueMileage != nil {
		e.Mileage(current, due)
	}
	if in.Status != nil {
		e.OneOf("status", *in.Status, validate.StatusValues())
	}
	if in.Priority != nil {
		e.OneOf("priority", *in.Priority, validate.PriorityValues())
	}

	dueDate := item.DueDate
	if in.DueDate != nil {
		if d, ok := e.Date("due_date", *in.DueDate); ok {
			dueDate = d
		}
	}
	scheduledDate := item.ScheduledDate
	if in.ScheduledDate != nil {
		scheduledDate = parseTimestamp(e, "scheduled_date", *in.ScheduledDate)
	}
	completedDate := item.CompletedDate
	if in.CompletedDate != nil {
		completedDate = parseTimestamp(e, "completed_date", *in.CompletedDate)
	}
	if in.EstimatedCost != nil {
		e.NonNegativeFloat("estimated_cost", *in.EstimatedCost)
	}
	if in.ActualCost != nil {
		e.NonNegativeFloat("actual_cost", *in.ActualCost)
	}
	if err := e.OrNil(); err != nil {
		return nil, err
	}

	if in.Type != nil {
		item.Type = *in.Type
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Priority != nil {
		item.Priority = model.Priority(*in.Priority)
	}
	item.DueDate = dueDate
	item.ScheduledDate = scheduledDate
	item.CompletedDate = completedDate
	item.CurrentMileage = current
	item.DueMileage = due
	if in.EstimatedCost != nil {
		item.EstimatedCost = in.EstimatedCost
	}
	if in.ActualCost != nil {
		item.ActualCost = in.ActualCost
	}
	if in.AssignedTo != nil {
		item.AssignedTo = *in.AssignedTo
	}
	if in.AssignedTechnician != nil {
		item.AssignedTechnician = *in.AssignedTechnician
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	if in.PartsNeeded != nil {
		item.PartsNeeded = *in.PartsNeeded
	}
	if in.Attachments != nil {
		item.Attachments = *in.Attachments
	}

	if in.Status != nil {
		item.Status = model.Status(*in.Status)
		if item.Status == model.StatusCompleted && item.CompletedDate == nil {
			completedAt := s.now()
			item.CompletedDate = &completedAt
		}
	}
	if in.Status != nil || in.DueDate != nil || in.CurrentMileage != nil || in.DueMileage != nil {
		item.Status = status.DeriveItem(item, s.now(), s.thresholds)
	}

	if err := s.store.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a maintenance item by id.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.store.DeleteItem(ctx, id)
}

// ListItems returns one page of items matching the filter, normalizing the
// pagination parameters to their defaults.
func (s *Service) ListItems(ctx context.Context, f store.ItemFilter, page, perPage int) (store.Page, error) {
	page, perPage = normalizePaging(page, perPage)
	return s.store.ListItems(ctx, f, page, perPage)
}

// SearchItems free-text searches type, description and vehicle id.
func (s *Service) SearchItems(ctx context.Context, query string, page, perPage int) (store.Page, error) {
	page, perPage = normalizePaging(page, perPage)
	return s.store.SearchItems(ctx, query, page, perPage)
}

// VehicleHistory lists all maintenance for a vehicle, most recent first.
func (s *Service) VehicleHistory(ctx context.Context, vehicleID string) ([]model.MaintenanceItem, error) {
	return s.store.VehicleHistory(ctx, vehicleID)
}

// Summary combines the stored aggregates with the derived overdue/due-soon
// counts.
func (s *Service) Summary(ctx context.Context) (store.Summary, error) {
	summary, err := s.store.Summary(ctx)
	if err != nil {
		return store.Summary{}, err
	}

	items, err := s.store.NonTerminalItems(ctx)
	if err != nil {
		return store.Summary{}, err
	}
	now := s.now()
	for i := range items {
		switch status.DeriveItem(&items[i], now, s.thresholds) {
		case model.StatusOverdue:
			summary.OverdueCount++
		case model.StatusDueSoon:
			summary.DueSoonCount++
		}
	}
	return summary, nil
}

// OverdueItems returns the items whose effective status is overdue, with the
// derived status reflected on the returned copies.
func (s *Service) OverdueItems(ctx context.Context) ([]model.MaintenanceItem, error) {
	items, err := s.store.NonTerminalItems(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	overdue := []model.MaintenanceItem{}
	for _, item := range items {
		if status.DeriveItem(&item, now, s.thresholds) == model.StatusOverdue {
			item.Status = model.StatusOverdue
			overdue = append(overdue, item)
		}
	}
	return overdue, nil
}

// UpcomingItems returns non-terminal items due within the next N days
// (default 30).
func (s *Service) UpcomingItems(ctx context.Context, days int) ([]model.MaintenanceItem, error) {
	if days <= 0 {
		days = 30
	}
	return s.store.UpcomingItems(ctx, s.now(), days)
}

// BulkRefreshStatuses recomputes the status of every non-terminal item and
// persists only the ones that changed, returning the count. Each write is an
// independent read-modify-write scoped to one record, so a failure leaves
// prior progress in place and a retry is safe: the operation is idempotent.
func (s *Service) BulkRefreshStatuses(ctx context.Context) (int, error) {
	items, err := s.store.NonTerminalItems(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	updated := 0
	newlyOverdue := make(map[string]bool)
	for i := range items {
		item := &items[i]
		next := status.DeriveItem(item, now, s.thresholds)
		if next == item.Status {
			continue
		}
		if next == model.StatusOverdue {
			newlyOverdue[item.VehicleID] = true
		}
		item.Status = next
		if err := s.store.SaveItem(ctx, item); err != nil {
			return updated, err
		}
		updated++
	}

	if s.notifier != nil && len(newlyOverdue) > 0 {
		vehicleIDs := make([]string, 0, len(newlyOverdue))
		for id := range newlyOverdue {
			vehicleIDs = append(vehicleIDs, id)
		}
		sort.Strings(vehicleIDs)
		for _, id := range vehicleIDs {
			s.notifier.Dispatch(id)
		}
	}
	return updated, nil
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return page, perPage
}

func parseTimestamp(e validate.Errors, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		e[field] = "invalid timestamp, expected RFC3339"
		return nil
	}
	return &t
}
