package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fleet-maintenance-backend/internal/model"
	"fleet-maintenance-backend/internal/validate"
)

// CreateSchedule validates and persists a recurring schedule. The first
// occurrence is scheduled one interval after creation.
func (s *Service) CreateSchedule(ctx context.Context, in ScheduleCreate) (*model.RecurringSchedule, error) {
	e := validate.New()
	e.Required("name", in.Name)
	e.Required("vehicle_id", in.VehicleID)
	e.Required("maintenance_type", in.MaintenanceType)
	e.Required("frequency", in.Frequency)
	if in.Frequency != "" {
		e.OneOf("frequency", in.Frequency, model.Frequencies)
	}
	if in.FrequencyValue != nil {
		e.Min("frequency_value", *in.FrequencyValue, 1)
	}
	if in.EstimatedCost != nil {
		e.NonNegativeFloat("estimated_cost", *in.EstimatedCost)
	}
	if err := e.OrNil(); err != nil {
		return nil, err
	}

	sched := &model.RecurringSchedule{
		ID:              in.ID,
		Name:            in.Name,
		VehicleID:       in.VehicleID,
		MaintenanceType: in.MaintenanceType,
		Description:     in.Description,
		Frequency:       in.Frequency,
		FrequencyValue:  1,
		AssignedTo:      in.AssignedTo,
		IsActive:        true,
	}
	if sched.ID == "" {
		sched.ID = uuid.NewString()
	}
	if in.FrequencyValue != nil {
		sched.FrequencyValue = *in.FrequencyValue
	}
	if in.EstimatedCost != nil {
		sched.EstimatedCost = *in.EstimatedCost
	}
	if in.EstimatedDuration != nil {
		sched.EstimatedDuration = *in.EstimatedDuration
	}
	if in.IsActive != nil {
		sched.IsActive = *in.IsActive
	}
	next := sched.NextAfter(s.now())
	sched.NextScheduled = &next

	if err := s.store.CreateSchedule(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// GetSchedule fetches a schedule by id.
func (s *Service) GetSchedule(ctx context.Context, id string) (*model.RecurringSchedule, error) {
	return s.store.GetSchedule(ctx, id)
}

// ListSchedules returns all recurring schedules ordered by name.
func (s *Service) ListSchedules(ctx context.Context) ([]model.RecurringSchedule, error) {
	return s.store.ListSchedules(ctx)
}

// UpdateSchedule merges the provided fields into the stored schedule.
// Changing the frequency recomputes the next occurrence from now.
func (s *Service) UpdateSchedule(ctx context.Context, id string, in ScheduleUpdate) (*model.RecurringSchedule, error) {
	sched, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	e := validate.New()
	if in.Frequency != nil {
		e.OneOf("frequency", *in.Frequency, model.Frequencies)
	}
	if in.FrequencyValue != nil {
		e.Min("frequency_value", *in.FrequencyValue, 1)
	}
	if in.EstimatedCost != nil {
		e.NonNegativeFloat("estimated_cost", *in.EstimatedCost)
	}
	if err := e.OrNil(); err != nil {
		return nil, err
	}

	if in.Name != nil {
		sched.Name = *in.Name
	}
	if in.Description != nil {
		sched.Description = *in.Description
	}
	if in.Frequency != nil {
		sched.Frequency = *in.Frequency
	}
	if in.FrequencyValue != nil {
		sched.FrequencyValue = *in.FrequencyValue
	}
	if in.EstimatedCost != nil {
		sched.EstimatedCost = *in.EstimatedCost
	}
	if in.EstimatedDuration != nil {
		sched.EstimatedDuration = *in.EstimatedDuration
	}
	if in.AssignedTo != nil {
		sched.AssignedTo = *in.AssignedTo
	}
	if in.IsActive != nil {
		sched.IsActive = *in.IsActive
	}
	if in.Frequency != nil || in.FrequencyValue != nil {
		next := sched.NextAfter(s.now())
		sched.NextScheduled = &next
	}

	if err := s.store.SaveSchedule(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// DeleteSchedule removes a schedule by id.
func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	return s.store.DeleteSchedule(ctx, id)
}

// ExecuteSchedule materializes a maintenance item from the schedule, advances
// the next occurrence, and bumps the execution counters. Inactive schedules
// cannot be executed.
func (s *Service) ExecuteSchedule(ctx context.Context, id string) (*model.MaintenanceItem, error) {
	sched, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sched.IsActive {
		return nil, validate.Errors{"is_active": "schedule is not active"}
	}

	now := s.now()
	dueAt := now
	if sched.NextScheduled != nil {
		dueAt = *sched.NextScheduled
	}
	d := dueAt.UTC()

	item := &model.MaintenanceItem{
		ID:          uuid.NewString(),
		VehicleID:   sched.VehicleID,
		Type:        sched.MaintenanceType,
		Description: sched.Description,
		Status:      model.StatusScheduled,
		Priority:    model.PriorityMedium,
		DueDate:     model.NewDate(d.Year(), d.Month(), d.Day()),
		AssignedTo:  sched.AssignedTo,
		Notes:       fmt.Sprintf("Generated from recurring schedule %q", sched.Name),
	}
	if sched.EstimatedCost > 0 {
		cost := sched.EstimatedCost
		item.EstimatedCost = &cost
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	sched.LastExecuted = &now
	next := sched.NextAfter(dueAt)
	sched.NextScheduled = &next
	sched.TotalExecutions++
	if err := s.store.SaveSchedule(ctx, sched); err != nil {
		return nil, err
	}
	return item, nil
}
