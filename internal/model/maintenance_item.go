package model

import "time"

// Status is the lifecycle state of a maintenance item.
type Status string

const (
	StatusOverdue    Status = "overdue"
	StatusDueSoon    Status = "due_soon"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every valid lifecycle state.
var Statuses = []Status{
	StatusOverdue, StatusDueSoon, StatusScheduled,
	StatusInProgress, StatusCompleted, StatusCancelled,
}

// IsTerminal reports whether the status is final. Terminal statuses are
// sticky: automatic derivation never overwrites them.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Priority is the urgency level of a maintenance item.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists every valid priority level.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// StringList is a []string stored as a JSON column.
type StringList []string

// MaintenanceItem is a scheduled, ongoing or completed service task for a
// fleet vehicle. The id is caller-assigned (e.g. "M001").
type MaintenanceItem struct {
	ID                 string     `gorm:"primaryKey;size:64" json:"id"`
	VehicleID          string     `gorm:"size:64;index;not null" json:"vehicle_id"`
	Type               string     `gorm:"size:128;not null" json:"type"`
	Description        string     `json:"description"`
	Status             Status     `gorm:"size:32;index;not null" json:"status"`
	Priority           Priority   `gorm:"size:16;index;not null" json:"priority"`
	DueDate            Date       `gorm:"not null" json:"due_date"`
	ScheduledDate      *time.Time `json:"scheduled_date"`
	CompletedDate      *time.Time `json:"completed_date"`
	CurrentMileage     int        `gorm:"not null" json:"current_mileage"`
	DueMileage         int        `gorm:"not null" json:"due_mileage"`
	EstimatedCost      *float64   `json:"estimated_cost"`
	ActualCost         *float64   `json:"actual_cost"`
	AssignedTo         string     `gorm:"size:128" json:"assigned_to"`
	AssignedTechnician string     `gorm:"size:128" json:"assigned_technician"`
	Notes              string     `json:"notes"`
	PartsNeeded        StringList `gorm:"serializer:json" json:"parts_needed"`
	Attachments        StringList `gorm:"serializer:json" json:"attachments"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
