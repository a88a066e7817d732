package model

import "time"

// Frequency units for recurring schedules.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// Frequencies lists every valid schedule frequency.
var Frequencies = []string{
	FrequencyDaily, FrequencyWeekly, FrequencyMonthly,
	FrequencyQuarterly, FrequencyYearly,
}

// RecurringSchedule describes maintenance that repeats on a fixed interval,
// e.g. an oil change every 3 months. NextScheduled is derived from
// LastExecuted (or the creation time) plus FrequencyValue units of Frequency.
type RecurringSchedule struct {
	ID                string     `gorm:"primaryKey;size:64" json:"id"`
	Name              string     `gorm:"size:128;not null" json:"name"`
	VehicleID         string     `gorm:"size:64;index;not null" json:"vehicle_id"`
	MaintenanceType   string     `gorm:"size:128;not null" json:"maintenance_type"`
	Description       string     `json:"description"`
	Frequency         string     `gorm:"size:16;not null" json:"frequency"`
	FrequencyValue    int        `gorm:"not null" json:"frequency_value"`
	EstimatedCost     float64    `json:"estimated_cost"`
	EstimatedDuration float64    `json:"estimated_duration"`
	AssignedTo        string     `gorm:"size:128" json:"assigned_to"`
	IsActive          bool       `json:"is_active"`
	LastExecuted      *time.Time `json:"last_executed"`
	NextScheduled     *time.Time `json:"next_scheduled"`
	TotalExecutions   int        `json:"total_executions"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NextAfter computes the next occurrence following the given time.
func (s RecurringSchedule) NextAfter(from time.Time) time.Time {
	n := s.FrequencyValue
	if n < 1 {
		n = 1
	}
	switch s.Frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, n)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7*n)
	case FrequencyMonthly:
		return from.AddDate(0, n, 0)
	case FrequencyQuarterly:
		return from.AddDate(0, 3*n, 0)
	case FrequencyYearly:
		return from.AddDate(n, 0, 0)
	default:
		return from.AddDate(0, n, 0)
	}
}
