// Package status derives the lifecycle status of a maintenance item from its
// due date and mileage. Derivation is a pure function of its inputs so the
// same item always resolves to the same status for a given clock reading.
package status

import (
	"time"

	"fleet-maintenance-backend/internal/model"
)

// Thresholds configures the "due soon" window.
type Thresholds struct {
	// DueSoonDays marks an item due_soon when its due date is within this
	// many days from now.
	DueSoonDays int
	// DueSoonMileage marks an item due_soon when the remaining mileage to
	// its due mileage is within this margin.
	DueSoonMileage int
}

// DefaultThresholds mirrors the service defaults: 14 days / 500 miles.
var DefaultThresholds = Thresholds{DueSoonDays: 14, DueSoonMileage: 500}

// Derive computes the effective status of a maintenance item.
//
// Terminal statuses (completed, cancelled) are sticky and returned unchanged.
// Otherwise, in order: past due date or reached due mileage means overdue;
// inside the due-soon window means due_soon; an explicitly set in_progress
// survives only while the item is not yet near due; everything else is
// scheduled.
func Derive(prior model.Status, dueDate model.Date, dueMileage, currentMileage int, now time.Time, t Thresholds) model.Status {
	if prior.IsTerminal() {
		return prior
	}

	today := truncateToDay(now)
	due := dueDate.Time()

	// A zero due mileage means the item carries no mileage constraint.
	mileageTracked := dueMileage > 0

	if due.Before(today) || (mileageTracked && currentMileage >= dueMileage) {
		return model.StatusOverdue
	}

	daysLeft := int(due.Sub(today).Hours() / 24)
	if daysLeft <= t.DueSoonDays {
		return model.StatusDueSoon
	}
	if mileageTracked && dueMileage-currentMileage <= t.DueSoonMileage {
		return model.StatusDueSoon
	}

	if prior == model.StatusInProgress {
		return model.StatusInProgress
	}
	return model.StatusScheduled
}

// DeriveItem applies Derive to an item without mutating it.
func DeriveItem(item *model.MaintenanceItem, now time.Time, t Thresholds) model.Status {
	return Derive(item.Status, item.DueDate, item.DueMileage, item.CurrentMileage, now, t)
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
