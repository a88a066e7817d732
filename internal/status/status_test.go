package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleet-maintenance-backend/internal/model"
)

func TestDerive(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	thresholds := Thresholds{DueSoonDays: 14, DueSoonMileage: 500}

	testCases := []struct {
		name           string
		prior          model.Status
		dueDate        model.Date
		dueMileage     int
		currentMileage int
		expected       model.Status
	}{
		{
			name:           "past due date is overdue",
			prior:          model.StatusScheduled,
			dueDate:        model.NewDate(2024, 1, 1),
			dueMileage:     50000,
			currentMileage: 45000,
			expected:       model.StatusOverdue,
		},
		{
			name:           "reached due mileage is overdue even with future due date",
			prior:          model.StatusScheduled,
			dueDate:        model.NewDate(2024, 12, 31),
			dueMileage:     50000,
			currentMileage: 50000,
			expected:       model.StatusOverdue,
		},
		{
			name:           "due today is not overdue but due soon",
			prior:          model.StatusScheduled,
			dueDate:        model.NewDate(2024, 6, 1),
			dueMileage:     50000,
			currentMileage: 40000,
			expected:       model.StatusDueSoon,
		},
		{
			name:           "inside the day window is due soon",
			prior:          model.StatusScheduled,
			dueDate:        model.NewDate(2024, 6, 14),
			dueMileage:     50000,
			currentMileage: 40000,
			expected:       model.StatusDueSoon,
		},
		{
			name:           "inside the mileage margin is due soon",
			prior:          model.StatusScheduled,
			dueDate:        model.NewDate(2024, 12, 31),
			dueMileage:     50000,
			currentMileage: 49600,
			expected:       model.StatusDueSoon,
		},
		{
			name:           "far from due stays scheduled",
			prior:          model.StatusScheduled,
			dueDate:        model.NewDate(2024, 12, 31),
			dueMileage:     50000,
			currentMileage: 40000,
			expected:       model.StatusScheduled,
		},
		{
			name:           "in progress survives while not near due",
			prior:          model.StatusInProgress,
			dueDate:        model.NewDate(2024, 12, 31),
			dueMileage:     50000,
			currentMileage: 40000,
			expected:       model.StatusInProgress,
		},
		{
			name:           "in progress yields to overdue",
			prior:          model.StatusInProgress,
			dueDate:        model.NewDate(2024, 5, 1),
			dueMileage:     50000,
			currentMileage: 40000,
			expected:       model.StatusOverdue,
		},
		{
			name:           "zero due mileage carries no mileage constraint",
			prior:          model.StatusScheduled,
			dueDate:        model.NewDate(2024, 12, 31),
			dueMileage:     0,
			currentMileage: 0,
			expected:       model.StatusScheduled,
		},
		{
			name:           "completed is sticky",
			prior:          model.StatusCompleted,
			dueDate:        model.NewDate(2024, 1, 1),
			dueMileage:     50000,
			currentMileage: 60000,
			expected:       model.StatusCompleted,
		},
		{
			name:           "cancelled is sticky",
			prior:          model.StatusCancelled,
			dueDate:        model.NewDate(2024, 1, 1),
			dueMileage:     50000,
			currentMileage: 60000,
			expected:       model.StatusCancelled,
		},
		{
			name:           "due soon resolves from a stale overdue marker",
			prior:          model.StatusOverdue,
			dueDate:        model.NewDate(2024, 6, 10),
			dueMileage:     50000,
			currentMileage: 40000,
			expected:       model.StatusDueSoon,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(tc.prior, tc.dueDate, tc.dueMileage, tc.currentMileage, now, thresholds)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDeriveIsPure(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	due := model.NewDate(2024, 6, 20)
	first := Derive(model.StatusScheduled, due, 50000, 40000, now, DefaultThresholds)
	second := Derive(first, due, 50000, 40000, now, DefaultThresholds)
	assert.Equal(t, first, second, "re-deriving with unchanged inputs must be stable")
}
