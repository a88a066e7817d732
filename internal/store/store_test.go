package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fleet-maintenance-backend/internal/db"
	"fleet-maintenance-backend/internal/model"
)

// newTestStore opens an isolated in-memory SQLite database and migrates the
// schema.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return New(gormDB)
}

func seedItem(t *testing.T, s *Store, item model.MaintenanceItem) {
	t.Helper()
	require.NoError(t, s.CreateItem(context.Background(), &item))
}

func TestItemCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cost := 89.50
	item := model.MaintenanceItem{
		ID:             "M-1",
		VehicleID:      "V-100",
		Type:           "Oil Change",
		Status:         model.StatusScheduled,
		Priority:       model.PriorityMedium,
		DueDate:        model.NewDate(2024, 7, 1),
		CurrentMileage: 45000,
		DueMileage:     50000,
		EstimatedCost:  &cost,
		PartsNeeded:    model.StringList{"oil filter", "5W-30"},
	}
	require.NoError(t, s.CreateItem(ctx, &item))

	// Duplicate id is rejected.
	dup := item
	err := s.CreateItem(ctx, &dup)
	assert.ErrorIs(t, err, ErrDuplicateID)

	got, err := s.GetItem(ctx, "M-1")
	require.NoError(t, err)
	assert.Equal(t, "V-100", got.VehicleID)
	assert.Equal(t, "2024-07-01", got.DueDate.String())
	assert.Equal(t, model.StringList{"oil filter", "5W-30"}, got.PartsNeeded)
	require.NotNil(t, got.EstimatedCost)
	assert.Equal(t, 89.50, *got.EstimatedCost)

	got.Status = model.StatusInProgress
	require.NoError(t, s.SaveItem(ctx, got))
	got, err = s.GetItem(ctx, "M-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, got.Status)

	require.NoError(t, s.DeleteItem(ctx, "M-1"))
	_, err = s.GetItem(ctx, "M-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteItem(ctx, "M-1"), ErrNotFound)
}

func TestListItemsFiltersAndPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		seedItem(t, s, model.MaintenanceItem{
			ID:         fmt.Sprintf("M-%d", i),
			VehicleID:  "V-1",
			Type:       "Inspection",
			Status:     model.StatusScheduled,
			Priority:   model.PriorityLow,
			DueDate:    model.NewDate(2024, 6, i),
			DueMileage: 10000,
		})
	}
	seedItem(t, s, model.MaintenanceItem{
		ID: "M-6", VehicleID: "V-2", Type: "Brakes",
		Status: model.StatusOverdue, Priority: model.PriorityCritical,
		DueDate: model.NewDate(2024, 5, 1), AssignedTo: "Dana",
	})

	t.Run("filter by vehicle", func(t *testing.T) {
		page, err := s.ListItems(ctx, ItemFilter{VehicleID: "V-2"}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "M-6", page.Items[0].ID)
	})

	t.Run("filter by status set", func(t *testing.T) {
		page, err := s.ListItems(ctx, ItemFilter{
			Statuses: []model.Status{model.StatusOverdue, model.StatusDueSoon},
		}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("filter by assignee and priority", func(t *testing.T) {
		page, err := s.ListItems(ctx, ItemFilter{
			AssignedTo: "Dana",
			Priorities: []model.Priority{model.PriorityCritical},
		}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("pagination metadata", func(t *testing.T) {
		page, err := s.ListItems(ctx, ItemFilter{}, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(6), page.Total)
		assert.Equal(t, 3, page.Pages)
		assert.Equal(t, 2, page.Page)
		require.Len(t, page.Items, 2)
	})

	t.Run("ordered by due date", func(t *testing.T) {
		page, err := s.ListItems(ctx, ItemFilter{}, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Items, 6)
		assert.Equal(t, "M-6", page.Items[0].ID)
		for i := 1; i < len(page.Items); i++ {
			prev := page.Items[i-1].DueDate.Time()
			cur := page.Items[i].DueDate.Time()
			assert.False(t, cur.Before(prev))
		}
	})

	t.Run("page past the end is empty but intact", func(t *testing.T) {
		page, err := s.ListItems(ctx, ItemFilter{}, 99, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(6), page.Total)
		assert.Equal(t, 99, page.Page)
		assert.Equal(t, 1, page.Pages)
	})
}

func TestSearchItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedItem(t, s, model.MaintenanceItem{
		ID: "M-1", VehicleID: "V-1", Type: "Brake Pad Replacement",
		Status: model.StatusScheduled, Priority: model.PriorityHigh,
		DueDate: model.NewDate(2024, 7, 1),
	})
	seedItem(t, s, model.MaintenanceItem{
		ID: "M-2", VehicleID: "TRUCK-7", Type: "Oil Change",
		Description: "synthetic blend", Status: model.StatusScheduled,
		Priority: model.PriorityLow, DueDate: model.NewDate(2024, 7, 2),
	})

	page, err := s.SearchItems(ctx, "BRAKE", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "M-1", page.Items[0].ID)

	page, err = s.SearchItems(ctx, "truck", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "M-2", page.Items[0].ID)

	page, err = s.SearchItems(ctx, "synthetic", 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	page, err = s.SearchItems(ctx, "nothing-matches", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
}

func TestVehicleHistoryOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, day := range []int{10, 25, 3} {
		seedItem(t, s, model.MaintenanceItem{
			ID: fmt.Sprintf("M-%d", i), VehicleID: "V-1", Type: "Service",
			Status: model.StatusCompleted, Priority: model.PriorityMedium,
			DueDate: model.NewDate(2024, 6, day),
		})
	}

	items, err := s.VehicleHistory(ctx, "V-1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "2024-06-25", items[0].DueDate.String())
	assert.Equal(t, "2024-06-03", items[2].DueDate.String())

	items, err = s.VehicleHistory(ctx, "V-unknown")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpcomingItemsWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	from := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

	seedItem(t, s, model.MaintenanceItem{
		ID: "inside", VehicleID: "V-1", Type: "Service",
		Status: model.StatusScheduled, Priority: model.PriorityMedium,
		DueDate: model.NewDate(2024, 6, 20),
	})
	seedItem(t, s, model.MaintenanceItem{
		ID: "outside", VehicleID: "V-1", Type: "Service",
		Status: model.StatusScheduled, Priority: model.PriorityMedium,
		DueDate: model.NewDate(2024, 8, 1),
	})
	seedItem(t, s, model.MaintenanceItem{
		ID: "past", VehicleID: "V-1", Type: "Service",
		Status: model.StatusOverdue, Priority: model.PriorityMedium,
		DueDate: model.NewDate(2024, 5, 1),
	})
	seedItem(t, s, model.MaintenanceItem{
		ID: "done", VehicleID: "V-1", Type: "Service",
		Status: model.StatusCompleted, Priority: model.PriorityMedium,
		DueDate: model.NewDate(2024, 6, 10),
	})

	items, err := s.UpcomingItems(ctx, from, 30)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "inside", items[0].ID)
}

func TestSummaryAggregates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	est1, act1 := 100.0, 120.0
	est2 := 50.0
	seedItem(t, s, model.MaintenanceItem{
		ID: "M-1", VehicleID: "V-1", Type: "Service",
		Status: model.StatusCompleted, Priority: model.PriorityHigh,
		DueDate: model.NewDate(2024, 6, 1), EstimatedCost: &est1, ActualCost: &act1,
	})
	seedItem(t, s, model.MaintenanceItem{
		ID: "M-2", VehicleID: "V-1", Type: "Service",
		Status: model.StatusScheduled, Priority: model.PriorityHigh,
		DueDate: model.NewDate(2024, 7, 1), EstimatedCost: &est2,
	})
	seedItem(t, s, model.MaintenanceItem{
		ID: "M-3", VehicleID: "V-2", Type: "Service",
		Status: model.StatusScheduled, Priority: model.PriorityLow,
		DueDate: model.NewDate(2024, 7, 2),
	})

	summary, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalItems)
	assert.Equal(t, int64(2), summary.ByStatus["scheduled"])
	assert.Equal(t, int64(1), summary.ByStatus["completed"])
	assert.Equal(t, int64(2), summary.ByPriority["high"])
	assert.Equal(t, int64(1), summary.ByPriority["low"])
	assert.InDelta(t, 150.0, summary.TotalEstimatedCost, 0.001)
	assert.InDelta(t, 120.0, summary.TotalActualCost, 0.001)
}

func TestBucketTotals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	juneDone := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	julyDone := time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC)
	cost := 200.0
	seedItem(t, s, model.MaintenanceItem{
		ID: "june", VehicleID: "V-1", Type: "Service",
		Status: model.StatusCompleted, Priority: model.PriorityMedium,
		DueDate: model.NewDate(2024, 6, 1), CompletedDate: &juneDone, ActualCost: &cost,
	})
	seedItem(t, s, model.MaintenanceItem{
		ID: "july", VehicleID: "V-1", Type: "Service",
		Status: model.StatusCompleted, Priority: model.PriorityMedium,
		DueDate: model.NewDate(2024, 7, 1), CompletedDate: &julyDone,
	})

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	totals, err := s.BucketTotals(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.CompletedCount)
	assert.InDelta(t, 200.0, totals.ActualCost, 0.001)
	// Both rows were created just now, outside the June bucket.
	assert.Equal(t, int64(0), totals.CreatedCount)
}

func TestLowStockParts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePart(ctx, &model.Part{
		ID: "P-1", Name: "Air Filter", PartNumber: "AF-100", Category: "filters",
		Quantity: 2, MinQuantity: 5,
	}))
	require.NoError(t, s.CreatePart(ctx, &model.Part{
		ID: "P-2", Name: "Brake Pad", PartNumber: "BP-200", Category: "brakes",
		Quantity: 10, MinQuantity: 5,
	}))
	require.NoError(t, s.CreatePart(ctx, &model.Part{
		ID: "P-3", Name: "Wiper Blade", PartNumber: "WB-300", Category: "exterior",
		Quantity: 5, MinQuantity: 5,
	}))

	low, err := s.LowStockParts(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Air Filter", low[0].Name)
	assert.Equal(t, "Wiper Blade", low[1].Name)

	filtered, err := s.ListParts(ctx, "brake")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "P-2", filtered[0].ID)
}

func TestSubscriptionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	endpoint := "https://push.example.com/sub/abc"
	err := s.ReplaceSubscription(ctx, endpoint, "p256dh-key", "auth-secret", []string{"V-1", "V-2"})
	require.NoError(t, err)

	vehicles, err := s.SubscribedVehicles(ctx, endpoint)
	require.NoError(t, err)
	assert.Equal(t, []string{"V-1", "V-2"}, vehicles)

	// Replacement swaps the vehicle set wholesale.
	require.NoError(t, s.ReplaceSubscription(ctx, endpoint, "p256dh-key", "auth-secret", []string{"V-3"}))
	vehicles, err = s.SubscribedVehicles(ctx, endpoint)
	require.NoError(t, err)
	assert.Equal(t, []string{"V-3"}, vehicles)

	require.NoError(t, s.DeleteSubscription(ctx, endpoint))
	_, err = s.SubscribedVehicles(ctx, endpoint)
	assert.ErrorIs(t, err, ErrNotFound)
}
