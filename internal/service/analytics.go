package service

import (
	"context"
	"sort"
	"time"

	"fleet-maintenance-backend/internal/model"
	"fleet-maintenance-backend/internal/validate"
)

// TrendPoint is one calendar bucket of maintenance activity.
type TrendPoint struct {
	Period         string  `json:"period"`
	CompletedCount int64   `json:"completed_count"`
	CreatedCount   int64   `json:"created_count"`
	ActualCost     float64 `json:"actual_cost"`
}

// TrendReport is a series of buckets, oldest first.
type TrendReport struct {
	Period string       `json:"period"`
	Points []TrendPoint `json:"points"`
}

// CostByType aggregates estimated and actual spend for one maintenance type.
type CostByType struct {
	Type          string  `json:"type"`
	ItemCount     int     `json:"item_count"`
	EstimatedCost float64 `json:"estimated_cost"`
	ActualCost    float64 `json:"actual_cost"`
}

// CostReport is the cost analytics payload. Variance compares actual against
// estimated spend over the items that have an actual cost recorded.
type CostReport struct {
	TotalEstimated float64      `json:"total_estimated"`
	TotalActual    float64      `json:"total_actual"`
	Variance       float64      `json:"variance"`
	ByType         []CostByType `json:"by_type"`
}

// Trends buckets completed and created maintenance into calendar periods.
// Weekly buckets start on Monday; monthly, quarterly and yearly buckets sit
// on calendar boundaries.
func (s *Service) Trends(ctx context.Context, period string, limit int) (TrendReport, error) {
	if period == "" {
		period = "month"
	}
	switch period {
	case "week", "month", "quarter", "year":
	default:
		return TrendReport{}, validate.Errors{"period": "must be one of: week, month, quarter, year"}
	}
	if limit <= 0 {
		limit = 12
	}
	if limit > 24 {
		limit = 24
	}

	now := s.now()
	report := TrendReport{Period: period, Points: make([]TrendPoint, 0, limit)}
	for i := limit - 1; i >= 0; i-- {
		start := periodStart(now, period, i)
		end := nextPeriod(start, period)
		totals, err := s.store.BucketTotals(ctx, start, end)
		if err != nil {
			return TrendReport{}, err
		}
		report.Points = append(report.Points, TrendPoint{
			Period:         start.Format(model.DateLayout),
			CompletedCount: totals.CompletedCount,
			CreatedCount:   totals.CreatedCount,
			ActualCost:     totals.ActualCost,
		})
	}
	return report, nil
}

// CostAnalytics breaks down maintenance spend by type.
func (s *Service) CostAnalytics(ctx context.Context) (CostReport, error) {
	items, err := s.store.AllItems(ctx)
	if err != nil {
		return CostReport{}, err
	}

	byType := make(map[string]*CostByType)
	report := CostReport{ByType: []CostByType{}}
	for _, item := range items {
		row, ok := byType[item.Type]
		if !ok {
			row = &CostByType{Type: item.Type}
			byType[item.Type] = row
		}
		row.ItemCount++
		if item.EstimatedCost != nil {
			row.EstimatedCost += *item.EstimatedCost
			report.TotalEstimated += *item.EstimatedCost
		}
		if item.ActualCost != nil {
			row.ActualCost += *item.ActualCost
			report.TotalActual += *item.ActualCost
			if item.EstimatedCost != nil {
				report.Variance += *item.ActualCost - *item.EstimatedCost
			}
		}
	}

	for _, row := range byType {
		report.ByType = append(report.ByType, *row)
	}
	sort.Slice(report.ByType, func(i, j int) bool {
		return report.ByType[i].Type < report.ByType[j].Type
	})
	return report, nil
}

// periodStart returns the start of the calendar bucket n periods before the
// one containing t.
func periodStart(t time.Time, period string, n int) time.Time {
	u := t.UTC()
	switch period {
	case "week":
		// Weeks start on Monday.
		offset := (int(u.Weekday()) + 6) % 7
		monday := time.Date(u.Year(), u.Month(), u.Day()-offset, 0, 0, 0, 0, time.UTC)
		return monday.AddDate(0, 0, -7*n)
	case "quarter":
		// Quarters align to January, April, July, October.
		quarterMonth := time.Month((int(u.Month())-1)/3*3 + 1)
		first := time.Date(u.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
		return first.AddDate(0, -3*n, 0)
	case "year":
		first := time.Date(u.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return first.AddDate(-n, 0, 0)
	default:
		first := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first.AddDate(0, -n, 0)
	}
}

func nextPeriod(start time.Time, period string) time.Time {
	switch period {
	case "week":
		return start.AddDate(0, 0, 7)
	case "quarter":
		return start.AddDate(0, 3, 0)
	case "year":
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
