package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fleet-maintenance-backend/internal/model"
)

// ReplaceSubscription swaps the full set of vehicles an endpoint is
// subscribed to. Passing no vehicles clears the subscription.
func (s *Store) ReplaceSubscription(ctx context.Context, endpoint, p256dh, auth string, vehicleIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AlertSubscription{}, "endpoint = ?", endpoint).Error; err != nil {
			return fmt.Errorf("clear subscription rows: %w", err)
		}
		for _, vehicleID := range vehicleIDs {
			row := model.AlertSubscription{
				Endpoint:  endpoint,
				VehicleID: vehicleID,
				P256DH:    p256dh,
				Auth:      auth,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create subscription row for vehicle %s: %w", vehicleID, err)
			}
		}
		return nil
	})
}

// SubscribedVehicles returns the vehicle ids an endpoint watches.
func (s *Store) SubscribedVehicles(ctx context.Context, endpoint string) ([]string, error) {
	var rows []model.AlertSubscription
	if err := s.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Order("vehicle_id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch subscription %s: %w", endpoint, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("subscription %s: %w", endpoint, ErrNotFound)
	}
	vehicleIDs := make([]string, len(rows))
	for i, r := range rows {
		vehicleIDs[i] = r.VehicleID
	}
	return vehicleIDs, nil
}

// DeleteSubscription removes every row for an endpoint.
func (s *Store) DeleteSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).
		Delete(&model.AlertSubscription{}, "endpoint = ?", endpoint).Error; err != nil {
		return fmt.Errorf("delete subscription %s: %w", endpoint, err)
	}
	return nil
}
