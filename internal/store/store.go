// Package store is the persistence layer over the relational database. It
// owns every query; derivation and orchestration live in the service layer.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleet-maintenance-backend/internal/model"
)

// Store wraps a GORM database handle with the queries the service needs.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an initialized GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for collaborators that need raw access
// (the notification worker, migrations in tests).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// CreateItem inserts a new maintenance item, failing with ErrDuplicateID when
// the caller-assigned id is already taken.
func (s *Store) CreateItem(ctx context.Context, item *model.MaintenanceItem) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.MaintenanceItem{}).
		Where("id = ?", item.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("check existing item %s: %w", item.ID, err)
	}
	if count > 0 {
		return fmt.Errorf("maintenance item %s: %w", item.ID, ErrDuplicateID)
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create maintenance item %s: %w", item.ID, err)
	}
	return nil
}

// GetItem fetches a maintenance item by id.
func (s *Store) GetItem(ctx context.Context, id string) (*model.MaintenanceItem, error) {
	var item model.MaintenanceItem
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("maintenance item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get maintenance item %s: %w", id, err)
	}
	return &item, nil
}

// SaveItem persists the full state of an existing item (last write wins).
func (s *Store) SaveItem(ctx context.Context, item *model.MaintenanceItem) error {
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("save maintenance item %s: %w", item.ID, err)
	}
	return nil
}

// DeleteItem removes an item by id, reporting ErrNotFound when nothing was
// deleted.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.MaintenanceItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete maintenance item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("maintenance item %s: %w", id, ErrNotFound)
	}
	return nil
}

// AllItems returns every maintenance item ordered by due date.
func (s *Store) AllItems(ctx context.Context) ([]model.MaintenanceItem, error) {
	var items []model.MaintenanceItem
	if err := s.db.WithContext(ctx).Order("due_date ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("fetch all maintenance items: %w", err)
	}
	return items, nil
}

// NonTerminalItems returns the items whose status is still subject to
// derivation, i.e. everything not completed or cancelled.
func (s *Store) NonTerminalItems(ctx context.Context) ([]model.MaintenanceItem, error) {
	var items []model.MaintenanceItem
	err := s.db.WithContext(ctx).
		Where("status NOT IN ?", []model.Status{model.StatusCompleted, model.StatusCancelled}).
		Order("due_date ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("fetch non-terminal maintenance items: %w", err)
	}
	return items, nil
}
