package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fleet-maintenance-backend/internal/model"
)

// --- Technicians ---

func (s *Store) CreateTechnician(ctx context.Context, t *model.Technician) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Technician{}).
		Where("id = ?", t.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("check existing technician %s: %w", t.ID, err)
	}
	if count > 0 {
		return fmt.Errorf("technician %s: %w", t.ID, ErrDuplicateID)
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create technician %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) GetTechnician(ctx context.Context, id string) (*model.Technician, error) {
	var t model.Technician
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("technician %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get technician %s: %w", id, err)
	}
	return &t, nil
}

func (s *Store) ListTechnicians(ctx context.Context) ([]model.Technician, error) {
	var technicians []model.Technician
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&technicians).Error; err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	if technicians == nil {
		technicians = []model.Technician{}
	}
	return technicians, nil
}

func (s *Store) SaveTechnician(ctx context.Context, t *model.Technician) error {
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("save technician %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) DeleteTechnician(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Technician{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete technician %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("technician %s: %w", id, ErrNotFound)
	}
	return nil
}

// --- Parts ---

func (s *Store) CreatePart(ctx context.Context, p *model.Part) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Part{}).
		Where("id = ?", p.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("check existing part %s: %w", p.ID, err)
	}
	if count > 0 {
		return fmt.Errorf("part %s: %w", p.ID, ErrDuplicateID)
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create part %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) GetPart(ctx context.Context, id string) (*model.Part, error) {
	var p model.Part
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("part %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get part %s: %w", id, err)
	}
	return &p, nil
}

// ListParts returns all parts, optionally narrowed by a case-insensitive
// substring match on name, part number or category.
func (s *Store) ListParts(ctx context.Context, query string) ([]model.Part, error) {
	q := s.db.WithContext(ctx).Model(&model.Part{})
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(part_number) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern)
	}
	var parts []model.Part
	if err := q.Order("name ASC").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	if parts == nil {
		parts = []model.Part{}
	}
	return parts, nil
}

// LowStockParts returns parts at or below their reorder threshold.
func (s *Store) LowStockParts(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	err := s.db.WithContext(ctx).
		Where("quantity <= min_quantity").
		Order("name ASC").
		Find(&parts).Error
	if err != nil {
		return nil, fmt.Errorf("list low-stock parts: %w", err)
	}
	if parts == nil {
		parts = []model.Part{}
	}
	return parts, nil
}

func (s *Store) SavePart(ctx context.Context, p *model.Part) error {
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("save part %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) DeletePart(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Part{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete part %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("part %s: %w", id, ErrNotFound)
	}
	return nil
}

// --- Recurring schedules ---

func (s *Store) CreateSchedule(ctx context.Context, sched *model.RecurringSchedule) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.RecurringSchedule{}).
		Where("id = ?", sched.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("check existing schedule %s: %w", sched.ID, err)
	}
	if count > 0 {
		return fmt.Errorf("schedule %s: %w", sched.ID, ErrDuplicateID)
	}
	if err := s.db.WithContext(ctx).Create(sched).Error; err != nil {
		return fmt.Errorf("create schedule %s: %w", sched.ID, err)
	}
	return nil
}

func (s *Store) GetSchedule(ctx context.Context, id string) (*model.RecurringSchedule, error) {
	var sched model.RecurringSchedule
	if err := s.db.WithContext(ctx).First(&sched, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get schedule %s: %w", id, err)
	}
	return &sched, nil
}

func (s *Store) ListSchedules(ctx context.Context) ([]model.RecurringSchedule, error) {
	var schedules []model.RecurringSchedule
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	if schedules == nil {
		schedules = []model.RecurringSchedule{}
	}
	return schedules, nil
}

func (s *Store) SaveSchedule(ctx context.Context, sched *model.RecurringSchedule) error {
	if err := s.db.WithContext(ctx).Save(sched).Error; err != nil {
		return fmt.Errorf("save schedule %s: %w", sched.ID, err)
	}
	return nil
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.RecurringSchedule{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete schedule %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}
	return nil
}
