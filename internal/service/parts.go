package service

import (
	"context"

	"github.com/google/uuid"

	"fleet-maintenance-backend/internal/model"
	"fleet-maintenance-backend/internal/validate"
)

// CreatePart validates and persists an inventory part.
func (s *Service) CreatePart(ctx context.Context, in PartCreate) (*model.Part, error) {
	e := validate.New()
	e.Required("name", in.Name)
	e.Required("part_number", in.PartNumber)
	if in.Quantity != nil {
		e.NonNegative("quantity", *in.Quantity)
	}
	if in.MinQuantity != nil {
		e.NonNegative("min_quantity", *in.MinQuantity)
	}
	if in.UnitCost != nil {
		e.NonNegativeFloat("unit_cost", *in.UnitCost)
	}
	if err := e.OrNil(); err != nil {
		return nil, err
	}

	part := &model.Part{
		ID:         in.ID,
		Name:       in.Name,
		PartNumber: in.PartNumber,
		Category:   in.Category,
		Supplier:   in.Supplier,
		Location:   in.Location,
		UsedIn:     in.UsedIn,
	}
	if part.ID == "" {
		part.ID = uuid.NewString()
	}
	if in.Quantity != nil {
		part.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		part.MinQuantity = *in.MinQuantity
	}
	if in.UnitCost != nil {
		part.UnitCost = *in.UnitCost
	}
	if part.Quantity > 0 {
		restocked := s.now()
		part.LastRestocked = &restocked
	}
	if err := s.store.CreatePart(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// GetPart fetches a part by id.
func (s *Service) GetPart(ctx context.Context, id string) (*model.Part, error) {
	return s.store.GetPart(ctx, id)
}

// ListParts returns the inventory, optionally filtered by a search query.
func (s *Service) ListParts(ctx context.Context, query string) ([]model.Part, error) {
	return s.store.ListParts(ctx, query)
}

// LowStockParts returns the parts at or below their reorder threshold.
func (s *Service) LowStockParts(ctx context.Context) ([]model.Part, error) {
	return s.store.LowStockParts(ctx)
}

// UpdatePart merges the provided fields into the stored part. Increasing the
// quantity stamps the restock time.
func (s *Service) UpdatePart(ctx context.Context, id string, in PartUpdate) (*model.Part, error) {
	part, err := s.store.GetPart(ctx, id)
	if err != nil {
		return nil, err
	}

	e := validate.New()
	if in.Quantity != nil {
		e.NonNegative("quantity", *in.Quantity)
	}
	if in.MinQuantity != nil {
		e.NonNegative("min_quantity", *in.MinQuantity)
	}
	if in.UnitCost != nil {
		e.NonNegativeFloat("unit_cost", *in.UnitCost)
	}
	if err := e.OrNil(); err != nil {
		return nil, err
	}

	if in.Name != nil {
		part.Name = *in.Name
	}
	if in.PartNumber != nil {
		part.PartNumber = *in.PartNumber
	}
	if in.Category != nil {
		part.Category = *in.Category
	}
	if in.Quantity != nil {
		if *in.Quantity > part.Quantity {
			restocked := s.now()
			part.LastRestocked = &restocked
		}
		part.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		part.MinQuantity = *in.MinQuantity
	}
	if in.UnitCost != nil {
		part.UnitCost = *in.UnitCost
	}
	if in.Supplier != nil {
		part.Supplier = *in.Supplier
	}
	if in.Location != nil {
		part.Location = *in.Location
	}
	if in.UsedIn != nil {
		part.UsedIn = *in.UsedIn
	}

	if err := s.store.SavePart(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// DeletePart removes a part by id.
func (s *Service) DeletePart(ctx context.Context, id string) error {
	return s.store.DeletePart(ctx, id)
}
