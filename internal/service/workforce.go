package service

import (
	"context"

	"github.com/google/uuid"

	"fleet-maintenance-backend/internal/model"
	"fleet-maintenance-backend/internal/validate"
)

// CreateTechnician validates and persists a technician. The id is generated
// when the caller does not supply one.
func (s *Service) CreateTechnician(ctx context.Context, in TechnicianCreate) (*model.Technician, error) {
	e := validate.New()
	e.Required("name", in.Name)
	e.Required("email", in.Email)
	e.Email("email", in.Email)
	if in.HourlyRate != nil {
		e.NonNegativeFloat("hourly_rate", *in.HourlyRate)
	}
	var joinDate model.Date
	if in.JoinDate != "" {
		joinDate, _ = e.Date("join_date", in.JoinDate)
	}
	if err := e.OrNil(); err != nil {
		return nil, err
	}

	tech := &model.Technician{
		ID:             in.ID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Specialization: in.Specialization,
		Status:         in.Status,
		Certifications: in.Certifications,
		JoinDate:       joinDate,
	}
	if tech.ID == "" {
		tech.ID = uuid.NewString()
	}
	if tech.Status == "" {
		tech.Status = "active"
	}
	if in.HourlyRate != nil {
		tech.HourlyRate = *in.HourlyRate
	}
	if err := s.store.CreateTechnician(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

// GetTechnician fetches a technician by id.
func (s *Service) GetTechnician(ctx context.Context, id string) (*model.Technician, error) {
	return s.store.GetTechnician(ctx, id)
}

// ListTechnicians returns all technicians ordered by name.
func (s *Service) ListTechnicians(ctx context.Context) ([]model.Technician, error) {
	return s.store.ListTechnicians(ctx)
}

// UpdateTechnician merges the provided fields into the stored technician.
func (s *Service) UpdateTechnician(ctx context.Context, id string, in TechnicianUpdate) (*model.Technician, error) {
	tech, err := s.store.GetTechnician(ctx, id)
	if err != nil {
		return nil, err
	}

	e := validate.New()
	if in.Email != nil {
		e.Required("email", *in.Email)
		e.Email("email", *in.Email)
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 5) {
		e["rating"] = "must be between 0 and 5"
	}
	if in.CompletedJobs != nil {
		e.NonNegative("completed_jobs", *in.CompletedJobs)
	}
	if in.ActiveJobs != nil {
		e.NonNegative("active_jobs", *in.ActiveJobs)
	}
	if in.HourlyRate != nil {
		e.NonNegativeFloat("hourly_rate", *in.HourlyRate)
	}
	if err := e.OrNil(); err != nil {
		return nil, err
	}

	if in.Name != nil {
		tech.Name = *in.Name
	}
	if in.Email != nil {
		tech.Email = *in.Email
	}
	if in.Phone != nil {
		tech.Phone = *in.Phone
	}
	if in.Specialization != nil {
		tech.Specialization = *in.Specialization
	}
	if in.Status != nil {
		tech.Status = *in.Status
	}
	if in.Rating != nil {
		tech.Rating = *in.Rating
	}
	if in.CompletedJobs != nil {
		tech.CompletedJobs = *in.CompletedJobs
	}
	if in.ActiveJobs != nil {
		tech.ActiveJobs = *in.ActiveJobs
	}
	if in.Certifications != nil {
		tech.Certifications = *in.Certifications
	}
	if in.HourlyRate != nil {
		tech.HourlyRate = *in.HourlyRate
	}

	if err := s.store.SaveTechnician(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

// DeleteTechnician removes a technician by id.
func (s *Service) DeleteTechnician(ctx context.Context, id string) error {
	return s.store.DeleteTechnician(ctx, id)
}
