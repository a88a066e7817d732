// Package refresh runs the periodic status reconciliation. Statuses are
// derived on read everywhere else; the loop exists so stored rows converge
// and overdue alerts fire without waiting for an API call.
package refresh

import (
	"context"
	"log"
	"time"

	"fleet-maintenance-backend/config"
	"fleet-maintenance-backend/internal/service"
)

// Service drives the periodic bulk status refresh.
type Service struct {
	cfg *config.Config
	svc *service.Service
}

// NewService creates a refresh service.
func NewService(cfg *config.Config, svc *service.Service) *Service {
	return &Service{cfg: cfg, svc: svc}
}

// Run refreshes once immediately, then on every interval until the context
// is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Refresh.Enabled {
		log.Println("Status refresh is disabled. Not starting.")
		return
	}
	log.Println("Starting status refresh service...")

	s.RefreshOnce(ctx)

	timer := time.NewTimer(s.cfg.Refresh.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Status refresh service shutting down.")
			return
		case <-timer.C:
			s.RefreshOnce(ctx)
			timer.Reset(s.cfg.Refresh.Interval)
		}
	}
}

// RefreshOnce performs a single reconciliation pass.
func (s *Service) RefreshOnce(ctx context.Context) {
	log.Println("Executing status refresh cycle...")
	updated, err := s.svc.BulkRefreshStatuses(ctx)
	if err != nil {
		log.Printf("Status refresh failed: %v", err)
		return
	}
	log.Printf("Status refresh complete. %d item(s) updated.", updated)
}
