package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/meridianapps/account-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the AuditService that persists security events to
// the durable audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process writes one security event. Failures are reported to the caller
// (the dispatcher logs them); they never propagate to the request path.
func (s *auditService) Process(ctx context.Context, event ports.SecurityEventInput) error {
	if event.Kind == "" {
		return fmt.Errorf("audit: event kind is empty")
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}

	s.log.Debug().
		Str("kind", event.Kind).
		Str("username", event.Username).
		Str("reason", event.Reason).
		Msg("security event recorded")
	return nil
}
