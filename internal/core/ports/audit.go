package ports

import (
	"context"
	"time"
)

// Security event kinds recorded in the audit trail.
const (
	EventRegistered    = "registered"
	EventLoginSucceed  = "login_succeeded"
	EventLoginFailed   = "login_failed"
	EventAccountPruned = "account_pruned"
	EventStatusChanged = "status_changed"
	EventLogout        = "logout"
)

// Prune reasons attached to EventAccountPruned.
const (
	PruneReasonTampered    = "tampered"
	PruneReasonDeactivated = "deactivated"
)

// SecurityEventInput is the DTO handed from the engine to the audit pipeline.
type SecurityEventInput struct {
	AccountID string
	Username  string
	Kind      string
	Reason    string
	Timestamp time.Time
}

// AuditRecorder accepts security events for asynchronous recording. Record
// must not block the request path and must never fail it.
type AuditRecorder interface {
	Record(event SecurityEventInput)
}

// AuditService persists a single security event.
type AuditService interface {
	Process(ctx context.Context, event SecurityEventInput) error
}

// AuditRepository appends events to the durable audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event SecurityEventInput) error
}
