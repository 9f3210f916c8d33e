package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/meridianapps/account-service/internal/core/ports"
)

const auditCollection = "security_events"

// AuditRepository appends security events to the security_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event ports.SecurityEventInput) error {
	doc := bson.M{
		"kind":         event.Kind,
		"username":     event.Username,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.AccountID != "" {
		doc["account_id"] = event.AccountID
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}
