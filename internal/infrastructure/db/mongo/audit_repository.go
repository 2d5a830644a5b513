package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

const auditCollection = "audit_records"

// AuditRepository implements ports.AuditRepository on an append-only
// MongoDB collection.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// Insert persists one audit record. Records arrive without an id; one
// is assigned here so _id stays unique across inserts.
func (r *AuditRepository) Insert(ctx context.Context, record *domain.AuditRecord) error {
	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, auditDocument(record)); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func auditDocument(record *domain.AuditRecord) bson.M {
	id := record.ID
	if id == "" {
		id = uuid.NewString()
	}
	doc := bson.M{
		"_id":     id,
		"actor":   record.Actor,
		"action":  record.Action,
		"outcome": record.Outcome,
		"at":      record.At.UTC(),
	}
	if record.Subject != "" {
		doc["subject"] = record.Subject
	}
	return doc
}

// List returns the most recent records, newest first.
func (r *AuditRepository) List(ctx context.Context, limit int64) ([]domain.AuditRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.db.Collection(auditCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []domain.AuditRecord
	for cursor.Next(ctx) {
		var doc struct {
			ID      string    `bson:"_id"`
			Actor   string    `bson:"actor"`
			Action  string    `bson:"action"`
			Subject string    `bson:"subject"`
			Outcome string    `bson:"outcome"`
			At      time.Time `bson:"at"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit record: %w", err)
		}
		records = append(records, domain.AuditRecord{
			ID:      doc.ID,
			Actor:   doc.Actor,
			Action:  doc.Action,
			Subject: doc.Subject,
			Outcome: doc.Outcome,
			At:      doc.At,
		})
	}
	return records, cursor.Err()
}
