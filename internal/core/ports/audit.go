package ports

import (
	"context"

	"github.com/verseyou/verse-api/internal/core/domain"
)

// AuditRepository is the append-only store for security audit records.
type AuditRepository interface {
	Insert(ctx context.Context, record *domain.AuditRecord) error
	List(ctx context.Context, limit int64) ([]domain.AuditRecord, error)
}

// AuditRecorder accepts audit records for asynchronous persistence. Recording
// must never block or fail the request that produced the record.
type AuditRecorder interface {
	Record(record domain.AuditRecord)
}
