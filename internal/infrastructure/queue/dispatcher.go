package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/verseyou/verse-api/internal/api/metrics"
	"github.com/verseyou/verse-api/internal/core/domain"
	"github.com/verseyou/verse-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher routes audit records to a fixed set of writer goroutines
// using consistent hashing on the actor, so records for one actor are
// persisted in the order they were produced. Recording never blocks the
// request path: when a worker's buffer is full the record is dropped and
// counted.
type AuditDispatcher struct {
	workers []chan domain.AuditRecord
	store   ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded writers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, store ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditRecord, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditRecord, channelBuffer)
	}
	return d
}

// Start launches all writer goroutines. Writers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues a record for the writer responsible for its actor without
// blocking. A full buffer drops the record.
func (d *AuditDispatcher) Record(record domain.AuditRecord) {
	idx := d.shardIndex(record.Actor)
	select {
	case d.workers[idx] <- record:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("action", record.Action).
			Int("worker_id", idx).
			Msg("audit buffer full, record dropped")
	}
}

// shardIndex maps an actor deterministically to a writer index.
func (d *AuditDispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditRecord) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			if err := d.store.Insert(ctx, &record); err != nil {
				d.log.Error().Err(err).
					Str("action", record.Action).
					Int("worker_id", id).
					Msg("audit write failed")
			}
			metrics.AuditQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}
