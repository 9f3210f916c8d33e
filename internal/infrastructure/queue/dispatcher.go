package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/meridianapps/account-service/internal/api/metrics"
	"github.com/meridianapps/account-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes security events to a fixed set of workers using
// consistent hashing on the username, so events for one account are recorded
// in the order the engine emitted them.
type Dispatcher struct {
	workers []chan ports.SecurityEventInput
	service ports.AuditService
	log     zerolog.Logger
}

var _ ports.AuditRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.SecurityEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SecurityEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event for its account's worker. The request path never
// waits on the audit trail: when a worker's buffer is full the event is
// dropped and logged instead.
func (d *Dispatcher) Record(event ports.SecurityEventInput) {
	idx := d.shardIndex(event.Username)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("kind", event.Kind).
			Str("username", event.Username).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SecurityEventInput) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))

			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("kind", event.Kind).
					Str("username", event.Username).
					Int("worker_id", id).
					Msg("audit event processing failed")
				continue
			}

			metrics.AuditEventsTotal.WithLabelValues(event.Kind).Inc()
			if event.Kind == ports.EventAccountPruned {
				metrics.PrunesTotal.WithLabelValues(event.Reason).Inc()
			}
		}
	}
}
