package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/members-auth/internal/core/domain"
	"github.com/99minutos/members-auth/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	drainTimeout   = 5 * time.Second
)

// Dispatcher writes audit events through a fixed set of workers, sharding on
// the account key so events for one account keep their order.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	repo    ports.AuditRepository
	dropped prometheus.Counter
	log     zerolog.Logger
	wg      sync.WaitGroup

	drainTimeout time.Duration
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. dropped may be nil.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, dropped prometheus.Counter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		repo:    repo,
		dropped: dropped,
		log:     log,

		drainTimeout: drainTimeout,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// writes what is already queued, bounded by drainTimeout, then returns.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues an event without blocking. When the target worker is
// saturated the event is dropped and counted.
func (d *Dispatcher) Record(event domain.AuthEvent) {
	select {
	case d.workers[d.shardIndex(shardKey(event))] <- event:
	default:
		d.drop(event, "audit queue full, event dropped")
	}
}

func (d *Dispatcher) drop(event domain.AuthEvent, msg string) {
	if d.dropped != nil {
		d.dropped.Inc()
	}
	d.log.Warn().Str("kind", string(event.Kind)).Msg(msg)
}

// shardKey routes every event of one account to the same worker. Logout
// events carry no email, so the username is the key whenever it is known;
// failed logins for unknown accounts fall back to the submitted email.
func shardKey(event domain.AuthEvent) string {
	if event.Username != "" {
		return event.Username
	}
	return event.Email
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	// Writes outlive cancellation so an accepted event is not aborted mid-insert.
	writeCtx := context.WithoutCancel(ctx)
	for {
		if ctx.Err() != nil {
			d.drain(id, ch)
			return
		}
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event := <-ch:
			d.write(writeCtx, id, event)
		}
	}
}

// drain flushes the events still queued on ch. Events left once the drain
// deadline passes are dropped and counted.
func (d *Dispatcher) drain(id int, ch <-chan domain.AuthEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-ch:
			if ctx.Err() != nil {
				d.drop(event, "audit drain deadline passed, event dropped")
				continue
			}
			d.write(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, event domain.AuthEvent) {
	if err := d.repo.InsertEvent(ctx, &event); err != nil {
		d.log.Error().Err(err).
			Str("kind", string(event.Kind)).
			Int("worker_id", id).
			Msg("audit event write failed")
	}
}
