package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/examplews/greeting-service/internal/api/metrics"
	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	// drainTimeout bounds how long stopped workers keep storing buffered events.
	drainTimeout = 5 * time.Second
)

// Dispatcher persists authentication events off the request path. Events
// are sharded by username across a fixed set of workers, so the attempts of
// one account are stored in the order they happened.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	service ports.AuthEventService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuthEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// stores what is already buffered, for at most drainTimeout, then exits.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		i, ch := i, ch
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.runWorker(ctx, i, ch)
		}()
	}
}

// Wait blocks until every worker started by Start has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues event without blocking. When the worker's buffer is full
// the event is dropped and counted; a request never waits on the audit trail.
func (d *Dispatcher) Record(event domain.AuthEvent) {
	idx := d.shardIndex(event.Username)
	select {
	case d.workers[idx] <- event:
		metrics.AuthEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuthEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("username", event.Username).
			Int("worker_id", idx).
			Msg("auth event queue full, event dropped")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				d.drain(ctx, id, ch, event)
				return
			}
			metrics.AuthEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, id, event)
		}
	}
}

// drain stores pending and the events still buffered when the worker was
// stopped. Events left over once drainTimeout lapses are counted as dropped.
func (d *Dispatcher) drain(parent context.Context, id int, ch <-chan domain.AuthEvent, pending ...domain.AuthEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), drainTimeout)
	defer cancel()

	stored := 0
	for _, event := range pending {
		d.process(ctx, id, event)
		stored++
	}
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				metrics.AuthEventsDroppedTotal.Inc()
				continue
			}
			d.process(ctx, id, event)
			stored++
		default:
			metrics.AuthEventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
			if stored > 0 {
				d.log.Info().Int("worker_id", id).Int("events", stored).Msg("auth events drained on shutdown")
			}
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event domain.AuthEvent) {
	if err := d.service.Process(ctx, event); err != nil {
		d.log.Error().Err(err).
			Str("username", event.Username).
			Int("worker_id", id).
			Msg("auth event processing failed")
	}
}
