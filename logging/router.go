package logging

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Clock abstracts wall-clock reads so tests can inject a fixed time source.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sink receives routed events. Implementations must tolerate concurrent
// Close while writes are in flight.
type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

// Router fans events out to its sinks through a bounded queue. Publishing
// never blocks the simulation: when the queue is full the event is dropped
// and counted.
type Router struct {
	cfg      Config
	queue    chan Event
	workers  []*sinkWorker
	clock    Clock
	fallback *log.Logger
	fields   map[string]any

	cancel context.CancelFunc
	closed atomic.Bool
	wg     sync.WaitGroup

	eventsTotal  atomic.Uint64
	droppedTotal atomic.Uint64
	lastDropLog  atomic.Int64
}

// RouterStats reports delivery counters.
type RouterStats struct {
	EventsTotal  uint64
	DroppedTotal uint64
}

type sinkWorker struct {
	name     string
	sink     Sink
	events   chan Event
	fallback *log.Logger
}

// NewRouter builds a router over the enabled subset of the provided sinks.
// The fallback logger reports sink failures and drop bursts.
func NewRouter(cfg Config, clock Clock, fallback *log.Logger, sinks map[string]Sink) (*Router, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	if fallback == nil {
		fallback = log.Default()
	}
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 512
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		cfg:      cfg,
		queue:    make(chan Event, bufferSize),
		clock:    clock,
		fallback: fallback,
		fields:   cfg.CloneFields(),
		cancel:   cancel,
	}

	for name, sink := range sinks {
		if sink == nil || !cfg.HasSink(name) {
			continue
		}
		worker := &sinkWorker{
			name:     name,
			sink:     sink,
			events:   make(chan Event, bufferSize),
			fallback: fallback,
		}
		r.workers = append(r.workers, worker)
	}

	r.wg.Add(1)
	go func() {
		defer func() {
			for _, worker := range r.workers {
				close(worker.events)
			}
			r.wg.Done()
		}()
		for {
			select {
			case <-ctx.Done():
				r.drain()
				return
			case event := <-r.queue:
				r.forward(event)
			}
		}
	}()

	for _, worker := range r.workers {
		r.wg.Add(1)
		go func(w *sinkWorker) {
			defer r.wg.Done()
			w.run()
		}(worker)
	}

	return r, nil
}

// Publish enqueues the event without blocking; full queues drop.
func (r *Router) Publish(ctx context.Context, event Event) {
	if event.Type == "" || r.closed.Load() {
		return
	}
	select {
	case r.queue <- event:
	default:
		r.handleDrop(event)
	}
}

// Stats returns delivery counters.
func (r *Router) Stats() RouterStats {
	return RouterStats{
		EventsTotal:  r.eventsTotal.Load(),
		DroppedTotal: r.droppedTotal.Load(),
	}
}

// Close stops intake, drains the queue, and closes every sink.
func (r *Router) Close(ctx context.Context) error {
	if r.closed.Swap(true) {
		return nil
	}
	r.cancel()
	r.wg.Wait()
	var firstErr error
	for _, worker := range r.workers {
		if err := worker.sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Router) drain() {
	for {
		select {
		case event := <-r.queue:
			r.forward(event)
		default:
			return
		}
	}
}

func (r *Router) forward(event Event) {
	if event.Severity < r.cfg.MinimumSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	if len(r.fields) > 0 {
		event = cloneEvent(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(r.fields))
		}
		for k, v := range r.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}
	r.eventsTotal.Add(1)
	for _, worker := range r.workers {
		select {
		case worker.events <- event:
		default:
			r.handleDrop(event)
		}
	}
}

func (r *Router) handleDrop(event Event) {
	r.droppedTotal.Add(1)
	interval := r.cfg.DropWarnInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	now := r.clock.Now().UnixNano()
	last := r.lastDropLog.Load()
	if now-last < int64(interval) {
		return
	}
	if r.lastDropLog.CompareAndSwap(last, now) {
		r.fallback.Printf("[logging] dropping events, total=%d latest=%s", r.droppedTotal.Load(), event.Type)
	}
}

func (w *sinkWorker) run() {
	for event := range w.events {
		if err := w.sink.Write(event); err != nil {
			w.fallback.Printf("[logging] sink %s write failed: %v", w.name, err)
		}
	}
}
