package logging

import (
	"context"
	"log"
	"os"
	"time"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

type NamedSink struct {
	Name string
	Sink Sink
}

// Router fans a published Event out to every configured sink,
// synchronously and in call order. A live game loop publishing a
// steady stream of tick events under real backpressure would want a
// background dispatch goroutine plus one worker per sink, buffered by
// channels. Nav2D has no such loop: Update() is the caller's own
// synchronous call, and it settles fully before returning, so every
// event a settlement produces can simply be written out before
// Publish returns — a sink slow enough to matter is the embedder's
// problem to solve with its own buffering Sink, not this router's.
type Router struct {
	clock       Clock
	fallback    *log.Logger
	minSeverity Severity
	fields      map[string]any
	sinks       []NamedSink

	eventsTotal  uint64
	droppedTotal uint64
}

type RouterStats struct {
	EventsTotal  uint64
	DroppedTotal uint64
}

// NewRouter builds a Router over the given sinks. A nil sink in
// namedSinks is skipped, so an unconfigured optional sink can be
// passed through without a nil check at the call site.
func NewRouter(clock Clock, cfg Config, namedSinks []NamedSink) (*Router, error) {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	r := &Router{
		clock:       clock,
		fallback:    log.New(os.Stderr, "[logging] ", log.LstdFlags),
		minSeverity: cfg.MinimumSeverity,
		fields:      cfg.CloneFields(),
	}
	for _, named := range namedSinks {
		if named.Sink == nil {
			continue
		}
		r.sinks = append(r.sinks, named)
	}
	return r, nil
}

// Publish satisfies Publisher. It filters by severity, stamps a
// missing timestamp, merges router-level fields into Extra, then
// writes the event to every sink in turn. A sink write failure is
// logged to the fallback logger and counted, but never propagated —
// one misbehaving sink must not stop the rest from seeing the event.
func (r *Router) Publish(ctx context.Context, event Event) {
	if event.Type == "" {
		return
	}
	if event.Severity < r.minSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	if len(r.fields) > 0 {
		event = cloneForFields(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(r.fields))
		}
		for k, v := range r.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}

	r.eventsTotal++
	for _, named := range r.sinks {
		if err := named.Sink.Write(event); err != nil {
			r.droppedTotal++
			r.fallback.Printf("sink %s failed to write event type=%s seq=%d: %v", named.Name, event.Type, event.Seq, err)
		}
	}
}

// Close closes every sink, returning the first error encountered.
func (r *Router) Close(ctx context.Context) error {
	var firstErr error
	for _, named := range r.sinks {
		if err := named.Sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Stats reports how many events this Router has processed and how
// many sink writes failed.
func (r *Router) Stats() RouterStats {
	return RouterStats{EventsTotal: r.eventsTotal, DroppedTotal: r.droppedTotal}
}

// Sink returns the named sink, or nil if none is registered under
// that name.
func (r *Router) Sink(name string) Sink {
	for _, named := range r.sinks {
		if named.Name == name {
			return named.Sink
		}
	}
	return nil
}
