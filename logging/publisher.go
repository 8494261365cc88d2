package logging

import (
	"context"
	"time"
)

// EventType names a structured gameplay or system event.
type EventType string

// Severity orders events for sink filtering.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// EntityKind labels which kind of entity an EntityRef points at.
type EntityKind string

const (
	EntityKindUnknown    EntityKind = "unknown"
	EntityKindPlayer     EntityKind = "player"
	EntityKindEnemy      EntityKind = "enemy"
	EntityKindProjectile EntityKind = "projectile"
	EntityKindWorld      EntityKind = "world"
)

// EntityRef identifies an entity involved in an event.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

// PlayerRef builds an EntityRef for a player id.
func PlayerRef(id string) EntityRef {
	return EntityRef{ID: id, Kind: EntityKindPlayer}
}

// EnemyRef builds an EntityRef for an enemy id.
func EnemyRef(id string) EntityRef {
	return EntityRef{ID: id, Kind: EntityKindEnemy}
}

// ProjectileRef builds an EntityRef for a projectile id.
func ProjectileRef(id string) EntityRef {
	return EntityRef{ID: id, Kind: EntityKindProjectile}
}

// Event is one structured record flowing through the router to its sinks.
type Event struct {
	Type     EventType      `json:"type"`
	Tick     uint64         `json:"tick"`
	Time     time.Time      `json:"time"`
	Actor    EntityRef      `json:"actor"`
	Targets  []EntityRef    `json:"targets,omitempty"`
	Severity Severity       `json:"severity"`
	Category string         `json:"category,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// Event categories used across the helper packages.
const (
	CategoryLifecycle   = "lifecycle"
	CategoryCombat      = "combat"
	CategoryProgression = "progression"
	CategorySimulation  = "simulation"
	CategoryNetwork     = "network"
)

// Clone returns a copy of the event with its own Targets slice and Extra
// map, safe to retain after the caller mutates the original.
func (e Event) Clone() Event {
	return cloneEvent(e)
}

// WithExtra returns the event with an extra key attached.
func (e Event) WithExtra(key string, value any) Event {
	if e.Extra == nil {
		e.Extra = make(map[string]any, 1)
	}
	e.Extra[key] = value
	return e
}

// Publisher accepts events for asynchronous delivery.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// NopPublisher returns a publisher that discards everything.
func NopPublisher() Publisher {
	return nopPublisher{}
}

func cloneEvent(event Event) Event {
	cloned := event
	if len(event.Targets) > 0 {
		cloned.Targets = append([]EntityRef(nil), event.Targets...)
	}
	if event.Extra != nil {
		copied := make(map[string]any, len(event.Extra))
		for k, v := range event.Extra {
			copied[k] = v
		}
		cloned.Extra = copied
	}
	return cloned
}
