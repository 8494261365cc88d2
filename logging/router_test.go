package logging_test

import (
	"context"
	"testing"
	"time"

	"ringfall/server/logging"
	"ringfall/server/logging/sinks"
)

func newMemoryRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.Memory) {
	t.Helper()
	memory := sinks.NewMemory()
	router, err := logging.NewRouter(cfg, nil, nil, map[string]logging.Sink{"memory": memory})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		router.Close(ctx)
	})
	return router, memory
}

func waitForEvents(t *testing.T, memory *sinks.Memory, want int) []logging.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events := memory.Events()
		if len(events) >= want {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, have %d", want, len(memory.Events()))
	return nil
}

func TestRouterDeliversToEnabledSink(t *testing.T) {
	cfg := logging.Config{
		EnabledSinks:    []string{"memory"},
		BufferSize:      64,
		MinimumSeverity: logging.SeverityDebug,
	}
	router, memory := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{
		Type:     "test.event",
		Tick:     7,
		Actor:    logging.PlayerRef("p1"),
		Severity: logging.SeverityInfo,
	})

	events := waitForEvents(t, memory, 1)
	if events[0].Type != "test.event" || events[0].Tick != 7 {
		t.Fatalf("unexpected event: %+v", events[0])
	}
	if events[0].Actor.Kind != logging.EntityKindPlayer {
		t.Fatalf("expected a player actor, got %+v", events[0].Actor)
	}
	if events[0].Time.IsZero() {
		t.Fatalf("router must stamp a time on undated events")
	}
}

func TestRouterSeverityFloor(t *testing.T) {
	cfg := logging.Config{
		EnabledSinks:    []string{"memory"},
		BufferSize:      64,
		MinimumSeverity: logging.SeverityWarn,
	}
	router, memory := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "quiet", Severity: logging.SeverityDebug})
	router.Publish(context.Background(), logging.Event{Type: "quiet", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "loud", Severity: logging.SeverityWarn})

	events := waitForEvents(t, memory, 1)
	for _, event := range events {
		if event.Type == "quiet" {
			t.Fatalf("events below the floor must be filtered")
		}
	}
}

func TestRouterIgnoresDisabledSinks(t *testing.T) {
	cfg := logging.Config{
		EnabledSinks:    []string{"console"},
		BufferSize:      64,
		MinimumSeverity: logging.SeverityDebug,
	}
	router, memory := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "test.event", Severity: logging.SeverityInfo})
	time.Sleep(50 * time.Millisecond)

	if len(memory.Events()) != 0 {
		t.Fatalf("a disabled sink must receive nothing")
	}
}

func TestRouterAttachesStaticFields(t *testing.T) {
	cfg := logging.Config{
		EnabledSinks:    []string{"memory"},
		BufferSize:      64,
		MinimumSeverity: logging.SeverityDebug,
		Fields:          map[string]any{"service": "ringfall"},
	}
	router, memory := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "test.event", Severity: logging.SeverityInfo})

	events := waitForEvents(t, memory, 1)
	if events[0].Extra["service"] != "ringfall" {
		t.Fatalf("expected static field attached, got %+v", events[0].Extra)
	}
}

func TestRouterDropsEmptyType(t *testing.T) {
	cfg := logging.Config{
		EnabledSinks:    []string{"memory"},
		BufferSize:      64,
		MinimumSeverity: logging.SeverityDebug,
	}
	router, memory := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityError})
	time.Sleep(50 * time.Millisecond)

	if len(memory.Events()) != 0 {
		t.Fatalf("untyped events must be discarded")
	}
}

func TestRouterStatsCountDeliveries(t *testing.T) {
	cfg := logging.Config{
		EnabledSinks:    []string{"memory"},
		BufferSize:      64,
		MinimumSeverity: logging.SeverityDebug,
	}
	router, memory := newMemoryRouter(t, cfg)

	for i := 0; i < 10; i++ {
		router.Publish(context.Background(), logging.Event{Type: "test.event", Severity: logging.SeverityInfo})
	}
	waitForEvents(t, memory, 10)

	if stats := router.Stats(); stats.EventsTotal != 10 {
		t.Fatalf("expected 10 events counted, got %d", stats.EventsTotal)
	}
}

func TestPublishAfterCloseIsSafe(t *testing.T) {
	memory := sinks.NewMemory()
	router, err := logging.NewRouter(logging.Config{
		EnabledSinks: []string{"memory"},
		BufferSize:   8,
	}, nil, nil, map[string]logging.Sink{"memory": memory})
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	router.Publish(context.Background(), logging.Event{Type: "late", Severity: logging.SeverityInfo})
}
