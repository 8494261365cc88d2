package sinks

import (
	"context"
	"sync"

	"ringfall/server/logging"
)

// Memory buffers events in process for test assertions.
type Memory struct {
	mu     sync.RWMutex
	events []logging.Event
}

// NewMemory builds an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{events: make([]logging.Event, 0)}
}

// Write buffers its own copy of the event so later mutation of the
// publisher's Targets or Extra cannot reach into the buffer.
func (s *Memory) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event.Clone())
	return nil
}

// Events returns a copy of everything written so far.
func (s *Memory) Events() []logging.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]logging.Event, len(s.events))
	copy(copied, s.events)
	return copied
}

// Reset discards buffered events.
func (s *Memory) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = s.events[:0]
}

func (s *Memory) Close(context.Context) error {
	return nil
}
