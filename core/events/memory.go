package events

import "sync"

// MemoryEmitter records every emitted event in order. Tests and the demo
// binary use it to assert on or replay the audit stream.
type MemoryEmitter struct {
	mu     sync.Mutex
	events []Event
}

// Emit implements the Emitter interface.
func (m *MemoryEmitter) Emit(evt Event) {
	if m == nil || evt == nil {
		return
	}
	m.mu.Lock()
	m.events = append(m.events, evt)
	m.mu.Unlock()
}

// Events returns a snapshot of the recorded events in emission order.
func (m *MemoryEmitter) Events() []Event {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Reset discards all recorded events.
func (m *MemoryEmitter) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}
