// Package channeltest provides an in-memory channel.Messenger for tests.
package channeltest

import (
	"sync"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
)

// Invocation is an outbound call recorded by Messenger.
type Invocation struct {
	Channel string
	Call    channel.MethodCall
	Reply   channel.Result
}

// Messenger records outbound invocations and routes inbound calls to the
// registered handlers.
type Messenger struct {
	mu          sync.Mutex
	handlers    map[string]channel.Handler
	invocations []Invocation
}

// NewMessenger creates an empty messenger.
func NewMessenger() *Messenger {
	return &Messenger{handlers: make(map[string]channel.Handler)}
}

func (m *Messenger) Send(name string, call channel.MethodCall, reply channel.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invocations = append(m.invocations, Invocation{Channel: name, Call: call, Reply: reply})
}

func (m *Messenger) SetMessageHandler(name string, handler channel.Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if handler == nil {
		delete(m.handlers, name)
		return
	}
	m.handlers[name] = handler
}

// HasHandler reports whether a handler is registered for name.
func (m *Messenger) HasHandler(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.handlers[name]
	return ok
}

// Call delivers an inbound call and returns the recorder for its result.
// With no handler registered the call is answered as not implemented, the
// same way an unbound channel behaves on the host side.
func (m *Messenger) Call(name, method string, args interface{}) *Recorder {
	m.mu.Lock()
	handler := m.handlers[name]
	m.mu.Unlock()

	rec := &Recorder{}
	if handler == nil {
		rec.NotImplemented()
		return rec
	}
	handler.OnMethodCall(channel.MethodCall{Method: method, Arguments: args}, rec)
	return rec
}

// Invocations returns a copy of the recorded outbound calls.
func (m *Messenger) Invocations() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Invocation(nil), m.invocations...)
}

// Methods returns the recorded outbound method names in order.
func (m *Messenger) Methods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.invocations))
	for _, inv := range m.invocations {
		out = append(out, inv.Call.Method)
	}
	return out
}

// Reset drops recorded invocations.
func (m *Messenger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invocations = nil
}
