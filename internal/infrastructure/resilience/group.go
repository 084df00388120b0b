package resilience

import "sync"

// Group keeps one breaker per key, created on first use with shared
// settings.
type Group struct {
	settings Settings
	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewGroup creates an empty group.
func NewGroup(settings Settings) *Group {
	return &Group{
		settings: settings,
		breakers: make(map[string]*Breaker),
	}
}

// Get returns the breaker for key.
func (g *Group) Get(key string) *Breaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	b, ok := g.breakers[key]
	if !ok {
		b = New(key, g.settings)
		g.breakers[key] = b
	}
	return b
}

// Do runs req through the breaker for key.
func (g *Group) Do(key string, req func() error) error {
	return g.Get(key).Do(req)
}

// States reports the state of every breaker created so far.
func (g *Group) States() map[string]State {
	g.mu.Lock()
	breakers := make([]*Breaker, 0, len(g.breakers))
	for _, b := range g.breakers {
		breakers = append(breakers, b)
	}
	g.mu.Unlock()

	states := make(map[string]State, len(breakers))
	for _, b := range breakers {
		states[b.Name()] = b.State()
	}
	return states
}
