package engine

import "sync"

// Storage is per-origin localStorage shared by the views of an engine.
type Storage struct {
	mu      sync.Mutex
	origins map[string]map[string]string
}

func newStorage() *Storage {
	return &Storage{origins: make(map[string]map[string]string)}
}

// Get returns the value of key for origin.
func (s *Storage) Get(origin, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.origins[origin][key]
	return v, ok
}

// Set stores value under key for origin.
func (s *Storage) Set(origin, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.origins[origin]
	if !ok {
		items = make(map[string]string)
		s.origins[origin] = items
	}
	items[key] = value
}

// Remove deletes key for origin.
func (s *Storage) Remove(origin, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.origins[origin], key)
}

// Clear deletes every key of origin.
func (s *Storage) Clear(origin string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.origins, origin)
}

// Len returns the number of keys stored for origin.
func (s *Storage) Len(origin string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.origins[origin])
}

// DeleteAllData clears every origin.
func (s *Storage) DeleteAllData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origins = make(map[string]map[string]string)
}
