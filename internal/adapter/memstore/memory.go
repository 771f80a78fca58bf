package memstore

import (
	"sort"
	"sync"

	"cslint/internal/domain"
	"cslint/internal/port"
)

// MemoryStore is an in-memory port.ReportCache, used with --no-cache and in
// tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[domain.Mode]map[string]port.CachedReport
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[domain.Mode]map[string]port.CachedReport),
	}
}

func (s *MemoryStore) Get(mode domain.Mode, path string) (*port.CachedReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[mode][path]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *MemoryStore) Put(mode domain.Mode, path string, entry port.CachedReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries[mode] == nil {
		s.entries[mode] = make(map[string]port.CachedReport)
	}
	s.entries[mode][path] = entry
	return nil
}

func (s *MemoryStore) Delete(mode domain.Mode, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries[mode], path)
	return nil
}

func (s *MemoryStore) Paths(mode domain.Mode) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.entries[mode]))
	for p := range s.entries[mode] {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[domain.Mode]map[string]port.CachedReport)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var _ port.ReportCache = (*MemoryStore)(nil)
