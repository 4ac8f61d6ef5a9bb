package cache

import (
	"maps"
	"sync"

	"github.com/metafates/gache"
	"github.com/nrkcat/nrkcat/filesystem"
)

// GacheStore keeps the entry map in one JSON file on the filesystem backend.
type GacheStore struct {
	blob *gache.Cache[map[string]Entry]
}

// NewGacheStore returns a store persisting to path.
func NewGacheStore(path string) *GacheStore {
	return &GacheStore{
		blob: gache.New[map[string]Entry](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Load reads the blob. A missing file yields an empty map.
func (s *GacheStore) Load() (map[string]Entry, error) {
	entries, expired, err := s.blob.Get()
	if err != nil {
		return nil, err
	}
	if expired || entries == nil {
		return make(map[string]Entry), nil
	}
	return entries, nil
}

// Save replaces the blob.
func (s *GacheStore) Save(entries map[string]Entry) error {
	return s.blob.Set(entries)
}

// MemoryStore holds a copy of the last saved map. Useful when nothing should touch disk.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	Loads   int
	Saves   int
}

func (s *MemoryStore) Load() (map[string]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Loads++
	return maps.Clone(s.entries), nil
}

func (s *MemoryStore) Save(entries map[string]Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Saves++
	s.entries = maps.Clone(entries)
	return nil
}
