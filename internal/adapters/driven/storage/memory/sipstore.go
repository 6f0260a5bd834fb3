package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
	"github.com/tikk3r/prefactor-eor/internal/core/ports/driven"
	"github.com/tikk3r/prefactor-eor/internal/sip"
)

// Ensure SIPStore implements the interface.
var _ driven.SIPStore = (*SIPStore)(nil)

// SIPStore keeps encoded SIP documents in memory, keyed by path.
// Documents are stored encoded, so a Save followed by Load exercises the
// same XML round trip as the file store.
type SIPStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewSIPStore creates an empty store.
func NewSIPStore() *SIPStore {
	return &SIPStore{files: make(map[string][]byte)}
}

// Put stores raw XML at path.
func (s *SIPStore) Put(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = append([]byte(nil), data...)
}

// Raw returns the XML stored at path.
func (s *SIPStore) Raw(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path]
	return data, ok
}

// Paths returns the stored paths in sorted order.
func (s *SIPStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Load decodes the document stored at path.
func (s *SIPStore) Load(ctx context.Context, path string) (*sip.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := s.Raw(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return sip.Parse(data)
}

// Save encodes doc and stores it at path.
func (s *SIPStore) Save(ctx context.Context, path string, doc *sip.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := doc.Bytes()
	if err != nil {
		return err
	}
	s.Put(path, data)
	return nil
}
