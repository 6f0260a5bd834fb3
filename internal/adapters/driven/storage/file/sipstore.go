// Package file stores SIP documents as XML files.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tikk3r/prefactor-eor/internal/core/ports/driven"
	"github.com/tikk3r/prefactor-eor/internal/sip"
)

// Ensure SIPStore implements the interface.
var _ driven.SIPStore = (*SIPStore)(nil)

// SIPStore reads and writes SIP XML files.
type SIPStore struct{}

// NewSIPStore creates a file-backed SIP store.
func NewSIPStore() *SIPStore {
	return &SIPStore{}
}

// Load reads the SIP at path.
func (s *SIPStore) Load(ctx context.Context, path string) (*sip.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening SIP: %w", err)
	}
	defer f.Close()

	doc, err := sip.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading SIP %s: %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path. The document is written to a temporary file in
// the same directory and renamed into place, so a failed write never
// leaves a truncated SIP behind.
func (s *SIPStore) Save(ctx context.Context, path string, doc *sip.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := doc.Bytes()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing SIP: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing SIP: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writing SIP: %w", err)
	}
	return nil
}
