// Package env overlays environment variables on a driven.ConfigStore.
//
// Each settable key has a PREFACTOR_SIP_ variable; when the variable is set
// it wins over the wrapped store. Variables can be supplied in a .env file,
// loaded with LoadDotEnv.
package env

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tikk3r/prefactor-eor/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Prefix of every recognised variable.
const Prefix = "PREFACTOR_SIP_"

var names = map[string]string{
	"pipeline.duration":   Prefix + "DURATION",
	"output.directory":    Prefix + "OUTPUT_DIR",
	"output.embed_parset": Prefix + "EMBED_PARSET",
}

// VarName returns the environment variable for a settings key. Keys
// without a short name map to the prefix plus the upper-cased key with
// dots replaced by underscores.
func VarName(key string) string {
	if name, ok := names[key]; ok {
		return name
	}
	return Prefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// LoadDotEnv loads variables from the given .env files into the process
// environment, without replacing variables that are already set. Missing
// files are skipped. With no arguments ".env" in the working directory is
// tried.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ConfigStore reads through to the environment before the wrapped store.
// Writes go to the wrapped store only.
type ConfigStore struct {
	base   driven.ConfigStore
	lookup func(string) (string, bool)
}

// NewConfigStore wraps base with environment overrides read from the
// process environment.
func NewConfigStore(base driven.ConfigStore) *ConfigStore {
	return &ConfigStore{base: base, lookup: os.LookupEnv}
}

// NewConfigStoreWithLookup wraps base with overrides from lookup.
func NewConfigStoreWithLookup(base driven.ConfigStore, lookup func(string) (string, bool)) *ConfigStore {
	return &ConfigStore{base: base, lookup: lookup}
}

func (s *ConfigStore) env(key string) (string, bool) {
	v, ok := s.lookup(VarName(key))
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Get returns the environment value as a string if set, else the stored
// value.
func (s *ConfigStore) Get(key string) (any, bool) {
	if v, ok := s.env(key); ok {
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	return s.base.GetString(key)
}

// GetBool retrieves a boolean configuration value. An unparsable variable
// reads as false.
func (s *ConfigStore) GetBool(key string) bool {
	if v, ok := s.env(key); ok {
		b, _ := strconv.ParseBool(v)
		return b
	}
	return s.base.GetBool(key)
}

// Set stores a value in the wrapped store.
func (s *ConfigStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Save persists the wrapped store.
func (s *ConfigStore) Save() error {
	return s.base.Save()
}

// Load reloads the wrapped store.
func (s *ConfigStore) Load() error {
	return s.base.Load()
}

// Path returns the wrapped store's path.
func (s *ConfigStore) Path() string {
	return s.base.Path()
}
