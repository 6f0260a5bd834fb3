package driven

// ConfigStore holds sipgen's tool settings under dotted keys such as
// "pipeline.duration". Typed getters return the zero value for missing
// keys and for values of another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetBool(key string) bool

	// Set stores a value. Persistent stores write it out immediately.
	Set(key string, value any) error

	// Save writes all settings to the backing storage.
	Save() error

	// Load rereads the backing storage.
	Load() error

	// Path identifies the backing storage, e.g. the TOML file.
	Path() string
}
