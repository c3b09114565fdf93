package bcf

import "github.com/rs/zerolog"

type readConfig struct {
	limits      Limits
	lenient     bool
	strictGUIDs bool
	version     string
	logger      zerolog.Logger
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithLenientRead makes Decode skip markups and extension schemas that
// fail to parse instead of aborting the whole read. Skipped entries are
// reported through the logger set by WithReadLogger.
func WithLenientRead(v bool) ReadOption {
	return func(c *readConfig) { c.lenient = v }
}

// WithReadLogger sets the logger used for lenient-read diagnostics.
// The default logger discards everything.
func WithReadLogger(l zerolog.Logger) ReadOption {
	return func(c *readConfig) { c.logger = l }
}

// WithVersionOverride forces the given specification version instead of
// the one declared by the container's version descriptor.
func WithVersionOverride(version string) ReadOption {
	return func(c *readConfig) { c.version = version }
}

// WithStrictGUIDs requires every decoded Topic.GUID to be a well-formed
// UUID string. Off by default: the BCF schemas ask for UUIDs but
// archives in the wild carry free-form identifiers.
func WithStrictGUIDs(v bool) ReadOption {
	return func(c *readConfig) { c.strictGUIDs = v }
}

type writeConfig struct {
	limits      Limits
	strictGUIDs bool
}

type WriteOption func(*writeConfig)

func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}

// WithStrictGUIDsOnWrite is WithStrictGUIDs for Encode: validation
// fails unless every Topic.GUID parses as a UUID.
func WithStrictGUIDsOnWrite(v bool) WriteOption {
	return func(c *writeConfig) { c.strictGUIDs = v }
}
