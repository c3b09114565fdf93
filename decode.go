package bcf

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Decode reads a BCF container from r and assembles the project graph.
//
// The decoding process:
//  1. Opens the zip archive and enumerates its entries once
//  2. Classifies entries by suffix; unrecognized entries are ignored
//  3. Selects the version scheme from the bcf.version descriptor
//  4. Parses the project descriptor and extension schema, if present
//  5. Parses each markup document in archive order, resolving its
//     viewpoint documents and binding lazy snapshot accessors
//
// Missing version or project descriptors degrade to defaults and are
// never fatal. A markup whose viewpoint document is absent fails with
// ErrMissingEntry; malformed XML fails with ErrParse naming the entry.
// By default any such error aborts the read. Use WithLenientRead to
// skip the offending markup instead and continue; skipped entries are
// reported through the WithReadLogger logger.
//
// Snapshot images are never read during Decode. Each viewpoint's
// Snapshot accessor fetches its blob from the container on demand.
func Decode(r io.Reader, opts ...ReadOption) (*Project, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(b, opts...)
}

// DecodeBytes is Decode over an in-memory archive.
func DecodeBytes(b []byte, opts ...ReadOption) (*Project, error) {
	cfg := readConfig{limits: defaultLimits(), logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	c, err := openContainer(b, cfg.limits)
	if err != nil {
		return nil, err
	}
	return decodeContainer(c, cfg)
}

// DecodeSource accepts the input forms the codec supports: a byte slice
// or an io.Reader. String input is rejected with ErrUnsupportedInput;
// the codec never fetches URLs or opens paths on the caller's behalf.
func DecodeSource(src any, opts ...ReadOption) (*Project, error) {
	switch v := src.(type) {
	case []byte:
		return DecodeBytes(v, opts...)
	case io.Reader:
		return Decode(v, opts...)
	case string:
		return nil, fmt.Errorf("%w: string input (pass bytes or a reader)", ErrUnsupportedInput)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, src)
	}
}

// entryKinds of a classified container listing.
type entryKinds struct {
	version    string
	project    string
	extensions string
	markups    []string
}

func classifyEntries(names []string) entryKinds {
	var k entryKinds
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".version"):
			if k.version == "" {
				k.version = name
			}
		case strings.HasSuffix(name, ".bcfp"):
			if k.project == "" {
				k.project = name
			}
		case strings.HasSuffix(name, "extensions.xsd"), strings.HasSuffix(name, "extensions.xml"):
			if k.extensions == "" {
				k.extensions = name
			}
		case strings.HasSuffix(name, ".bcf"):
			k.markups = append(k.markups, name)
		}
	}
	return k
}

func decodeContainer(c *container, cfg readConfig) (*Project, error) {
	kinds := classifyEntries(c.entries())

	version := cfg.version
	if version == "" {
		v, err := declaredVersion(c, kinds.version, cfg)
		if err != nil {
			return nil, err
		}
		version = v
	}
	s, err := schemeFor(version)
	if err != nil {
		return nil, err
	}

	p := &Project{Version: s.version()}
	if kinds.project != "" {
		data, err := c.get(kinds.project, cfg.limits.MaxEntryBytes)
		if err != nil {
			return nil, err
		}
		id, name, err := s.parseProject(data)
		if err != nil {
			if !cfg.lenient {
				return nil, fmt.Errorf("entry %s: %w", kinds.project, err)
			}
			cfg.logger.Warn().Str("entry", kinds.project).Err(err).Msg("skipping project descriptor")
		} else {
			p.ProjectID, p.Name = id, name
		}
	}

	if kinds.extensions != "" {
		data, err := c.get(kinds.extensions, cfg.limits.MaxEntryBytes)
		if err != nil {
			return nil, err
		}
		ext, err := s.normalizeExtensions(data)
		if err != nil {
			if !cfg.lenient {
				return nil, fmt.Errorf("entry %s: %w", kinds.extensions, err)
			}
			cfg.logger.Warn().Str("entry", kinds.extensions).Err(err).Msg("skipping extension schema")
		} else {
			p.Extensions = ext
		}
	}

	if len(kinds.markups) > cfg.limits.MaxMarkups {
		return nil, fmt.Errorf("%w: %d markups", ErrLimitExceeded, len(kinds.markups))
	}
	for _, name := range kinds.markups {
		m, err := decodeMarkup(c, s, name, cfg)
		if err != nil {
			if !cfg.lenient {
				return nil, err
			}
			cfg.logger.Warn().Str("entry", name).Err(err).Msg("skipping markup")
			continue
		}
		p.AddMarkup(m)
	}
	return p, nil
}

// declaredVersion reads the version descriptor; a missing descriptor
// defaults to 2.1, the revision most archives in the wild carry.
func declaredVersion(c *container, entry string, cfg readConfig) (string, error) {
	if entry == "" {
		return Version21, nil
	}
	data, err := c.get(entry, cfg.limits.MaxEntryBytes)
	if err != nil {
		return "", err
	}
	v, err := parseVersionDescriptor(data)
	if err != nil {
		if !cfg.lenient {
			return "", fmt.Errorf("entry %s: %w", entry, err)
		}
		cfg.logger.Warn().Str("entry", entry).Err(err).Msg("skipping version descriptor")
		return Version21, nil
	}
	return v, nil
}

func decodeMarkup(c *container, s scheme, entry string, cfg readConfig) (*Markup, error) {
	limits := cfg.limits
	data, err := c.get(entry, limits.MaxEntryBytes)
	if err != nil {
		return nil, err
	}
	m, refs, err := s.parseMarkup(data)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", entry, err)
	}
	if cfg.strictGUIDs {
		if _, err := uuid.Parse(m.Topic.GUID); err != nil {
			return nil, fmt.Errorf("%w: entry %s: topic GUID %q is not a UUID", ErrSchemaMismatch, entry, m.Topic.GUID)
		}
	}
	if len(refs) > limits.MaxViewpointsPerMarkup {
		return nil, fmt.Errorf("%w: markup %s has %d viewpoints", ErrLimitExceeded, m.Topic.GUID, len(refs))
	}
	for _, ref := range refs {
		v, err := decodeViewpoint(c, s, m.Topic.GUID, ref, limits)
		if err != nil {
			return nil, err
		}
		m.Viewpoints = append(m.Viewpoints, v)
	}
	return m, nil
}

func decodeViewpoint(c *container, s scheme, topicGUID string, ref viewpointRef, limits Limits) (*Viewpoint, error) {
	path := topicGUID + "/" + ref.file
	data, err := c.get(path, limits.MaxEntryBytes)
	if err != nil {
		return nil, err
	}
	v, err := s.parseViewpoint(data, ref)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", path, err)
	}
	if ref.snapshot != "" {
		snapPath := topicGUID + "/" + ref.snapshot
		if !c.has(snapPath) {
			return nil, fmt.Errorf("%w: %q", ErrMissingEntry, snapPath)
		}
		max := limits.MaxSnapshotBytes
		v.snapshot = func() ([]byte, error) { return c.get(snapPath, max) }
	}
	return v, nil
}
