package bcf

import (
	"bytes"
	"fmt"
	"io"
)

// Encode writes p to w as a zip-compressed BCF container.
//
// The project is validated before any bytes are produced: every
// markup's Topic.GUID must be non-empty and unique within the project,
// and no two viewpoints of a markup may share a file name. Violations
// fail with ErrValidation listing the offending markups.
//
// Entries are emitted in a fixed order: version descriptor, project
// descriptor, extension schema (when present), then per markup in slice
// order the markup document, its viewpoint documents, and any snapshot
// images. The write is all-or-nothing; w sees no bytes unless every
// entry was produced.
//
// Viewpoints without a file name are assigned one in place (the
// conventional "viewpoint.bcfv" for the first, an indexed name after
// that), so a subsequent Encode of the same project reproduces the
// same archive.
func Encode(w io.Writer, p *Project, opts ...WriteOption) error {
	b, err := EncodeBytes(p, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeBytes is Encode into a fresh byte slice.
func EncodeBytes(p *Project, opts ...WriteOption) ([]byte, error) {
	cfg := writeConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if p == nil {
		return nil, fmt.Errorf("%w: project is nil", ErrValidation)
	}

	version := p.Version
	if version == "" {
		version = Version21
	}
	s, err := schemeFor(version)
	if err != nil {
		return nil, err
	}
	assignViewpointFiles(p)
	if err := validateProject(p, cfg); err != nil {
		return nil, err
	}

	c := newContainer()
	if err := putDescriptors(c, s, p); err != nil {
		return nil, err
	}
	for _, m := range p.Markups {
		if err := putMarkup(c, s, m, cfg.limits); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := c.flush(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// assignViewpointFiles fills in missing viewpoint file names in place,
// mirroring the naming convention most authoring tools use.
func assignViewpointFiles(p *Project) {
	for _, m := range p.Markups {
		for i, v := range m.Viewpoints {
			if v.File != "" {
				continue
			}
			if i == 0 {
				v.File = "viewpoint.bcfv"
			} else {
				v.File = fmt.Sprintf("viewpoint_%d.bcfv", i)
			}
		}
	}
}

func putDescriptors(c *container, s scheme, p *Project) error {
	vd, err := s.encodeVersionDescriptor()
	if err != nil {
		return err
	}
	if err := c.put(versionEntryName, vd); err != nil {
		return err
	}
	pd, err := s.encodeProject(p)
	if err != nil {
		return err
	}
	if err := c.put(projectEntryName, pd); err != nil {
		return err
	}
	if p.Extensions != nil {
		ed, err := s.encodeExtensions(p.Extensions)
		if err != nil {
			return err
		}
		if err := c.put(s.extensionsName(), ed); err != nil {
			return err
		}
	}
	return nil
}

func putMarkup(c *container, s scheme, m *Markup, limits Limits) error {
	data, err := s.encodeMarkup(m)
	if err != nil {
		return err
	}
	if err := c.put(s.markupName(m.Topic.GUID), data); err != nil {
		return err
	}
	for _, v := range m.Viewpoints {
		vd, err := s.encodeViewpoint(v)
		if err != nil {
			return err
		}
		if err := c.put(m.Topic.GUID+"/"+v.File, vd); err != nil {
			return err
		}
		if v.snapshot == nil || v.SnapshotFile == "" {
			continue
		}
		img, err := v.snapshot()
		if err != nil {
			return err
		}
		if uint64(len(img)) > limits.MaxSnapshotBytes {
			return fmt.Errorf("%w: snapshot %s/%s", ErrLimitExceeded, m.Topic.GUID, v.SnapshotFile)
		}
		if err := c.put(m.Topic.GUID+"/"+v.SnapshotFile, img); err != nil {
			return err
		}
	}
	return nil
}

// Convert re-targets p to another specification version. The entity
// graph is version-agnostic, so only the version tag changes; the next
// Encode produces that revision's layout.
func Convert(p *Project, version string) error {
	if _, err := schemeFor(version); err != nil {
		return err
	}
	p.Version = version
	return nil
}
