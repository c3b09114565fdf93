package bcf

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Container entry names shared by both specification versions.
const (
	versionEntryName = "bcf.version"
	projectEntryName = "project.bcfp"
)

// viewpointRef is a markup document's pointer to a viewpoint document
// and its optional snapshot image, both scoped under the topic
// directory inside the container.
type viewpointRef struct {
	guid     string
	file     string
	snapshot string
}

// scheme isolates everything version-specific about the on-disk layout:
// XML document shapes, entry naming, and extension schema normalization.
// Graph building and serialization never branch on the version; adding
// a specification revision means adding a scheme, nothing else.
type scheme interface {
	version() string
	markupName(topicGUID string) string
	extensionsName() string

	encodeVersionDescriptor() ([]byte, error)
	parseProject(data []byte) (id, name string, err error)
	encodeProject(p *Project) ([]byte, error)
	parseMarkup(data []byte) (*Markup, []viewpointRef, error)
	encodeMarkup(m *Markup) ([]byte, error)
	parseViewpoint(data []byte, ref viewpointRef) (*Viewpoint, error)
	encodeViewpoint(v *Viewpoint) ([]byte, error)
	normalizeExtensions(data []byte) (*ExtensionSchema, error)
	encodeExtensions(s *ExtensionSchema) ([]byte, error)
}

func schemeFor(version string) (scheme, error) {
	switch version {
	case Version21:
		return schemeV21{}, nil
	case Version30:
		return schemeV30{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}
}

// versionXML is the shape of the bcf.version descriptor. It is shared:
// the declared VersionId is what selects the scheme in the first place.
type versionXML struct {
	XMLName         xml.Name `xml:"Version"`
	VersionID       string   `xml:"VersionId,attr"`
	DetailedVersion string   `xml:"DetailedVersion,omitempty"`
}

func parseVersionDescriptor(data []byte) (string, error) {
	var v versionXML
	if err := unmarshalXML(data, &v); err != nil {
		return "", err
	}
	if v.VersionID == "" {
		return "", fmt.Errorf("%w: version descriptor has no VersionId", ErrSchemaMismatch)
	}
	return v.VersionID, nil
}

// unmarshalXML decodes a single XML document in strict mode. Both
// schemes share the decoder configuration; they differ only in the
// document shapes fed to it.
func unmarshalXML(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}

// marshalXML encodes v as a standalone XML document with declaration.
func marshalXML(v any) ([]byte, error) {
	b, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(b)+1)
	out = append(out, xml.Header...)
	out = append(out, b...)
	out = append(out, '\n')
	return out, nil
}
