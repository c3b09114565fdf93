package bcf

import (
	"encoding/base64"
	"sort"

	"github.com/google/uuid"
)

// Supported BCF specification versions.
const (
	Version21 = "2.1"
	Version30 = "3.0"
)

// Extension schema category names shared by both versions.
const (
	CategoryTopicType   = "TopicType"
	CategoryTopicStatus = "TopicStatus"
	CategoryPriority    = "Priority"
	CategoryTopicLabel  = "TopicLabel"
	CategoryStage       = "Stage"
	CategoryUser        = "User"
	CategorySnippetType = "SnippetType"
)

// Project is the root of a decoded BCF container.
//
// Markups are kept in container enumeration order on decode and are
// emitted in slice order on encode.
type Project struct {
	ProjectID  string
	Name       string
	Version    string
	Extensions *ExtensionSchema
	Markups    []*Markup
}

// AddMarkup appends m to the project and wires its back-reference.
func (p *Project) AddMarkup(m *Markup) {
	m.project = p
	p.Markups = append(p.Markups, m)
}

// Markup is the per-topic unit of a container: one topic, its viewpoints,
// and an optional header of referenced IFC documents.
type Markup struct {
	Header     []HeaderFile
	Topic      Topic
	Viewpoints []*Viewpoint

	project *Project
}

// Project returns the owning project, or nil for a detached markup.
func (m *Markup) Project() *Project { return m.project }

// HeaderFile references an external IFC document a topic relates to.
type HeaderFile struct {
	IfcProject                 string
	IfcSpatialStructureElement string
	IsExternal                 bool
	Filename                   string
	Date                       string
	Reference                  string
}

// Topic is a single review issue, request, or comment thread.
//
// GUID is the topic identity and names the container directory holding
// the markup document and its viewpoints. It must be non-empty and
// unique within a project before encoding. The codec does not require a
// UUID shape unless WithStrictGUIDs is set.
type Topic struct {
	GUID           string
	TopicType      string
	TopicStatus    string
	Title          string
	Description    string
	Priority       string
	CreationAuthor string
	CreationDate   string
	ModifiedAuthor string
	ModifiedDate   string
	AssignedTo     string
	Labels         []string
	Comments       []Comment
}

// Comment is a dated note on a topic, optionally pinned to a viewpoint.
type Comment struct {
	GUID          string
	Date          string
	Author        string
	Text          string
	ViewpointGUID string
}

// Viewpoint is a saved 3D view (camera, component selection, clipping)
// optionally paired with a snapshot image stored beside it.
type Viewpoint struct {
	GUID           string
	File           string
	SnapshotFile   string
	Camera         *Camera
	Components     []Component
	ClippingPlanes []ClippingPlane

	snapshot func() ([]byte, error)
}

// HasSnapshot reports whether the viewpoint declares a snapshot image.
func (v *Viewpoint) HasSnapshot() bool {
	return v.SnapshotFile != "" && v.snapshot != nil
}

// Snapshot returns the snapshot image base64-encoded.
//
// The bytes are fetched from the container on each call, never during
// decode; calling Snapshot repeatedly returns the same encoding.
func (v *Viewpoint) Snapshot() (string, error) {
	if v.snapshot == nil {
		return "", nil
	}
	b, err := v.snapshot()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// SetSnapshot attaches snapshot bytes to a client-built viewpoint.
// SnapshotFile must also be set for the image to be encoded.
func (v *Viewpoint) SetSnapshot(data []byte) {
	v.snapshot = func() ([]byte, error) { return data, nil }
}

type CameraKind uint8

const (
	CameraPerspective CameraKind = iota
	CameraOrthogonal
)

// Camera holds the view definition of a viewpoint. FieldOfView applies
// to perspective cameras, ViewToWorldScale to orthogonal ones.
type Camera struct {
	Kind             CameraKind
	ViewPoint        XYZ
	Direction        XYZ
	UpVector         XYZ
	FieldOfView      float64
	ViewToWorldScale float64
}

type XYZ struct {
	X, Y, Z float64
}

// Component references a model element selected in a viewpoint.
type Component struct {
	IfcGUID           string
	OriginatingSystem string
	AuthoringToolID   string
}

// ClippingPlane cuts the model along a plane defined by a point and a
// normal vector.
type ClippingPlane struct {
	Location XYZ
	Normal   XYZ
}

// ExtensionSchema enumerates the values a project permits per topic
// category. It is read-only after construction.
type ExtensionSchema struct {
	categories map[string][]string
}

// NewExtensionSchema builds a schema from a category-to-values mapping.
func NewExtensionSchema(categories map[string][]string) *ExtensionSchema {
	c := make(map[string][]string, len(categories))
	for k, vs := range categories {
		c[k] = append([]string(nil), vs...)
	}
	return &ExtensionSchema{categories: c}
}

// Values returns the permitted values for a category, nil if undeclared.
func (s *ExtensionSchema) Values(category string) []string {
	if s == nil {
		return nil
	}
	return s.categories[category]
}

// Categories returns the declared category names, sorted.
func (s *ExtensionSchema) Categories() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.categories))
	for k := range s.categories {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// NewTopicGUID returns a fresh UUID string suitable for Topic.GUID.
func NewTopicGUID() string {
	return uuid.NewString()
}
