package bcf

import (
	"encoding/xml"
	"fmt"
)

// schemeV21 implements the BCF 2.1 on-disk layout: comments and
// viewpoint references are siblings of the Topic element inside the
// markup document, the project descriptor root is ProjectExtension, and
// the extension schema is an XSD redefining enumeration types.
type schemeV21 struct{}

func (schemeV21) version() string { return Version21 }

func (schemeV21) markupName(topicGUID string) string { return topicGUID + "/markup.bcf" }

func (schemeV21) extensionsName() string { return "extensions.xsd" }

func (schemeV21) encodeVersionDescriptor() ([]byte, error) {
	return marshalXML(versionXML{VersionID: Version21, DetailedVersion: Version21})
}

type projectXML21 struct {
	XMLName         xml.Name        `xml:"ProjectExtension"`
	Project         projectInnerXML `xml:"Project"`
	ExtensionSchema string          `xml:"ExtensionSchema,omitempty"`
}

type projectInnerXML struct {
	ProjectID string `xml:"ProjectId,attr,omitempty"`
	Name      string `xml:"Name,omitempty"`
}

func (schemeV21) parseProject(data []byte) (string, string, error) {
	var doc projectXML21
	if err := unmarshalXML(data, &doc); err != nil {
		return "", "", err
	}
	return doc.Project.ProjectID, doc.Project.Name, nil
}

func (s schemeV21) encodeProject(p *Project) ([]byte, error) {
	doc := projectXML21{
		Project: projectInnerXML{ProjectID: p.ProjectID, Name: p.Name},
	}
	if p.Extensions != nil {
		doc.ExtensionSchema = s.extensionsName()
	}
	return marshalXML(doc)
}

type markupXML21 struct {
	XMLName    xml.Name          `xml:"Markup"`
	Header     *headerXML21      `xml:"Header"`
	Topic      topicXML21        `xml:"Topic"`
	Comments   []commentXML      `xml:"Comment"`
	Viewpoints []viewpointsXML21 `xml:"Viewpoints"`
}

type headerXML21 struct {
	Files []headerFileXML `xml:"File"`
}

type headerFileXML struct {
	IfcProject                 string `xml:"IfcProject,attr,omitempty"`
	IfcSpatialStructureElement string `xml:"IfcSpatialStructureElement,attr,omitempty"`
	IsExternal                 bool   `xml:"isExternal,attr"`
	Filename                   string `xml:"Filename,omitempty"`
	Date                       string `xml:"Date,omitempty"`
	Reference                  string `xml:"Reference,omitempty"`
}

type topicXML struct {
	GUID           string   `xml:"Guid,attr"`
	TopicType      string   `xml:"TopicType,attr,omitempty"`
	TopicStatus    string   `xml:"TopicStatus,attr,omitempty"`
	Title          string   `xml:"Title"`
	Priority       string   `xml:"Priority,omitempty"`
	Labels         []string `xml:"Labels,omitempty"`
	CreationDate   string   `xml:"CreationDate"`
	CreationAuthor string   `xml:"CreationAuthor"`
	ModifiedDate   string   `xml:"ModifiedDate,omitempty"`
	ModifiedAuthor string   `xml:"ModifiedAuthor,omitempty"`
	AssignedTo     string   `xml:"AssignedTo,omitempty"`
	Description    string   `xml:"Description,omitempty"`
}

// topicXML21 matches 2.1 markup documents; the shape is shared with 3.0
// except for the nested comment and viewpoint lists.
type topicXML21 = topicXML

type commentXML struct {
	GUID      string      `xml:"Guid,attr"`
	Date      string      `xml:"Date"`
	Author    string      `xml:"Author"`
	Text      string      `xml:"Comment"`
	Viewpoint *guidRefXML `xml:"Viewpoint"`
}

type guidRefXML struct {
	GUID string `xml:"Guid,attr"`
}

type viewpointsXML21 struct {
	GUID      string `xml:"Guid,attr,omitempty"`
	Viewpoint string `xml:"Viewpoint"`
	Snapshot  string `xml:"Snapshot,omitempty"`
}

func (schemeV21) parseMarkup(data []byte) (*Markup, []viewpointRef, error) {
	var doc markupXML21
	if err := unmarshalXML(data, &doc); err != nil {
		return nil, nil, err
	}
	if doc.Topic.GUID == "" {
		return nil, nil, fmt.Errorf("%w: markup topic has no Guid", ErrSchemaMismatch)
	}
	m := &Markup{Topic: topicFromXML(doc.Topic, doc.Comments)}
	if doc.Header != nil {
		m.Header = headerFromXML(doc.Header.Files)
	}
	refs := make([]viewpointRef, 0, len(doc.Viewpoints))
	for _, vp := range doc.Viewpoints {
		if vp.Viewpoint == "" {
			return nil, nil, fmt.Errorf("%w: markup %s references a viewpoint without a file", ErrSchemaMismatch, doc.Topic.GUID)
		}
		refs = append(refs, viewpointRef{guid: vp.GUID, file: vp.Viewpoint, snapshot: vp.Snapshot})
	}
	return m, refs, nil
}

func (schemeV21) encodeMarkup(m *Markup) ([]byte, error) {
	doc := markupXML21{
		Topic:    topicToXML(m.Topic),
		Comments: commentsToXML(m.Topic.Comments),
	}
	if len(m.Header) > 0 {
		doc.Header = &headerXML21{Files: headerToXML(m.Header)}
	}
	for _, v := range m.Viewpoints {
		doc.Viewpoints = append(doc.Viewpoints, viewpointsXML21{
			GUID:      v.GUID,
			Viewpoint: v.File,
			Snapshot:  v.SnapshotFile,
		})
	}
	return marshalXML(doc)
}

func (schemeV21) parseViewpoint(data []byte, ref viewpointRef) (*Viewpoint, error) {
	var doc visinfoXML
	if err := unmarshalXML(data, &doc); err != nil {
		return nil, err
	}
	return visinfoToViewpoint(doc, ref), nil
}

func (schemeV21) encodeViewpoint(v *Viewpoint) ([]byte, error) {
	return marshalXML(viewpointToVisinfo(v, false))
}

// Shared topic/header/comment mappings. Both markup layouts reduce to
// the same entity fields once the version-specific nesting is unwrapped.

func topicFromXML(t topicXML, comments []commentXML) Topic {
	topic := Topic{
		GUID:           t.GUID,
		TopicType:      t.TopicType,
		TopicStatus:    t.TopicStatus,
		Title:          t.Title,
		Priority:       t.Priority,
		Labels:         t.Labels,
		CreationDate:   t.CreationDate,
		CreationAuthor: t.CreationAuthor,
		ModifiedDate:   t.ModifiedDate,
		ModifiedAuthor: t.ModifiedAuthor,
		AssignedTo:     t.AssignedTo,
		Description:    t.Description,
	}
	for _, c := range comments {
		cm := Comment{GUID: c.GUID, Date: c.Date, Author: c.Author, Text: c.Text}
		if c.Viewpoint != nil {
			cm.ViewpointGUID = c.Viewpoint.GUID
		}
		topic.Comments = append(topic.Comments, cm)
	}
	return topic
}

func topicToXML(t Topic) topicXML {
	return topicXML{
		GUID:           t.GUID,
		TopicType:      t.TopicType,
		TopicStatus:    t.TopicStatus,
		Title:          t.Title,
		Priority:       t.Priority,
		Labels:         t.Labels,
		CreationDate:   t.CreationDate,
		CreationAuthor: t.CreationAuthor,
		ModifiedDate:   t.ModifiedDate,
		ModifiedAuthor: t.ModifiedAuthor,
		AssignedTo:     t.AssignedTo,
		Description:    t.Description,
	}
}

func commentsToXML(comments []Comment) []commentXML {
	out := make([]commentXML, 0, len(comments))
	for _, c := range comments {
		cx := commentXML{GUID: c.GUID, Date: c.Date, Author: c.Author, Text: c.Text}
		if c.ViewpointGUID != "" {
			cx.Viewpoint = &guidRefXML{GUID: c.ViewpointGUID}
		}
		out = append(out, cx)
	}
	return out
}

func headerFromXML(files []headerFileXML) []HeaderFile {
	out := make([]HeaderFile, 0, len(files))
	for _, f := range files {
		out = append(out, HeaderFile{
			IfcProject:                 f.IfcProject,
			IfcSpatialStructureElement: f.IfcSpatialStructureElement,
			IsExternal:                 f.IsExternal,
			Filename:                   f.Filename,
			Date:                       f.Date,
			Reference:                  f.Reference,
		})
	}
	return out
}

func headerToXML(files []HeaderFile) []headerFileXML {
	out := make([]headerFileXML, 0, len(files))
	for _, f := range files {
		out = append(out, headerFileXML{
			IfcProject:                 f.IfcProject,
			IfcSpatialStructureElement: f.IfcSpatialStructureElement,
			IsExternal:                 f.IsExternal,
			Filename:                   f.Filename,
			Date:                       f.Date,
			Reference:                  f.Reference,
		})
	}
	return out
}
