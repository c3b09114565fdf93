package bcf

import (
	"encoding/xml"
	"fmt"
)

// schemeV30 implements the BCF 3.0 on-disk layout: comments and
// viewpoint references are nested inside the Topic element, header
// files get a Files wrapper, the project descriptor root is
// ProjectInfo, and the extension schema is a plain XML value list.
type schemeV30 struct{}

func (schemeV30) version() string { return Version30 }

func (schemeV30) markupName(topicGUID string) string { return topicGUID + "/markup.bcf" }

func (schemeV30) extensionsName() string { return "extensions.xml" }

func (schemeV30) encodeVersionDescriptor() ([]byte, error) {
	return marshalXML(versionXML{VersionID: Version30})
}

type projectXML30 struct {
	XMLName xml.Name        `xml:"ProjectInfo"`
	Project projectInnerXML `xml:"Project"`
}

func (schemeV30) parseProject(data []byte) (string, string, error) {
	var doc projectXML30
	if err := unmarshalXML(data, &doc); err != nil {
		return "", "", err
	}
	return doc.Project.ProjectID, doc.Project.Name, nil
}

func (schemeV30) encodeProject(p *Project) ([]byte, error) {
	return marshalXML(projectXML30{
		Project: projectInnerXML{ProjectID: p.ProjectID, Name: p.Name},
	})
}

type markupXML30 struct {
	XMLName xml.Name     `xml:"Markup"`
	Header  *headerXML30 `xml:"Header"`
	Topic   topicXML30   `xml:"Topic"`
}

type headerXML30 struct {
	Files *headerFilesXML30 `xml:"Files"`
}

type headerFilesXML30 struct {
	Files []headerFileXML `xml:"File"`
}

type topicXML30 struct {
	topicXML
	Comments   *commentsXML30   `xml:"Comments"`
	Viewpoints *viewpointsXML30 `xml:"Viewpoints"`
}

type commentsXML30 struct {
	Comments []commentXML `xml:"Comment"`
}

type viewpointsXML30 struct {
	Viewpoints []viewpointEntryXML30 `xml:"ViewPoint"`
}

type viewpointEntryXML30 struct {
	GUID      string `xml:"Guid,attr,omitempty"`
	Viewpoint string `xml:"Viewpoint"`
	Snapshot  string `xml:"Snapshot,omitempty"`
}

func (schemeV30) parseMarkup(data []byte) (*Markup, []viewpointRef, error) {
	var doc markupXML30
	if err := unmarshalXML(data, &doc); err != nil {
		return nil, nil, err
	}
	if doc.Topic.GUID == "" {
		return nil, nil, fmt.Errorf("%w: markup topic has no Guid", ErrSchemaMismatch)
	}
	var comments []commentXML
	if doc.Topic.Comments != nil {
		comments = doc.Topic.Comments.Comments
	}
	m := &Markup{Topic: topicFromXML(doc.Topic.topicXML, comments)}
	if doc.Header != nil && doc.Header.Files != nil {
		m.Header = headerFromXML(doc.Header.Files.Files)
	}
	var refs []viewpointRef
	if doc.Topic.Viewpoints != nil {
		for _, vp := range doc.Topic.Viewpoints.Viewpoints {
			if vp.Viewpoint == "" {
				return nil, nil, fmt.Errorf("%w: markup %s references a viewpoint without a file", ErrSchemaMismatch, doc.Topic.GUID)
			}
			refs = append(refs, viewpointRef{guid: vp.GUID, file: vp.Viewpoint, snapshot: vp.Snapshot})
		}
	}
	return m, refs, nil
}

func (schemeV30) encodeMarkup(m *Markup) ([]byte, error) {
	doc := markupXML30{
		Topic: topicXML30{topicXML: topicToXML(m.Topic)},
	}
	if len(m.Header) > 0 {
		doc.Header = &headerXML30{Files: &headerFilesXML30{Files: headerToXML(m.Header)}}
	}
	if len(m.Topic.Comments) > 0 {
		doc.Topic.Comments = &commentsXML30{Comments: commentsToXML(m.Topic.Comments)}
	}
	if len(m.Viewpoints) > 0 {
		vps := &viewpointsXML30{}
		for _, v := range m.Viewpoints {
			vps.Viewpoints = append(vps.Viewpoints, viewpointEntryXML30{
				GUID:      v.GUID,
				Viewpoint: v.File,
				Snapshot:  v.SnapshotFile,
			})
		}
		doc.Topic.Viewpoints = vps
	}
	return marshalXML(doc)
}

func (schemeV30) parseViewpoint(data []byte, ref viewpointRef) (*Viewpoint, error) {
	var doc visinfoXML
	if err := unmarshalXML(data, &doc); err != nil {
		return nil, err
	}
	return visinfoToViewpoint(doc, ref), nil
}

func (schemeV30) encodeViewpoint(v *Viewpoint) ([]byte, error) {
	return marshalXML(viewpointToVisinfo(v, true))
}

// The 3.0 extension schema drops the XSD detour: it is a plain list of
// permitted values per category.

type extensionsXML30 struct {
	XMLName       xml.Name
	TopicTypes    *valueListXML30 `xml:"TopicTypes>TopicType"`
	TopicStatuses *valueListXML30 `xml:"TopicStatuses>TopicStatus"`
	Priorities    *valueListXML30 `xml:"Priorities>Priority"`
	TopicLabels   *valueListXML30 `xml:"TopicLabels>TopicLabel"`
	Stages        *valueListXML30 `xml:"Stages>Stage"`
	Users         *valueListXML30 `xml:"Users>User"`
	SnippetTypes  *valueListXML30 `xml:"SnippetTypes>SnippetType"`
}

type valueListXML30 []string

func (schemeV30) normalizeExtensions(data []byte) (*ExtensionSchema, error) {
	var doc extensionsXML30
	if err := unmarshalXML(data, &doc); err != nil {
		return nil, err
	}
	if doc.XMLName.Local != "Extensions" {
		return nil, fmt.Errorf("%w: extension schema root is %q, want Extensions", ErrSchemaMismatch, doc.XMLName.Local)
	}
	categories := make(map[string][]string)
	add := func(cat string, vs *valueListXML30) {
		if vs != nil {
			categories[cat] = []string(*vs)
		}
	}
	add(CategoryTopicType, doc.TopicTypes)
	add(CategoryTopicStatus, doc.TopicStatuses)
	add(CategoryPriority, doc.Priorities)
	add(CategoryTopicLabel, doc.TopicLabels)
	add(CategoryStage, doc.Stages)
	add(CategoryUser, doc.Users)
	add(CategorySnippetType, doc.SnippetTypes)
	if len(categories) == 0 {
		return nil, nil
	}
	return NewExtensionSchema(categories), nil
}

type extensionsEmitXML30 struct {
	XMLName       xml.Name `xml:"Extensions"`
	TopicTypes    []string `xml:"TopicTypes>TopicType,omitempty"`
	TopicStatuses []string `xml:"TopicStatuses>TopicStatus,omitempty"`
	Priorities    []string `xml:"Priorities>Priority,omitempty"`
	TopicLabels   []string `xml:"TopicLabels>TopicLabel,omitempty"`
	Stages        []string `xml:"Stages>Stage,omitempty"`
	Users         []string `xml:"Users>User,omitempty"`
	SnippetTypes  []string `xml:"SnippetTypes>SnippetType,omitempty"`
}

func (schemeV30) encodeExtensions(s *ExtensionSchema) ([]byte, error) {
	doc := extensionsEmitXML30{
		TopicTypes:    s.Values(CategoryTopicType),
		TopicStatuses: s.Values(CategoryTopicStatus),
		Priorities:    s.Values(CategoryPriority),
		TopicLabels:   s.Values(CategoryTopicLabel),
		Stages:        s.Values(CategoryStage),
		Users:         s.Values(CategoryUser),
		SnippetTypes:  s.Values(CategorySnippetType),
	}
	return marshalXML(doc)
}
