// Package bcf reads and writes BIM Collaboration Format (BCF) containers.
//
// BCF is a zip-based container format for exchanging BIM review topics:
// issues, requests, and comments, each paired with saved 3D viewpoints
// and optional snapshot images. This package implements the 2.1 and 3.0
// revisions of the specification behind one version-agnostic entity
// model, so a project decoded from one revision can be re-encoded under
// the other.
//
// # Container Overview
//
// A BCF archive consists of:
//   - A version descriptor (bcf.version) naming the specification revision
//   - An optional project descriptor (project.bcfp) with id and name
//   - An optional extension schema enumerating permitted topic values
//   - One directory per topic, named by the topic GUID, holding the
//     markup document, viewpoint documents, and snapshot images
//
// # Basic Usage
//
// To create and write a BCF container:
//
//	p := &bcf.Project{ProjectID: "p1", Name: "Demo", Version: bcf.Version21}
//	p.AddMarkup(&bcf.Markup{Topic: bcf.Topic{
//		GUID:           bcf.NewTopicGUID(),
//		Title:          "Door collides with duct",
//		TopicType:      "Issue",
//		TopicStatus:    "Open",
//		CreationAuthor: "a.reviewer@example.com",
//		CreationDate:   "2024-01-01T00:00:00Z",
//	}})
//	f, _ := os.Create("review.bcf")
//	defer f.Close()
//	err := bcf.Encode(f, p)
//
// To read one:
//
//	f, _ := os.Open("review.bcf")
//	defer f.Close()
//	p, err := bcf.Decode(f)
//
// Snapshot images are fetched lazily: Decode binds an accessor per
// viewpoint and reads no image bytes until the caller asks for them.
//
// # Security Considerations
//
// The package includes built-in protection against oversized
// allocations and decompression bombs via configurable [Limits]. Entry
// sizes and counts are enforced during decoding to prevent resource
// exhaustion attacks.
//
// # Specification
//
// The BCF format is specified by buildingSMART International in the
// BCF-XML repository.
package bcf
