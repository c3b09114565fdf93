package bcf

import (
	"encoding/xml"
	"fmt"
	"sort"
)

// The 2.1 extension schema is an XSD that redefines enumeration types
// from the markup schema. Only the enumeration values are extracted;
// anything else in the XSD is structural noise the codec ignores.
//
// The schema is normalized totally or not at all: a document whose root
// is not an XSD schema fails with ErrSchemaMismatch, and a valid one
// yields every declared category.

// xsdUserCategory is the simpleType name 2.1 uses for the User category.
const xsdUserCategory = "UserIdType"

// Canonical emit order for categories known to the specification;
// custom categories follow, sorted.
var categoryOrder = []string{
	CategoryTopicType,
	CategoryTopicStatus,
	CategoryPriority,
	CategoryTopicLabel,
	CategoryStage,
	CategoryUser,
	CategorySnippetType,
}

type xsdSchemaDoc struct {
	XMLName     xml.Name
	Redefines   []xsdRedefine   `xml:"redefine"`
	SimpleTypes []xsdSimpleType `xml:"simpleType"`
}

type xsdRedefine struct {
	SimpleTypes []xsdSimpleType `xml:"simpleType"`
}

type xsdSimpleType struct {
	Name        string         `xml:"name,attr"`
	Restriction xsdRestriction `xml:"restriction"`
}

type xsdRestriction struct {
	Enumerations []xsdEnumeration `xml:"enumeration"`
}

type xsdEnumeration struct {
	Value string `xml:"value,attr"`
}

func (schemeV21) normalizeExtensions(data []byte) (*ExtensionSchema, error) {
	var doc xsdSchemaDoc
	if err := unmarshalXML(data, &doc); err != nil {
		return nil, err
	}
	if doc.XMLName.Local != "schema" {
		return nil, fmt.Errorf("%w: extension schema root is %q, want schema", ErrSchemaMismatch, doc.XMLName.Local)
	}
	types := doc.SimpleTypes
	for _, rd := range doc.Redefines {
		types = append(types, rd.SimpleTypes...)
	}
	if len(types) == 0 {
		return nil, nil
	}
	categories := make(map[string][]string, len(types))
	for _, st := range types {
		if st.Name == "" {
			return nil, fmt.Errorf("%w: unnamed simpleType in extension schema", ErrSchemaMismatch)
		}
		name := st.Name
		if name == xsdUserCategory {
			name = CategoryUser
		}
		values := make([]string, 0, len(st.Restriction.Enumerations))
		for _, e := range st.Restriction.Enumerations {
			values = append(values, e.Value)
		}
		categories[name] = values
	}
	return NewExtensionSchema(categories), nil
}

type xsdSchemaEmit struct {
	XMLName  xml.Name        `xml:"xs:schema"`
	XMLNS    string          `xml:"xmlns:xs,attr"`
	Redefine xsdRedefineEmit `xml:"xs:redefine"`
}

type xsdRedefineEmit struct {
	SchemaLocation string              `xml:"schemaLocation,attr"`
	SimpleTypes    []xsdSimpleTypeEmit `xml:"xs:simpleType"`
}

type xsdSimpleTypeEmit struct {
	Name        string             `xml:"name,attr"`
	Restriction xsdRestrictionEmit `xml:"xs:restriction"`
}

type xsdRestrictionEmit struct {
	Base         string               `xml:"base,attr"`
	Enumerations []xsdEnumerationEmit `xml:"xs:enumeration"`
}

type xsdEnumerationEmit struct {
	Value string `xml:"value,attr"`
}

func (schemeV21) encodeExtensions(s *ExtensionSchema) ([]byte, error) {
	doc := xsdSchemaEmit{
		XMLNS:    "http://www.w3.org/2001/XMLSchema",
		Redefine: xsdRedefineEmit{SchemaLocation: "markup.xsd"},
	}
	for _, cat := range orderedCategories(s) {
		name := cat
		if name == CategoryUser {
			name = xsdUserCategory
		}
		st := xsdSimpleTypeEmit{
			Name:        name,
			Restriction: xsdRestrictionEmit{Base: "xs:string"},
		}
		for _, v := range s.Values(cat) {
			st.Restriction.Enumerations = append(st.Restriction.Enumerations, xsdEnumerationEmit{Value: v})
		}
		doc.Redefine.SimpleTypes = append(doc.Redefine.SimpleTypes, st)
	}
	return marshalXML(doc)
}

// orderedCategories lists s's categories with specification-known names
// first, in canonical order, then any custom ones sorted.
func orderedCategories(s *ExtensionSchema) []string {
	known := make(map[string]bool, len(categoryOrder))
	var out []string
	for _, cat := range categoryOrder {
		known[cat] = true
		if s.Values(cat) != nil {
			out = append(out, cat)
		}
	}
	var custom []string
	for _, cat := range s.Categories() {
		if !known[cat] {
			custom = append(custom, cat)
		}
	}
	sort.Strings(custom)
	return append(out, custom...)
}
