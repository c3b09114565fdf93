package bcf

import (
	"errors"
	"testing"
)

func TestSchemeFor(t *testing.T) {
	for _, version := range []string{Version21, Version30} {
		s, err := schemeFor(version)
		if err != nil {
			t.Fatalf("%s: %v", version, err)
		}
		if s.version() != version {
			t.Fatalf("scheme reports %q for %q", s.version(), version)
		}
	}
	_, err := schemeFor("1.0")
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestParseVersionDescriptor(t *testing.T) {
	v, err := parseVersionDescriptor([]byte(version21Descriptor))
	if err != nil {
		t.Fatal(err)
	}
	if v != Version21 {
		t.Fatalf("got %q", v)
	}

	if _, err := parseVersionDescriptor([]byte(`<Version/>`)); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch for missing VersionId, got %v", err)
	}
	if _, err := parseVersionDescriptor([]byte(`<Version`)); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestMarkupNaming(t *testing.T) {
	if got := (schemeV21{}).markupName("g1"); got != "g1/markup.bcf" {
		t.Fatalf("2.1: got %q", got)
	}
	if got := (schemeV30{}).markupName("g1"); got != "g1/markup.bcf" {
		t.Fatalf("3.0: got %q", got)
	}
	if (schemeV21{}).extensionsName() == (schemeV30{}).extensionsName() {
		t.Fatal("extension schema entry names must differ between versions")
	}
}
