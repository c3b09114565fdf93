package bcf

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

const minimalMarkup21 = `<?xml version="1.0" encoding="UTF-8"?>
<Markup>
  <Topic Guid="g1" TopicType="Issue" TopicStatus="Open">
    <Title>T1</Title>
    <CreationDate>2024-01-01T00:00:00Z</CreationDate>
    <CreationAuthor>A</CreationAuthor>
  </Topic>
</Markup>
`

const version21Descriptor = `<?xml version="1.0" encoding="UTF-8"?>
<Version VersionId="2.1"><DetailedVersion>2.1</DetailedVersion></Version>
`

// buildArchive assembles a zip container from literal entries, in order.
func buildArchive(t *testing.T, entries [][2]string) []byte {
	t.Helper()
	c := newContainer()
	for _, e := range entries {
		if err := c.put(e[0], []byte(e[1])); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := c.flush(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode_MissingVersionDescriptorDefaultsTo21(t *testing.T) {
	b := buildArchive(t, [][2]string{
		{"g1/markup.bcf", minimalMarkup21},
	})
	p, err := DecodeBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if p.Version != Version21 {
		t.Fatalf("version: got %q", p.Version)
	}
	if len(p.Markups) != 1 || p.Markups[0].Topic.GUID != "g1" {
		t.Fatal("markup not decoded")
	}
}

func TestDecode_MissingProjectDescriptorDefaultsToEmpty(t *testing.T) {
	b := buildArchive(t, [][2]string{
		{"bcf.version", version21Descriptor},
		{"g1/markup.bcf", minimalMarkup21},
	})
	p, err := DecodeBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if p.ProjectID != "" || p.Name != "" {
		t.Fatalf("expected empty project fields, got %q/%q", p.ProjectID, p.Name)
	}
}

func TestDecode_UnrecognizedEntriesIgnored(t *testing.T) {
	b := buildArchive(t, [][2]string{
		{"bcf.version", version21Descriptor},
		{"readme.txt", "not part of the format"},
		{"g1/markup.bcf", minimalMarkup21},
		{"g1/notes.json", "{}"},
	})
	p, err := DecodeBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Markups) != 1 {
		t.Fatalf("markups: got %d", len(p.Markups))
	}
}

func TestDecode_UnknownDeclaredVersion(t *testing.T) {
	b := buildArchive(t, [][2]string{
		{"bcf.version", `<Version VersionId="9.9"/>`},
	})
	_, err := DecodeBytes(b)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecode_VersionOverride(t *testing.T) {
	b := buildArchive(t, [][2]string{
		{"bcf.version", `<Version VersionId="9.9"/>`},
		{"g1/markup.bcf", minimalMarkup21},
	})
	p, err := DecodeBytes(b, WithVersionOverride(Version21))
	if err != nil {
		t.Fatal(err)
	}
	if p.Version != Version21 {
		t.Fatalf("version: got %q", p.Version)
	}
}

func TestDecode_MalformedProjectDescriptor(t *testing.T) {
	entries := [][2]string{
		{"bcf.version", version21Descriptor},
		{"project.bcfp", "<ProjectExtension><unclosed"},
		{"g1/markup.bcf", minimalMarkup21},
	}
	b := buildArchive(t, entries)

	_, err := DecodeBytes(b)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}

	p, err := DecodeBytes(b, WithLenientRead(true))
	if err != nil {
		t.Fatalf("lenient decode: %v", err)
	}
	if p.ProjectID != "" || len(p.Markups) != 1 {
		t.Fatal("lenient decode should keep defaults and markups")
	}
}

func TestDecode_DuplicateEntryRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i < 2; i++ {
		f, err := zw.Create("g1/markup.bcf")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(minimalMarkup21)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	_, err := DecodeBytes(buf.Bytes())
	if !errors.Is(err, ErrArchive) {
		t.Fatalf("expected ErrArchive, got %v", err)
	}
}

func TestDecode_EntryCountLimit(t *testing.T) {
	b := buildArchive(t, [][2]string{
		{"bcf.version", version21Descriptor},
		{"g1/markup.bcf", minimalMarkup21},
	})
	_, err := DecodeBytes(b, WithReadLimits(Limits{MaxEntries: 1}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestDecode_EntrySizeLimit(t *testing.T) {
	b := buildArchive(t, [][2]string{
		{"g1/markup.bcf", minimalMarkup21},
	})
	_, err := DecodeBytes(b, WithReadLimits(Limits{MaxEntryBytes: 16}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestDecode_StrictGUIDs(t *testing.T) {
	b := buildArchive(t, [][2]string{
		{"g1/markup.bcf", minimalMarkup21},
	})
	if _, err := DecodeBytes(b); err != nil {
		t.Fatalf("default decode: %v", err)
	}
	_, err := DecodeBytes(b, WithStrictGUIDs(true))
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestDecode_NotAZip(t *testing.T) {
	_, err := DecodeBytes([]byte("definitely not a zip archive"))
	if !errors.Is(err, ErrArchive) {
		t.Fatalf("expected ErrArchive, got %v", err)
	}
}
