package bcf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func validateProject(p *Project, cfg writeConfig) error {
	if len(p.Markups) > cfg.limits.MaxMarkups {
		return fmt.Errorf("%w: %d markups", ErrLimitExceeded, len(p.Markups))
	}
	var offending []string
	seen := make(map[string]bool, len(p.Markups))
	for i, m := range p.Markups {
		guid := m.Topic.GUID
		switch {
		case guid == "":
			offending = append(offending, fmt.Sprintf("markup %d: empty Topic.GUID", i))
		case seen[guid]:
			offending = append(offending, fmt.Sprintf("markup %d: duplicate Topic.GUID %q", i, guid))
		default:
			seen[guid] = true
			if err := validateEntrySegment(guid); err != nil {
				offending = append(offending, fmt.Sprintf("markup %d: Topic.GUID %q: %v", i, guid, err))
			} else if cfg.strictGUIDs {
				if _, err := uuid.Parse(guid); err != nil {
					offending = append(offending, fmt.Sprintf("markup %d: Topic.GUID %q is not a UUID", i, guid))
				}
			}
		}
		if err := validateViewpoints(m, i, cfg.limits); err != nil {
			offending = append(offending, err.Error())
		}
	}
	if len(offending) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(offending, "; "))
	}
	return nil
}

func validateViewpoints(m *Markup, idx int, limits Limits) error {
	if len(m.Viewpoints) > limits.MaxViewpointsPerMarkup {
		return fmt.Errorf("markup %d: %d viewpoints", idx, len(m.Viewpoints))
	}
	seenFiles := make(map[string]bool, len(m.Viewpoints))
	for _, v := range m.Viewpoints {
		if err := validateEntrySegment(v.File); err != nil {
			return fmt.Errorf("markup %d: viewpoint file %q: %v", idx, v.File, err)
		}
		if seenFiles[v.File] {
			return fmt.Errorf("markup %d: duplicate viewpoint file %q", idx, v.File)
		}
		seenFiles[v.File] = true
		if v.SnapshotFile != "" {
			if err := validateEntrySegment(v.SnapshotFile); err != nil {
				return fmt.Errorf("markup %d: snapshot file %q: %v", idx, v.SnapshotFile, err)
			}
		}
	}
	return nil
}

// validateEntrySegment checks a single path segment used to build
// container entry names. Segments must not escape the topic directory.
func validateEntrySegment(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("is empty")
	}
	if strings.ContainsAny(s, "/\\") {
		return fmt.Errorf("contains a path separator")
	}
	if s == "." || s == ".." {
		return fmt.Errorf("is a relative path element")
	}
	return nil
}
