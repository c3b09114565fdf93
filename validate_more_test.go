package bcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEntrySegment(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"viewpoint.bcfv", true},
		{"3e2a0d6b-115e-4a51-9de5-1e0e0a1f2b3c", true},
		{"", false},
		{"   ", false},
		{"a/b", false},
		{`a\b`, false},
		{".", false},
		{"..", false},
	}
	for _, tc := range cases {
		err := validateEntrySegment(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestValidateProjectListsAllOffenders(t *testing.T) {
	p := &Project{Version: Version21}
	p.AddMarkup(&Markup{Topic: Topic{GUID: "", Title: "a"}})
	p.AddMarkup(&Markup{Topic: Topic{GUID: "g1", Title: "b"}})
	p.AddMarkup(&Markup{Topic: Topic{GUID: "g1", Title: "c"}})

	err := validateProject(p, writeConfig{limits: defaultLimits()})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "markup 0")
	assert.Contains(t, err.Error(), "markup 2")
	assert.NotContains(t, err.Error(), "markup 1:")
}

func TestValidateSnapshotFileName(t *testing.T) {
	p := &Project{Version: Version21}
	m := &Markup{Topic: Topic{GUID: "g1", Title: "t"}}
	m.Viewpoints = append(m.Viewpoints, &Viewpoint{
		File:         "viewpoint.bcfv",
		SnapshotFile: "../../escape.png",
	})
	p.AddMarkup(m)
	err := validateProject(p, writeConfig{limits: defaultLimits()})
	require.ErrorIs(t, err, ErrValidation)
}

func TestValidateViewpointCountLimit(t *testing.T) {
	p := &Project{Version: Version21}
	m := &Markup{Topic: Topic{GUID: "g1", Title: "t"}}
	m.Viewpoints = append(m.Viewpoints,
		&Viewpoint{File: "a.bcfv"},
		&Viewpoint{File: "b.bcfv"},
	)
	p.AddMarkup(m)
	limits := defaultLimits()
	limits.MaxViewpointsPerMarkup = 1
	err := validateProject(p, writeConfig{limits: limits})
	require.ErrorIs(t, err, ErrValidation)
}

func TestNewTopicGUIDIsValid(t *testing.T) {
	g := NewTopicGUID()
	require.NotEmpty(t, g)
	assert.NoError(t, validateEntrySegment(g))
	assert.NotEqual(t, g, NewTopicGUID())
}
