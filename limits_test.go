package bcf

import "testing"

func TestLimitsWithDefaults(t *testing.T) {
	l := (Limits{}).withDefaults()
	if l.MaxEntries == 0 || l.MaxEntryBytes == 0 || l.MaxSnapshotBytes == 0 || l.MaxMarkups == 0 || l.MaxViewpointsPerMarkup == 0 {
		t.Fatal("expected defaults")
	}

	custom := Limits{MaxMarkups: 7}
	custom = custom.withDefaults()
	if custom.MaxMarkups != 7 {
		t.Fatalf("expected custom MaxMarkups, got %d", custom.MaxMarkups)
	}
	if custom.MaxEntries != defaultLimits().MaxEntries {
		t.Fatal("unset fields should take defaults")
	}
}
