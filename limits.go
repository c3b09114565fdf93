package bcf

type Limits struct {
	MaxEntries             int
	MaxEntryBytes          uint64 // uncompressed size of any XML entry
	MaxSnapshotBytes       uint64 // uncompressed size of a snapshot image
	MaxMarkups             int
	MaxViewpointsPerMarkup int
}

func defaultLimits() Limits {
	return Limits{
		MaxEntries:             50_000,
		MaxEntryBytes:          64 << 20,  // 64 MiB
		MaxSnapshotBytes:       256 << 20, // 256 MiB
		MaxMarkups:             10_000,
		MaxViewpointsPerMarkup: 1_000,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxEntries == 0 {
		l.MaxEntries = d.MaxEntries
	}
	if l.MaxEntryBytes == 0 {
		l.MaxEntryBytes = d.MaxEntryBytes
	}
	if l.MaxSnapshotBytes == 0 {
		l.MaxSnapshotBytes = d.MaxSnapshotBytes
	}
	if l.MaxMarkups == 0 {
		l.MaxMarkups = d.MaxMarkups
	}
	if l.MaxViewpointsPerMarkup == 0 {
		l.MaxViewpointsPerMarkup = d.MaxViewpointsPerMarkup
	}
	return l
}
