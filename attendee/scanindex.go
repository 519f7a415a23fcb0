package attendee

import (
	"time"

	"github.com/confero/confero/core"
)

// ScanIndex holds the most recent scan time per canonical actor pair.
// Built once from the append-only scan stream; lookups are read-only.
type ScanIndex struct {
	latest map[string]time.Time
}

// NewScanIndex builds an index over scan events, keeping the most recent
// timestamp per unordered pair.
func NewScanIndex(events []*core.ScanEvent) *ScanIndex {
	idx := &ScanIndex{latest: make(map[string]time.Time, len(events))}
	for _, event := range events {
		key := event.PairKey()
		if existing, ok := idx.latest[key]; !ok || event.Timestamp.After(existing) {
			idx.latest[key] = event.Timestamp
		}
	}
	return idx
}

// LastScan returns the most recent scan between two actors, in either
// direction.
func (idx *ScanIndex) LastScan(a, b string) (time.Time, bool) {
	if idx == nil {
		return time.Time{}, false
	}
	ts, ok := idx.latest[core.PairKey(a, b)]
	return ts, ok
}

// Len returns the number of indexed pairs.
func (idx *ScanIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.latest)
}
