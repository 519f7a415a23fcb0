package badger

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Key prefixes for different data types
const (
	actorPrefix     = "actrec"
	actorNamePrefix = "actname"
	actorRevKey     = "actrev"
	profilePrefix   = "profrec"
	matchPrefix     = "matrec"
	scanPrefix      = "scnrec"
	ingestLogPrefix = "ingrec"
)

// makeActorKey generates a key for an actor by id.
func makeActorKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", actorPrefix, id))
}

// makeActorNameKey generates a key for the case-insensitive name index.
func makeActorNameKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", actorNamePrefix, strings.ToLower(strings.TrimSpace(name))))
}

// makeProfileKey generates a key for a weight profile by id.
func makeProfileKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", profilePrefix, id))
}

// makeMatchKey generates a key for a match by its canonical pair id.
func makeMatchKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", matchPrefix, id))
}

// makeScanKey generates a composite key for a scan event.
// Format: prefix:timestamp:from:to, timestamp in BigEndian so lexicographic
// order matches time order.
func makeScanKey(timestamp time.Time, from, to string) []byte {
	prefix := scanPrefix + ":"
	buf := make([]byte, 0, len(prefix)+8+1+len(from)+1+len(to))
	buf = append(buf, prefix...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(timestamp.UnixMicro()))
	buf = append(buf, ':')
	buf = append(buf, from...)
	buf = append(buf, ':')
	buf = append(buf, to...)
	return buf
}

// makeIngestLogKey generates a key for an ingest log by job id.
func makeIngestLogKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", ingestLogPrefix, id))
}
