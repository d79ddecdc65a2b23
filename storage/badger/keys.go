package badger

import (
	"encoding/binary"
	"time"

	"github.com/kuralverse/kuralsearch/core"
)

// Key prefixes for different data types
const (
	versePrefix        = "verrec"
	verseNumberSeq     = "verrecseq"
	chatMessagePrefix  = "chamsg"
	searchRecordPrefix = "hisrec"
)

// makeVerseKey generates a key for a verse by number.
// The number is written BigEndian so lexicographic iteration yields
// ascending verse order.
func makeVerseKey(number int) []byte {
	prefix := versePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(number))
	return buf
}

// makeSessionKey generates a composite key for per-session records.
// Format: prefix:sessionID:timestamp:id. Timestamp and id are BigEndian so
// lexicographic sort preserves insertion order within a session.
func makeSessionKey(prefix, sessionID string, timestamp time.Time, id core.ID) []byte {
	head := prefix + ":" + sessionID + ":"
	buf := make([]byte, len(head)+16)
	offset := copy(buf, head)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeSessionPrefix generates the iteration prefix for one session.
func makeSessionPrefix(prefix, sessionID string) []byte {
	return []byte(prefix + ":" + sessionID + ":")
}
