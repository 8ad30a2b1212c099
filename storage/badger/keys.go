package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/triagit/core"
)

// Key prefixes for different data types
const (
	reportPrefix     = "symrep"
	reportDatePrefix = "symrepd"
	reportIDSeq      = "symrepseq"
	keywordPrefix    = "heakwd"
)

// makeReportKey generates a key for a symptom report by ID.
func makeReportKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", reportPrefix, id))
}

// makeReportDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeReportDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := reportDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialReportDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialReportDateKey(timestamp time.Time) []byte {
	prefix := reportDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeKeywordKey generates a key for a keyword entry by its content ID.
func makeKeywordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", keywordPrefix, id))
}
