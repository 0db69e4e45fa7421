// Package hash produces the stable 64-bit content hashes used as
// de-duplication keys in the database. The function is seeded and
// table-driven; its output is persisted, so changing any constant here
// is a schema migration, not a refactor.
package hash

import "unicode/utf16"

const (
	tableSeed  uint64 = 0x544B2FBACAAF1684
	hashStart  uint64 = 0xBB40E64DA205B064
	multiplier uint64 = 7664345821815920749
)

var lookupTable = buildLookupTable()

func buildLookupTable() [256]uint64 {
	var table [256]uint64
	h := tableSeed
	for i := range table {
		for j := 0; j < 31; j++ {
			h = (h >> 7) ^ h
			h = (h << 11) ^ h
			h = (h >> 10) ^ h
		}
		table[i] = h
	}
	return table
}

// Of hashes a string over its UTF-16 code units, two bytes per unit,
// low byte first. The result is returned as int64 because hash keys are
// stored in BIGINT columns; the bit pattern is what matters.
func Of(s string) int64 {
	h := hashStart
	for _, unit := range utf16.Encode([]rune(s)) {
		h = (h * multiplier) ^ lookupTable[byte(unit)]
		h = (h * multiplier) ^ lookupTable[byte(unit>>8)]
	}
	return int64(h)
}

// OfBytes hashes raw bytes, one table round per byte.
func OfBytes(data []byte) int64 {
	h := hashStart
	for _, b := range data {
		h = (h * multiplier) ^ lookupTable[b]
	}
	return int64(h)
}
