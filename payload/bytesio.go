package payload

import (
	"encoding/binary"
	"io"
)

// readLE32 reads a little-endian u32 at byte offset at in b. Unlike the
// cursor reads in a typical wire codec, this is a total function: an
// out-of-range or negative offset yields zero rather than an error. The
// codec's correctness is asserted externally by commitments, not by
// rejecting malformed input (spec §4.1).
func readLE32(b []byte, at int) uint32 {
	if at < 0 || at > len(b)-4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b[at : at+4])
}

func appendLE32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func writeLE64(w io.Writer, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	_, _ = w.Write(tmp[:])
}

// clampRange reduces v to lie within [lo, hi], preferring hi when the range
// is inverted (lo > hi), so callers always get lo <= result <= max(lo, hi).
func clampRange(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
