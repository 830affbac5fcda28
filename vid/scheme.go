// Package vid names the Verifiable Information Dispersal collaborator this
// codec treats as external (spec §1, §6): an opaque commitment scheme that
// binds a byte string to a short commitment and supports byte-range
// openings. The scheme's own math — erasure coding, polynomial
// commitments — is out of scope; only its interface is defined here.
package vid

// Common is the VID scheme's declaration of how long the committed payload
// is. It is opaque beyond that: callers use PayloadByteLen to extract it.
type Common struct {
	// Len is the committed payload's byte length as the VID scheme
	// recorded it at dispersal time.
	Len uint64
}

// Commit is the VID scheme's short commitment to a dispersed payload.
type Commit [32]byte

// Opening is a VID proof that a specific byte range of the committed
// string equals a given byte sequence.
type Opening struct {
	// Leaves is the scheme's internal commitment structure, log-sized in a
	// real VID scheme and, in this reference implementation, one entry per
	// committed byte (see Ref's doc comment).
	Leaves [][32]byte
	Start  int
	End    int
}

// Disperse is the result of dispersing a payload: its declared length, its
// commitment, and the shares a real VID scheme would hand out to storage
// nodes. Shares are not consumed by this codec; they are carried only for
// interface completeness (spec §6).
type Disperse struct {
	Common Common
	Commit Commit
	Shares [][]byte
}

// Scheme is the VID collaborator interface named in spec §6:
// disperse / get_payload_byte_len / payload_proof / payload_verify.
type Scheme interface {
	// Disperse commits to payload and returns its common component,
	// commitment, and (simulated) erasure-coded shares.
	Disperse(payload []byte) (Disperse, error)

	// PayloadByteLen extracts the committed payload length from common.
	PayloadByteLen(common Common) uint64

	// PayloadProof opens the byte range [start, end) of payload.
	PayloadProof(payload []byte, start, end int) (Opening, error)

	// PayloadVerify checks that opening proves data == payload[start:end]
	// for the payload committed to by commit.
	PayloadVerify(opening Opening, commit Commit, start, end int, data []byte) error
}
