package vid

import "golang.org/x/crypto/sha3"

// Ref is a reference VID scheme for tests and the CLI demo. It is NOT a
// real erasure-coded dispersal scheme: it commits to a payload with a
// plain per-byte Merkle tree (one leaf per byte, odd nodes promoted
// unchanged, the same construction as a tagged-hash block Merkle root) and
// opens a range by handing over the whole leaf set. It exists only to give
// TxProof something real to open against; like the teacher's
// DevStdCryptoProvider, it does NOT claim the real scheme's succinctness or
// erasure-coding properties.
type Ref struct{}

const (
	leafTag = 0x00
	nodeTag = 0x01
)

func taggedLeaf(b byte) [32]byte {
	return sha3_256([]byte{leafTag, b})
}

func taggedNode(l, r [32]byte) [32]byte {
	buf := make([]byte, 0, 1+32+32)
	buf = append(buf, nodeTag)
	buf = append(buf, l[:]...)
	buf = append(buf, r[:]...)
	return sha3_256(buf)
}

func sha3_256(b []byte) [32]byte {
	return sha3.Sum256(b)
}

func chunkLeaves(payload []byte) [][32]byte {
	leaves := make([][32]byte, len(payload))
	for i, b := range payload {
		leaves[i] = taggedLeaf(b)
	}
	return leaves
}

// merkleRoot folds leaves up to a single root, promoting an odd trailing
// node unchanged at each level rather than duplicating it.
func merkleRoot(leaves [][32]byte) [32]byte {
	if len(leaves) == 0 {
		return sha3_256([]byte{leafTag})
	}
	level := append([][32]byte(nil), leaves...)
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); {
			if i == len(level)-1 {
				next = append(next, level[i])
				i++
				continue
			}
			next = append(next, taggedNode(level[i], level[i+1]))
			i += 2
		}
		level = next
	}
	return level[0]
}

// Disperse commits to payload via merkleRoot over one leaf per byte.
func (Ref) Disperse(payload []byte) (Disperse, error) {
	leaves := chunkLeaves(payload)
	return Disperse{
		Common: Common{Len: uint64(len(payload))},
		Commit: Commit(merkleRoot(leaves)),
		Shares: [][]byte{append([]byte(nil), payload...)},
	}, nil
}

// PayloadByteLen extracts the declared length from common.
func (Ref) PayloadByteLen(common Common) uint64 {
	return common.Len
}

// PayloadProof opens [start, end) by recomputing the full leaf set and
// recording which slice of it the caller is allowed to check against data.
func (Ref) PayloadProof(payload []byte, start, end int) (Opening, error) {
	if start < 0 || end < start || end > len(payload) {
		return Opening{}, errRangeOutOfBounds
	}
	return Opening{Leaves: chunkLeaves(payload), Start: start, End: end}, nil
}

// PayloadVerify recomputes the Merkle root from opening.Leaves and checks
// it against commit, then recomputes the leaf hash of every byte in data
// and checks it against the corresponding entry in opening.Leaves. A
// single flipped bit, anywhere in data or in opening.Leaves, changes the
// recomputed root or a recomputed leaf hash and causes rejection.
func (Ref) PayloadVerify(opening Opening, commit Commit, start, end int, data []byte) error {
	if start != opening.Start || end != opening.End {
		return errRangeMismatch
	}
	if end-start != len(data) {
		return errDataLengthMismatch
	}
	if merkleRoot(opening.Leaves) != [32]byte(commit) {
		return errCommitMismatch
	}
	if end > len(opening.Leaves) {
		return errRangeOutOfBounds
	}
	for i := start; i < end; i++ {
		if taggedLeaf(data[i-start]) != opening.Leaves[i] {
			return errLeafMismatch
		}
	}
	return nil
}
