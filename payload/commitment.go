package payload

import "crypto/sha256"

// BuilderCommitment binds this payload's bytes and its NsTable metadata
// into one 32-byte digest, carried in the consensus header.
//
// The exact construction — including hashing the NsTable bytes twice, once
// as ns_table and once as metadata — is preserved verbatim for wire
// compatibility (spec §4.7, §9: "do not clean up"). metadata is usually
// p.NsTable() itself; it is accepted as a separate argument because the
// upstream interface this mirrors passes metadata independently of the
// payload, and the two are expected, but not required by this function, to
// agree.
func (p Payload) BuilderCommitment(metadata NsTable) [32]byte {
	nsTableBytes := p.nsTable.Encode()
	metadataBytes := metadata.Encode()

	h := sha256.New()
	writeLE64(h, uint64(len(p.nsPayloads)))
	writeLE64(h, uint64(len(nsTableBytes)))
	writeLE64(h, uint64(len(metadataBytes))) // double-hashed for compatibility; see spec §4.7.
	h.Write(p.nsPayloads)
	h.Write(nsTableBytes)
	h.Write(metadataBytes)

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// NsTableCommitment is the stand-in, in this subsystem, for "a separate
// header commitment [that] covers the NsTable" (spec §4.6 note, §9 Open
// Question). Verify checks a TxProof's NsTable snapshot against a value of
// this shape rather than against a full consensus header, since consensus
// itself is out of scope here (spec §1).
func NsTableCommitment(nsTable NsTable) [32]byte {
	return sha256.Sum256(nsTable.Encode())
}
