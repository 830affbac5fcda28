package payload

import (
	"crypto/sha256"

	"rubin.dev/seqpayload/vid"
)

// proofWindow is one VID-opened byte window: the raw bytes the window
// covers, plus the opening that binds them to a VID commitment.
type proofWindow struct {
	Data    []byte
	Opening vid.Opening
}

// TxProof proves that a transaction appears at a given Index in a payload
// whose VID dispersal has a particular common component (spec §4.6).
//
// Of the four windows described in spec §4.6, two — the namespace count
// and the target namespace's range — live in the NsTable, which is carried
// as metadata outside the VID-committed ns_payloads bytes (spec §3, §4.6
// note). Per the reference choice at that Open Question, they are bound
// instead by a separate header commitment over the encoded NsTable
// (NsTableCommitment), not by a VID opening; NsTableBytes is the encoded
// table snapshot that commitment covers. The other two windows — the
// target tx table's count-and-offsets header, and the transaction's own
// payload bytes — live inside ns_payloads and are opened via VID.
type TxProof struct {
	NsTableBytes []byte
	TxTable      proofWindow
	TxPayload    proofWindow
}

// ProveTransaction generates an inclusion proof for the transaction at idx
// within p, whose NsTable is nsTable, against the VID scheme's dispersal of
// p's bytes (common, as returned by scheme.Disperse). It returns ok=false
// when the payload length common declares disagrees with p.ByteLen()
// (ProofVidMismatch) or when idx is out of bounds (IndexOutOfBounds) —
// neither is a hard error, per spec §7.
func (p Payload) ProveTransaction(idx Index, nsTable NsTable, common vid.Common, scheme vid.Scheme) (TxProof, bool) {
	if scheme.PayloadByteLen(common) != uint64(p.ByteLen()) {
		return TxProof{}, false
	}

	if _, ok := nsTable.NsID(int(idx.Ns)); !ok {
		return TxProof{}, false
	}
	nsStart, nsEnd := nsTable.NsRange(int(idx.Ns), p.ByteLen())
	nsBuf := p.nsPayloads[nsStart:nsEnd]

	ns := ParseNsPayload(nsBuf)
	if uint32(idx.Tx) >= ns.NumTxs() {
		return TxProof{}, false
	}
	start, end, _ := ns.TxRange(uint32(idx.Tx))
	headerLen := nsPayloadFixedOverheadByteLen + int(ns.NumTxs())*txOverheadByteLen

	txTableBytes := nsBuf[:headerLen]
	txTableOpening, err := scheme.PayloadProof(p.nsPayloads, nsStart, nsStart+headerLen)
	if err != nil {
		return TxProof{}, false
	}

	payloadLo, payloadHi := nsStart+headerLen+start, nsStart+headerLen+end
	payloadBytes := p.nsPayloads[payloadLo:payloadHi]
	payloadOpening, err := scheme.PayloadProof(p.nsPayloads, payloadLo, payloadHi)
	if err != nil {
		return TxProof{}, false
	}

	return TxProof{
		NsTableBytes: nsTable.Encode(),
		TxTable:      proofWindow{Data: append([]byte(nil), txTableBytes...), Opening: txTableOpening},
		TxPayload:    proofWindow{Data: append([]byte(nil), payloadBytes...), Opening: payloadOpening},
	}, true
}

// Verify checks proof against a VID commit/common pair and a trusted
// NsTable header commitment, and returns the proven transaction on
// success. Every recomputation here is driven by the proof's own opened
// bytes, not by any independently-trusted Payload — the only trust inputs
// are headerCommitment (binding NsTableBytes) and commit/common (binding
// the VID-opened windows).
func Verify(proof TxProof, idx Index, common vid.Common, commit vid.Commit, scheme vid.Scheme, headerCommitment [32]byte) (Transaction, bool) {
	if sha256.Sum256(proof.NsTableBytes) != headerCommitment {
		return Transaction{}, false
	}
	nsTable := ParseNsTable(proof.NsTableBytes)
	nsID, ok := nsTable.NsID(int(idx.Ns))
	if !ok {
		return Transaction{}, false
	}
	totalLen := int(scheme.PayloadByteLen(common))
	nsStart, nsEnd := nsTable.NsRange(int(idx.Ns), totalLen)

	txTableEnd := nsStart + len(proof.TxTable.Data)
	if err := scheme.PayloadVerify(proof.TxTable.Opening, commit, nsStart, txTableEnd, proof.TxTable.Data); err != nil {
		return Transaction{}, false
	}

	ns := ParseNsPayload(proof.TxTable.Data)
	if uint32(idx.Tx) >= ns.NumTxs() {
		return Transaction{}, false
	}
	headerLen := nsPayloadFixedOverheadByteLen + int(ns.NumTxs())*txOverheadByteLen
	if headerLen > len(proof.TxTable.Data) {
		return Transaction{}, false
	}
	// The opened window holds only the tx table, so its offsets are clamped
	// here against the namespace's real tx-byte length, the same way
	// ParseNsPayload clamps them over the full namespace payload.
	remaining := nsEnd - nsStart - headerLen
	if remaining < 0 {
		remaining = 0
	}
	start, end := 0, 0
	for i := 0; i <= int(idx.Tx); i++ {
		start = end
		end = clampRange(int(readLE32(proof.TxTable.Data, OffsetWidth*(1+i))), start, remaining)
	}

	payloadLo, payloadHi := nsStart+headerLen+start, nsStart+headerLen+end
	if payloadHi-payloadLo != len(proof.TxPayload.Data) {
		return Transaction{}, false
	}
	if err := scheme.PayloadVerify(proof.TxPayload.Opening, commit, payloadLo, payloadHi, proof.TxPayload.Data); err != nil {
		return Transaction{}, false
	}

	return Transaction{Namespace: nsID, Payload: append([]byte(nil), proof.TxPayload.Data...)}, true
}

// TransactionWithProof is the QueryablePayload capability named in spec §6:
// it produces both the transaction at idx and an inclusion proof for it,
// generated against scheme's dispersal of p.
func (p Payload) TransactionWithProof(metadata NsTable, idx Index, common vid.Common, scheme vid.Scheme) (Transaction, TxProof, bool) {
	tx, ok := p.Transaction(idx)
	if !ok {
		return Transaction{}, TxProof{}, false
	}
	proof, ok := p.ProveTransaction(idx, metadata, common, scheme)
	if !ok {
		return Transaction{}, TxProof{}, false
	}
	return tx, proof, true
}
