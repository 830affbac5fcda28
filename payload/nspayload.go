package payload

// NsPayload is one namespace's bytes: a tx table (a transaction count
// followed by a monotonized list of end offsets) followed by the
// concatenated transaction payloads. It is a view over a byte slice; apart
// from its decoded offsets it owns no memory, and ExportTx copies
// transaction bytes out.
//
// Every read off an NsPayload is a total, saturating function of the
// backing bytes (spec §4.1): there is no namespace payload, however
// malformed, that ParseNsPayload refuses to decode.
type NsPayload struct {
	raw       []byte
	numTx     uint32
	ends      []uint32 // monotonized end offsets, length == numTx
	headerLen int
}

// ParseNsPayload decodes the tx table framing a single namespace payload.
// The transaction count is clamped to the number of offset entries the
// remaining bytes can hold, and each end offset is clamped into
// [0, payload_remaining] and floored at the previous (already-clamped) end
// offset, so the resulting ranges are always well-formed (spec §3, §4.1).
func ParseNsPayload(buf []byte) NsPayload {
	declaredN := readLE32(buf, 0)
	maxN := 0
	if len(buf) >= OffsetWidth {
		maxN = (len(buf) - OffsetWidth) / OffsetWidth
	}
	n := declaredN
	if uint64(n) > uint64(maxN) {
		n = uint32(maxN)
	}

	headerLen := OffsetWidth + int(n)*OffsetWidth
	remaining := len(buf) - headerLen
	if remaining < 0 {
		remaining = 0
	}

	ends := make([]uint32, n)
	prev := 0
	for i := uint32(0); i < n; i++ {
		raw := int(readLE32(buf, OffsetWidth*(1+int(i))))
		e := clampRange(raw, prev, remaining)
		ends[i] = uint32(e)
		prev = e
	}

	return NsPayload{raw: buf, numTx: n, ends: ends, headerLen: headerLen}
}

// NumTxs returns the number of transactions this namespace payload declares,
// after clamping to what the available bytes can support.
func (np NsPayload) NumTxs() uint32 {
	return np.numTx
}

// TxRange returns the byte range, relative to the start of the concatenated
// tx bytes (i.e. past the tx table header), occupied by the i-th
// transaction. ok is false when i is out of bounds.
func (np NsPayload) TxRange(i uint32) (start, end int, ok bool) {
	if i >= np.numTx {
		return 0, 0, false
	}
	if i == 0 {
		start = 0
	} else {
		start = int(np.ends[i-1])
	}
	end = int(np.ends[i])
	return start, end, true
}

// ExportTx materializes the i-th transaction as an owned copy, tagged with
// nsID. It returns ok=false only when i is out of bounds.
func (np NsPayload) ExportTx(nsID NamespaceId, i uint32) (Transaction, bool) {
	start, end, ok := np.TxRange(i)
	if !ok {
		return Transaction{}, false
	}
	lo := np.headerLen + start
	hi := np.headerLen + end
	body := make([]byte, hi-lo)
	copy(body, np.raw[lo:hi])
	return Transaction{Namespace: nsID, Payload: body}, true
}

// TxIter yields the TxIndex values 0..NumTxs() in order.
type TxIter struct {
	n   uint32
	cur uint32
}

// Iter returns a forward iterator over this namespace's transaction
// indices.
func (np NsPayload) Iter() TxIter {
	return TxIter{n: np.numTx}
}

// Next returns the next TxIndex, or ok=false once exhausted.
func (it *TxIter) Next() (TxIndex, bool) {
	if it.cur >= it.n {
		return 0, false
	}
	idx := TxIndex(it.cur)
	it.cur++
	return idx, true
}

// EncodeNsPayload serializes a namespace payload from its ordered end
// offsets (one per transaction, cumulative from the start of txBytes) and
// the concatenated transaction bytes: count ‖ offsets ‖ txBytes.
func EncodeNsPayload(ends []uint32, txBytes []byte) []byte {
	buf := make([]byte, 0, OffsetWidth+len(ends)*OffsetWidth+len(txBytes))
	buf = appendLE32(buf, uint32(len(ends)))
	for _, e := range ends {
		buf = appendLE32(buf, e)
	}
	buf = append(buf, txBytes...)
	return buf
}

// nsPayloadFixedOverheadByteLen is the tx table's per-namespace fixed cost:
// the W-byte transaction count.
const nsPayloadFixedOverheadByteLen = OffsetWidth

// txOverheadByteLen is the marginal cost, in the tx table, of appending one
// more transaction to a namespace: one more W-byte end offset.
const txOverheadByteLen = OffsetWidth
