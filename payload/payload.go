package payload

import "rubin.dev/seqpayload/config"

// Payload is the whole block: the concatenated namespace-payload bytes
// handed to VID dispersal, plus the NsTable that indexes them. NsTable is
// carried alongside the byte blob as metadata, not embedded in it — the
// VID commitment covers ns_payloads only (spec §3, §6).
//
// A Payload is immutable after construction. Transaction and Iter hand out
// owned copies of transaction bytes; an Iter keeps a pointer to the
// Payload it walks.
type Payload struct {
	nsPayloads []byte
	nsTable    NsTable
}

// FromBytes reconstructs a Payload after transport. It performs no
// validation: any byte string paired with any NsTable is accepted, per the
// saturating-parser design (spec §4.4, §9).
func FromBytes(b []byte, nsTable NsTable) Payload {
	raw := make([]byte, len(b))
	copy(raw, b)
	return Payload{nsPayloads: raw, nsTable: nsTable}
}

// Empty returns the deterministic empty block: zero namespaces, zero
// bytes.
func Empty() (Payload, NsTable) {
	p, nsTable, err := BuildPayload(nil, config.DefaultInstanceConfig())
	if err != nil {
		// DefaultInstanceConfig's MaxBlockSize always fits a native int, so
		// building an empty payload can never fail.
		panic(err)
	}
	return p, nsTable
}

// ByteLen returns len(ns_payloads), not counting the NsTable.
func (p Payload) ByteLen() int {
	return len(p.nsPayloads)
}

// Bytes returns a copy of the payload's ns_payloads bytes, the same bytes
// a VID scheme disperses and commits to.
func (p Payload) Bytes() []byte {
	return append([]byte(nil), p.nsPayloads...)
}

// NsTable returns the table this Payload was constructed or parsed with.
func (p Payload) NsTable() NsTable {
	return p.nsTable
}

// nsPayloadAt decodes the namespace at NsTable index i, returning its id
// and its tx-table view. ok is false when i is out of bounds.
func (p Payload) nsPayloadAt(i int) (NamespaceId, NsPayload, bool) {
	nsID, ok := p.nsTable.NsID(i)
	if !ok {
		return NamespaceId{}, NsPayload{}, false
	}
	start, end := p.nsTable.NsRange(i, p.ByteLen())
	return nsID, ParseNsPayload(p.nsPayloads[start:end]), true
}

// Transaction looks up a single transaction by its (namespace, tx) index,
// resolving it against the NsTable the Payload itself carries.
func (p Payload) Transaction(idx Index) (Transaction, bool) {
	nsID, ns, ok := p.nsPayloadAt(int(idx.Ns))
	if !ok {
		return Transaction{}, false
	}
	return ns.ExportTx(nsID, uint32(idx.Tx))
}

// Iter is a forward-only iterator over every (Index, Transaction) pair in
// the payload, in (ns_index, tx_index) lexicographic order.
type Iter struct {
	p       *Payload
	nsCount int
	ns      int
	cur     NsPayload
	curID   NamespaceId
	curIter TxIter
	started bool
}

// NewIter constructs an Iter over p.
func NewIter(p *Payload) *Iter {
	return &Iter{p: p, nsCount: p.nsTable.NumNamespaces()}
}

func (it *Iter) advanceNamespace() bool {
	for it.ns < it.nsCount {
		id, ns, ok := it.p.nsPayloadAt(it.ns)
		it.ns++
		if !ok {
			continue
		}
		it.cur = ns
		it.curID = id
		it.curIter = ns.Iter()
		return true
	}
	return false
}

// Next returns the next (Index, Transaction) pair, or ok=false once the
// payload is exhausted. Next always terminates: every namespace's tx
// count is finite and clamped, so iteration over even adversarial input
// produces a finite sequence (spec §3 saturating invariant, §8 property 2).
func (it *Iter) Next() (Index, Transaction, bool) {
	if !it.started {
		it.started = true
		if !it.advanceNamespace() {
			return Index{}, Transaction{}, false
		}
	}
	for {
		nsIdx := it.ns - 1
		txIdx, ok := it.curIter.Next()
		if ok {
			tx, _ := it.cur.ExportTx(it.curID, uint32(txIdx))
			return Index{Ns: NsIndex(nsIdx), Tx: txIdx}, tx, true
		}
		if !it.advanceNamespace() {
			return Index{}, Transaction{}, false
		}
	}
}

// Iter returns a fresh iterator over p. metadata is accepted for API
// symmetry (spec §6) but unused: p already carries its own table.
func (p *Payload) Iter(metadata NsTable) *Iter {
	return NewIter(p)
}

// IndexedTransaction pairs a transaction with its address within the
// payload, as produced by Enumerate.
type IndexedTransaction struct {
	Index       Index
	Transaction Transaction
}

// Enumerate materializes every (Index, Transaction) pair in the payload.
func (p *Payload) Enumerate(metadata NsTable) []IndexedTransaction {
	var out []IndexedTransaction
	it := p.Iter(metadata)
	for {
		idx, tx, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, IndexedTransaction{idx, tx})
	}
	return out
}

// Transactions returns just the transactions, in enumeration order,
// matching the "BlockPayload::transactions" external interface (spec §6).
func (p *Payload) Transactions(metadata NsTable) []Transaction {
	pairs := p.Enumerate(metadata)
	out := make([]Transaction, len(pairs))
	for i, pr := range pairs {
		out[i] = pr.Transaction
	}
	return out
}

// Len counts the transactions in the payload by consuming an iterator, the
// same approach the teacher's upstream trait uses rather than caching a
// count at construction time.
func (p *Payload) Len(metadata NsTable) int {
	n := 0
	it := p.Iter(metadata)
	for {
		_, _, ok := it.Next()
		if !ok {
			break
		}
		n++
	}
	return n
}
