package payload

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"rubin.dev/seqpayload/config"
	"rubin.dev/seqpayload/vid"
)

func ns(b byte) NamespaceId {
	var id NamespaceId
	id[7] = b
	return id
}

func cfgMax(n uint64) config.InstanceConfig {
	return config.InstanceConfig{ChainConfig: config.ChainConfig{MaxBlockSize: n}}
}

// S1: empty input produces the canonical empty table and payload.
func TestScenario_S1_Empty(t *testing.T) {
	p, nsTable, err := BuildPayload(nil, cfgMax(1_000_000))
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if nsTable.NumNamespaces() != 0 {
		t.Fatalf("expected m=0, got %d", nsTable.NumNamespaces())
	}
	wantTable := []byte{0, 0, 0, 0}
	if !bytes.Equal(nsTable.Encode(), wantTable) {
		t.Fatalf("ns_table = % x, want % x", nsTable.Encode(), wantTable)
	}
	if p.ByteLen() != 0 {
		t.Fatalf("ns_payloads len = %d, want 0", p.ByteLen())
	}

	h := sha256.New()
	writeLE64(h, 0)
	writeLE64(h, 4)
	writeLE64(h, 4)
	h.Write(wantTable)
	h.Write(wantTable)
	want := h.Sum(nil)
	got := p.BuilderCommitment(nsTable)
	if !bytes.Equal(got[:], want) {
		t.Fatalf("builder_commitment = %x, want %x", got, want)
	}
}

// S2: a single transaction round-trips through its namespace's tx table.
func TestScenario_S2_SingleTx(t *testing.T) {
	txs := []Transaction{{Namespace: ns(7), Payload: []byte("hello")}}
	p, nsTable, err := BuildPayload(txs, cfgMax(1_000_000))
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if nsTable.NumNamespaces() != 1 {
		t.Fatalf("expected 1 namespace entry, got %d", nsTable.NumNamespaces())
	}
	id, _ := nsTable.NsID(0)
	if id != ns(7) {
		t.Fatalf("namespace id = %x, want 07", id)
	}
	_, end := nsTable.NsRange(0, p.ByteLen())
	if end != 13 {
		t.Fatalf("ns end offset = %d, want 13", end)
	}
	got := p.Transactions(nsTable)
	if len(got) != 1 || !bytes.Equal(got[0].Payload, []byte("hello")) || got[0].Namespace != ns(7) {
		t.Fatalf("Transactions() = %+v", got)
	}
}

// S3: namespaces are ordered by first appearance; per-namespace tx order
// is preserved even when input interleaves namespaces.
func TestScenario_S3_InterleavedNamespaces(t *testing.T) {
	txs := []Transaction{
		{Namespace: ns(9), Payload: []byte("a")},
		{Namespace: ns(3), Payload: []byte("bb")},
		{Namespace: ns(9), Payload: []byte("ccc")},
	}
	p, nsTable, err := BuildPayload(txs, cfgMax(1_000_000))
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if nsTable.NumNamespaces() != 2 {
		t.Fatalf("expected 2 namespaces, got %d", nsTable.NumNamespaces())
	}
	id0, _ := nsTable.NsID(0)
	id1, _ := nsTable.NsID(1)
	if id0 != ns(9) || id1 != ns(3) {
		t.Fatalf("namespace order = %x, %x; want 09, 03", id0, id1)
	}

	start0, end0 := p.nsTable.NsRange(0, p.ByteLen())
	ns0 := ParseNsPayload(p.nsPayloads[start0:end0])
	tx0, _ := ns0.ExportTx(id0, 0)
	tx1, _ := ns0.ExportTx(id0, 1)
	if string(tx0.Payload) != "a" || string(tx1.Payload) != "ccc" {
		t.Fatalf("ns 9 txs = %q, %q", tx0.Payload, tx1.Payload)
	}

	start1, end1 := p.nsTable.NsRange(1, p.ByteLen())
	ns1 := ParseNsPayload(p.nsPayloads[start1:end1])
	tx2, _ := ns1.ExportTx(id1, 0)
	if string(tx2.Payload) != "bb" {
		t.Fatalf("ns 3 tx = %q", tx2.Payload)
	}
}

// S4: the first transaction that would overflow the budget truncates the
// build; everything before it survives, nothing after it appears, and no
// error is returned.
func TestScenario_S4_OverflowTruncation(t *testing.T) {
	first := bytes.Repeat([]byte("x"), 100)
	second := bytes.Repeat([]byte("y"), 100)
	txs := []Transaction{
		{Namespace: ns(1), Payload: first},
		{Namespace: ns(1), Payload: second},
	}
	// fixed cost: 4 (ns table count) + 12 (one ns entry) + 4 (tx table count)
	// + 4 (one offset) + 100 (first payload) fits; the second tx's extra
	// offset+bytes must not.
	budget := uint64(4 + 12 + 4 + 4 + 100)
	logged := false
	p, nsTable, err := BuildPayload(txs, cfgMax(budget), WithLogger(func(string, ...any) { logged = true }))
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	if !logged {
		t.Fatalf("expected truncation to be logged")
	}
	got := p.Transactions(nsTable)
	if len(got) != 1 || !bytes.Equal(got[0].Payload, first) {
		t.Fatalf("Transactions() = %+v, want only the first tx", got)
	}
}

// S5: a malformed NsTable claiming a namespace far longer than the actual
// bytes clamps to the 4 bytes present, whose declared tx count clamps to
// zero, so iteration yields nothing rather than panicking or erroring.
func TestScenario_S5_MalformedParse(t *testing.T) {
	raw := []byte{0xff, 0xff, 0xff, 0xff}
	var tb NsTableBuilder
	tb.Append(ns(0), 10_000)
	nsTable := tb.Build()

	p := FromBytes(raw, nsTable)
	got := p.Transactions(nsTable)
	if len(got) != 0 {
		t.Fatalf("expected zero transactions, got %d", len(got))
	}
}

// S6: a proof generated against a correctly built payload verifies; a
// flipped byte in the tx-table window's opening causes rejection.
func TestScenario_S6_ProofRoundTrip(t *testing.T) {
	txs := []Transaction{
		{Namespace: ns(9), Payload: []byte("a")},
		{Namespace: ns(3), Payload: []byte("bb")},
		{Namespace: ns(9), Payload: []byte("ccc")},
	}
	p, nsTable, err := BuildPayload(txs, cfgMax(1_000_000))
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	scheme := vid.Ref{}
	disperse, err := scheme.Disperse(p.Bytes())
	if err != nil {
		t.Fatalf("Disperse: %v", err)
	}
	headerCommitment := NsTableCommitment(nsTable)

	idx := Index{Ns: 0, Tx: 1}
	tx, proof, ok := p.TransactionWithProof(nsTable, idx, disperse.Common, scheme)
	if !ok {
		t.Fatalf("TransactionWithProof: ok=false")
	}
	if string(tx.Payload) != "ccc" {
		t.Fatalf("proven tx payload = %q, want ccc", tx.Payload)
	}

	got, ok := Verify(proof, idx, disperse.Common, disperse.Commit, scheme, headerCommitment)
	if !ok || string(got.Payload) != "ccc" {
		t.Fatalf("Verify() accept = %v, got %+v", ok, got)
	}

	tampered := proof
	tampered.TxTable.Opening.Leaves = append([][32]byte(nil), proof.TxTable.Opening.Leaves...)
	tampered.TxTable.Opening.Leaves[0][0] ^= 0xff
	if _, ok := Verify(tampered, idx, disperse.Common, disperse.Commit, scheme, headerCommitment); ok {
		t.Fatalf("Verify() accepted a tampered proof")
	}
}
