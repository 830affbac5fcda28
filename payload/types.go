// Package payload implements the namespace-multiplexed block payload codec:
// binary layout, construction, parsing and inclusion proofs for a block that
// interleaves transactions from independent namespaces into one
// consensus-ordered byte string.
package payload

// OffsetWidth is W, the fixed byte width used for every count and offset in
// the wire format. The reference protocol fixes W = 4 (a little-endian
// u32); this is the single constant an implementation must expose per the
// wire layout.
const OffsetWidth = 4

// nsTableEntryWidth is the encoded width of one NsTable entry: an 8-byte
// namespace id followed by one W-byte cumulative end offset.
const nsTableEntryWidth = 8 + OffsetWidth

// NamespaceId identifies a logical subchain multiplexed into a block.
// Namespace ids are opaque 8-byte values compared only for equality.
type NamespaceId [8]byte

// Transaction is a namespace-tagged, opaque payload.
type Transaction struct {
	Namespace NamespaceId
	Payload   []byte
}

// NsIndex addresses one entry in an NsTable.
type NsIndex uint32

// TxIndex addresses one transaction within a namespace's tx table.
type TxIndex uint32

// Index is a transaction's address within a block: which namespace, then
// which transaction within that namespace.
type Index struct {
	Ns NsIndex
	Tx TxIndex
}
