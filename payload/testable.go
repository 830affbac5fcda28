package payload

// Genesis returns the deterministic empty block used as a chain's genesis
// payload, matching the TestableBlock::genesis() hook named in spec §6.
func Genesis() Payload {
	p, _ := Empty()
	return p
}

// TxnCount counts the transactions in p under metadata, matching the
// TestableBlock::txn_count() hook named in spec §6.
func TxnCount(p Payload, metadata NsTable) uint64 {
	return uint64(p.Len(metadata))
}
