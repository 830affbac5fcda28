package payload

import (
	"log"

	"rubin.dev/seqpayload/config"
)

// maxIntAsUint64 returns the largest value the native int type can hold,
// expressed as a uint64, so a uint64 byte budget can be range-checked
// before conversion.
func maxIntAsUint64() uint64 {
	return uint64(^uint(0) >> 1)
}

// BuilderOption configures a BuildPayload invocation. Without options the
// truncation warning goes to the standard library logger (log.Printf);
// collaborators are passed explicitly rather than read from package-level
// state (spec §9 "no global state").
type BuilderOption func(*builderOptions)

type builderOptions struct {
	logf func(format string, args ...any)
}

// WithLogger overrides the function used to report a truncated build
// (spec §4.5's overflow warning). The default logs through the standard
// library logger.
func WithLogger(logf func(format string, args ...any)) BuilderOption {
	return func(o *builderOptions) { o.logf = logf }
}

type nsScratch struct {
	payload []byte
	ends    []uint32
}

// BuildPayload packs txs, in order, into a Payload subject to
// cfg.ChainConfig.MaxBlockSize. Transactions within a namespace keep their
// relative order; namespaces are written out in the insertion order of
// their first transaction. The first transaction that would push the
// running byte total over the budget stops the build — all transactions
// from that point on are dropped, and the truncation is logged, not
// surfaced as an error (spec §4.5).
//
// The only error this can return is ErrBlockBuilding, when MaxBlockSize
// does not fit in a native int.
func BuildPayload(txs []Transaction, cfg config.InstanceConfig, opts ...BuilderOption) (Payload, NsTable, error) {
	o := builderOptions{logf: log.Printf}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.ChainConfig.MaxBlockSize > maxIntAsUint64() {
		return Payload{}, NsTable{}, buildErr(ErrBlockBuilding, "max_block_size does not fit in a native size")
	}
	maxBlockByteLen := int(cfg.ChainConfig.MaxBlockSize)

	used := nsTableFixedOverheadByteLen
	var nsOrder []NamespaceId
	scratch := make(map[NamespaceId]*nsScratch)

	for _, tx := range txs {
		_, exists := scratch[tx.Namespace]
		delta := len(tx.Payload) + txOverheadByteLen
		if !exists {
			delta += nsOverheadByteLen + nsPayloadFixedOverheadByteLen
		}
		if used+delta > maxBlockByteLen {
			o.logf("transactions truncated to fit in maximum block byte length %d", maxBlockByteLen)
			break
		}

		st, ok := scratch[tx.Namespace]
		if !ok {
			st = &nsScratch{}
			scratch[tx.Namespace] = st
			nsOrder = append(nsOrder, tx.Namespace)
		}
		st.payload = append(st.payload, tx.Payload...)
		st.ends = append(st.ends, uint32(len(st.payload)))
		used += delta
	}

	var nsPayloads []byte
	var tableBuilder NsTableBuilder
	for _, id := range nsOrder {
		st := scratch[id]
		nsPayloads = append(nsPayloads, EncodeNsPayload(st.ends, st.payload)...)
		tableBuilder.Append(id, len(nsPayloads))
	}

	nsTable := tableBuilder.Build()
	return Payload{nsPayloads: nsPayloads, nsTable: nsTable}, nsTable, nil
}
