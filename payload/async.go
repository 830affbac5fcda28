package payload

import (
	"context"

	"rubin.dev/seqpayload/config"
)

// BuildPayloadAsync is the async façade spec §5 and §9 describe: the
// upstream BlockPayload trait exposes block building as a suspending
// operation, but the work itself is fully synchronous and CPU-bound. This
// wrapper exists only so a caller written against an async interface has
// something to call; it performs no I/O and holds no lock across a
// suspension point. ctx is honored only as an upfront cancellation check.
func BuildPayloadAsync(ctx context.Context, txs []Transaction, cfg config.InstanceConfig, opts ...BuilderOption) (Payload, NsTable, error) {
	select {
	case <-ctx.Done():
		return Payload{}, NsTable{}, ctx.Err()
	default:
	}
	return BuildPayload(txs, cfg, opts...)
}
