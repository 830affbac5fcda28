// Package config holds the instance-level configuration consumed by the
// block payload builder: the per-block byte budget and whatever else a
// running node threads through to it. Grounded on the teacher's
// node.Config / DefaultConfig / ValidateConfig trio (clients/go/node/config.go).
package config

import "fmt"

// ChainConfig is the subset of chain configuration the payload builder
// consumes.
type ChainConfig struct {
	MaxBlockSize uint64 `json:"max_block_size"`
}

// InstanceConfig is the instance-state argument threaded into
// BuildPayload, mirroring the "instance_state.chain_config.max_block_size"
// external interface named in spec §6.
type InstanceConfig struct {
	ChainConfig ChainConfig `json:"chain_config"`
}

// DefaultInstanceConfig returns a permissive default suitable for tests and
// the genesis/empty block path.
func DefaultInstanceConfig() InstanceConfig {
	return InstanceConfig{ChainConfig: ChainConfig{MaxBlockSize: 1_000_000}}
}

// Validate reports whether cfg is usable. A zero max block size is
// rejected here rather than left to surface as a confusing empty block
// downstream.
func Validate(cfg InstanceConfig) error {
	if cfg.ChainConfig.MaxBlockSize == 0 {
		return fmt.Errorf("chain_config.max_block_size is required")
	}
	return nil
}
