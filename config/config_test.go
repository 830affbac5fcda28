package config

import "testing"

func TestDefaultInstanceConfig_Valid(t *testing.T) {
	if err := Validate(DefaultInstanceConfig()); err != nil {
		t.Fatalf("DefaultInstanceConfig() should validate, got %v", err)
	}
}

func TestValidate_RejectsZeroMaxBlockSize(t *testing.T) {
	cfg := InstanceConfig{ChainConfig: ChainConfig{MaxBlockSize: 0}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected an error for max_block_size=0")
	}
}
