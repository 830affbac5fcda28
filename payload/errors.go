package payload

import "fmt"

// ErrorCode names the one hard failure mode this codec exposes. Every other
// outcome that a less careful design might treat as an error — a malformed
// byte string, an out-of-bounds index, a VID/commitment mismatch — instead
// saturates or returns ok=false (spec §7).
type ErrorCode string

// ErrBlockBuilding is returned when max_block_size, as configured, cannot
// be represented as a native (Go int) size. It is the sole builder error.
const ErrBlockBuilding ErrorCode = "BLOCK_BUILDING"

// BuildError is the error type returned by BuildPayload.
type BuildError struct {
	Code ErrorCode
	Msg  string
}

func (e *BuildError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func buildErr(code ErrorCode, msg string) error {
	return &BuildError{Code: code, Msg: msg}
}
