package vid

import "errors"

var (
	errRangeOutOfBounds   = errors.New("vid: range out of bounds")
	errRangeMismatch      = errors.New("vid: opening range does not match requested range")
	errDataLengthMismatch = errors.New("vid: data length does not match requested range")
	errCommitMismatch     = errors.New("vid: recomputed root does not match commitment")
	errLeafMismatch       = errors.New("vid: recomputed leaf does not match opening")
)
