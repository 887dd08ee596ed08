// Package safeconv provides integer conversions that panic on overflow
// instead of silently wrapping.
package safeconv

import "math"

// MaxInt is the maximum value representable by int on this platform.
const MaxInt = int(^uint(0) >> 1)

// MaxUint32 is the maximum value representable by uint32.
const MaxUint32 = uint32(math.MaxUint32)

// MustIntToUint32 converts v to uint32, panicking if v is negative or
// exceeds MaxUint32.
func MustIntToUint32(v int) uint32 {
	if v < 0 || v > int(MaxUint32) {
		panic("safeconv: int to uint32 out of bounds")
	}

	return uint32(v)
}
