// Package leb128 implements the unsigned little-endian base-128 variable
// length integer encoding used by AV1 OBU size fields.
// Specification: https://aomediacodec.github.io/av1-spec/#leb128
package leb128

import "errors"

// MaxSize is the maximum number of bytes a conforming encoder may emit
// for a single value: 8 bytes, carrying 56 value bits.
const MaxSize = 8

// ErrUnreadable indicates the buffer ended mid-value, or the continuation
// bit was still set after MaxSize bytes.
var ErrUnreadable = errors.New("leb128: unreadable value")

// Decode reads one LEB128-encoded unsigned integer from the front of buf
// and returns the value and the number of bytes consumed. Non-canonical
// (zero-padded) encodings are accepted.
func Decode(buf []byte) (uint64, int, error) {
	var v uint64
	for i := 0; i < MaxSize; i++ {
		if i >= len(buf) {
			return 0, 0, ErrUnreadable
		}
		b := buf[i]
		v |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrUnreadable
}

// Encode writes v to buf in canonical (minimal-length) form and returns
// the number of bytes written. buf must have room for MaxSize bytes and v
// must be below 1<<(7*MaxSize).
func Encode(v uint64, buf []byte) int {
	n := 0
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if v == 0 {
			return n
		}
	}
}
