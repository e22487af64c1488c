// Package partition splits encoded media frames into byte ranges that
// must stay in the clear and ranges that are safe to encrypt, so an
// end-to-end encryption layer can protect payload confidentiality without
// corrupting the codec structure packetizers, depacketizers, and decoders
// rely on.
//
// Each codec has its own policy over the frame's binary layout: H.264 and
// H.265 frames are walked NAL unit by NAL unit, AV1 frames OBU by OBU,
// and Opus/VP8/VP9 use fixed header rules. Output flows into a
// caller-supplied Processor; the emitted ranges, taken in emission order,
// are contiguous, non-overlapping, and cover the full output frame.
package partition

import (
	"errors"
	"fmt"

	"github.com/zsiec/framecrypt/media"
)

// Sentinel errors for frame partitioning. These enable callers to
// programmatically distinguish failure modes using errors.Is. All of them
// are fatal for the offending frame: the caller must drop it, never
// transmit it partially.
var (
	// ErrFrameTooShort indicates a frame smaller than the minimum start
	// code plus NAL unit header for its codec.
	ErrFrameTooShort = errors.New("partition: frame too short")

	// ErrGolombOverflow indicates an exp-Golomb zero run of 32 bits,
	// which no conforming slice header produces.
	ErrGolombOverflow = errors.New("partition: oversized exponential golomb value")

	// ErrMalformedFrame indicates an AV1 OBU whose header, extension
	// byte, size field, or declared payload extends past the frame end.
	ErrMalformedFrame = errors.New("partition: malformed frame")
)

// Processor accumulates the partitioned bytes of a single frame. It is
// bound to one codec for its lifetime and must not be shared across
// goroutines while a frame is being processed; parallel throughput comes
// from independent Processor instances on independent frames.
type Processor interface {
	// Codec returns the codec identity fixed for this instance.
	Codec() media.Codec

	// AddUnencryptedBytes appends bytes that must remain in the clear,
	// advancing the output cursor by len(b).
	AddUnencryptedBytes(b []byte)

	// AddEncryptedBytes appends bytes the encryption layer may
	// transform, advancing the output cursor by len(b).
	AddEncryptedBytes(b []byte)

	// UnencryptedRanges returns the clear ranges recorded so far, in
	// emission order. Encrypted spans are implicit: everything between
	// two clear ranges, or after the last one, up to the frame end.
	UnencryptedRanges() []media.ByteRange
}

// ProcessFrame partitions one frame according to the processor's codec.
// The frame is never mutated; all output flows through p. A frame that
// fails to parse must be dropped by the caller rather than transmitted.
func ProcessFrame(p Processor, frame []byte) error {
	switch p.Codec() {
	case media.CodecOpus:
		return processOpus(p, frame)
	case media.CodecVP8:
		return processVP8(p, frame)
	case media.CodecVP9:
		return processVP9(p, frame)
	case media.CodecH264:
		return processH264(p, frame)
	case media.CodecH265:
		return processH265(p, frame)
	case media.CodecAV1:
		return processAV1(p, frame)
	default:
		return fmt.Errorf("partition: unsupported codec %q", p.Codec())
	}
}
