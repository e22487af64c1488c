// Package media defines the core types shared across the framecrypt
// partitioning pipeline: the closed set of supported codecs and the byte
// range representation used to describe unencrypted regions of a
// processed frame.
package media

// Codec identifies the codec a media frame was encoded with. The set is
// closed: a processing session is bound to exactly one codec, and the
// codec selects the partitioning policy applied to every frame.
type Codec uint8

const (
	CodecUnknown Codec = iota
	CodecOpus
	CodecVP8
	CodecVP9
	CodecH264
	CodecH265
	CodecAV1
)

// String returns the lowercase codec name.
func (c Codec) String() string {
	switch c {
	case CodecOpus:
		return "opus"
	case CodecVP8:
		return "vp8"
	case CodecVP9:
		return "vp9"
	case CodecH264:
		return "h264"
	case CodecH265:
		return "h265"
	case CodecAV1:
		return "av1"
	default:
		return "unknown"
	}
}

// ParseCodec maps a lowercase codec name to its Codec value. The second
// return value is false if the name is not one of the supported codecs.
func ParseCodec(name string) (Codec, bool) {
	switch name {
	case "opus":
		return CodecOpus, true
	case "vp8":
		return CodecVP8, true
	case "vp9":
		return CodecVP9, true
	case "h264":
		return CodecH264, true
	case "h265":
		return CodecH265, true
	case "av1":
		return CodecAV1, true
	default:
		return CodecUnknown, false
	}
}

// ByteRange describes a contiguous span of bytes within a processed frame.
// Offsets are relative to the output frame layout, which can differ from
// the input layout when the partitioner normalizes start codes or
// rewrites size fields.
type ByteRange struct {
	Offset int
	Size   int
}
