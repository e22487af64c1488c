package partition

import (
	"fmt"

	"github.com/zsiec/framecrypt/internal/leb128"
)

// AV1 OBU header layout per AV1 spec section 5.3.2:
// forbidden(1) | type(4) | extension_flag(1) | has_size_field(1) | reserved(1)
const (
	obuHeaderExtensionBit = 0x04
	obuHeaderHasSizeBit   = 0x02
	obuHeaderTypeMask     = 0x78

	obuTypeTemporalDelimiter = 2
	obuTypeTileList          = 8
	obuTypePadding           = 15
)

// processAV1 walks the frame OBU by OBU. Temporal delimiter, tile list,
// and padding OBUs are dropped outright since the packetizer discards
// them anyway. For retained OBUs the header (and extension byte) stays in
// the clear and the payload is encrypted.
//
// Size fields get sanitized on the way through: a size field on the final
// OBU is removed by clearing the has-size bit (the size becomes implicit,
// which lets protocol data be appended to the frame), and any other size
// field is re-encoded canonically. Some encoders pad LEB128 sizes with a
// trailing zero byte that the packetizer strips; transmitting the padded
// form would shift every recorded offset on the receiving side.
func processAV1(p Processor, frame []byte) error {
	i := 0
	for i < len(frame) {
		headerIdx := i
		header := frame[headerIdx]
		i++

		hasExtension := header&obuHeaderExtensionBit != 0
		hasSize := header&obuHeaderHasSizeBit != 0
		obuType := (header & obuHeaderTypeMask) >> 3

		if hasExtension {
			// The extension byte is part of the header; it passes
			// through unread.
			i++
		}
		if i >= len(frame) {
			return fmt.Errorf("%w: OBU header at %d overflows frame", ErrMalformedFrame, headerIdx)
		}

		var payloadSize int
		if hasSize {
			size, n, err := leb128.Decode(frame[i:])
			if err != nil {
				return fmt.Errorf("%w: OBU size at %d: %v", ErrMalformedFrame, i, err)
			}
			payloadSize = int(size)
			i += n
		} else {
			// Without a size field the OBU extends to the frame end.
			payloadSize = len(frame) - i
		}

		payloadIdx := i
		if payloadSize < 0 || payloadSize > len(frame)-i {
			return fmt.Errorf("%w: OBU payload of %d bytes at %d overflows frame",
				ErrMalformedFrame, payloadSize, payloadIdx)
		}
		i += payloadSize

		if obuType == obuTypeTemporalDelimiter || obuType == obuTypeTileList ||
			obuType == obuTypePadding {
			continue
		}

		rewrittenWithoutSize := false
		if i == len(frame) && hasSize {
			header &^= obuHeaderHasSizeBit
			rewrittenWithoutSize = true
		}

		p.AddUnencryptedBytes([]byte{header})
		if hasExtension {
			p.AddUnencryptedBytes(frame[headerIdx+1 : headerIdx+2])
		}
		if hasSize && !rewrittenWithoutSize {
			var buf [leb128.MaxSize]byte
			n := leb128.Encode(uint64(payloadSize), buf[:])
			p.AddUnencryptedBytes(buf[:n])
		}
		p.AddEncryptedBytes(frame[payloadIdx : payloadIdx+payloadSize])
	}

	return nil
}
