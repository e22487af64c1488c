package partition

import "fmt"

// H.264 NAL unit header fields as defined in ITU-T H.264 Table 7-1. Only
// slice (1) and IDR (5) units carry picture data that must be encrypted;
// everything else (parameter sets, SEI, AUD) stays readable so the
// packetizer and decoder can keep working on the frame.
const (
	h264NALHeaderSize = 1
	h264NALTypeMask   = 0x1F
	h264NALTypeSlice  = 1
	h264NALTypeIDR    = 5
)

// processH264 walks the frame NAL unit by NAL unit. Every source start
// code is rewritten as a 4-byte code, matching the normalization the
// receiving depacketizer applies. For slice and IDR units only the header
// byte plus the exp-Golomb prefix through the picture parameter set id
// stays in the clear; the rest of the unit is encrypted. All other unit
// types are left unencrypted in full.
func processH264(p Processor, frame []byte) error {
	if len(frame) < shortStartCodeSize+h264NALHeaderSize {
		return fmt.Errorf("%w: %d bytes cannot hold an H.264 NAL unit", ErrFrameTooShort, len(frame))
	}

	start, _, ok := nextNALUnit(frame, 0)
	for ok && start < len(frame)-1 {
		nalType := frame[start] & h264NALTypeMask

		p.AddUnencryptedBytes(longStartCode)

		nextStart, nextSCLen, nextOK := nextNALUnit(frame, start)
		unitEnd := len(frame)
		if nextOK {
			unitEnd = nextStart - nextSCLen
		}

		if nalType == h264NALTypeSlice || nalType == h264NALTypeIDR {
			ppsBytes, err := bytesCoveringH264PPS(frame[start+h264NALHeaderSize:])
			if err != nil {
				return err
			}
			clearLen := h264NALHeaderSize + ppsBytes
			if clearLen > unitEnd-start {
				clearLen = unitEnd - start
			}
			p.AddUnencryptedBytes(frame[start : start+clearLen])
			p.AddEncryptedBytes(frame[start+clearLen : unitEnd])
		} else {
			p.AddUnencryptedBytes(frame[start:unitEnd])
		}

		start, ok = nextStart, nextOK
	}

	return nil
}
