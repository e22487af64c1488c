package partition

import "fmt"

// H.265 NAL unit header fields as defined in ITU-T H.265 Table 7-1. Types
// below 32 are VCL units carrying picture data; 32 and above are
// parameter sets and metadata the packetizer must keep readable.
const (
	hevcNALHeaderSize = 2
	hevcNALVCLCutoff  = 32
)

// hevcNALType extracts the 6-bit type from the first byte of the 2-byte
// HEVC NAL header: forbidden(1) | type(6) | layerID_high(1).
func hevcNALType(firstByte byte) byte {
	return (firstByte >> 1) & 0x3F
}

// processH265 walks the frame NAL unit by NAL unit, rewriting every start
// code as a 4-byte code as in processH264. VCL units keep only their
// 2-byte header in the clear; non-VCL units stay unencrypted in full.
func processH265(p Processor, frame []byte) error {
	if len(frame) < shortStartCodeSize+hevcNALHeaderSize {
		return fmt.Errorf("%w: %d bytes cannot hold an H.265 NAL unit", ErrFrameTooShort, len(frame))
	}

	start, _, ok := nextNALUnit(frame, 0)
	for ok && start < len(frame)-1 {
		nalType := hevcNALType(frame[start])

		p.AddUnencryptedBytes(longStartCode)

		nextStart, nextSCLen, nextOK := nextNALUnit(frame, start)
		unitEnd := len(frame)
		if nextOK {
			unitEnd = nextStart - nextSCLen
		}

		if nalType < hevcNALVCLCutoff {
			headerEnd := start + hevcNALHeaderSize
			if headerEnd > unitEnd {
				headerEnd = unitEnd
			}
			p.AddUnencryptedBytes(frame[start:headerEnd])
			p.AddEncryptedBytes(frame[headerEnd:unitEnd])
		} else {
			p.AddUnencryptedBytes(frame[start:unitEnd])
		}

		start, ok = nextStart, nextOK
	}

	return nil
}
