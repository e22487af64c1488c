package partition

// Annex B start code handling shared by the H.264 and H.265 partitioners
// and the post-encryption validator. A NAL unit start marker is the
// 3-byte sequence 00 00 01; when immediately preceded by another zero
// byte it is reported as a 4-byte marker.

const shortStartCodeSize = 3

// longStartCode is written in place of every source start code: receivers
// normalize markers to 4 bytes, and the encrypted layout must match the
// frame the receiver reconstructs.
var longStartCode = []byte{0, 0, 0, 1}

// nextNALUnit scans buf from offset from for the next start marker. It
// returns the index of the first NAL byte past the marker and the marker
// length (3 or 4); ok is false when no marker exists from from onward or
// fewer than 3 bytes remain.
//
// The scan advances three bytes at a time whenever the byte two positions
// ahead exceeds 1: such a byte can be neither the terminal 01 nor a
// leading 00 of any marker overlapping the next window, so the skip never
// passes over a valid marker.
func nextNALUnit(buf []byte, from int) (start, scLen int, ok bool) {
	if len(buf) < shortStartCodeSize {
		return 0, 0, false
	}

	for i := from; i < len(buf)-shortStartCodeSize; {
		switch {
		case buf[i+2] > 1:
			i += shortStartCodeSize
		case buf[i+2] == 1:
			if buf[i+1] == 0 && buf[i] == 0 {
				// Confirmed 00 00 01. A zero byte before it makes
				// this a 4-byte marker.
				if i >= 1 && buf[i-1] == 0 {
					return i + shortStartCodeSize, 4, true
				}
				return i + shortStartCodeSize, 3, true
			}
			i += shortStartCodeSize
		default:
			// Third byte is zero: may be the middle of a longer marker.
			i++
		}
	}

	return 0, 0, false
}
