package partition

const emulationPreventionByte = 0x03

// bitCursor addresses a single bit within a byte-aligned payload. It is
// passed and returned by value so the scan below stays pure and each step
// is independently testable.
type bitCursor struct {
	byteIdx int
	bitIdx  int
}

func (c bitCursor) advance(bits int) bitCursor {
	n := c.byteIdx*8 + c.bitIdx + bits
	return bitCursor{byteIdx: n / 8, bitIdx: n % 8}
}

// bytesCoveringH264PPS returns how many leading bytes of a slice/IDR NAL
// payload must stay in the clear so the depacketizer can read the three
// leading exp-Golomb fields (first_mb_in_slice and the parameter set
// ids). The payload is RBSP-encoded: 00 00 03 emulation prevention
// triplets carry no data bits and are skipped at byte boundaries.
//
// Returns ErrGolombOverflow when a zero run reaches 32 bits, which only
// corrupt or adversarial input produces. If the payload ends before three
// values decode, the bytes consumed so far are returned without error.
func bytesCoveringH264PPS(payload []byte) (int, error) {
	cur := bitCursor{}
	zeroRun := 0
	parsed := 0

	for cur.byteIdx < len(payload) && parsed < 3 {
		b := payload[cur.byteIdx]

		if cur.bitIdx == 0 && cur.byteIdx >= 2 && b == emulationPreventionByte &&
			payload[cur.byteIdx-1] == 0 && payload[cur.byteIdx-2] == 0 {
			cur = cur.advance(8)
			continue
		}

		if b&(1<<(7-cur.bitIdx)) == 0 {
			// Still in the run of leading zero bits.
			zeroRun++
			cur = cur.advance(1)
			if zeroRun >= 32 {
				return 0, ErrGolombOverflow
			}
			continue
		}

		// Hit the terminating one bit: the value occupies zeroRun more
		// bits past it.
		parsed++
		cur = cur.advance(1 + zeroRun)
		zeroRun = 0
	}

	// Bytes covering through the last bit consumed.
	return cur.byteIdx + 1, nil
}
