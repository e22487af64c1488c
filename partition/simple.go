package partition

import "fmt"

// VP8 payload header clear-prefix lengths per RFC 7741 section 4.3. Bit 0
// of byte 0 is an inverted key frame flag: the depacketizer reads 10
// bytes into a key frame header but only the first byte of a delta frame.
const (
	vp8KeyFrameClearBytes   = 10
	vp8DeltaFrameClearBytes = 1
)

// processOpus encrypts the whole frame: the transport carries no
// frame-internal metadata that must stay readable.
func processOpus(p Processor, frame []byte) error {
	p.AddEncryptedBytes(frame)
	return nil
}

// processVP9 encrypts the whole frame. The payload descriptor the
// depacketizer needs travels per packet, outside the frame payload.
func processVP9(p Processor, frame []byte) error {
	p.AddEncryptedBytes(frame)
	return nil
}

// processVP8 keeps the payload header prefix the depacketizer reads in
// the clear and encrypts the rest. The prefix is clamped to the frame
// length so degenerate short key frames still satisfy range coverage.
func processVP8(p Processor, frame []byte) error {
	if len(frame) == 0 {
		return fmt.Errorf("%w: empty VP8 frame", ErrFrameTooShort)
	}

	clearLen := vp8DeltaFrameClearBytes
	if frame[0]&0x01 == 0 {
		clearLen = vp8KeyFrameClearBytes
	}
	if clearLen > len(frame) {
		clearLen = len(frame)
	}

	p.AddUnencryptedBytes(frame[:clearLen])
	p.AddEncryptedBytes(frame[clearLen:])
	return nil
}
