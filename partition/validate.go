package partition

import "github.com/zsiec/framecrypt/media"

// startCodePadding is how many bytes either side of an encrypted span a
// start marker could straddle: one fewer than the short marker length.
const startCodePadding = shortStartCodeSize - 1

// ValidateEncryptedFrame reports whether an encrypted frame is safe to
// transmit. H.264/H.265 ciphertext is effectively pseudorandom and can
// coincidentally contain an Annex B start code; a depacketizer would
// split the frame there and the receiver would fail to decrypt. The check
// re-scans a 2-byte window either side of every encrypted span, derived
// from the clear ranges p recorded while partitioning.
//
// A false result is retriable, not a parse error: the caller re-encrypts
// under a different nonce or counter and validates again.
//
// Other codecs always validate. AV1's OBU boundaries come from clear
// header and size bytes this package emits itself, never from scanning
// payload bytes, so ciphertext cannot fabricate a boundary there.
func ValidateEncryptedFrame(p Processor, frame []byte) bool {
	codec := p.Codec()
	if codec != media.CodecH264 && codec != media.CodecH265 {
		return true
	}

	encStart := 0
	for _, r := range p.UnencryptedRanges() {
		if encStart == r.Offset {
			// No encrypted gap before this clear range.
			encStart = r.Offset + r.Size
			continue
		}

		scanFrom := encStart - min(encStart, startCodePadding)
		scanTo := min(r.Offset+startCodePadding, len(frame))
		if _, _, found := nextNALUnit(frame[scanFrom:scanTo], 0); found {
			return false
		}

		encStart = r.Offset + r.Size
	}

	if encStart == len(frame) {
		return true
	}

	scanFrom := encStart - min(encStart, startCodePadding)
	_, _, found := nextNALUnit(frame[scanFrom:], 0)
	return !found
}
