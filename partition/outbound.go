package partition

import "github.com/zsiec/framecrypt/media"

// Outbound is a concrete Processor that accumulates the partitioned form
// of one frame: clear bytes and to-be-encrypted bytes in emission order,
// plus the recorded clear ranges over the output layout. The encryption
// layer ciphers Encrypted() in place, then ReconstructFrame interleaves
// the two buffers back into a transmittable frame.
//
// An Outbound holds no cross-frame state. It must not be shared between
// goroutines during a frame; run independent instances on independent
// frames for parallel throughput.
type Outbound struct {
	codec       media.Codec
	cursor      int
	unencrypted []byte
	encrypted   []byte
	ranges      []media.ByteRange
}

// NewOutbound returns a processor bound to codec.
func NewOutbound(codec media.Codec) *Outbound {
	return &Outbound{codec: codec}
}

// Codec returns the codec identity fixed at construction or last Reset.
func (o *Outbound) Codec() media.Codec {
	return o.codec
}

// AddUnencryptedBytes records b as a clear range. A range contiguous with
// the previous clear range extends it instead of appending, so a start
// code and the header following it surface as a single range.
func (o *Outbound) AddUnencryptedBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	if n := len(o.ranges); n > 0 && o.ranges[n-1].Offset+o.ranges[n-1].Size == o.cursor {
		o.ranges[n-1].Size += len(b)
	} else {
		o.ranges = append(o.ranges, media.ByteRange{Offset: o.cursor, Size: len(b)})
	}
	o.unencrypted = append(o.unencrypted, b...)
	o.cursor += len(b)
}

// AddEncryptedBytes advances the cursor past b without recording a range;
// encrypted spans are implied by the gaps between clear ranges.
func (o *Outbound) AddEncryptedBytes(b []byte) {
	o.encrypted = append(o.encrypted, b...)
	o.cursor += len(b)
}

// UnencryptedRanges returns the clear ranges recorded so far.
func (o *Outbound) UnencryptedRanges() []media.ByteRange {
	return o.ranges
}

// Size returns the total output frame length accumulated so far.
func (o *Outbound) Size() int {
	return o.cursor
}

// Unencrypted returns the clear bytes in emission order.
func (o *Outbound) Unencrypted() []byte {
	return o.unencrypted
}

// Encrypted returns the encryptable bytes in emission order. The caller
// ciphers them in place before reconstructing the frame.
func (o *Outbound) Encrypted() []byte {
	return o.encrypted
}

// ReconstructFrame interleaves the clear and encrypted buffers back into
// the output frame layout and returns the number of bytes written. dst
// must be at least Size() bytes.
func (o *Outbound) ReconstructFrame(dst []byte) int {
	written, clearIdx, encIdx, rangeIdx := 0, 0, 0, 0

	for written < o.cursor {
		if rangeIdx < len(o.ranges) && o.ranges[rangeIdx].Offset == written {
			n := o.ranges[rangeIdx].Size
			copy(dst[written:], o.unencrypted[clearIdx:clearIdx+n])
			clearIdx += n
			written += n
			rangeIdx++
			continue
		}

		end := o.cursor
		if rangeIdx < len(o.ranges) {
			end = o.ranges[rangeIdx].Offset
		}
		n := end - written
		copy(dst[written:], o.encrypted[encIdx:encIdx+n])
		encIdx += n
		written += n
	}

	return written
}

// Reset clears all per-frame state so the instance can be reused for the
// next frame, optionally under a different codec. Buffers are retained to
// avoid reallocating at frame rate.
func (o *Outbound) Reset(codec media.Codec) {
	o.codec = codec
	o.cursor = 0
	o.unencrypted = o.unencrypted[:0]
	o.encrypted = o.encrypted[:0]
	o.ranges = o.ranges[:0]
}
