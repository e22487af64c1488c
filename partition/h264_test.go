package partition

import (
	"bytes"
	"errors"
	"testing"

	"github.com/zsiec/framecrypt/media"
)

func TestProcessH264_SPSWholeUnitClear(t *testing.T) {
	t.Parallel()
	frame := []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0xDE, 0xAD, 0xBE, 0xEF}

	out := NewOutbound(media.CodecH264)
	if err := ProcessFrame(out, frame); err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	checkCoverage(t, out)

	wantRanges := []media.ByteRange{{Offset: 0, Size: 9}}
	if got := out.UnencryptedRanges(); !bytes.Equal(out.Unencrypted(), frame) || len(got) != 1 || got[0] != wantRanges[0] {
		t.Errorf("got ranges %v clear %x, want whole frame clear", got, out.Unencrypted())
	}
	if len(out.Encrypted()) != 0 {
		t.Errorf("SPS unit must not produce encrypted bytes, got %d", len(out.Encrypted()))
	}
}

func TestProcessH264_IDRSplitsAfterGolombPrefix(t *testing.T) {
	t.Parallel()
	// IDR header 0x65, then first_mb_in_slice / slice_type / pps_id
	// encoded in two bytes (0x88 0x80), then picture data.
	frame := []byte{0x00, 0x00, 0x00, 0x01, 0x65, 0x88, 0x80, 0x01, 0x02, 0x03, 0x04}

	out := NewOutbound(media.CodecH264)
	if err := ProcessFrame(out, frame); err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	checkCoverage(t, out)

	ranges := out.UnencryptedRanges()
	if len(ranges) != 1 || ranges[0] != (media.ByteRange{Offset: 0, Size: 7}) {
		t.Fatalf("got ranges %v, want [{0 7}]", ranges)
	}
	if want := frame[7:]; !bytes.Equal(out.Encrypted(), want) {
		t.Errorf("encrypted = %x, want %x", out.Encrypted(), want)
	}
}

func TestProcessH264_ShortStartCodeNormalized(t *testing.T) {
	t.Parallel()
	frame := []byte{0x00, 0x00, 0x01, 0x67, 0xAA}

	out := NewOutbound(media.CodecH264)
	if err := ProcessFrame(out, frame); err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	checkCoverage(t, out)

	// The 3-byte source code becomes a 4-byte code, growing the output
	// by one byte.
	if out.Size() != len(frame)+1 {
		t.Fatalf("output size = %d, want %d", out.Size(), len(frame)+1)
	}
	if !bytes.Equal(out.Unencrypted()[:4], longStartCode) {
		t.Errorf("output starts %x, want a long start code", out.Unencrypted()[:4])
	}
}

func TestProcessH264_MultipleUnits(t *testing.T) {
	t.Parallel()
	frame := []byte{
		0x00, 0x00, 0x00, 0x01, 0x67, 0xAA, // SPS, fully clear
		0x00, 0x00, 0x01, 0x65, 0x88, 0x80, 0xFF, 0xFF, // IDR, split
	}

	out := NewOutbound(media.CodecH264)
	if err := ProcessFrame(out, frame); err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	checkCoverage(t, out)

	// Output: 4 (code) + 2 (SPS) + 4 (normalized code) + 3 (IDR header +
	// Golomb prefix) clear, then 2 encrypted.
	if out.Size() != 15 {
		t.Fatalf("output size = %d, want 15", out.Size())
	}
	ranges := out.UnencryptedRanges()
	if len(ranges) != 1 || ranges[0] != (media.ByteRange{Offset: 0, Size: 13}) {
		t.Fatalf("got ranges %v, want [{0 13}]", ranges)
	}
	if want := []byte{0xFF, 0xFF}; !bytes.Equal(out.Encrypted(), want) {
		t.Errorf("encrypted = %x, want %x", out.Encrypted(), want)
	}
}

func TestProcessH264_FrameTooShort(t *testing.T) {
	t.Parallel()
	out := NewOutbound(media.CodecH264)
	err := ProcessFrame(out, []byte{0x00, 0x00, 0x01})
	if !errors.Is(err, ErrFrameTooShort) {
		t.Fatalf("got %v, want ErrFrameTooShort", err)
	}
	if out.Size() != 0 || len(out.UnencryptedRanges()) != 0 {
		t.Error("no ranges may be recorded before the length check")
	}
}

func TestProcessH264_NoStartCode(t *testing.T) {
	t.Parallel()
	out := NewOutbound(media.CodecH264)
	if err := ProcessFrame(out, []byte{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	if out.Size() != 0 {
		t.Errorf("frame without start codes produced %d output bytes", out.Size())
	}
}

func TestProcessH264_GolombOverflow(t *testing.T) {
	t.Parallel()
	frame := []byte{0x00, 0x00, 0x00, 0x01, 0x65, 0x00, 0x00, 0x00, 0x00, 0x00}

	out := NewOutbound(media.CodecH264)
	err := ProcessFrame(out, frame)
	if !errors.Is(err, ErrGolombOverflow) {
		t.Fatalf("got %v, want ErrGolombOverflow", err)
	}
}
