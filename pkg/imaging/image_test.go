package imaging

import (
	"bytes"
	"errors"
	"testing"
	"unsafe"

	"fastresize/pkg/pixels"
)

// alignedBytes allocates a byte slice of the given size whose base address
// is a multiple of align, by slicing into a larger allocation.
func alignedBytes(t *testing.T, size, align int) []byte {
	t.Helper()
	raw := make([]byte, size+align)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := int((uintptr(align) - addr%uintptr(align)) % uintptr(align))
	return raw[off : off+size : off+size]
}

// TestNewZeroFilled verifies that New produces a zeroed buffer of the right
// size for every pixel type.
func TestNewZeroFilled(t *testing.T) {
	for _, pt := range pixels.Types {
		img := New(7, 3, pt)
		if img.Width() != 7 || img.Height() != 3 {
			t.Errorf("%s: got %dx%d, want 7x3", pt, img.Width(), img.Height())
		}
		if img.PixelType() != pt {
			t.Errorf("PixelType() = %s, want %s", img.PixelType(), pt)
		}
		buf := img.Bytes()
		if len(buf) != 7*3*pt.Size() {
			t.Errorf("%s: Bytes() length = %d, want %d", pt, len(buf), 7*3*pt.Size())
		}
		if !bytes.Equal(buf, make([]byte, len(buf))) {
			t.Errorf("%s: new image is not zero-filled", pt)
		}
	}
}

// TestFromBytesInvalidSize verifies that every pixel type and a spread of
// dimensions reject buffers whose length does not match exactly.
func TestFromBytesInvalidSize(t *testing.T) {
	dims := []int{1, 5, 100}
	for _, pt := range pixels.Types {
		for _, w := range dims {
			for _, h := range dims {
				want := w * h * pt.Size()
				for _, n := range []int{0, want - 1, want + 1, want * 2} {
					if n == want {
						continue
					}
					buf := alignedBytes(t, n, pt.Alignment())
					if _, err := FromBytes(w, h, buf, pt); !errors.Is(err, ErrInvalidBufferSize) {
						t.Errorf("%s %dx%d with %d bytes: err = %v, want ErrInvalidBufferSize",
							pt, w, h, n, err)
					}
				}
				buf := alignedBytes(t, want, pt.Alignment())
				if _, err := FromBytes(w, h, buf, pt); err != nil {
					t.Errorf("%s %dx%d with exact buffer: unexpected error %v", pt, w, h, err)
				}
			}
		}
	}
}

// TestFromBytesAlignment verifies that misaligned buffers are rejected for
// multi-byte-component pixel types and accepted for byte-component ones.
func TestFromBytesAlignment(t *testing.T) {
	for _, pt := range pixels.Types {
		size := 4 * 2 * pt.Size()
		// A buffer starting one byte past an aligned address is misaligned
		// for any component wider than a byte.
		raw := alignedBytes(t, size+pt.Alignment(), 8)
		misaligned := raw[1 : 1+size]

		_, err := FromBytes(4, 2, misaligned, pt)
		if pt.Alignment() > 1 {
			if !errors.Is(err, ErrInvalidBufferAlignment) {
				t.Errorf("%s: misaligned buffer: err = %v, want ErrInvalidBufferAlignment", pt, err)
			}
		} else if err != nil {
			t.Errorf("%s: byte-aligned type rejected buffer: %v", pt, err)
		}

		aligned := alignedBytes(t, size, pt.Alignment())
		if _, err := FromBytes(4, 2, aligned, pt); err != nil {
			t.Errorf("%s: aligned buffer rejected: %v", pt, err)
		}
	}
}

// TestFromBytesZeroCopy verifies that the image borrows the caller's buffer
// instead of copying it.
func TestFromBytesZeroCopy(t *testing.T) {
	buf := alignedBytes(t, 4*2*2, 2)
	img, err := FromBytes(4, 2, buf, pixels.U16)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	buf[0] = 0x34
	buf[1] = 0x12
	view, err := ViewOf[uint16](img)
	if err != nil {
		t.Fatalf("ViewOf failed: %v", err)
	}
	// Little-endian hosts see 0x1234; either way the storage must alias
	// the caller's bytes.
	if view.Row(0)[0] == 0 {
		t.Error("image storage does not alias the caller's buffer")
	}
}

// TestTypedConstructors verifies the word- and doubleword-backed variants.
func TestTypedConstructors(t *testing.T) {
	if _, err := FromU16(3, 2, make([]uint16, 3*2*3), pixels.U16x3); err != nil {
		t.Errorf("FromU16 U16x3 exact: unexpected error %v", err)
	}
	if _, err := FromU16(3, 2, make([]uint16, 5), pixels.U16); !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("FromU16 short buffer: err = %v, want ErrInvalidBufferSize", err)
	}
	if _, err := FromU16(3, 2, make([]uint16, 6), pixels.U8); !errors.Is(err, ErrPixelTypeMismatch) {
		t.Errorf("FromU16 with U8: err = %v, want ErrPixelTypeMismatch", err)
	}
	if _, err := FromI32(3, 2, make([]int32, 6)); err != nil {
		t.Errorf("FromI32 exact: unexpected error %v", err)
	}
	if _, err := FromI32(3, 2, make([]int32, 7)); !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("FromI32 long buffer: err = %v, want ErrInvalidBufferSize", err)
	}
	if _, err := FromF32(2, 2, make([]float32, 4)); err != nil {
		t.Errorf("FromF32 exact: unexpected error %v", err)
	}
	if _, err := FromF32(2, 2, make([]float32, 3)); !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("FromF32 short buffer: err = %v, want ErrInvalidBufferSize", err)
	}
}

// TestCopyFrom verifies the whole-image copy used by identity resizes.
func TestCopyFrom(t *testing.T) {
	src := New(3, 3, pixels.U8)
	copy(src.Bytes(), []byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	dst := New(3, 3, pixels.U8)
	if err := dst.CopyFrom(src); err != nil {
		t.Fatalf("CopyFrom failed: %v", err)
	}
	if !bytes.Equal(dst.Bytes(), src.Bytes()) {
		t.Error("CopyFrom did not reproduce the source bytes")
	}

	other := New(3, 3, pixels.U16)
	if err := other.CopyFrom(src); !errors.Is(err, ErrPixelTypeMismatch) {
		t.Errorf("CopyFrom across pixel types: err = %v, want ErrPixelTypeMismatch", err)
	}
	small := New(2, 3, pixels.U8)
	if err := small.CopyFrom(src); err == nil {
		t.Error("CopyFrom across dimensions succeeded, want error")
	}
}
