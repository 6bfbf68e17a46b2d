package resize

import (
	"errors"
	"testing"

	"fastresize/pkg/imaging"
	"fastresize/pkg/pixels"
)

// TestPremultiplyAlpha verifies the rounding and the alpha channel
// passthrough of premultiplication.
func TestPremultiplyAlpha(t *testing.T) {
	img := imaging.New(2, 1, pixels.U8x4)
	copy(img.Bytes(), []byte{
		200, 100, 50, 128,
		255, 255, 255, 0,
	})
	if err := PremultiplyAlpha(img); err != nil {
		t.Fatalf("PremultiplyAlpha failed: %v", err)
	}
	got := img.Bytes()
	// round(200*128/255) = 100, round(100*128/255) = 50, round(50*128/255) = 25
	want := []byte{100, 50, 25, 128, 0, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("premultiplied[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// TestUnpremultiplyAlpha verifies division rounding, transparent-pixel
// zeroing and saturation.
func TestUnpremultiplyAlpha(t *testing.T) {
	img := imaging.New(3, 1, pixels.U8x4)
	copy(img.Bytes(), []byte{
		100, 50, 25, 128,
		7, 8, 9, 0,
		200, 10, 0, 100,
	})
	if err := UnpremultiplyAlpha(img); err != nil {
		t.Fatalf("UnpremultiplyAlpha failed: %v", err)
	}
	got := img.Bytes()
	// round(100*255/128) = 199, round(50*255/128) = 100, round(25*255/128) = 50
	// a = 0 forces color to zero; 200*255/100 saturates at 255.
	want := []byte{199, 100, 50, 128, 0, 0, 0, 0, 255, 26, 0, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unpremultiplied[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// TestAlphaRoundTrip verifies that premultiplying and unpremultiplying is
// stable for fully opaque pixels and within quantization error otherwise.
func TestAlphaRoundTrip(t *testing.T) {
	img := imaging.New(4, 2, pixels.U8x4)
	data := img.Bytes()
	for i := range data {
		data[i] = byte((i*31 + 7) % 256)
	}
	// Force the first pixel fully opaque.
	data[3] = 255
	orig := append([]byte(nil), data...)

	if err := PremultiplyAlpha(img); err != nil {
		t.Fatalf("PremultiplyAlpha failed: %v", err)
	}
	if err := UnpremultiplyAlpha(img); err != nil {
		t.Fatalf("UnpremultiplyAlpha failed: %v", err)
	}

	for c := 0; c < 3; c++ {
		if data[c] != orig[c] {
			t.Errorf("opaque pixel channel %d = %d, want %d", c, data[c], orig[c])
		}
	}
	for i := 3; i < len(data); i += 4 {
		if data[i] != orig[i] {
			t.Errorf("alpha channel at %d changed: %d vs %d", i, data[i], orig[i])
		}
	}
}

// TestAlphaWrongPixelType verifies that alpha operations reject non-RGBA
// images.
func TestAlphaWrongPixelType(t *testing.T) {
	img := imaging.New(2, 2, pixels.U8x3)
	if err := PremultiplyAlpha(img); !errors.Is(err, imaging.ErrPixelTypeMismatch) {
		t.Errorf("PremultiplyAlpha on U8x3: err = %v, want ErrPixelTypeMismatch", err)
	}
	if err := UnpremultiplyAlpha(img); !errors.Is(err, imaging.ErrPixelTypeMismatch) {
		t.Errorf("UnpremultiplyAlpha on U8x3: err = %v, want ErrPixelTypeMismatch", err)
	}
}
