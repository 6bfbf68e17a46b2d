package resize

import (
	"fmt"

	"fastresize/pkg/imaging"
	"fastresize/pkg/pixels"
)

// Alpha handling for U8x4 images. Convolving straight (non-premultiplied)
// RGBA bleeds color out of transparent pixels, so callers resizing images
// with meaningful alpha should premultiply first and unpremultiply the
// result.

// PremultiplyAlpha multiplies the color channels of a U8x4 image by its
// alpha channel in place, rounding to nearest.
func PremultiplyAlpha(img *imaging.Image) error {
	view, err := rgbaView(img)
	if err != nil {
		return err
	}
	for _, row := range view.RowsMut() {
		for i := 0; i < len(row); i += 4 {
			a := uint32(row[i+3])
			row[i+0] = uint8((uint32(row[i+0])*a + 127) / 255)
			row[i+1] = uint8((uint32(row[i+1])*a + 127) / 255)
			row[i+2] = uint8((uint32(row[i+2])*a + 127) / 255)
		}
	}
	return nil
}

// UnpremultiplyAlpha divides the color channels of a U8x4 image by its alpha
// channel in place, rounding to nearest and saturating at 255. Fully
// transparent pixels are forced to zero color, matching what premultiplying
// would have produced.
func UnpremultiplyAlpha(img *imaging.Image) error {
	view, err := rgbaView(img)
	if err != nil {
		return err
	}
	for _, row := range view.RowsMut() {
		for i := 0; i < len(row); i += 4 {
			a := uint32(row[i+3])
			if a == 0 {
				row[i+0], row[i+1], row[i+2] = 0, 0, 0
				continue
			}
			row[i+0] = unmultiply(row[i+0], a)
			row[i+1] = unmultiply(row[i+1], a)
			row[i+2] = unmultiply(row[i+2], a)
		}
	}
	return nil
}

func unmultiply(c uint8, a uint32) uint8 {
	v := (uint32(c)*255 + a/2) / a
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func rgbaView(img *imaging.Image) (*imaging.ViewMut[uint8], error) {
	if img.PixelType() != pixels.U8x4 {
		return nil, fmt.Errorf("%w: alpha operations need %s, got %s",
			imaging.ErrPixelTypeMismatch, pixels.U8x4, img.PixelType())
	}
	return imaging.ViewMutOf[uint8](img)
}
