// Package imgconv converts between the standard library's image types and
// the container used by the resampling pipeline. It exists for the command
// line tool; the library itself never touches file formats.
package imgconv

import (
	"fmt"
	"image"
	"image/draw"

	"fastresize/pkg/imaging"
	"fastresize/pkg/pixels"
)

// FromStd converts a standard library image into a pipeline image.
// Grayscale inputs map to U8/U16; everything else is flattened to straight
// (non-premultiplied) RGBA and stored as U8x4.
func FromStd(src image.Image) *imaging.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	switch s := src.(type) {
	case *image.Gray:
		img := imaging.New(w, h, pixels.U8)
		copyRows(img.Bytes(), w*1, s.Pix, s.Stride, w*1, h)
		return img
	case *image.Gray16:
		img := imaging.New(w, h, pixels.U16)
		view, _ := imaging.ViewMutOf[uint16](img)
		for y, row := range view.RowsMut() {
			off := y * s.Stride
			for x := range row {
				// Gray16 stores big-endian bytes.
				row[x] = uint16(s.Pix[off+2*x])<<8 | uint16(s.Pix[off+2*x+1])
			}
		}
		return img
	case *image.NRGBA:
		img := imaging.New(w, h, pixels.U8x4)
		copyRows(img.Bytes(), w*4, s.Pix, s.Stride, w*4, h)
		return img
	default:
		nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
		img := imaging.New(w, h, pixels.U8x4)
		copyRows(img.Bytes(), w*4, nrgba.Pix, nrgba.Stride, w*4, h)
		return img
	}
}

// ToStd converts a pipeline image back into a standard library image.
// Only the encodings with a direct stdlib counterpart are supported.
func ToStd(src *imaging.Image) (image.Image, error) {
	w, h := src.Width(), src.Height()
	switch src.PixelType() {
	case pixels.U8:
		out := image.NewGray(image.Rect(0, 0, w, h))
		copyRows(out.Pix, out.Stride, src.Bytes(), w*1, w*1, h)
		return out, nil
	case pixels.U16:
		out := image.NewGray16(image.Rect(0, 0, w, h))
		view, _ := imaging.ViewOf[uint16](src)
		for y := 0; y < h; y++ {
			row := view.Row(y)
			off := y * out.Stride
			for x, v := range row {
				out.Pix[off+2*x] = uint8(v >> 8)
				out.Pix[off+2*x+1] = uint8(v)
			}
		}
		return out, nil
	case pixels.U8x4:
		out := image.NewNRGBA(image.Rect(0, 0, w, h))
		copyRows(out.Pix, out.Stride, src.Bytes(), w*4, w*4, h)
		return out, nil
	default:
		return nil, fmt.Errorf("imgconv: no standard image type for %s", src.PixelType())
	}
}

// copyRows copies h rows of rowLen bytes between two row-major buffers with
// independent row strides.
func copyRows(dst []byte, dstStride int, src []byte, srcStride, rowLen, h int) {
	if dstStride == rowLen && srcStride == rowLen {
		copy(dst, src[:rowLen*h])
		return
	}
	for y := 0; y < h; y++ {
		copy(dst[y*dstStride:y*dstStride+rowLen], src[y*srcStride:y*srcStride+rowLen])
	}
}
