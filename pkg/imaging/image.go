// Package imaging provides the image container used by the resampling
// pipeline. An Image owns or borrows a flat, row-major component buffer for
// one of the supported pixel types and hands out typed row views over it
// without copying. All buffer validation happens at construction time; the
// views and the convolution engine treat the buffer as known-good.
package imaging

import (
	"fmt"
	"unsafe"

	"fastresize/pkg/pixels"
)

// storage holds the image components natively in their scalar representation.
// Exactly one field is non-nil, matching the pixel type's component kind.
// Keeping the components in their target scalar type from the start means the
// hot path never reinterprets memory; the only reinterpretation the package
// performs is the validated one in FromBytes and the read-only one in Bytes.
type storage struct {
	u8  []uint8
	u16 []uint16
	i32 []int32
	f32 []float32
}

// Image is a simple container for one raster image. Width and height are
// always positive and the storage always holds exactly
// width*height*channels components.
type Image struct {
	width     int
	height    int
	pixelType pixels.PixelType
	comps     storage
}

// New creates a zero-filled image with the given dimensions and pixel type.
// Non-positive dimensions are a programming defect and panic.
func New(width, height int, pt pixels.PixelType) *Image {
	checkDimensions(width, height)
	n := width * height * pt.ChannelCount()
	img := &Image{width: width, height: height, pixelType: pt}
	switch pt.Kind() {
	case pixels.KindUint8:
		img.comps.u8 = make([]uint8, n)
	case pixels.KindUint16:
		img.comps.u16 = make([]uint16, n)
	case pixels.KindInt32:
		img.comps.i32 = make([]int32, n)
	default:
		img.comps.f32 = make([]float32, n)
	}
	return img
}

// FromBytes wraps a caller-supplied byte buffer as an image without copying.
// The buffer must hold exactly width*height pixels of the given type and,
// for pixel types with multi-byte components, its base address must satisfy
// the component's natural alignment. Violations are reported as
// ErrInvalidBufferSize and ErrInvalidBufferAlignment respectively; neither is
// retryable, the caller has to supply a corrected buffer.
func FromBytes(width, height int, buf []byte, pt pixels.PixelType) (*Image, error) {
	checkDimensions(width, height)
	if len(buf) != width*height*pt.Size() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidBufferSize, len(buf), width*height*pt.Size())
	}
	if align := pt.Alignment(); align > 1 {
		if uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%uintptr(align) != 0 {
			return nil, fmt.Errorf("%w: base address must be %d-byte aligned",
				ErrInvalidBufferAlignment, align)
		}
	}
	img := &Image{width: width, height: height, pixelType: pt}
	n := width * height * pt.ChannelCount()
	switch pt.Kind() {
	case pixels.KindUint8:
		img.comps.u8 = buf
	case pixels.KindUint16:
		img.comps.u16 = unsafe.Slice((*uint16)(unsafe.Pointer(unsafe.SliceData(buf))), n)
	case pixels.KindInt32:
		img.comps.i32 = unsafe.Slice((*int32)(unsafe.Pointer(unsafe.SliceData(buf))), n)
	default:
		img.comps.f32 = unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(buf))), n)
	}
	return img, nil
}

// FromU16 wraps a caller-supplied uint16 buffer as a U16 or U16x3 image
// without copying. The buffer must hold exactly width*height pixels worth of
// components.
func FromU16(width, height int, buf []uint16, pt pixels.PixelType) (*Image, error) {
	checkDimensions(width, height)
	if pt.Kind() != pixels.KindUint16 {
		return nil, fmt.Errorf("%w: %s is not backed by uint16", ErrPixelTypeMismatch, pt)
	}
	if len(buf) != width*height*pt.ChannelCount() {
		return nil, fmt.Errorf("%w: got %d components, want %d",
			ErrInvalidBufferSize, len(buf), width*height*pt.ChannelCount())
	}
	return &Image{width: width, height: height, pixelType: pt, comps: storage{u16: buf}}, nil
}

// FromI32 wraps a caller-supplied int32 buffer as an I32 image without
// copying.
func FromI32(width, height int, buf []int32) (*Image, error) {
	checkDimensions(width, height)
	if len(buf) != width*height {
		return nil, fmt.Errorf("%w: got %d components, want %d",
			ErrInvalidBufferSize, len(buf), width*height)
	}
	return &Image{width: width, height: height, pixelType: pixels.I32, comps: storage{i32: buf}}, nil
}

// FromF32 wraps a caller-supplied float32 buffer as an F32 image without
// copying.
func FromF32(width, height int, buf []float32) (*Image, error) {
	checkDimensions(width, height)
	if len(buf) != width*height {
		return nil, fmt.Errorf("%w: got %d components, want %d",
			ErrInvalidBufferSize, len(buf), width*height)
	}
	return &Image{width: width, height: height, pixelType: pixels.F32, comps: storage{f32: buf}}, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// PixelType returns the image's pixel encoding.
func (img *Image) PixelType() pixels.PixelType { return img.pixelType }

// Bytes returns the image storage as a read-only byte view without copying.
// Callers must not modify the returned slice.
func (img *Image) Bytes() []byte {
	switch img.pixelType.Kind() {
	case pixels.KindUint8:
		return img.comps.u8
	case pixels.KindUint16:
		return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(img.comps.u16))), 2*len(img.comps.u16))
	case pixels.KindInt32:
		return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(img.comps.i32))), 4*len(img.comps.i32))
	default:
		return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(img.comps.f32))), 4*len(img.comps.f32))
	}
}

// CopyFrom copies the pixel data of src into img. Both images must have the
// same dimensions and pixel type.
func (img *Image) CopyFrom(src *Image) error {
	if img.pixelType != src.pixelType {
		return fmt.Errorf("%w: %s vs %s", ErrPixelTypeMismatch, img.pixelType, src.pixelType)
	}
	if img.width != src.width || img.height != src.height {
		return fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrInvalidBufferSize, img.width, img.height, src.width, src.height)
	}
	copy(img.Bytes(), src.Bytes())
	return nil
}

func checkDimensions(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("imaging: dimensions must be positive, got %dx%d", width, height))
	}
}
