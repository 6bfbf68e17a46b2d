// Package pixels defines the fixed catalogue of pixel encodings supported by
// the resampling engine. Each encoding fixes its channel count, the storage
// width of a single channel component, and the alignment the raw storage must
// satisfy when an image is built over a caller-supplied byte buffer.
package pixels

import "fmt"

// PixelType identifies one of the supported pixel encodings.
type PixelType int

const (
	// U8 is a single 8-bit channel (grayscale).
	U8 PixelType = iota

	// U8x3 is three 8-bit channels (RGB).
	U8x3

	// U16 is a single 16-bit channel (grayscale).
	U16

	// U16x3 is three 16-bit channels (RGB).
	U16x3

	// U8x4 is four 8-bit channels (RGBA).
	U8x4

	// I32 is a single signed 32-bit integer channel.
	I32

	// F32 is a single 32-bit floating point channel.
	F32
)

// Types lists every supported pixel type, in declaration order.
var Types = []PixelType{U8, U8x3, U16, U16x3, U8x4, I32, F32}

// Component is the set of scalar types a pixel channel can be stored as.
// The convolution engine and the typed views are generic over this set.
type Component interface {
	uint8 | uint16 | int32 | float32
}

// ComponentKind identifies the scalar storage type of a pixel's channels.
type ComponentKind int

const (
	KindUint8 ComponentKind = iota
	KindUint16
	KindInt32
	KindFloat32
)

// ChannelCount returns the number of channels in one pixel.
func (pt PixelType) ChannelCount() int {
	switch pt {
	case U8x3, U16x3:
		return 3
	case U8x4:
		return 4
	default:
		return 1
	}
}

// ComponentSize returns the storage size of a single channel in bytes.
func (pt PixelType) ComponentSize() int {
	switch pt {
	case U8, U8x3, U8x4:
		return 1
	case U16, U16x3:
		return 2
	default:
		return 4
	}
}

// Size returns the storage size of one whole pixel in bytes.
func (pt PixelType) Size() int {
	return pt.ChannelCount() * pt.ComponentSize()
}

// Alignment returns the byte alignment a raw buffer must satisfy to hold
// pixels of this type. It equals the natural alignment of the component
// scalar, so U8-family types place no constraint at all.
func (pt PixelType) Alignment() int {
	return pt.ComponentSize()
}

// Kind returns the scalar storage kind of this pixel type's channels.
func (pt PixelType) Kind() ComponentKind {
	switch pt {
	case U8, U8x3, U8x4:
		return KindUint8
	case U16, U16x3:
		return KindUint16
	case I32:
		return KindInt32
	default:
		return KindFloat32
	}
}

// String returns the canonical name of the pixel type.
func (pt PixelType) String() string {
	switch pt {
	case U8:
		return "U8"
	case U8x3:
		return "U8x3"
	case U16:
		return "U16"
	case U16x3:
		return "U16x3"
	case U8x4:
		return "U8x4"
	case I32:
		return "I32"
	case F32:
		return "F32"
	default:
		return fmt.Sprintf("PixelType(%d)", int(pt))
	}
}

// KindOf returns the ComponentKind corresponding to the scalar type C.
func KindOf[C Component]() ComponentKind {
	var z C
	switch any(z).(type) {
	case uint8:
		return KindUint8
	case uint16:
		return KindUint16
	case int32:
		return KindInt32
	default:
		return KindFloat32
	}
}
