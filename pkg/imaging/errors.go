package imaging

import "errors"

// Construction-time errors. These are the only failures the container can
// report; once an Image exists its buffer is known to be well-formed and the
// view and convolution layers never re-check it.
var (
	// ErrInvalidBufferSize is returned when a caller-supplied buffer does not
	// hold exactly width*height pixels of the requested type.
	ErrInvalidBufferSize = errors.New("imaging: buffer size does not match image dimensions")

	// ErrInvalidBufferAlignment is returned when a caller-supplied byte buffer
	// is not aligned to the pixel type's component width.
	ErrInvalidBufferAlignment = errors.New("imaging: buffer is not aligned for the pixel type")

	// ErrPixelTypeMismatch is returned when a typed view or a typed buffer is
	// requested with a component type that does not match the image's pixel
	// type.
	ErrPixelTypeMismatch = errors.New("imaging: pixel type mismatch")
)
