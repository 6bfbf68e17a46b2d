package convolution

import (
	"fmt"

	"fastresize/pkg/imaging"
	"fastresize/pkg/pixels"
)

// HorizConvolution filters src along the x axis into dst. For each
// destination row r it reads source row r+offset; the offset parameter lets
// the caller address a vertically cropped or banded sub-region of the source
// without rebuilding the view. coeffs must hold one chunk per destination
// column, each chunk windowed inside the source width.
//
// The pass is pure: it fully writes dst and never touches src. Shape
// violations are programming defects and panic after a single O(dst) check
// at entry; nothing is re-validated per pixel.
func HorizConvolution[C pixels.Component](src *imaging.View[C], dst *imaging.ViewMut[C], offset int, coeffs *Coefficients, ext CPUExtensions) {
	if err := coeffs.Validate(); err != nil {
		panic(err)
	}
	if coeffs.SrcSize != src.Width() || coeffs.DstSize != dst.Width() {
		panic(fmt.Sprintf("convolution: horizontal coefficients built for %d->%d, views are %d->%d",
			coeffs.SrcSize, coeffs.DstSize, src.Width(), dst.Width()))
	}
	if offset < 0 || offset+dst.Height() > src.Height() {
		panic(fmt.Sprintf("convolution: source rows [%d, %d) out of range [0, %d)",
			offset, offset+dst.Height(), src.Height()))
	}
	switch ext {
	default:
		// Accelerated kernels plug in here per component type; every
		// extension currently resolves to the scalar baseline.
		horizNative(src, dst, offset, coeffs)
	}
}

// VertConvolution filters src along the y axis into dst. For each
// destination row r, chunk coeffs.Chunks[r] selects the source rows to
// weight; every column is processed independently. The same entry-time
// validation and purity rules as HorizConvolution apply.
func VertConvolution[C pixels.Component](src *imaging.View[C], dst *imaging.ViewMut[C], coeffs *Coefficients, ext CPUExtensions) {
	if err := coeffs.Validate(); err != nil {
		panic(err)
	}
	if coeffs.SrcSize != src.Height() || coeffs.DstSize != dst.Height() {
		panic(fmt.Sprintf("convolution: vertical coefficients built for %d->%d, views are %d->%d",
			coeffs.SrcSize, coeffs.DstSize, src.Height(), dst.Height()))
	}
	if src.Width() != dst.Width() {
		panic(fmt.Sprintf("convolution: vertical pass width mismatch: %d vs %d", src.Width(), dst.Width()))
	}
	switch ext {
	default:
		vertNative(src, dst, coeffs)
	}
}
