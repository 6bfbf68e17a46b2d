package filters

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"fastresize/pkg/convolution"
)

// Coefficients evaluates the filter over the mapping from a destination axis
// of length dstSize onto the source interval
// [cropStart, cropStart+cropSize) inside a source axis of length srcSize,
// and returns one weight chunk per destination index.
//
// When downscaling, the kernel is stretched by the scale ratio so that every
// source pixel inside the destination pixel's footprint contributes; when
// upscaling, the kernel keeps its native support. At the borders the support
// window is truncated against [0, srcSize), never wrapped or mirrored, so
// chunk lengths vary near the edges. Each chunk's weights are normalized to
// sum to 1.
func Coefficients(f Filter, srcSize, dstSize int, cropStart, cropSize float64) *convolution.Coefficients {
	if srcSize <= 0 || dstSize <= 0 {
		panic(fmt.Sprintf("filters: axis sizes must be positive, got %d->%d", srcSize, dstSize))
	}
	if cropStart < 0 || cropSize <= 0 || cropStart+cropSize > float64(srcSize) {
		panic(fmt.Sprintf("filters: crop [%g, %g) outside source axis [0, %d)",
			cropStart, cropStart+cropSize, srcSize))
	}

	scale := cropSize / float64(dstSize)
	filterScale := math.Max(scale, 1.0)
	support := f.Support * filterScale
	invScale := 1.0 / filterScale

	chunks := make([]convolution.Chunk, dstSize)
	for d := range chunks {
		center := cropStart + (float64(d)+0.5)*scale
		// Half-open window of source indices the kernel can reach,
		// clamped against the source axis.
		first := int(math.Floor(center - support))
		if first < 0 {
			first = 0
		}
		last := int(math.Ceil(center + support))
		if last > srcSize {
			last = srcSize
		}
		if last <= first {
			// Degenerate support after clamping; fall back to the
			// nearest source pixel with full weight.
			first = clampIndex(int(center), srcSize)
			last = first + 1
		}

		values := make([]float64, last-first)
		for j := range values {
			values[j] = f.Kernel((float64(first+j) - center + 0.5) * invScale)
		}
		if sum := floats.Sum(values); sum != 0 {
			floats.Scale(1.0/sum, values)
		}

		// Trim zero-weight taps at both ends so the chunk records the
		// true support; the engine's cost is proportional to chunk
		// length.
		lo, hi := 0, len(values)
		for lo < hi-1 && values[lo] == 0 {
			lo++
		}
		for hi > lo+1 && values[hi-1] == 0 {
			hi--
		}
		chunks[d] = convolution.Chunk{Start: first + lo, Values: values[lo:hi]}
	}

	return &convolution.Coefficients{
		SrcSize: srcSize,
		DstSize: dstSize,
		Chunks:  chunks,
	}
}

func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
