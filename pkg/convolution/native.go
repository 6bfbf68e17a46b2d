package convolution

import (
	"math"

	"fastresize/pkg/imaging"
	"fastresize/pkg/pixels"
)

// The scalar baseline. Both passes accumulate in float64 regardless of the
// component storage width, which bounds the cumulative rounding error across
// the two sequential passes of the separable scheme. Integer components are
// rounded to nearest and clamped to their representable range; float32
// components store the accumulator directly.

func horizNative[C pixels.Component](src *imaging.View[C], dst *imaging.ViewMut[C], offset int, coeffs *Coefficients) {
	ch := src.Channels()
	store := storeFunc[C]()
	srcRows := src.Rows(offset)
	for r, dstRow := range dst.RowsMut() {
		srcRow := srcRows[r]
		for d, chunk := range coeffs.Chunks {
			dstBase := d * ch
			for c := 0; c < ch; c++ {
				var ss float64
				x := chunk.Start*ch + c
				for _, w := range chunk.Values {
					ss += float64(srcRow[x]) * w
					x += ch
				}
				dstRow[dstBase+c] = store(ss)
			}
		}
	}
}

func vertNative[C pixels.Component](src *imaging.View[C], dst *imaging.ViewMut[C], coeffs *Coefficients) {
	store := storeFunc[C]()
	for r, dstRow := range dst.RowsMut() {
		chunk := coeffs.Chunks[r]
		srcRows := src.Rows(chunk.Start)
		// Iterating components instead of pixels makes the pass
		// channel-independent for free: column x of component c is just
		// component index x*ch+c, and the weights never mix indices.
		for x := range dstRow {
			var ss float64
			for k, w := range chunk.Values {
				ss += float64(srcRows[k][x]) * w
			}
			dstRow[x] = store(ss)
		}
	}
}

// storeFunc resolves the accumulator-to-component store policy once per
// pass, keeping the type switch out of the inner loops.
func storeFunc[C pixels.Component]() func(float64) C {
	var z C
	switch any(z).(type) {
	case float32:
		return func(ss float64) C { return C(ss) }
	case uint8:
		return func(ss float64) C { return C(clampRound(ss, 0, math.MaxUint8)) }
	case uint16:
		return func(ss float64) C { return C(clampRound(ss, 0, math.MaxUint16)) }
	default: // int32
		return func(ss float64) C { return C(clampRound(ss, math.MinInt32, math.MaxInt32)) }
	}
}

// clampRound rounds half away from zero and clamps to [lo, hi]. Clamping is
// deliberate: out-of-range accumulator values (overshooting filters, extreme
// weights) must saturate at the component's bounds, never wrap.
func clampRound(ss, lo, hi float64) float64 {
	ss = math.Round(ss)
	if ss < lo {
		return lo
	}
	if ss > hi {
		return hi
	}
	return ss
}
