// Package filters provides the resampling filter kernels and the coefficient
// builder that turns a kernel plus a scale ratio into the per-destination
// weight chunks consumed by the convolution engine.
package filters

import (
	"fmt"
	"math"
	"sort"
)

// Filter is a finite-support resampling kernel. Kernel(x) is the filter
// value at distance x from the sample center, non-zero only inside
// (-Support, Support).
type Filter struct {
	// Name identifies the filter, e.g. in configuration files.
	Name string

	// Support is the kernel radius in source pixels at scale 1.
	Support float64

	// Kernel evaluates the filter shape at x.
	Kernel func(x float64) float64
}

// The supported kernels. Shapes follow the classical definitions: Box and
// Bilinear are the degree-0 and degree-1 B-splines, Hamming is the windowed
// sinc used by Pillow, CatmullRom and Mitchell are the (0, 1/2) and
// (1/3, 1/3) members of the Mitchell-Netravali cubic family, and Lanczos3 is
// the 3-lobed windowed sinc.
var (
	Box = Filter{Name: "box", Support: 0.5, Kernel: func(x float64) float64 {
		if x > -0.5 && x <= 0.5 {
			return 1.0
		}
		return 0.0
	}}

	Bilinear = Filter{Name: "bilinear", Support: 1.0, Kernel: func(x float64) float64 {
		x = math.Abs(x)
		if x < 1.0 {
			return 1.0 - x
		}
		return 0.0
	}}

	Hamming = Filter{Name: "hamming", Support: 1.0, Kernel: func(x float64) float64 {
		x = math.Abs(x)
		switch {
		case x == 0.0:
			return 1.0
		case x >= 1.0:
			return 0.0
		default:
			x *= math.Pi
			return math.Sin(x) / x * (0.54 + 0.46*math.Cos(x))
		}
	}}

	CatmullRom = Filter{Name: "catmullrom", Support: 2.0, Kernel: mitchellNetravali(0.0, 0.5)}

	Mitchell = Filter{Name: "mitchell", Support: 2.0, Kernel: mitchellNetravali(1.0/3.0, 1.0/3.0)}

	Lanczos3 = Filter{Name: "lanczos3", Support: 3.0, Kernel: func(x float64) float64 {
		x = math.Abs(x)
		if x >= 3.0 {
			return 0.0
		}
		return sinc(x) * sinc(x/3.0)
	}}
)

// All lists every built-in filter, sorted by name.
var All = func() []Filter {
	fs := []Filter{Box, Bilinear, Hamming, CatmullRom, Mitchell, Lanczos3}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Name < fs[j].Name })
	return fs
}()

// ByName returns the built-in filter with the given name.
func ByName(name string) (Filter, error) {
	for _, f := range All {
		if f.Name == name {
			return f, nil
		}
	}
	return Filter{}, fmt.Errorf("filters: unknown filter %q", name)
}

// mitchellNetravali builds a cubic kernel from the two-parameter
// Mitchell-Netravali family.
func mitchellNetravali(b, c float64) func(float64) float64 {
	return func(x float64) float64 {
		x = math.Abs(x)
		switch {
		case x < 1.0:
			return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
		case x < 2.0:
			return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
		default:
			return 0.0
		}
	}
}

func sinc(x float64) float64 {
	if x == 0.0 {
		return 1.0
	}
	x *= math.Pi
	return math.Sin(x) / x
}
