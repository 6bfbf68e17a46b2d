// Package resize provides the top-level resampling orchestrator. A Resizer
// selects an algorithm, builds per-axis filter coefficients, sequences the
// horizontal and vertical convolution passes through an intermediate image,
// and spreads destination rows across worker goroutines.
package resize

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"fastresize/pkg/convolution"
	"fastresize/pkg/filters"
	"fastresize/pkg/imaging"
	"fastresize/pkg/pixels"
)

// ErrInvalidCropBox is returned when a configured crop box does not fit
// inside the source image.
var ErrInvalidCropBox = errors.New("resize: crop box outside source image")

type algorithmKind int

const (
	algConvolution algorithmKind = iota
	algNearest
	algSuperSampling
)

// Algorithm selects how a Resizer maps source pixels to destination pixels.
type Algorithm struct {
	kind         algorithmKind
	filter       filters.Filter
	multiplicity int
}

// Nearest selects nearest-neighbor sampling. It is the fastest option and
// the lowest quality one.
func Nearest() Algorithm {
	return Algorithm{kind: algNearest}
}

// Convolution selects separable convolution with the given filter.
func Convolution(f filters.Filter) Algorithm {
	return Algorithm{kind: algConvolution, filter: f}
}

// SuperSampling selects a two-step downscale: a cheap nearest-neighbor
// pre-shrink to at most multiplicity times the destination size, followed by
// convolution with the given filter. For large downscale ratios this costs a
// fraction of full convolution with little visible difference.
func SuperSampling(f filters.Filter, multiplicity int) Algorithm {
	if multiplicity < 2 {
		multiplicity = 2
	}
	return Algorithm{kind: algSuperSampling, filter: f, multiplicity: multiplicity}
}

// String returns a human-readable description of the algorithm.
func (a Algorithm) String() string {
	switch a.kind {
	case algNearest:
		return "nearest"
	case algSuperSampling:
		return fmt.Sprintf("supersampling(%s, %d)", a.filter.Name, a.multiplicity)
	default:
		return fmt.Sprintf("convolution(%s)", a.filter.Name)
	}
}

// cropBox is the resolved source region a resize reads from.
type cropBox struct {
	left, top, width, height int
}

// Resizer resamples images between arbitrary dimensions. A Resizer is
// reusable across many resize operations; it is not safe for concurrent use
// by multiple goroutines because of the mutable crop box.
type Resizer struct {
	alg     Algorithm
	workers int
	cpu     convolution.CPUExtensions
	crop    *cropBox
}

// NewResizer creates a Resizer for the given algorithm. It defaults to one
// worker per CPU core and to the widest CPU extensions the host supports.
func NewResizer(alg Algorithm) *Resizer {
	return &Resizer{
		alg:     alg,
		workers: runtime.NumCPU(),
		cpu:     convolution.DetectCPU(),
	}
}

// SetWorkers sets how many goroutines share the destination rows of each
// pass. Values below 1 are treated as 1.
func (r *Resizer) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	r.workers = n
}

// CPUExtensions returns the extension set the Resizer dispatches with.
func (r *Resizer) CPUExtensions() convolution.CPUExtensions { return r.cpu }

// SetCPUExtensions overrides the detected CPU extensions. Passing
// convolution.CPUNone forces the portable scalar path.
func (r *Resizer) SetCPUExtensions(ext convolution.CPUExtensions) { r.cpu = ext }

// SetCropBox restricts the next resizes to the given source region. The box
// is validated against each source image at Resize time.
func (r *Resizer) SetCropBox(left, top, width, height int) error {
	if left < 0 || top < 0 || width <= 0 || height <= 0 {
		return fmt.Errorf("%w: [%d, %d, %dx%d]", ErrInvalidCropBox, left, top, width, height)
	}
	r.crop = &cropBox{left: left, top: top, width: width, height: height}
	return nil
}

// ResetCropBox removes any configured crop box.
func (r *Resizer) ResetCropBox() { r.crop = nil }

// Resize resamples src into dst. The destination's dimensions select the
// target size; both images must share a pixel type. Source and destination
// must be distinct images.
func (r *Resizer) Resize(src, dst *imaging.Image) error {
	if src.PixelType() != dst.PixelType() {
		return fmt.Errorf("%w: source is %s, destination is %s",
			imaging.ErrPixelTypeMismatch, src.PixelType(), dst.PixelType())
	}
	crop, err := r.resolveCrop(src)
	if err != nil {
		return err
	}
	if crop.width == dst.Width() && crop.height == dst.Height() &&
		crop.left == 0 && crop.top == 0 &&
		src.Width() == dst.Width() && src.Height() == dst.Height() {
		return dst.CopyFrom(src)
	}
	switch src.PixelType().Kind() {
	case pixels.KindUint8:
		return resizeTyped[uint8](r, src, dst, crop)
	case pixels.KindUint16:
		return resizeTyped[uint16](r, src, dst, crop)
	case pixels.KindInt32:
		return resizeTyped[int32](r, src, dst, crop)
	default:
		return resizeTyped[float32](r, src, dst, crop)
	}
}

func (r *Resizer) resolveCrop(src *imaging.Image) (cropBox, error) {
	if r.crop == nil {
		return cropBox{width: src.Width(), height: src.Height()}, nil
	}
	c := *r.crop
	if c.left+c.width > src.Width() || c.top+c.height > src.Height() {
		return cropBox{}, fmt.Errorf("%w: [%d, %d, %dx%d] in %dx%d source",
			ErrInvalidCropBox, c.left, c.top, c.width, c.height, src.Width(), src.Height())
	}
	return c, nil
}

func resizeTyped[C pixels.Component](r *Resizer, src, dst *imaging.Image, crop cropBox) error {
	srcView, err := imaging.ViewOf[C](src)
	if err != nil {
		return err
	}
	dstView, err := imaging.ViewMutOf[C](dst)
	if err != nil {
		return err
	}
	switch r.alg.kind {
	case algNearest:
		nearestResize(r, srcView, dstView, crop)
		return nil
	case algSuperSampling:
		return superSample[C](r, srcView, dstView, crop, src.PixelType())
	default:
		convolve[C](r, srcView, dstView, crop, src.PixelType())
		return nil
	}
}

// convolve runs the two separable passes: horizontal into an intermediate
// image covering the cropped source rows, then vertical into the final
// destination.
func convolve[C pixels.Component](r *Resizer, src *imaging.View[C], dst *imaging.ViewMut[C], crop cropBox, pt pixels.PixelType) {
	f := r.alg.filter
	hCoeffs := filters.Coefficients(f, src.Width(), dst.Width(), float64(crop.left), float64(crop.width))
	vCoeffs := filters.Coefficients(f, crop.height, dst.Height(), 0, float64(crop.height))

	tmp := imaging.New(dst.Width(), crop.height, pt)
	tmpMut, _ := imaging.ViewMutOf[C](tmp)
	runHoriz(r, src, tmpMut, crop.top, hCoeffs)

	tmpView, _ := imaging.ViewOf[C](tmp)
	runVert(r, tmpView, dst, vCoeffs)
}

// superSample pre-shrinks with nearest-neighbor sampling before convolving.
// When the destination is already within multiplicity of the crop size the
// pre-shrink is pointless and the plain convolution path runs instead.
func superSample[C pixels.Component](r *Resizer, src *imaging.View[C], dst *imaging.ViewMut[C], crop cropBox, pt pixels.PixelType) error {
	iw := min(crop.width, dst.Width()*r.alg.multiplicity)
	ih := min(crop.height, dst.Height()*r.alg.multiplicity)
	if iw == crop.width && ih == crop.height {
		convolve[C](r, src, dst, crop, pt)
		return nil
	}
	tmp := imaging.New(iw, ih, pt)
	tmpMut, err := imaging.ViewMutOf[C](tmp)
	if err != nil {
		return err
	}
	nearestResize(r, src, tmpMut, crop)
	tmpView, _ := imaging.ViewOf[C](tmp)
	convolve[C](r, tmpView, dst, cropBox{width: iw, height: ih}, pt)
	return nil
}

// runHoriz applies the horizontal pass, banding destination rows across the
// configured workers. Bands write disjoint row sets of dst, so the only
// coordination needed is the final WaitGroup join.
func runHoriz[C pixels.Component](r *Resizer, src *imaging.View[C], dst *imaging.ViewMut[C], offset int, coeffs *convolution.Coefficients) {
	bands := rowBands(dst.Height(), r.workers)
	if len(bands) == 1 {
		convolution.HorizConvolution(src, dst, offset, coeffs, r.cpu)
		return
	}
	var wg sync.WaitGroup
	for _, b := range bands {
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			convolution.HorizConvolution(src, dst.SubView(from, to), offset+from, coeffs, r.cpu)
		}(b[0], b[1])
	}
	wg.Wait()
}

// runVert applies the vertical pass with the same row banding; each band
// receives the chunk sub-slice matching its destination rows.
func runVert[C pixels.Component](r *Resizer, src *imaging.View[C], dst *imaging.ViewMut[C], coeffs *convolution.Coefficients) {
	bands := rowBands(dst.Height(), r.workers)
	if len(bands) == 1 {
		convolution.VertConvolution(src, dst, coeffs, r.cpu)
		return
	}
	var wg sync.WaitGroup
	for _, b := range bands {
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			convolution.VertConvolution(src, dst.SubView(from, to), coeffs.Slice(from, to), r.cpu)
		}(b[0], b[1])
	}
	wg.Wait()
}

// rowBands splits n rows into at most workers contiguous, near-equal bands.
func rowBands(n, workers int) [][2]int {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	bands := make([][2]int, 0, workers)
	per := n / workers
	extra := n % workers
	from := 0
	for i := 0; i < workers; i++ {
		to := from + per
		if i < extra {
			to++
		}
		bands = append(bands, [2]int{from, to})
		from = to
	}
	return bands
}
