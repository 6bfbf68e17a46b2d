package imaging

import (
	"fmt"

	"fastresize/pkg/pixels"
)

// View is a read-only, row-major typed view over an image's components.
// Each row holds exactly width*channels components of type C; a pixel is the
// channels-wide group starting at x*channels. Views borrow the image storage
// and never copy it.
type View[C pixels.Component] struct {
	width    int
	height   int
	channels int
	rows     [][]C
}

// ViewMut is the mutable counterpart of View. Its row slices are pairwise
// disjoint: they partition the underlying storage by the fixed row stride,
// so concurrent writers that own different rows need no synchronization.
type ViewMut[C pixels.Component] struct {
	View[C]
}

// ViewOf reinterprets img as typed rows of component type C without copying.
// C must match the component kind of the image's pixel type; otherwise
// ErrPixelTypeMismatch is returned.
func ViewOf[C pixels.Component](img *Image) (*View[C], error) {
	comps, err := componentsOf[C](img)
	if err != nil {
		return nil, err
	}
	return &View[C]{
		width:    img.width,
		height:   img.height,
		channels: img.pixelType.ChannelCount(),
		rows:     splitRows(comps, img.width*img.pixelType.ChannelCount(), img.height),
	}, nil
}

// ViewMutOf is like ViewOf but produces a mutable view. The produced row
// slices are guaranteed non-overlapping.
func ViewMutOf[C pixels.Component](img *Image) (*ViewMut[C], error) {
	v, err := ViewOf[C](img)
	if err != nil {
		return nil, err
	}
	return &ViewMut[C]{View: *v}, nil
}

// Width returns the view width in pixels.
func (v *View[C]) Width() int { return v.width }

// Height returns the view height in pixels (rows).
func (v *View[C]) Height() int { return v.height }

// Channels returns the number of components per pixel.
func (v *View[C]) Channels() int { return v.channels }

// Row returns the i-th row of the view.
func (v *View[C]) Row(i int) []C { return v.rows[i] }

// Rows returns the sequence of rows starting at row index offset. Every call
// produces a fresh slice header over the same rows; there is no hidden
// iteration state to reset.
func (v *View[C]) Rows(offset int) [][]C { return v.rows[offset:] }

// RowsMut returns one mutable slice per row, covering the full view exactly
// once. The slices are pairwise disjoint.
func (v *ViewMut[C]) RowsMut() [][]C { return v.rows }

// SubView returns a mutable view over the destination rows [from, to).
// The sub-view shares storage with v; because rows are disjoint, sub-views
// over non-overlapping row ranges can be written concurrently.
func (v *ViewMut[C]) SubView(from, to int) *ViewMut[C] {
	if from < 0 || to > v.height || from >= to {
		panic(fmt.Sprintf("imaging: invalid row range [%d, %d) for height %d", from, to, v.height))
	}
	return &ViewMut[C]{View[C]{
		width:    v.width,
		height:   to - from,
		channels: v.channels,
		rows:     v.rows[from:to],
	}}
}

// componentsOf returns img's native component slice as []C, or
// ErrPixelTypeMismatch when C does not match the image's storage kind.
func componentsOf[C pixels.Component](img *Image) ([]C, error) {
	if pixels.KindOf[C]() != img.pixelType.Kind() {
		return nil, fmt.Errorf("%w: view component type does not match %s",
			ErrPixelTypeMismatch, img.pixelType)
	}
	var comps []C
	switch p := any(&comps).(type) {
	case *[]uint8:
		*p = img.comps.u8
	case *[]uint16:
		*p = img.comps.u16
	case *[]int32:
		*p = img.comps.i32
	case *[]float32:
		*p = img.comps.f32
	}
	return comps, nil
}

// splitRows partitions comps into height rows of stride components each.
// The three-index slice expressions cap every row at its own stride, so no
// row can reach into its neighbor even through append.
func splitRows[C pixels.Component](comps []C, stride, height int) [][]C {
	rows := make([][]C, height)
	for i := range rows {
		rows[i] = comps[i*stride : (i+1)*stride : (i+1)*stride]
	}
	return rows
}
