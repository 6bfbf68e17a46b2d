package resize

import (
	"sync"

	"fastresize/pkg/imaging"
	"fastresize/pkg/pixels"
)

// nearestResize maps each destination pixel to the source pixel whose center
// is nearest to the destination pixel's center within the crop region, and
// copies its components. Rows are banded across the configured workers.
func nearestResize[C pixels.Component](r *Resizer, src *imaging.View[C], dst *imaging.ViewMut[C], crop cropBox) {
	fullH := dst.Height()
	bands := rowBands(fullH, r.workers)
	if len(bands) == 1 {
		nearestRows(src, dst, crop, 0, fullH)
		return
	}
	var wg sync.WaitGroup
	for _, b := range bands {
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			nearestRows(src, dst.SubView(from, to), crop, from, fullH)
		}(b[0], b[1])
	}
	wg.Wait()
}

// nearestRows fills dst, whose rows correspond to the destination rows
// starting at rowOffset of a target fullH rows high. The (2i+1)/(2n) center
// mapping keeps the sampling symmetric at both ends of each axis.
func nearestRows[C pixels.Component](src *imaging.View[C], dst *imaging.ViewMut[C], crop cropBox, rowOffset, fullH int) {
	ch := src.Channels()
	dstW := dst.Width()
	for i, dstRow := range dst.RowsMut() {
		dy := rowOffset + i
		sy := crop.top + int((2*int64(dy)+1)*int64(crop.height)/(2*int64(fullH)))
		srcRow := src.Row(sy)
		for dx := 0; dx < dstW; dx++ {
			sx := crop.left + int((2*int64(dx)+1)*int64(crop.width)/(2*int64(dstW)))
			copy(dstRow[dx*ch:(dx+1)*ch], srcRow[sx*ch:(sx+1)*ch])
		}
	}
}
