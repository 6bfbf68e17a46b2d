// Package convolution implements 1-D separable convolution over typed image
// views. The horizontal and vertical passes are generic over the pixel
// component type and consume precomputed, finite-support filter weights
// grouped into per-destination-index chunks.
package convolution

import "fmt"

// Chunk holds the filter weights for one destination index along an axis.
// Values[k] is the weight of source index Start+k. Chunk lengths vary near
// the borders because the filter support window is truncated against the
// source extent rather than wrapped or mirrored.
type Chunk struct {
	// Start is the first source index with non-negligible weight.
	Start int

	// Values are the filter weights for the source indices
	// [Start, Start+len(Values)).
	Values []float64
}

// Coefficients holds one chunk per destination index along a single axis.
// It is built once per axis per resize operation and is immutable afterwards.
type Coefficients struct {
	// SrcSize is the source axis length the chunks were built against.
	SrcSize int

	// DstSize is the destination axis length; len(Chunks) == DstSize.
	DstSize int

	// Chunks holds the per-destination-index weight windows.
	Chunks []Chunk
}

// Validate checks the structural invariants the convolution passes rely on:
// one chunk per destination index, and every chunk's window contained in
// [0, SrcSize). The engine runs this once per pass; a failure is a defect in
// the coefficient builder, not a recoverable condition.
func (c *Coefficients) Validate() error {
	if len(c.Chunks) != c.DstSize {
		return fmt.Errorf("convolution: %d chunks for destination size %d", len(c.Chunks), c.DstSize)
	}
	for i, chunk := range c.Chunks {
		if chunk.Start < 0 || len(chunk.Values) == 0 || chunk.Start+len(chunk.Values) > c.SrcSize {
			return fmt.Errorf("convolution: chunk %d window [%d, %d) out of source range [0, %d)",
				i, chunk.Start, chunk.Start+len(chunk.Values), c.SrcSize)
		}
	}
	return nil
}

// Slice returns coefficients restricted to the destination indices
// [from, to). The chunks are shared, not copied; the result addresses the
// same source axis. It is used to band destination rows across workers in
// the vertical pass.
func (c *Coefficients) Slice(from, to int) *Coefficients {
	return &Coefficients{
		SrcSize: c.SrcSize,
		DstSize: to - from,
		Chunks:  c.Chunks[from:to],
	}
}
