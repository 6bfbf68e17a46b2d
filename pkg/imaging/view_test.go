package imaging

import (
	"bytes"
	"errors"
	"testing"

	"fastresize/pkg/pixels"
)

// TestViewShape verifies row count, row length and channel reporting for a
// multi-channel view.
func TestViewShape(t *testing.T) {
	img := New(5, 4, pixels.U8x3)
	view, err := ViewOf[uint8](img)
	if err != nil {
		t.Fatalf("ViewOf failed: %v", err)
	}
	if view.Width() != 5 || view.Height() != 4 || view.Channels() != 3 {
		t.Errorf("view shape = %dx%d/%d, want 5x4/3", view.Width(), view.Height(), view.Channels())
	}
	if rows := view.Rows(0); len(rows) != 4 {
		t.Errorf("Rows(0) returned %d rows, want 4", len(rows))
	}
	if row := view.Row(2); len(row) != 5*3 {
		t.Errorf("row length = %d, want %d", len(row), 5*3)
	}
}

// TestViewTypeMismatch verifies that views of the wrong component type are
// rejected.
func TestViewTypeMismatch(t *testing.T) {
	img := New(2, 2, pixels.U8)
	if _, err := ViewOf[uint16](img); !errors.Is(err, ErrPixelTypeMismatch) {
		t.Errorf("ViewOf[uint16] on U8: err = %v, want ErrPixelTypeMismatch", err)
	}
	if _, err := ViewMutOf[float32](img); !errors.Is(err, ErrPixelTypeMismatch) {
		t.Errorf("ViewMutOf[float32] on U8: err = %v, want ErrPixelTypeMismatch", err)
	}
}

// TestRowsRestartable verifies that Rows produces a fresh sequence on every
// call rather than advancing hidden state.
func TestRowsRestartable(t *testing.T) {
	img := New(2, 4, pixels.U8)
	copy(img.Bytes(), []byte{0, 0, 1, 1, 2, 2, 3, 3})
	view, _ := ViewOf[uint8](img)

	first := view.Rows(2)
	second := view.Rows(2)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("Rows(2) lengths = %d, %d, want 2, 2", len(first), len(second))
	}
	if first[0][0] != 2 || second[0][0] != 2 {
		t.Error("Rows(2) did not restart at row 2")
	}
}

// TestMutRowsDisjoint verifies the invariant that makes lock-free row
// parallelism safe: fully overwriting one row leaves every other row
// byte-for-byte unchanged.
func TestMutRowsDisjoint(t *testing.T) {
	for _, pt := range pixels.Types {
		img := New(3, 5, pt)
		data := img.Bytes()
		for i := range data {
			data[i] = byte(i % 251)
		}
		before := make([][]byte, 5)
		stride := 3 * pt.Size()
		for r := range before {
			before[r] = append([]byte(nil), data[r*stride:(r+1)*stride]...)
		}

		overwriteRow(t, img, 2)

		after := img.Bytes()
		for r := 0; r < 5; r++ {
			got := after[r*stride : (r+1)*stride]
			if r == 2 {
				continue
			}
			if !bytes.Equal(got, before[r]) {
				t.Errorf("%s: overwriting row 2 changed row %d", pt, r)
			}
		}
	}
}

func overwriteRow(t *testing.T, img *Image, row int) {
	t.Helper()
	switch img.PixelType().Kind() {
	case pixels.KindUint8:
		v, _ := ViewMutOf[uint8](img)
		fillRow(v.RowsMut()[row], uint8(0xAB))
	case pixels.KindUint16:
		v, _ := ViewMutOf[uint16](img)
		fillRow(v.RowsMut()[row], uint16(0xABCD))
	case pixels.KindInt32:
		v, _ := ViewMutOf[int32](img)
		fillRow(v.RowsMut()[row], int32(-12345678))
	default:
		v, _ := ViewMutOf[float32](img)
		fillRow(v.RowsMut()[row], float32(0.5))
	}
}

func fillRow[C pixels.Component](row []C, val C) {
	for i := range row {
		row[i] = val
	}
}

// TestSubView verifies that sub-views address the parent's rows in place.
func TestSubView(t *testing.T) {
	img := New(2, 6, pixels.U8)
	view, _ := ViewMutOf[uint8](img)
	sub := view.SubView(2, 5)
	if sub.Height() != 3 {
		t.Fatalf("SubView height = %d, want 3", sub.Height())
	}
	sub.RowsMut()[0][0] = 42
	if view.Row(2)[0] != 42 {
		t.Error("writing through a sub-view did not reach the parent's row")
	}

	defer func() {
		if recover() == nil {
			t.Error("SubView with an inverted range did not panic")
		}
	}()
	view.SubView(4, 2)
}
