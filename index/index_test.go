package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ncgrid/errs"
)

func TestFlatten2D(t *testing.T) {
	require.Equal(t, 12, Flatten2D(3, 3, 3))
	require.Equal(t, 0, Flatten2D(0, 0, 5))
	require.Equal(t, 7, Flatten2D(1, 2, 5))
}

func TestFlatten2D_Bijection(t *testing.T) {
	const ySize, xSize = 7, 5

	seen := make(map[int]bool, ySize*xSize)
	for r := 0; r < ySize; r++ {
		for c := 0; c < xSize; c++ {
			off := Flatten2D(r, c, xSize)
			require.False(t, seen[off], "offset %d produced twice", off)
			require.GreaterOrEqual(t, off, 0)
			require.Less(t, off, ySize*xSize)
			seen[off] = true

			row, col := Unflatten2D(off, xSize)
			require.Equal(t, r, row)
			require.Equal(t, c, col)
		}
	}
	require.Len(t, seen, ySize*xSize)
}

func TestOffset_Unflatten(t *testing.T) {
	shape := []int{2, 3, 4}

	for off := 0; off < Size(shape); off++ {
		idx := Unflatten(off, shape)
		require.Equal(t, off, Offset(idx, shape))
	}

	require.Equal(t, 23, Offset([]int{1, 2, 3}, shape))
	require.Equal(t, Flatten3DOffset(1, 2, 3, 3, 4), Offset([]int{1, 2, 3}, shape))
	require.Equal(t, 0, Offset(nil, nil))
}

func TestSize(t *testing.T) {
	require.Equal(t, 1, Size(nil))
	require.Equal(t, 24, Size([]int{2, 3, 4}))
	require.Equal(t, 0, Size([]int{0, 3}))
}

func TestFlatten3D_Presets(t *testing.T) {
	tests := []struct {
		name  string
		order AxisOrder
		want  [3]int
		text  string
	}{
		{"TimeYX", TimeYX, [3]int{1, 2, 3}, "TYX"},
		{"TimeXY", TimeXY, [3]int{1, 3, 2}, "TXY"},
		{"YXTime", YXTime, [3]int{2, 3, 1}, "YXT"},
		{"XYTime", XYTime, [3]int{3, 2, 1}, "XYT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.order.Valid())
			require.Equal(t, tt.want, Flatten3D(1, 2, 3, tt.order))
			require.Equal(t, tt.text, tt.order.String())
		})
	}
}

func TestNewAxisOrder(t *testing.T) {
	o, err := NewAxisOrder(0, 1, 2)
	require.NoError(t, err)
	require.Equal(t, TimeYX, o)

	_, err = NewAxisOrder(0, 0, 2)
	require.ErrorIs(t, err, errs.ErrInvalidAxisOrder)

	_, err = NewAxisOrder(0, 1, 3)
	require.ErrorIs(t, err, errs.ErrInvalidAxisOrder)

	require.False(t, AxisOrder{}.Valid())
}

func TestShape3D(t *testing.T) {
	require.Equal(t, []int{4, 3, 2}, Shape3D(4, 3, 2, TimeYX))
	require.Equal(t, []int{3, 2, 4}, Shape3D(4, 3, 2, YXTime))
}
