package traverse

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRange1D(t *testing.T) {
	require.Equal(t, []int{0, 1, 2}, slices.Collect(Range1D(3, false)))
	require.Equal(t, []int{2, 1, 0}, slices.Collect(Range1D(3, true)))
	require.Empty(t, slices.Collect(Range1D(0, false)))
	require.Empty(t, slices.Collect(Range1D(-1, true)))
}

func TestRange2D_Order(t *testing.T) {
	got := slices.Collect(Range2D(2, 2, false))
	require.Equal(t, []YX{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, got)

	got = slices.Collect(Range2D(2, 2, true))
	require.Equal(t, []YX{{0, 1}, {1, 1}, {0, 0}, {1, 0}}, got)
}

func TestRange2D_Completeness(t *testing.T) {
	for _, invert := range []bool{false, true} {
		t.Run(fmt.Sprintf("invert=%v", invert), func(t *testing.T) {
			const rows, cols = 5, 7

			seen := make(map[YX]bool)
			i := 0
			for c := range Range2D(rows, cols, invert) {
				require.False(t, seen[c], "duplicate %+v", c)
				seen[c] = true
				require.Equal(t, At2D(i, rows, cols, invert), c)
				i++
			}
			require.Equal(t, rows*cols, i)
		})
	}
}

func TestRange2D_EmptyAndEarlyStop(t *testing.T) {
	require.Empty(t, slices.Collect(Range2D(0, 3, false)))
	require.Empty(t, slices.Collect(Range2D(3, 0, true)))

	n := 0
	for range Range2D(10, 10, false) {
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, 3, n)
}

func TestRange3D(t *testing.T) {
	got := slices.Collect(Range3D(2, 1, 2))
	require.Equal(t, []TYX{
		{Col: 0, Row: 0, Time: 0},
		{Col: 1, Row: 0, Time: 0},
		{Col: 0, Row: 0, Time: 1},
		{Col: 1, Row: 0, Time: 1},
	}, got)

	i := 0
	for c := range Range3D(3, 4, 5) {
		require.Equal(t, At3D(i, 4, 5), c)
		require.Equal(t, i, c.Offset(4, 5))
		i++
	}
	require.Equal(t, 60, i)
}

func TestMap_PreservesOrder(t *testing.T) {
	const n = 10_000

	want := make([]int, n)
	for i := range want {
		want[i] = i * i
	}

	for _, workers := range []int{0, 1, 3, 8, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := Map(n, workers, func(i int) (int, error) { return i * i, nil })
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestMap_LowestErrorWins(t *testing.T) {
	errLow := errors.New("low")
	errHigh := errors.New("high")

	for _, workers := range []int{1, 4, 16} {
		_, err := Map(5000, workers, func(i int) (int, error) {
			switch i {
			case 1200:
				return 0, errLow
			case 4900:
				return 0, errHigh
			}

			return i, nil
		})
		require.ErrorIs(t, err, errLow, "workers=%d", workers)
	}
}

func TestMap_Empty(t *testing.T) {
	got, err := Map(0, 4, func(int) (int, error) { return 0, errors.New("never called") })
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMap2D_MatchesSequential(t *testing.T) {
	const rows, cols = 64, 48

	for _, invert := range []bool{false, true} {
		var want []int
		for c := range Range2D(rows, cols, invert) {
			want = append(want, c.Offset(cols))
		}

		got, err := Map2D(rows, cols, invert, 7, func(c YX) (int, error) { return c.Offset(cols), nil })
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestMap3D_MatchesSequential(t *testing.T) {
	var want []TYX
	for c := range Range3D(4, 20, 30) {
		want = append(want, c)
	}

	got, err := Map3D(4, 20, 30, 5, func(c TYX) (TYX, error) { return c, nil })
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestWorkers(t *testing.T) {
	require.Equal(t, 3, Workers(3))
	require.Positive(t, Workers(0))
	require.Positive(t, Workers(-2))
}
