package mesher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortTransparentOrdersBackToFront(t *testing.T) {
	triangles := []Triangle{
		{Indices: [3]uint32{0, 1, 2}, Normal: [3]float32{1, 0, 0}},
		{Indices: [3]uint32{3, 4, 5}, Normal: [3]float32{-1, 0, 0}},
		{Indices: [3]uint32{6, 7, 8}, Normal: [3]float32{0, 0, 1}},
	}

	SortTransparent(triangles, [3]float32{1, 0, 0})

	for i := 1; i < len(triangles); i++ {
		require.LessOrEqual(t, triangles[i-1].SortValue, triangles[i].SortValue)
	}
	require.Equal(t, [3]uint32{3, 4, 5}, triangles[0].Indices, "facing away from forward sorts first")
	require.Equal(t, [3]uint32{0, 1, 2}, triangles[len(triangles)-1].Indices, "facing toward forward sorts last")
}

func TestSortTransparentStableOnTies(t *testing.T) {
	triangles := []Triangle{
		{Indices: [3]uint32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Indices: [3]uint32{1, 1, 1}, Normal: [3]float32{0, 1, 0}},
	}

	SortTransparent(triangles, [3]float32{1, 0, 0})

	require.Equal(t, uint32(0), triangles[0].Indices[0], "equal sort keys preserve original order")
	require.Equal(t, uint32(1), triangles[1].Indices[0])
}

func TestDot(t *testing.T) {
	require.Equal(t, float32(1), dot([3]float32{1, 0, 0}, [3]float32{1, 0, 0}))
	require.Equal(t, float32(0), dot([3]float32{1, 0, 0}, [3]float32{0, 1, 0}))
	require.Equal(t, float32(-1), dot([3]float32{0, 0, 1}, [3]float32{0, 0, -1}))
}
